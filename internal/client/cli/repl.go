package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/adminfiles/cli/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	authDecision() session.Decision
	anonDecision() session.Decision
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	List(ctx context.Context) error
	Upload(ctx context.Context) error
	Download(ctx context.Context) error
	Delete(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the AdminFiles CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account (logs in on success)
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - list | l       — list stored files
//	  - upload         — upload a local file
//	  - download       — download a file by id
//	  - delete         — delete a file by id
//	  - whoami         — show the current user
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Access to each command goes through the route gate: commands of the wrong
// side are refused with a hint instead of running. Errors returned by the
// handlers are ignored here; handlers report their own errors. This keeps
// the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("af> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.authDecision() == session.DecisionRender {
				printlnFn("Available commands: (l)ist, upload, download, delete, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			if guardAnonymous(a) {
				_ = a.Register(ctx)
			}

		case "login":
			if guardAnonymous(a) {
				_ = a.Login(ctx)
			}

		case "l", "list":
			if guardAuth(a) {
				_ = a.List(ctx)
			}

		case "upload":
			if guardAuth(a) {
				_ = a.Upload(ctx)
			}

		case "download":
			if guardAuth(a) {
				_ = a.Download(ctx)
			}

		case "delete":
			if guardAuth(a) {
				_ = a.Delete(ctx)
			}

		case "whoami":
			if guardAuth(a) {
				_ = a.WhoAmI(ctx)
			}

		case "logout":
			if guardAuth(a) {
				_ = a.Logout(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// guardAuth admits the command only when the gate renders for an
// authenticated user.
func guardAuth(a execIface) bool {
	switch a.authDecision() {
	case session.DecisionRender:
		return true
	case session.DecisionWait:
		printlnFn("Still checking your session, try again in a moment.")
	default:
		printlnFn("Please log in first.")
	}
	return false
}

// guardAnonymous admits login/register only while logged out.
func guardAnonymous(a execIface) bool {
	switch a.anonDecision() {
	case session.DecisionRender:
		return true
	case session.DecisionWait:
		printlnFn("Still checking your session, try again in a moment.")
	default:
		printlnFn("Already logged in, use 'logout' first.")
	}
	return false
}
