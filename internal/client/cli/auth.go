package cli

import (
	"context"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates through the session store.
// Failures are reported to the user and returned; session state is only
// mutated by a successful login.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	if err := validateLogin(email, password); err != nil {
		printlnFn(err.Error())
		return err
	}

	resp, err := a.session.Login(ctx, email, password)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Logged in as", resp.User.Username)
	return nil
}

// Register prompts for account details, validates them locally, creates the
// account, and then logs in with the same credentials. Validation failures
// never reach the network.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	passwordConfirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}

	if err := validateRegistration(username, email, password, passwordConfirm); err != nil {
		printlnFn(err.Error())
		return err
	}

	if _, err := a.session.Register(ctx, username, email, password); err != nil {
		printlnFn(err.Error())
		return err
	}

	// Registration alone does not authenticate; log in right away the same
	// way the web form does after a successful signup.
	resp, err := a.session.Login(ctx, email, password)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Account created, logged in as", resp.User.Username)
	return nil
}

// WhoAmI prints the current user summary.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn("id:", u.ID)
	printlnFn("username:", u.Username)
	printlnFn("email:", u.Email)
	return nil
}

// Logout ends the session locally: token cleared, user dropped, no network.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout()
	a.list = nil
	printlnFn("Logged out.")
	return nil
}
