// Package cli implements the interactive AdminFiles command-line client.
//
// The App ties together the session store, the API client, and the upload
// flow; runREPL dispatches user commands to it. Commands are gated on
// session state: file operations require a logged-in user, login/register
// require an anonymous one.
//
// Input helpers carry test seams (getSimpleText, getPassword, printlnFn) so
// command handlers can be exercised without a terminal.
package cli
