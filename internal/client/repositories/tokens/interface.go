// Package tokens persists the opaque bearer token between runs of the CLI.
//
// The token lives under a single fixed key. Absence of a token means the
// session is unauthenticated until a current-user fetch proves otherwise;
// the store never interprets the token's contents.
package tokens

import "context"

// Store is the persistence port for the bearer token. Implementations:
// SQLiteStore for real runs, MemoryStore as a test fake.
type Store interface {
	// Get returns the stored token, or "" when none is held.
	Get(ctx context.Context) (string, error)

	// Set replaces the stored token.
	Set(ctx context.Context, token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
