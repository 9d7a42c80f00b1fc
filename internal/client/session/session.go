// Package session holds the client's belief about the current authenticated
// user and owns the bearer-token lifecycle in the token store.
package session

import (
	"context"
	"sync"

	"github.com/adminfiles/cli/internal/client/api"
	"github.com/adminfiles/cli/internal/client/models"
	"github.com/adminfiles/cli/internal/client/repositories/tokens"
	"github.com/adminfiles/cli/internal/logging"
)

// Store is the single source of truth for "who is logged in". It is built
// once at startup and passed by reference to whatever renders state; nothing
// else writes the user or the persisted token.
//
// Invariant: User() is non-nil exactly when a previously-validated token is
// held in the token store, except during the initial resolution window
// reported by Loading().
type Store struct {
	api    api.Client
	tokens tokens.Store
	log    logging.Logger

	mu      sync.RWMutex
	user    *models.User
	loading bool
}

func New(client api.Client, store tokens.Store, log logging.Logger) *Store {
	return &Store{
		api:     client,
		tokens:  store,
		log:     log,
		loading: true,
	}
}

// User returns the current user summary, or nil when unauthenticated.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Loading reports whether the initial session resolution is still pending.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Initialize resolves the session at process start: no persisted token means
// unauthenticated; a present token is validated against the current-user
// endpoint. Either way Loading() is false when Initialize returns.
func (s *Store) Initialize(ctx context.Context) {
	token, err := s.tokens.Get(ctx)
	if err != nil {
		s.log.Warn(ctx, "token read failed", "error", err)
	}

	if token == "" {
		s.mu.Lock()
		s.user = nil
		s.loading = false
		s.mu.Unlock()
		return
	}

	s.FetchCurrentUser(ctx)
}

// FetchCurrentUser asks the backend who the stored token belongs to. Success
// sets the user; any failure, an expired token included, clears the persisted
// token and leaves the session unauthenticated. Failures are absorbed into
// state, never returned.
func (s *Store) FetchCurrentUser(ctx context.Context) {
	user, err := s.api.CurrentUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.log.Warn(ctx, "current user fetch failed", "error", err)
		if cerr := s.tokens.Clear(ctx); cerr != nil {
			s.log.Warn(ctx, "token clear failed", "error", cerr)
		}
		s.user = nil
		return
	}

	s.user = user
}

// Login authenticates and, on success, persists the returned token and sets
// the user. On failure nothing is mutated: the token store is only written
// once the backend has accepted the credentials.
func (s *Store) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Set(ctx, resp.Token); err != nil {
		// A session that cannot survive a restart is still a session;
		// keep the in-memory user and report the persistence problem.
		s.log.Error(ctx, "token persist failed", "error", err)
	}

	s.mu.Lock()
	s.user = &resp.User
	s.mu.Unlock()

	return resp, nil
}

// Register creates an account. Registration does not imply login: session
// state is untouched on success, and errors propagate exactly as in Login.
func (s *Store) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return s.api.Register(ctx, username, email, password)
}

// Logout clears the persisted token and the in-memory user. No network call,
// no error path; a failing token store is logged and the session still ends.
func (s *Store) Logout() {
	ctx := context.Background()
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Warn(ctx, "token clear failed", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// HandleUnauthorized is the global reaction to an unauthorized response on
// any authenticated endpoint. The transport has already cleared the token;
// this drops the in-memory user so gating flips on the next read.
func (s *Store) HandleUnauthorized() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}
