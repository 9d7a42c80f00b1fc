package session

import "github.com/adminfiles/cli/internal/client/models"

// Decision is a route-gate verdict. Callers render, redirect, or hold
// rendering until the session resolves.
type Decision int

const (
	// DecisionWait means the initial session resolution is still pending.
	// The original UI redirected immediately on a hard refresh, flashing the
	// login view before the current-user check resolved; gating here blocks
	// instead until Loading() is false.
	DecisionWait Decision = iota

	// DecisionRender means the guarded view may be shown.
	DecisionRender

	// DecisionRedirectLogin sends an unauthenticated caller to the login view.
	DecisionRedirectLogin

	// DecisionRedirectHome sends an authenticated caller to the main view.
	DecisionRedirectHome
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionRender:
		return "render"
	case DecisionRedirectLogin:
		return "redirect-login"
	case DecisionRedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// State is the read-only session view the gate works from. *Store satisfies
// it; tests can substitute a fixture.
type State interface {
	User() *models.User
	Loading() bool
}

// RequiresAuth guards views that need a logged-in user.
func RequiresAuth(s State) Decision {
	if s.Loading() {
		return DecisionWait
	}
	if s.User() == nil {
		return DecisionRedirectLogin
	}
	return DecisionRender
}

// RequiresAnonymous guards views that only make sense logged out, the login
// and register forms.
func RequiresAnonymous(s State) Decision {
	if s.Loading() {
		return DecisionWait
	}
	if s.User() != nil {
		return DecisionRedirectHome
	}
	return DecisionRender
}
