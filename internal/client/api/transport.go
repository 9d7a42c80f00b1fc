package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/adminfiles/cli/internal/client/repositories/tokens"
	"github.com/adminfiles/cli/internal/logging"
)

// authTransport decorates every outgoing request and inspects every response,
// the two cross-cutting behaviors of the client:
//
//   - outbound: if the token store holds a bearer token, attach it as an
//     Authorization header; tag the request with an X-Request-Id.
//   - inbound: an unauthorized status on any authenticated endpoint clears
//     the persisted token and fires the unauthorized hook. This is a global
//     side effect: whichever operation triggered it, the session is over.
//
// The anonymous endpoints (login, register) are exempt from the inbound rule.
// A 401 there means bad credentials, and clearing state for it would race a
// login attempt that is about to establish a fresh token.
type authTransport struct {
	base           http.RoundTripper
	tokens         tokens.Store
	onUnauthorized func()
	log            logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, err := t.tokens.Get(ctx)
	if err != nil {
		t.log.Warn(ctx, "token read failed", "error", err)
	}

	// Per net/http contract the request must not be mutated in place.
	req = req.Clone(ctx)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !isAnonymousEndpoint(req.URL.Path) {
		if err := t.tokens.Clear(ctx); err != nil {
			t.log.Warn(ctx, "token clear failed", "error", err)
		}
		if t.onUnauthorized != nil {
			t.onUnauthorized()
		}
	}

	return resp, nil
}

func isAnonymousEndpoint(path string) bool {
	return strings.HasSuffix(path, "/api/auth/login") || strings.HasSuffix(path, "/api/auth/register")
}
