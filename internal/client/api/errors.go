package api

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Error is a normalized operation failure: one user-facing message, the HTTP
// status that produced it (0 for transport failures), and an optional
// sentinel reachable through errors.Is.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"-"`

	sentinel error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.sentinel }

// newError picks the server-supplied message when present, else the
// per-operation default, and attaches the sentinel matching the status.
func newError(status int, serverMsg, defaultMsg string) *Error {
	msg := serverMsg
	if msg == "" {
		msg = defaultMsg
	}

	var sentinel error
	switch {
	case status == 401 || status == 403:
		sentinel = ErrUnauthorized
	case status == 404:
		sentinel = ErrNotFound
	case status >= 500:
		sentinel = ErrUnavailable
	}

	return &Error{Message: msg, Status: status, sentinel: sentinel}
}

// newTransportError normalizes a failed request (connection refused, DNS,
// timeout) that never produced a response.
func newTransportError(defaultMsg string) *Error {
	return &Error{Message: defaultMsg, sentinel: ErrUnavailable}
}
