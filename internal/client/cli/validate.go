package cli

import "errors"

// Local form validation, checked before any network call. The messages
// mirror what the registration form shows inline.
var (
	errFieldsRequired   = errors.New("All fields are required")
	errPasswordMismatch = errors.New("Passwords do not match")
	errPasswordTooShort = errors.New("Password must be at least 6 characters")
)

const minPasswordLen = 6

func validateRegistration(username, email, password, passwordConfirm string) error {
	if username == "" || email == "" || password == "" || passwordConfirm == "" {
		return errFieldsRequired
	}
	if password != passwordConfirm {
		return errPasswordMismatch
	}
	if len(password) < minPasswordLen {
		return errPasswordTooShort
	}
	return nil
}

func validateLogin(email, password string) error {
	if email == "" || password == "" {
		return errFieldsRequired
	}
	return nil
}
