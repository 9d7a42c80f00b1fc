// Package models defines client-side data models for the AdminFiles CLI.
// The JSON shapes mirror the backend responses and are treated as read-only
// on this side: the client never edits a record's fields locally.
package models

import "time"

// User is the authenticated user summary returned by the login and
// current-user endpoints.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// FileRecord describes one stored file as reported by the backend.
type FileRecord struct {
	ID int64 `json:"id"`

	// Filename is the server-assigned storage name.
	Filename string `json:"filename"`

	// OriginalFilename is the name the file had when it was uploaded.
	OriginalFilename string `json:"original_filename"`

	// FileType is the MIME type recorded at upload time.
	FileType string `json:"file_type"`

	// FileSize is the size in bytes, non-negative.
	FileSize int64 `json:"file_size"`

	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the user it belongs to.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
