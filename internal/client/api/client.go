package api

import (
	"context"
	"io"

	"github.com/adminfiles/cli/internal/client/models"
)

// Client is the API contract of the AdminFiles backend. Implementations
// attach the persisted bearer token to every request and normalize failures
// to *Error values carrying a single user-facing message.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)

	ListFiles(ctx context.Context) ([]models.FileRecord, error)
	UploadFile(ctx context.Context, filename string, content io.Reader) (*models.FileRecord, error)
	DeleteFile(ctx context.Context, id int64) error
	DownloadFile(ctx context.Context, id int64) (*Download, error)
}

// Download is the result of fetching a file's content. Filename is the name
// suggested by the server's Content-Disposition header, possibly empty.
type Download struct {
	Filename    string
	ContentType string
	Content     []byte
}
