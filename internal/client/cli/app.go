package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"

	"github.com/adminfiles/cli/internal/client/api"
	"github.com/adminfiles/cli/internal/client/config"
	"github.com/adminfiles/cli/internal/client/models"
	"github.com/adminfiles/cli/internal/client/repositories/tokens"
	"github.com/adminfiles/cli/internal/client/session"
	"github.com/adminfiles/cli/internal/client/upload"
	"github.com/adminfiles/cli/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionService is the slice of the session store the CLI depends on.
// *session.Store satisfies it; tests provide fakes.
type sessionService interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Logout()
	User() *models.User
	Loading() bool
}

// fileService is the file-operations slice of the API client.
type fileService interface {
	ListFiles(ctx context.Context) ([]models.FileRecord, error)
	UploadFile(ctx context.Context, filename string, content io.Reader) (*models.FileRecord, error)
	DeleteFile(ctx context.Context, id int64) error
	DownloadFile(ctx context.Context, id int64) (*api.Download, error)
}

type App struct {
	config  *config.Config
	session sessionService
	files   fileService
	flow    *upload.Flow
	reader  *bufio.Reader
	log     logging.Logger
	db      *sql.DB

	// list is the currently displayed file listing: replaced wholesale by
	// List, filtered locally only after a confirmed delete.
	list []models.FileRecord
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	store, db, err := tokens.InitDatabase(ctx, c.DatabaseFile)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := api.New(c.APIBaseURL, store, log)
	sess := session.New(apiClient, store, log)

	// Global unauthorized handling: whichever request hit the 401, the
	// transport has cleared the token; drop the user and tell the operator.
	apiClient.SetUnauthorizedHook(func() {
		sess.HandleUnauthorized()
		printlnFn("Session expired, please log in again.")
	})

	return &App{
		config:  c,
		session: sess,
		files:   apiClient,
		flow:    upload.NewFlow(upload.Config{}, log),
		reader:  bufio.NewReader(os.Stdin),
		log:     log,
		db:      db,
	}, nil
}

// Run resolves the persisted session and enters the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Initialize(ctx)
	if u := a.session.User(); u != nil {
		printlnFn("Welcome back,", u.Username)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) getStatus() string {
	if u := a.session.User(); u != nil {
		return "(" + u.Username + ")"
	}
	return ""
}

// authDecision gates commands that need a logged-in user.
func (a *App) authDecision() session.Decision {
	return session.RequiresAuth(a.session)
}

// anonDecision gates login/register, which only make sense logged out.
func (a *App) anonDecision() session.Decision {
	return session.RequiresAnonymous(a.session)
}
