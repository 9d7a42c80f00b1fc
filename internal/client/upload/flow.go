// Package upload drives a single file-upload attempt: one pending selection,
// the real request, and a cosmetic progress indicator animated alongside it.
//
// The displayed percentage advances in fixed increments on a fixed timer and
// has nothing to do with bytes on the wire. The join rule is that the real
// request always wins: its resolution forces the display to 100 or abandons
// the animation, never the other way around.
package upload

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adminfiles/cli/internal/client/models"
	"github.com/adminfiles/cli/internal/logging"
)

// State enumerates the lifecycle of an upload attempt.
type State int

const (
	StateIdle State = iota
	StateSelected
	StateUploading
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "selected"
	case StateUploading:
		return "uploading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrNoFileSelected   = errors.New("no file selected")
	ErrUploadInProgress = errors.New("upload already in progress")
)

// File is one selected file. Open is called once per upload attempt, so a
// failed attempt can be retried without reselecting.
type File struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// FromPath builds a File backed by the local filesystem.
func FromPath(path string) (File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	if fi.IsDir() {
		return File{}, errors.New("is a directory")
	}
	return File{
		Name: filepath.Base(path),
		Size: fi.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// Uploader performs the real upload request.
type Uploader func(ctx context.Context, filename string, content io.Reader) (*models.FileRecord, error)

// Config tunes the cosmetic animation. Zero values fall back to the
// defaults: +10 per 300 ms tick, 500 ms linger on success.
type Config struct {
	Step          int
	TickInterval  time.Duration
	SuccessLinger time.Duration
}

func (c Config) withDefaults() Config {
	if c.Step <= 0 {
		c.Step = 10
	}
	if c.TickInterval <= 0 {
		c.TickInterval = 300 * time.Millisecond
	}
	if c.SuccessLinger < 0 {
		c.SuccessLinger = 0
	}
	return c
}

// DefaultLinger is the pause after a successful upload so the user sees the
// bar reach 100 before the draft disappears.
const DefaultLinger = 500 * time.Millisecond

// Flow is the upload state machine. One Flow manages one draft at a time;
// the mutex covers the draft because the animation ticker runs on its own
// goroutine.
type Flow struct {
	cfg Config
	log logging.Logger

	mu       sync.Mutex
	state    State
	file     *File
	progress int
	errMsg   string
}

func NewFlow(cfg Config, log logging.Logger) *Flow {
	cfg = cfg.withDefaults()
	if cfg.SuccessLinger == 0 {
		cfg.SuccessLinger = DefaultLinger
	}
	return &Flow{cfg: cfg, log: log}
}

// NewFlowForTest builds a Flow with a fast ticker and no linger.
func NewFlowForTest(cfg Config, log logging.Logger) *Flow {
	cfg = cfg.withDefaults()
	return &Flow{cfg: cfg, log: log}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Progress() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.progress
}

// Err returns the surfaced error message of the last failed attempt.
func (f *Flow) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Selected returns the pending file, or nil.
func (f *Flow) Selected() *File {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file
}

// Select takes exactly one file per attempt. Selecting over an existing
// draft replaces it and clears any previous error; selecting during an
// in-flight upload is rejected.
func (f *Flow) Select(file File) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateUploading {
		return ErrUploadInProgress
	}

	f.file = &file
	f.state = StateSelected
	f.progress = 0
	f.errMsg = ""
	return nil
}

// ClearSelection drops the draft before it was confirmed. No side effects.
func (f *Flow) ClearSelection() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateUploading {
		return ErrUploadInProgress
	}

	f.file = nil
	f.state = StateIdle
	f.progress = 0
	f.errMsg = ""
	return nil
}

// Upload confirms the draft: it starts the real request and, concurrently,
// the cosmetic animation. render (optional) is called with each displayed
// percentage.
//
// On success the display is forced to 100, held for the configured linger,
// and the draft is discarded; the created record is returned for the caller
// to refresh its listing. On failure the animation stops, the error message
// is retained for display, and the selected file survives for a retry.
//
// There is no cancelling the request once it is in flight; ctx is passed
// through to the uploader and nothing here cancels it.
func (f *Flow) Upload(ctx context.Context, up Uploader, render func(progress int)) (*models.FileRecord, error) {
	f.mu.Lock()
	if f.state == StateUploading {
		f.mu.Unlock()
		return nil, ErrUploadInProgress
	}
	if f.file == nil {
		f.mu.Unlock()
		return nil, ErrNoFileSelected
	}
	file := *f.file
	f.state = StateUploading
	f.progress = 0
	f.errMsg = ""
	f.mu.Unlock()

	if render != nil {
		render(0)
	}

	content, err := file.Open()
	if err != nil {
		f.fail(err)
		return nil, err
	}
	defer content.Close()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.animate(stop, render)
	}()

	rec, err := up(ctx, file.Name, content)

	close(stop)
	wg.Wait()

	if err != nil {
		f.log.Warn(ctx, "upload failed", "file", file.Name, "error", err)
		f.fail(err)
		return nil, err
	}

	f.mu.Lock()
	f.progress = 100
	f.state = StateSucceeded
	f.mu.Unlock()
	if render != nil {
		render(100)
	}

	// Let the user see completion before the draft goes away.
	select {
	case <-time.After(f.cfg.SuccessLinger):
	case <-ctx.Done():
	}

	f.mu.Lock()
	f.file = nil
	f.progress = 0
	f.state = StateIdle
	f.mu.Unlock()

	return rec, nil
}

// animate advances the displayed percentage on each tick until told to stop
// or the display hits 100. The check against the current state makes the
// resolution of the real request authoritative: once Upload has moved on,
// a late tick changes nothing.
func (f *Flow) animate(stop <-chan struct{}, render func(progress int)) {
	ticker := time.NewTicker(f.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			f.mu.Lock()
			if f.state != StateUploading {
				f.mu.Unlock()
				return
			}
			f.progress += f.cfg.Step
			if f.progress > 100 {
				f.progress = 100
			}
			p := f.progress
			f.mu.Unlock()

			if render != nil {
				render(p)
			}
			if p >= 100 {
				return
			}
		}
	}
}

// fail records a failed attempt, keeping the selection for retry.
func (f *Flow) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateFailed
	f.errMsg = err.Error()
	f.progress = 0
}
