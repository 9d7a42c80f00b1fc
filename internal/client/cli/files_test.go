package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adminfiles/cli/internal/client/api"
	"github.com/adminfiles/cli/internal/client/config"
	"github.com/adminfiles/cli/internal/client/models"
	"github.com/adminfiles/cli/internal/client/upload"
	"github.com/adminfiles/cli/internal/logging"
)

// fakeFiles implements fileService.
type fakeFiles struct {
	listResp []models.FileRecord
	listErr  error
	listN    int

	uploadRec *models.FileRecord
	uploadErr error
	uploadN   int

	deleteErr error
	deletedID int64
	deleteN   int

	download    *api.Download
	downloadErr error
}

func (f *fakeFiles) ListFiles(context.Context) ([]models.FileRecord, error) {
	f.listN++
	return f.listResp, f.listErr
}
func (f *fakeFiles) UploadFile(_ context.Context, filename string, content io.Reader) (*models.FileRecord, error) {
	f.uploadN++
	_, _ = io.ReadAll(content)
	return f.uploadRec, f.uploadErr
}
func (f *fakeFiles) DeleteFile(_ context.Context, id int64) error {
	f.deleteN++
	f.deletedID = id
	return f.deleteErr
}
func (f *fakeFiles) DownloadFile(context.Context, int64) (*api.Download, error) {
	return f.download, f.downloadErr
}

func testApp(files *fakeFiles) *App {
	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	return &App{
		config:  &config.Config{DownloadDir: "downloads"},
		session: &fakeSession{user: &models.User{ID: 1, Username: "alice"}},
		files:   files,
		flow:    upload.NewFlowForTest(upload.Config{Step: 50, TickInterval: time.Millisecond}, log),
		log:     log,
	}
}

func TestList_FetchReplace(t *testing.T) {
	ff := &fakeFiles{listResp: []models.FileRecord{
		{ID: 1, OriginalFilename: "a.txt", FileType: "text/plain", FileSize: 3, CreatedAt: time.Now()},
		{ID: 2, OriginalFilename: "b.pdf", FileType: "application/pdf", FileSize: 9, CreatedAt: time.Now()},
	}}
	a := testApp(ff)
	a.list = []models.FileRecord{{ID: 99, OriginalFilename: "stale.txt"}}

	_, restoreOut := stubPrintln(t)
	defer restoreOut()

	if err := a.List(context.Background()); err != nil {
		t.Fatalf("List err: %v", err)
	}
	if len(a.list) != 2 || a.list[0].ID != 1 {
		t.Fatalf("listing not replaced: %+v", a.list)
	}
}

func TestList_FailureKeepsNothingStale(t *testing.T) {
	ff := &fakeFiles{listErr: errors.New("Failed to fetch files")}
	a := testApp(ff)
	a.list = []models.FileRecord{{ID: 99}}

	_, restoreOut := stubPrintln(t)
	defer restoreOut()

	if err := a.List(context.Background()); err == nil {
		t.Fatalf("want error")
	}
	// Failed fetch leaves the previous listing visible.
	if len(a.list) != 1 || a.list[0].ID != 99 {
		t.Fatalf("failed fetch must not clobber the listing: %+v", a.list)
	}
}

func TestDelete_ConfirmedRemovalOnly(t *testing.T) {
	ff := &fakeFiles{}
	a := testApp(ff)
	a.list = []models.FileRecord{{ID: 1}, {ID: 2}, {ID: 3}}

	restore := stubInputs(t, []string{"2"}, nil)
	defer restore()
	_, restoreOut := stubPrintln(t)
	defer restoreOut()

	if err := a.Delete(context.Background()); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	if ff.deletedID != 2 {
		t.Fatalf("wrong id deleted: %d", ff.deletedID)
	}
	if len(a.list) != 2 || a.list[0].ID != 1 || a.list[1].ID != 3 {
		t.Fatalf("confirmed delete must drop exactly the deleted record: %+v", a.list)
	}
}

func TestDelete_BackendFailureLeavesListUntouched(t *testing.T) {
	ff := &fakeFiles{deleteErr: errors.New("Failed to delete file")}
	a := testApp(ff)
	before := []models.FileRecord{{ID: 1}, {ID: 2}}
	a.list = append([]models.FileRecord(nil), before...)

	restore := stubInputs(t, []string{"1"}, nil)
	defer restore()
	_, restoreOut := stubPrintln(t)
	defer restoreOut()

	if err := a.Delete(context.Background()); err == nil {
		t.Fatalf("want error")
	}
	if len(a.list) != len(before) || a.list[0].ID != 1 || a.list[1].ID != 2 {
		t.Fatalf("failed delete must leave the listing unchanged: %+v", a.list)
	}
}

func TestDelete_BadID_NoNetworkCall(t *testing.T) {
	ff := &fakeFiles{}
	a := testApp(ff)

	restore := stubInputs(t, []string{"not-a-number"}, nil)
	defer restore()
	_, restoreOut := stubPrintln(t)
	defer restoreOut()

	if err := a.Delete(context.Background()); err == nil {
		t.Fatalf("want parse error")
	}
	if ff.deleteN != 0 {
		t.Fatalf("bad id must not reach the backend")
	}
}

func TestUpload_SuccessRefreshesListing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o660); err != nil {
		t.Fatal(err)
	}

	ff := &fakeFiles{
		uploadRec: &models.FileRecord{ID: 5, OriginalFilename: "notes.txt"},
		listResp:  []models.FileRecord{{ID: 5, OriginalFilename: "notes.txt"}},
	}
	a := testApp(ff)

	restore := stubInputs(t, []string{path}, nil)
	defer restore()
	_, restoreOut := stubPrintln(t)
	defer restoreOut()

	if err := a.Upload(context.Background()); err != nil {
		t.Fatalf("Upload err: %v", err)
	}
	if ff.uploadN != 1 {
		t.Fatalf("expected one upload, got %d", ff.uploadN)
	}
	if ff.listN != 1 {
		t.Fatalf("successful upload must refresh the listing")
	}
	if len(a.list) != 1 || a.list[0].ID != 5 {
		t.Fatalf("listing not refreshed: %+v", a.list)
	}
}

func TestUpload_FailureKeepsSelectionForRetry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o660); err != nil {
		t.Fatal(err)
	}

	ff := &fakeFiles{uploadErr: errors.New("Upload failed")}
	a := testApp(ff)

	restore := stubInputs(t, []string{path}, nil)
	defer restore()
	_, restoreOut := stubPrintln(t)
	defer restoreOut()

	if err := a.Upload(context.Background()); err == nil {
		t.Fatalf("want error")
	}
	if a.flow.Selected() == nil {
		t.Fatalf("failed upload must keep the selection")
	}
	if ff.listN != 0 {
		t.Fatalf("failed upload must not refresh the listing")
	}

	// Second attempt retries the retained selection without prompting.
	ff.uploadErr = nil
	ff.uploadRec = &models.FileRecord{ID: 6, OriginalFilename: "notes.txt"}
	if err := a.Upload(context.Background()); err != nil {
		t.Fatalf("retry err: %v", err)
	}
	if ff.uploadN != 2 {
		t.Fatalf("expected retry to upload again, got %d", ff.uploadN)
	}
}

func TestDownload_WritesServerSuggestedName(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	ff := &fakeFiles{download: &api.Download{
		Filename:    "report.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-"),
	}}
	a := testApp(ff)

	restore := stubInputs(t, []string{"3"}, nil)
	defer restore()
	_, restoreOut := stubPrintln(t)
	defer restoreOut()

	if err := a.Download(context.Background()); err != nil {
		t.Fatalf("Download err: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "downloads", "report.pdf"))
	if err != nil {
		t.Fatalf("downloaded file missing: %v", err)
	}
	if string(content) != "%PDF-" {
		t.Fatalf("content mismatch: %q", content)
	}
}

func TestDownload_FallbackName(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	ff := &fakeFiles{download: &api.Download{Content: []byte("data")}}
	a := testApp(ff)

	restore := stubInputs(t, []string{"42"}, nil)
	defer restore()
	_, restoreOut := stubPrintln(t)
	defer restoreOut()

	if err := a.Download(context.Background()); err != nil {
		t.Fatalf("Download err: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "downloads", "file-42")); err != nil {
		t.Fatalf("fallback-named file missing: %v", err)
	}
}
