package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adminfiles/cli/internal/client/models"
	"github.com/adminfiles/cli/internal/client/upload"
	"github.com/adminfiles/cli/internal/filex"
)

// List replaces the displayed listing with a fresh fetch and prints it.
func (a *App) List(ctx context.Context) error {
	files, err := a.files.ListFiles(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	a.list = files
	a.printList()
	return nil
}

func (a *App) printList() {
	if len(a.list) == 0 {
		printlnFn("No files.")
		return
	}
	for _, f := range a.list {
		printlnFn(formatRecord(f))
	}
}

func formatRecord(f models.FileRecord) string {
	return fmt.Sprintf("%6d  %-40s  %10d bytes  %-24s  %s",
		f.ID, f.OriginalFilename, f.FileSize, f.FileType,
		f.CreatedAt.Format("2006-01-02 15:04:05"))
}

// Upload prompts for a local path and drives one upload attempt through the
// flow: cosmetic progress while the request is in flight, forced 100 on
// success, and a listing refresh once the draft is gone. On failure the
// selection is kept, so running upload again retries the same file.
func (a *App) Upload(ctx context.Context) error {
	if a.flow.Selected() == nil {
		path, err := getSimpleText(a.reader, "Enter file path", os.Stdout)
		if err != nil {
			return err
		}

		file, err := upload.FromPath(path)
		if err != nil {
			printlnFn("Cannot read file:", err.Error())
			return err
		}
		if err := a.flow.Select(file); err != nil {
			printlnFn(err.Error())
			return err
		}
	} else {
		printlnFn("Retrying", a.flow.Selected().Name)
	}

	rec, err := a.flow.Upload(ctx, a.files.UploadFile, func(progress int) {
		fmt.Printf("\rUploading: %d%%", progress)
	})
	fmt.Println()
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Uploaded", rec.OriginalFilename)
	return a.List(ctx)
}

// Delete removes a file by id. The displayed listing is filtered only after
// the backend confirms; on failure it is left exactly as it was.
func (a *App) Delete(ctx context.Context) error {
	id, err := a.promptFileID("Enter file id to delete")
	if err != nil {
		return err
	}

	if err := a.files.DeleteFile(ctx, id); err != nil {
		printlnFn(err.Error())
		return err
	}

	kept := a.list[:0]
	for _, f := range a.list {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	a.list = kept

	printlnFn("Deleted.")
	return nil
}

// Download fetches a file's content and writes it under the configured
// download directory, using the server-suggested filename when present.
func (a *App) Download(ctx context.Context) error {
	id, err := a.promptFileID("Enter file id to download")
	if err != nil {
		return err
	}

	d, err := a.files.DownloadFile(ctx, id)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	dir, err := filex.EnsureSubDir(a.config.DownloadDir)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	name := filex.SafeBaseName(d.Filename, fmt.Sprintf("file-%d", id))
	dest := filepath.Join(dir, name)

	if err := os.WriteFile(dest, d.Content, 0o660); err != nil {
		printlnFn("Cannot write file:", err.Error())
		return err
	}

	printlnFn("Saved to", dest)
	return nil
}

func (a *App) promptFileID(prompt string) (int64, error) {
	text, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		printlnFn("Not a valid file id:", text)
		return 0, err
	}
	return id, nil
}
