package export

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

// DefaultFileName is used when no export path is configured.
const DefaultFileName = "summary.txt"

// ErrEmptySummary is returned when there is nothing to export.
var ErrEmptySummary = errors.New("no summary to export")

// Copier places a summary somewhere the user can paste it from.
type Copier interface {
	Copy(summary string) error
}

// Save writes summary as a plain text file, creating directories as needed.
func Save(path, summary string) error {
	if summary == "" {
		return ErrEmptySummary
	}
	if path == "" {
		path = DefaultFileName
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(summary+"\n"), 0o644)
}

// Clipboard copies summaries to the system clipboard.
type Clipboard struct{}

// Copy writes summary to the system clipboard.
func (Clipboard) Copy(summary string) error {
	if summary == "" {
		return ErrEmptySummary
	}
	if clipboard.Unsupported {
		return errors.New("clipboard unsupported on this system")
	}
	return clipboard.WriteAll(summary)
}
