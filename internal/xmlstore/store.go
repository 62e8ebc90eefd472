package xmlstore

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"rosterctl/internal/errors"
)

// ConfirmFunc asks the user a destructive yes/no question. Returning false
// aborts the write without touching the target.
type ConfirmFunc func(question string) bool

// ConfirmAll is a ConfirmFunc that accepts every question; use it in
// non-interactive contexts that have collected consent up front.
func ConfirmAll(string) bool { return true }

// Store reads and writes the XML database files.
type Store struct {
	confirm ConfirmFunc
	stdout  io.Writer
}

// NewStore creates a store using the given confirmation prompt.
func NewStore(confirm ConfirmFunc) *Store {
	return &Store{confirm: confirm, stdout: os.Stdout}
}

// writeDocument writes an already-encoded document to path, asking for
// confirmation before overwriting an existing file. It never leaves
// partial output behind: the content arrives fully encoded.
func (s *Store) writeDocument(path string, content []byte) error {
	if path == "-" {
		if _, err := s.stdout.Write(content); err != nil {
			return errors.FileSystemError("writing to stdout", err)
		}
		return nil
	}

	if _, err := os.Stat(path); err == nil {
		if !s.confirm(fmt.Sprintf("%s exists already. Overwrite?", path)) {
			slog.Info("Aborted on user request", slog.String("path", path))
			return fmt.Errorf("writing %s: %w", path, errors.ErrUserAbort)
		}
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.FileSystemError("writing XML", err)
	}
	slog.Info("XML written", slog.String("path", path), slog.Int("bytes", len(content)))
	return nil
}

func (s *Store) readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FileSystemError("reading XML", err)
	}
	slog.Debug("Read XML", slog.String("path", path), slog.Int("bytes", len(data)))
	return data, nil
}
