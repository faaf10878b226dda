package archive

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/poddiag/poddiag/pkg/errors"
)

// Store files command output beneath a collection root, one file per
// command, grouped by the subpath the plan assigned.
type Store struct {
	Root string
}

// NewStore creates the collection root and returns a store over it.
func NewStore(root string) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "output root cannot be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeArchive, "failed to create output root", err)
	}
	return &Store{Root: root}, nil
}

// Write stores one command's output under subpath, named after the command
// text.
func (s *Store) Write(subpath, command, output string) error {
	dir := filepath.Join(s.Root, filepath.FromSlash(subpath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeArchive, "failed to create output dir", err)
	}
	path := filepath.Join(dir, FileName(command))
	if err := os.WriteFile(path, []byte(output), 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeArchive, "failed to write command output", err)
	}
	return nil
}

// WriteFile stores an arbitrary blob under subpath with an explicit name.
func (s *Store) WriteFile(subpath, name string, data []byte) error {
	dir := filepath.Join(s.Root, filepath.FromSlash(subpath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeArchive, "failed to create output dir", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeArchive, "failed to write file", err)
	}
	return nil
}

// FileName converts command text into the archived file name: spaces become
// underscores and path separators become dots, matching the conventional
// diagnostic-archive naming so consumers can locate outputs by command.
func FileName(command string) string {
	name := strings.ReplaceAll(command, " ", "_")
	name = strings.ReplaceAll(name, "/", ".")
	return name
}
