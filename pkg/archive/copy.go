package archive

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// ConfigRoots are the engine configuration directories captured once per
// collection run, independent of identity iteration.
var ConfigRoots = []string{
	"/etc/cni",
	"/etc/containers",
}

// CopyTree recursively copies the directory tree at src into the store
// under dstSubpath, preserving relative layout. A missing source directory
// is not an error; hosts without the engine config simply contribute
// nothing. Individual unreadable files are skipped with a warning.
func (s *Store) CopyTree(src, dstSubpath string) error {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("config directory absent, skipping", "path", src)
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}

	dstRoot := filepath.Join(s.Root, filepath.FromSlash(dstSubpath))
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dstRoot, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(path, target); err != nil {
			slog.Warn("skipping uncopyable file", "path", path, "error", err)
		}
		return nil
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
