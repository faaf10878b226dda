package redact

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
)

// sensitiveEnv matches KEY=VALUE" fragments in the quoted-array rendering of
// inspect metadata (env lists and similar) where the key looks like a
// credential. The value capture stops at the closing quote, so re-applying
// the substitution leaves already-masked text unchanged.
var sensitiveEnv = regexp.MustCompile(`(?P<var>(?i:pass|key|secret).*?)=(?P<value>.*?)"`)

const masked = `${var}=********"`

// InspectGlob selects the archived outputs that receive the credential
// masking pass: anything produced by an inspect command.
const InspectGlob = "*inspect*"

// MaskSensitive applies the credential masking substitution to one text
// blob and returns the rewritten text. The pass is single, non-recursive,
// and idempotent; text without credential-shaped values is returned as is.
func MaskSensitive(text string) string {
	return sensitiveEnv.ReplaceAllString(text, masked)
}

// Engine rewrites archived text files matching a name glob using a regular
// expression with named capture groups.
type Engine struct {
	Root string
}

// Apply walks the engine root and rewrites every file whose base name
// matches glob, replacing pattern matches with the replacement template.
// Files without matches are left untouched. Unreadable files are skipped
// with a warning; the walk itself failing is the only error condition.
func (e *Engine) Apply(glob string, pattern *regexp.Regexp, replacement string) error {
	return filepath.WalkDir(e.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		match, err := filepath.Match(glob, d.Name())
		if err != nil {
			return fmt.Errorf("invalid glob %q: %w", glob, err)
		}
		if !match {
			return nil
		}

		b, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping unreadable file during redaction", "path", path, "error", err)
			return nil
		}
		rewritten := pattern.ReplaceAll(b, []byte(replacement))
		if string(rewritten) == string(b) {
			return nil
		}
		if err := os.WriteFile(path, rewritten, 0o600); err != nil {
			return fmt.Errorf("failed to rewrite %q: %w", path, err)
		}
		slog.Debug("masked sensitive values", "path", path)
		return nil
	})
}

// Run applies the credential masking pass to all inspect outputs under
// root.
func Run(root string) error {
	eng := &Engine{Root: root}
	return eng.Apply(InspectGlob, sensitiveEnv, masked)
}
