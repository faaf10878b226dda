// Package redact masks credential-shaped values in collected inspect
// output. It is a best-effort heuristic over the quoted key=value rendering
// of structured metadata, not a general secret scanner.
package redact
