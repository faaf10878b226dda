// Package cli wires the poddiag commands: collect (full snapshot run),
// plan (dry run printing the command plan), and version.
package cli
