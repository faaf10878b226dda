// Package plan builds the diagnostic command plan: the catalog of podman
// status commands plus per-entity inspect commands, each with an output
// subpath, classification tags, and an optional deferred priority. The plan
// is pure data; execution happens elsewhere.
package plan
