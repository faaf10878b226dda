// Package collect orchestrates a one-shot diagnostic collection run over a
// podman host: resolve the identities to probe, discover each identity's
// runtime entities, build and execute the command plan into an archive
// directory, capture engine configuration and service state, and finish
// with the credential redaction pass.
package collect
