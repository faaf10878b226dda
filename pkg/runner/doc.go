// Package runner executes host commands for discovery probes and plan
// execution. It exposes a minimal Runner interface returning an exit status
// and captured output, so callers can inject scripted fakes in tests.
package runner
