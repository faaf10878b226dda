package runner

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"

	"golang.org/x/time/rate"
)

// Result holds the outcome of one executed command: its exit status and the
// combined stdout/stderr text. A Status of -1 means the command could not be
// started at all.
type Result struct {
	Status int
	Output string
}

// OK reports whether the command ran and exited zero.
func (r Result) OK() bool {
	return r.Status == 0
}

// Runner executes a single shell command and blocks until it completes.
// Implementations do not retry and do not interpret the output.
type Runner interface {
	Run(ctx context.Context, command string) Result
}

// Shell runs commands through "sh -c". An optional rate limiter throttles
// how fast consecutive commands are issued against the host.
type Shell struct {
	limiter *rate.Limiter
}

// Option configures a Shell runner.
type Option func(*Shell)

// WithRateLimit caps command starts at n per second. Zero or negative n
// disables throttling.
func WithRateLimit(n float64) Option {
	return func(s *Shell) {
		if n > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// NewShell creates a shell-backed Runner.
func NewShell(opts ...Option) *Shell {
	s := &Shell{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the command via "sh -c" and returns its exit status and
// combined output. Context cancellation interrupts the command; the partial
// output captured up to that point is still returned.
func (s *Shell) Run(ctx context.Context, command string) Result {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return Result{Status: -1}
		}
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{Status: exitErr.ExitCode(), Output: string(out)}
		}
		slog.Debug("command failed to start", "command", command, "error", err)
		return Result{Status: -1, Output: string(out)}
	}
	return Result{Status: 0, Output: string(out)}
}
