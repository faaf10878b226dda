package runner

import (
	"context"
	"strings"
	"testing"
)

func TestShell_Run(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	run := NewShell()
	res := run.Run(context.Background(), "echo hello")

	if res.Status != 0 {
		t.Fatalf("expected status 0, got %d", res.Status)
	}
	if !res.OK() {
		t.Error("expected OK result")
	}
	if strings.TrimSpace(res.Output) != "hello" {
		t.Errorf("unexpected output %q", res.Output)
	}
}

func TestShell_Run_NonzeroStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	run := NewShell()
	res := run.Run(context.Background(), "exit 3")

	if res.Status != 3 {
		t.Errorf("expected status 3, got %d", res.Status)
	}
	if res.OK() {
		t.Error("expected failed result")
	}
}

func TestShell_Run_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := NewShell()
	res := run.Run(ctx, "echo hello")
	if res.OK() {
		t.Error("expected failure under canceled context")
	}
}

func TestShell_RateLimitDisabledForZero(t *testing.T) {
	run := NewShell(WithRateLimit(0))
	if run.limiter != nil {
		t.Error("zero rate should disable the limiter")
	}
}
