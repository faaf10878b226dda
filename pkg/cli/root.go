package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/poddiag/poddiag/pkg/logging"
	"github.com/poddiag/poddiag/pkg/serializer"
)

const name = "poddiag"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var formatFlag = &cli.StringFlag{
	Name:  "format",
	Usage: fmt.Sprintf("Output format (supported values: %s)", serializer.SupportedFormats()),
	Value: string(serializer.FormatYAML),
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: "Diagnostic collector for podman hosts",
		Description: fmt.Sprintf(`poddiag - podman diagnostics collector

Version: %s
Commit:  %s
Built:   %s

Captures a one-shot diagnostic snapshot of a podman host: engine status
commands, per-entity inspections for containers, images, volumes, and
networks, engine configuration directories, and service state. Output that
looks like credentials is masked before the snapshot is finalized.`,
			version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("PODDIAG_LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting", "name", name, "version", version, "commit", commit)
			return ctx, nil
		},
		Commands: []*cli.Command{
			collectCmd(),
			planCmd(),
			versionCmd(),
		},
	}
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("%s %s (commit %s, built %s)\n", name, version, commit, date)
			return nil
		},
	}
}

// Execute runs the CLI. It is called by main and handles SIGINT/SIGTERM by
// canceling the command context.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
