package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/poddiag/poddiag/pkg/archive"
	"github.com/poddiag/poddiag/pkg/collect"
	"github.com/poddiag/poddiag/pkg/inventory"
	"github.com/poddiag/poddiag/pkg/plan"
	"github.com/poddiag/poddiag/pkg/runner"
)

func discoveryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "all",
			Usage:   "Include terminated containers in discovery",
			Sources: cli.EnvVars("PODDIAG_ALL"),
		},
		&cli.BoolFlag{
			Name:    "logs",
			Usage:   "Collect stdout/stderr logs for discovered containers (deferred, can be large)",
			Sources: cli.EnvVars("PODDIAG_LOGS"),
		},
		&cli.BoolFlag{
			Name:    "size",
			Usage:   "Collect the size-inclusive process listing (deferred, expensive)",
			Sources: cli.EnvVars("PODDIAG_SIZE"),
		},
		&cli.BoolFlag{
			Name:    "all-users",
			Usage:   "Probe non-root users with container activity in addition to root",
			Sources: cli.EnvVars("PODDIAG_ALL_USERS"),
		},
	}
}

func optionsFrom(cmd *cli.Command) plan.Options {
	return plan.Options{
		All:      cmd.Bool("all"),
		Logs:     cmd.Bool("logs"),
		Size:     cmd.Bool("size"),
		AllUsers: cmd.Bool("all-users"),
	}
}

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "collect",
		EnableShellCompletion: true,
		Usage:                 "Collect a diagnostic snapshot into an output directory",
		Description: `Collect runs the full pipeline: resolve user identities, discover the
runtime entities visible to each, execute the diagnostic command plan into
the output directory, capture engine configuration and service state, and
mask credential-shaped values in inspect output.

Examples:

  poddiag collect --output ./poddiag-out
  poddiag collect --all --logs --all-users --output /var/tmp/poddiag
  poddiag collect --output ./out --bundle ./poddiag.tar.gz`,
		Flags: append(discoveryFlags(),
			&cli.StringFlag{
				Name:    "output",
				Usage:   "Directory the snapshot is written into",
				Sources: cli.EnvVars("PODDIAG_OUTPUT"),
				Value:   defaultOutputDir(),
			},
			&cli.StringFlag{
				Name:  "bundle",
				Usage: "Also write a tar.gz bundle of the finished snapshot to this path",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Parallel executions for default-priority commands",
				Value: 4,
			},
			&cli.Float64Flag{
				Name:  "rate-limit",
				Usage: "Maximum command starts per second (0 disables throttling)",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, err := archive.NewStore(cmd.String("output"))
			if err != nil {
				return err
			}

			run := runner.NewShell(runner.WithRateLimit(cmd.Float64("rate-limit")))
			c := &collect.Collector{
				Version:     version,
				Runner:      run,
				Inventory:   inventory.NewCLI(run),
				Store:       store,
				Options:     optionsFrom(cmd),
				Concurrency: int(cmd.Int("concurrency")),
				BundlePath:  cmd.String("bundle"),
			}
			return c.Run(ctx)
		},
	}
}

func defaultOutputDir() string {
	return fmt.Sprintf("poddiag-%s", time.Now().UTC().Format("20060102-150405"))
}
