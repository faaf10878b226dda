package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/poddiag/poddiag/pkg/discovery"
	"github.com/poddiag/poddiag/pkg/identity"
	"github.com/poddiag/poddiag/pkg/inventory"
	"github.com/poddiag/poddiag/pkg/plan"
	"github.com/poddiag/poddiag/pkg/runner"
	"github.com/poddiag/poddiag/pkg/serializer"
)

// planOutput is the serialized shape of a dry run: the resolved identities
// and the full command plan.
type planOutput struct {
	Identities []string           `json:"identities" yaml:"identities"`
	Commands   []plan.CommandSpec `json:"commands" yaml:"commands"`
}

func planCmd() *cli.Command {
	return &cli.Command{
		Name:                  "plan",
		EnableShellCompletion: true,
		Usage:                 "Resolve identities, discover entities, and print the command plan without executing it",
		Description: `Plan performs identity resolution and entity discovery (both require
podman access), then prints the diagnostic command plan that collect would
execute. Useful for auditing what a collection run will do.

Examples:

  poddiag plan
  poddiag plan --all --size --format json --output plan.json`,
		Flags: append(discoveryFlags(),
			&cli.StringFlag{
				Name:  "output",
				Usage: "File the plan is written to (default stdout)",
			},
			formatFlag,
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", cmd.String("format"))
			}

			run := runner.NewShell()
			opts := optionsFrom(cmd)
			disc := &discovery.Discoverer{Runner: run, Inventory: inventory.NewCLI(run)}

			out := planOutput{}
			for _, ident := range identity.Resolve(ctx, run, opts.AllUsers) {
				res := disc.Discover(ctx, ident, opts.All)
				out.Identities = append(out.Identities, ident.Name)
				out.Commands = append(out.Commands, plan.Build(ident, res.Entities, opts)...)
				out.Commands = append(out.Commands, res.Specs...)
			}

			sz := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if closer, ok := sz.(serializer.Closer); ok {
				defer closer.Close()
			}
			return sz.Serialize(ctx, out)
		},
	}
}
