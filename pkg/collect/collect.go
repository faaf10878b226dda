package collect

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/poddiag/poddiag/pkg/archive"
	"github.com/poddiag/poddiag/pkg/discovery"
	"github.com/poddiag/poddiag/pkg/identity"
	"github.com/poddiag/poddiag/pkg/manifest"
	"github.com/poddiag/poddiag/pkg/plan"
	"github.com/poddiag/poddiag/pkg/redact"
	"github.com/poddiag/poddiag/pkg/runner"
)

const defaultConcurrency = 4

// Collector orchestrates one collection run: identity resolution, entity
// discovery, plan construction, plan execution into the archive, engine
// service capture, config-dir capture, and the redaction pass.
type Collector struct {
	// Version is the tool version recorded in the run manifest.
	Version string

	// Runner executes discovery probes and planned commands. Required.
	Runner runner.Runner

	// Inventory is the privileged inventory service. If nil, the privileged
	// identity is listed directly like any other.
	Inventory discovery.Inventory

	// Store is the archive the run writes into. Required.
	Store *archive.Store

	// Options is the effective collection configuration.
	Options plan.Options

	// Concurrency bounds parallel execution of default-priority commands.
	// Zero means a small default.
	Concurrency int

	// BundlePath, when non-empty, is where the compressed bundle of the
	// finished run is written.
	BundlePath string
}

// Run executes the full pipeline. Discovery and planning failures are
// absorbed into empty results per the probe-failure contract; only archive
// I/O and redaction can fail the run.
func (c *Collector) Run(ctx context.Context) error {
	start := time.Now()
	defer func() {
		collectionDuration.Observe(time.Since(start).Seconds())
	}()

	if err := c.run(ctx); err != nil {
		collectionTotal.WithLabelValues("error").Inc()
		return err
	}
	collectionTotal.WithLabelValues("success").Inc()
	return nil
}

func (c *Collector) run(ctx context.Context) error {
	man := manifest.New(c.Version, c.Options)

	idents := identity.Resolve(ctx, c.Runner, c.Options.AllUsers)
	slog.Info("resolved identities", "count", len(idents))

	disc := &discovery.Discoverer{Runner: c.Runner, Inventory: c.Inventory}

	for _, ident := range idents {
		res := disc.Discover(ctx, ident, c.Options.All)
		specs := plan.Build(ident, res.Entities, c.Options)
		specs = append(specs, res.Specs...)

		man.AddIdentity(manifest.IdentitySummary{
			Name:       ident.Name,
			Privileged: ident.Privileged,
			Containers: len(res.Entities.Containers),
			Images:     len(res.Entities.Images),
			Volumes:    len(res.Entities.Volumes),
			Networks:   len(res.Entities.Networks),
			Commands:   len(specs),
		})

		if err := c.execute(ctx, specs, man); err != nil {
			return err
		}
	}

	for _, root := range archive.ConfigRoots {
		sub := path.Join("config", strings.TrimPrefix(root, "/"))
		if err := c.Store.CopyTree(root, sub); err != nil {
			slog.Warn("config capture failed", "path", root, "error", err)
		}
	}

	c.collectUnitInfo(ctx)

	data, err := man.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := c.Store.WriteFile(".", manifest.FileName, data); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	if err := redact.Run(c.Store.Root); err != nil {
		return fmt.Errorf("redaction pass failed: %w", err)
	}

	if c.BundlePath != "" {
		if err := c.Store.Bundle(c.BundlePath); err != nil {
			return err
		}
		slog.Info("bundle written", "path", c.BundlePath)
	}

	return nil
}

// execute runs one identity's command plan. Default-priority specs run
// through a bounded errgroup; deferred specs run sequentially afterwards so
// expensive operations never hold up cheap collection. Command failures are
// archived like successes; only writing the archive can error.
func (c *Collector) execute(ctx context.Context, specs []plan.CommandSpec, man *manifest.Manifest) error {
	var deferred []plan.CommandSpec

	limit := c.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, spec := range specs {
		if spec.Deferred() {
			deferred = append(deferred, spec)
			continue
		}
		man.Tag(path.Join(spec.Subpath, archive.FileName(spec.Command)), spec.Tags)
		g.Go(func() error {
			return c.runSpec(gctx, spec)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, spec := range deferred {
		man.Tag(path.Join(spec.Subpath, archive.FileName(spec.Command)), spec.Tags)
		if err := c.runSpec(ctx, spec); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) runSpec(ctx context.Context, spec plan.CommandSpec) error {
	res := c.Runner.Run(ctx, spec.Command)
	if res.OK() {
		commandExecutions.WithLabelValues("ok").Inc()
	} else {
		commandExecutions.WithLabelValues("failed").Inc()
		slog.Debug("planned command failed", "command", spec.Command, "status", res.Status)
	}
	return c.Store.Write(spec.Subpath, spec.Command, res.Output)
}
