package inventory

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poddiag/poddiag/pkg/discovery"
	"github.com/poddiag/poddiag/pkg/plan"
	"github.com/poddiag/poddiag/pkg/runner"
)

// CLI is a privileged inventory service backed by podman listing commands.
// Results are cached for the lifetime of the value, so repeated lookups
// within one collection run do not re-list. It is authoritative for the
// privileged identity only.
type CLI struct {
	runner runner.Runner

	containers map[bool][]plan.Container
	images     []plan.Image
	imagesDone bool
	volumes    []plan.Volume
	volsDone   bool
}

// NewCLI creates a CLI-backed inventory service.
func NewCLI(run runner.Runner) *CLI {
	return &CLI{
		runner:     run,
		containers: make(map[bool][]plan.Container),
	}
}

// Containers lists root's containers, cached per includeAll flavor.
func (c *CLI) Containers(ctx context.Context, includeAll bool) []plan.Container {
	if cached, ok := c.containers[includeAll]; ok {
		return cached
	}

	command := "podman ps"
	if includeAll {
		command = "podman ps -a"
	}
	res := c.runner.Run(ctx, command)
	if !res.OK() {
		slog.Debug("root container listing failed", "status", res.Status)
		c.containers[includeAll] = nil
		return nil
	}

	var containers []plan.Container
	for _, row := range discovery.TableRows(res.Output) {
		id, err := discovery.FirstField(row)
		if err != nil {
			continue
		}
		containers = append(containers, plan.Container{ID: id})
	}
	c.containers[includeAll] = containers
	return containers
}

// Images lists root's images with untruncated ids, cached.
func (c *CLI) Images(ctx context.Context) []plan.Image {
	if c.imagesDone {
		return c.images
	}
	c.imagesDone = true

	res := c.runner.Run(ctx, "podman images --no-trunc")
	if !res.OK() {
		slog.Debug("root image listing failed", "status", res.Status)
		return nil
	}

	for _, row := range discovery.TableRows(res.Output) {
		img, err := discovery.ParseImageRow(row)
		if err != nil {
			slog.Debug("skipping malformed image row", "error", err)
			continue
		}
		c.images = append(c.images, img)
	}
	return c.images
}

// Volumes lists root's volume names, cached.
func (c *CLI) Volumes(ctx context.Context) []plan.Volume {
	if c.volsDone {
		return c.volumes
	}
	c.volsDone = true

	res := c.runner.Run(ctx, `podman volume ls --format "{{.Name}}"`)
	if !res.OK() {
		slog.Debug("root volume listing failed", "status", res.Status)
		return nil
	}

	for _, line := range strings.Split(res.Output, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		c.volumes = append(c.volumes, plan.Volume{Name: name})
	}
	return c.volumes
}
