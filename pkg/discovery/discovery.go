package discovery

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/poddiag/poddiag/pkg/identity"
	"github.com/poddiag/poddiag/pkg/plan"
	"github.com/poddiag/poddiag/pkg/runner"
)

// Inventory is the privileged inventory consulted instead of re-listing
// root's entities. It is authoritative for the privileged identity only.
type Inventory interface {
	Containers(ctx context.Context, includeAll bool) []plan.Container
	Images(ctx context.Context) []plan.Image
	Volumes(ctx context.Context) []plan.Volume
}

// Discoverer enumerates runtime entities for identity contexts.
type Discoverer struct {
	Runner    runner.Runner
	Inventory Inventory
}

// Result is the outcome of discovering one identity: the entity sets plus
// the command specs produced inline during discovery (the network listing
// and per-network inspects).
type Result struct {
	Entities plan.Entities
	Specs    []plan.CommandSpec
}

// Discover enumerates containers, images, volumes, and networks for one
// identity. The privileged identity's containers/images/volumes come from
// the inventory; non-privileged identities are listed independently because
// the inventory reflects root's view only. Networks are listed directly for
// every identity. A failed listing yields an empty set for that kind and
// discovery continues; nothing here is fatal.
func (d *Discoverer) Discover(ctx context.Context, ident identity.Context, includeAll bool) Result {
	var res Result

	if ident.Privileged && d.Inventory != nil {
		res.Entities.Containers = d.Inventory.Containers(ctx, includeAll)
		res.Entities.Images = d.Inventory.Images(ctx)
		res.Entities.Volumes = d.Inventory.Volumes(ctx)
	} else {
		res.Entities.Containers = d.containers(ctx, ident, includeAll)
		res.Entities.Images = d.images(ctx, ident)
		res.Entities.Volumes = d.volumes(ctx, ident)
	}

	res.Entities.Networks, res.Specs = d.networks(ctx, ident)

	slog.Debug("discovery complete",
		"user", ident.Name,
		"containers", len(res.Entities.Containers),
		"images", len(res.Entities.Images),
		"volumes", len(res.Entities.Volumes),
		"networks", len(res.Entities.Networks))
	return res
}

func (d *Discoverer) containers(ctx context.Context, ident identity.Context, includeAll bool) []plan.Container {
	command := "podman ps"
	if includeAll {
		command = "podman ps -a"
	}
	out := d.Runner.Run(ctx, ident.Command(command))
	if !out.OK() {
		slog.Debug("container listing failed", "user", ident.Name, "status", out.Status)
		return nil
	}

	var containers []plan.Container
	for _, row := range TableRows(out.Output) {
		id, err := FirstField(row)
		if err != nil {
			continue
		}
		containers = append(containers, plan.Container{ID: id})
	}
	return containers
}

func (d *Discoverer) images(ctx context.Context, ident identity.Context) []plan.Image {
	out := d.Runner.Run(ctx, ident.Command("podman images --no-trunc"))
	if !out.OK() {
		slog.Debug("image listing failed", "user", ident.Name, "status", out.Status)
		return nil
	}

	var images []plan.Image
	for _, row := range TableRows(out.Output) {
		img, err := ParseImageRow(row)
		if err != nil {
			slog.Debug("skipping malformed image row", "user", ident.Name, "error", err)
			continue
		}
		images = append(images, img)
	}
	return images
}

func (d *Discoverer) volumes(ctx context.Context, ident identity.Context) []plan.Volume {
	out := d.Runner.Run(ctx, ident.Command(`podman volume ls --format "{{.Name}}"`))
	if !out.OK() {
		slog.Debug("volume listing failed", "user", ident.Name, "status", out.Status)
		return nil
	}

	var volumes []plan.Volume
	for _, line := range strings.Split(out.Output, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		volumes = append(volumes, plan.Volume{Name: name})
	}
	return volumes
}

// networks lists networks and builds their inspect specs inline. The
// listing output itself is also filed, tagged as the canonical network
// list, so the executor re-runs and archives it under the identity's
// networks subfolder.
func (d *Discoverer) networks(ctx context.Context, ident identity.Context) ([]plan.Network, []plan.CommandSpec) {
	subpath := path.Join(ident.Name, "networks")
	specs := []plan.CommandSpec{{
		Command: ident.Command("podman network ls"),
		Subpath: subpath,
		Tags:    []string{plan.TagListNetworks},
	}}

	out := d.Runner.Run(ctx, ident.Command("podman network ls"))
	if !out.OK() {
		slog.Debug("network listing failed", "user", ident.Name, "status", out.Status)
		return nil, specs
	}

	var networks []plan.Network
	for _, row := range TableRows(out.Output) {
		name, err := FirstField(row)
		if err != nil {
			continue
		}
		networks = append(networks, plan.Network{Name: name})
		specs = append(specs, plan.CommandSpec{
			Command: ident.Command("podman network inspect " + name),
			Subpath: subpath,
			Tags:    []string{plan.TagNetworkInspect},
		})
	}
	return networks, specs
}
