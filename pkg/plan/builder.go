package plan

import (
	"path"
	"strings"

	"github.com/poddiag/poddiag/pkg/identity"
)

// subcommands is the fixed diagnostic catalog run for every identity.
var subcommands = []string{
	"info",
	"image trust show",
	"images",
	"images --digests",
	"pod ps",
	"port --all",
	"ps",
	"ps -a",
	"stats --no-stream --all",
	"version",
	"volume ls",
	"system df -v",
}

// catalogTags maps catalog subcommands to the classification tag their
// output carries.
var catalogTags = map[string]string{
	"images": TagListImages,
	"ps":     TagListContainers,
}

// Build turns one identity's discovered entities plus the static catalog
// into the list of commands to execute. All subpaths are prefixed with the
// identity name, so two identities never collide even when they share
// entity identifiers.
func Build(ident identity.Context, entities Entities, opts Options) []CommandSpec {
	specs := make([]CommandSpec, 0, len(subcommands)+
		2*len(entities.Containers)+2*len(entities.Images)+len(entities.Volumes))

	for _, sub := range subcommands {
		spec := CommandSpec{
			Command: ident.Command("podman " + sub),
			Subpath: ident.Name,
		}
		if tag, ok := catalogTags[sub]; ok {
			spec.Tags = []string{tag}
		}
		specs = append(specs, spec)
	}

	if opts.Size {
		// podman ps -as can take a very long time, so it must not hold up
		// the rest of the collection.
		specs = append(specs, CommandSpec{
			Command:  ident.Command("podman ps -as"),
			Subpath:  ident.Name,
			Priority: intPtr(PriorityPsWithSize),
		})
	}

	for _, c := range entities.Containers {
		specs = append(specs, CommandSpec{
			Command: ident.Command("podman inspect " + c.ID),
			Subpath: path.Join(ident.Name, "containers"),
			Tags:    []string{TagContainerInspect},
		})
	}

	for _, img := range entities.Images {
		target := InspectTarget(img)
		specs = append(specs, CommandSpec{
			Command: ident.Command("podman inspect " + target),
			Subpath: path.Join(ident.Name, "images"),
			Tags:    []string{TagImageInspect},
		})
		specs = append(specs, CommandSpec{
			Command: ident.Command("podman image tree " + target),
			Subpath: path.Join(ident.Name, "images", "tree"),
			Tags:    []string{TagImageTree},
		})
	}

	for _, vol := range entities.Volumes {
		specs = append(specs, CommandSpec{
			Command: ident.Command("podman volume inspect " + vol.Name),
			Subpath: path.Join(ident.Name, "volumes"),
			Tags:    []string{TagVolumeInspect},
		})
	}

	if opts.Logs {
		for _, c := range entities.Containers {
			specs = append(specs, CommandSpec{
				Command:  ident.Command("podman logs -t " + c.ID),
				Subpath:  path.Join(ident.Name, "containers"),
				Priority: intPtr(PriorityLogs),
			})
		}
	}

	return specs
}

// InspectTarget returns the reference used to inspect an image. Untagged
// images are listed with the "<none>" repository placeholder and cannot be
// addressed by name, so the image id is used instead.
func InspectTarget(img Image) string {
	repo, _, found := strings.Cut(img.RepoTag, ":")
	if !found {
		return img.ID
	}
	if strings.Trim(repo, "<>") == "none" {
		return img.ID
	}
	return img.RepoTag
}

func intPtr(v int) *int {
	return &v
}
