package plan

// Classification tags attached to canonical outputs so downstream consumers
// can find them without knowing the command text.
const (
	TagListImages       = "podman_list_images"
	TagListContainers   = "podman_list_containers"
	TagListNetworks     = "podman_list_networks"
	TagContainerInspect = "podman_container_inspect"
	TagImageInspect     = "podman_image_inspect"
	TagImageTree        = "podman_image_tree"
	TagVolumeInspect    = "podman_volume_inspect"
	TagNetworkInspect   = "podman_network_inspect"
)

// Scheduling priorities for deferrable commands. Higher values run later;
// a nil CommandSpec.Priority means default scheduling.
const (
	PriorityLogs       = 50
	PriorityPsWithSize = 100
)

// CommandSpec is one scheduled unit of diagnostic collection: the command to
// run, where to file its output relative to the collection root, its
// classification tags, and an optional deferred-scheduling priority.
type CommandSpec struct {
	Command  string   `json:"command" yaml:"command"`
	Subpath  string   `json:"subpath" yaml:"subpath"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Priority *int     `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Deferred reports whether the spec carries a deferred-scheduling priority.
func (s CommandSpec) Deferred() bool {
	return s.Priority != nil
}

// Container is a discovered container, addressed by id.
type Container struct {
	ID string `json:"id" yaml:"id"`
}

// Image is a discovered image. RepoTag is "repository:tag" and may carry the
// literal "<none>" placeholders when the image is untagged.
type Image struct {
	RepoTag string `json:"repoTag" yaml:"repoTag"`
	ID      string `json:"id" yaml:"id"`
}

// Volume is a discovered volume, addressed by name.
type Volume struct {
	Name string `json:"name" yaml:"name"`
}

// Network is a discovered network, addressed by name.
type Network struct {
	Name string `json:"name" yaml:"name"`
}

// Entities holds everything discovered for one identity context.
type Entities struct {
	Containers []Container `json:"containers" yaml:"containers"`
	Images     []Image     `json:"images" yaml:"images"`
	Volumes    []Volume    `json:"volumes" yaml:"volumes"`
	Networks   []Network   `json:"networks" yaml:"networks"`
}

// Options is the explicit collection configuration, passed by parameter to
// discovery and plan building.
type Options struct {
	// All includes non-running containers in discovery.
	All bool `json:"all" yaml:"all"`
	// Logs adds per-container log retrieval to the plan.
	Logs bool `json:"logs" yaml:"logs"`
	// Size adds the expensive size-inclusive process listing.
	Size bool `json:"size" yaml:"size"`
	// AllUsers probes non-privileged identities as well.
	AllUsers bool `json:"allUsers" yaml:"allUsers"`
}
