package manifest

import (
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/poddiag/poddiag/pkg/plan"
)

// Kind identifies the manifest resource type.
type Kind string

// KindCollection is the manifest kind for a collection run.
const KindCollection Kind = "Collection"

// APIVersion is the manifest schema version.
const APIVersion = "poddiag/v1"

// FileName is the manifest file written at the collection root.
const FileName = "manifest.yaml"

// IdentitySummary records one probed identity and how many entities of each
// kind were discovered under it.
type IdentitySummary struct {
	Name       string `json:"name" yaml:"name"`
	Privileged bool   `json:"privileged" yaml:"privileged"`
	Containers int    `json:"containers" yaml:"containers"`
	Images     int    `json:"images" yaml:"images"`
	Volumes    int    `json:"volumes" yaml:"volumes"`
	Networks   int    `json:"networks" yaml:"networks"`
	Commands   int    `json:"commands" yaml:"commands"`
}

// Manifest is the run-level record written at the collection root: what was
// collected, for whom, with which options, and which outputs carry
// classification tags.
type Manifest struct {
	Kind       Kind              `json:"kind" yaml:"kind"`
	APIVersion string            `json:"apiVersion" yaml:"apiVersion"`
	Metadata   map[string]string `json:"metadata" yaml:"metadata"`

	Options    plan.Options        `json:"options" yaml:"options"`
	Identities []IdentitySummary   `json:"identities" yaml:"identities"`
	Tags       map[string][]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// New creates a manifest initialized with a fresh run id, timestamp, and
// tool version.
func New(version string, opts plan.Options) *Manifest {
	return &Manifest{
		Kind:       KindCollection,
		APIVersion: APIVersion,
		Metadata: map[string]string{
			"run-id":    uuid.NewString(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   version,
		},
		Options: opts,
		Tags:    make(map[string][]string),
	}
}

// AddIdentity appends one identity's discovery summary.
func (m *Manifest) AddIdentity(s IdentitySummary) {
	m.Identities = append(m.Identities, s)
}

// Tag records that the archived file at relPath carries the given
// classification tags.
func (m *Manifest) Tag(relPath string, tags []string) {
	if len(tags) == 0 {
		return
	}
	m.Tags[relPath] = append(m.Tags[relPath], tags...)
}

// Marshal renders the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}
