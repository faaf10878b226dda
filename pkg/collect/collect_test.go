package collect

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/poddiag/poddiag/pkg/archive"
	"github.com/poddiag/poddiag/pkg/manifest"
	"github.com/poddiag/poddiag/pkg/plan"
	"github.com/poddiag/poddiag/pkg/runner"
)

type scriptedRunner struct {
	mu       sync.Mutex
	outputs  map[string]runner.Result
	commands []string
}

func (r *scriptedRunner) Run(_ context.Context, command string) runner.Result {
	r.mu.Lock()
	r.commands = append(r.commands, command)
	r.mu.Unlock()
	if res, ok := r.outputs[command]; ok {
		return res
	}
	return runner.Result{Status: 0, Output: "ok\n"}
}

func (r *scriptedRunner) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.commands...)
}

func newTestStore(t *testing.T) *archive.Store {
	t.Helper()
	store, err := archive.NewStore(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	return store
}

func TestCollectorRun(t *testing.T) {
	run := &scriptedRunner{outputs: outputMap{
		"podman ps":                "CONTAINER ID  IMAGE\nabc123  alpine\n",
		"podman images --no-trunc": "REPOSITORY  TAG  IMAGE ID\nregistry.io/alpine  latest  sha256:aa\n",
		`podman volume ls --format "{{.Name}}"`: "vol1\n",
		"podman network ls":                     "NAME  DRIVER\npodman  bridge\n",
		"podman inspect abc123":                 `[{"Env": ["secret_token=topvalue"]}]`,
	}.asResults()}

	store := newTestStore(t)
	c := &Collector{
		Version:     "test",
		Runner:      run,
		Store:       store,
		Options:     plan.Options{Logs: true, Size: true},
		Concurrency: 1,
	}

	require.NoError(t, c.Run(context.Background()))

	// Catalog output filed under the identity name.
	assert.FileExists(t, filepath.Join(store.Root, "root", "podman_info"))
	assert.FileExists(t, filepath.Join(store.Root, "root", "podman_ps_-as"))

	// Entity outputs filed under their kind subfolders.
	assert.FileExists(t, filepath.Join(store.Root, "root", "volumes", "podman_volume_inspect_vol1"))
	assert.FileExists(t, filepath.Join(store.Root, "root", "networks", "podman_network_ls"))
	assert.FileExists(t, filepath.Join(store.Root, "root", "networks", "podman_network_inspect_podman"))

	// The container inspect output carries the redacted secret.
	data, err := os.ReadFile(filepath.Join(store.Root, "root", "containers", "podman_inspect_abc123"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `secret_token=********"`)
	assert.NotContains(t, string(data), "topvalue")

	// Deferred commands run after everything else in the identity's plan.
	commands := run.recorded()
	require.GreaterOrEqual(t, len(commands), 2)
	assert.Equal(t, "podman ps -as", commands[len(commands)-2])
	assert.Equal(t, "podman logs -t abc123", commands[len(commands)-1])

	// Manifest summarizes the run.
	raw, err := os.ReadFile(filepath.Join(store.Root, manifest.FileName))
	require.NoError(t, err)
	var man manifest.Manifest
	require.NoError(t, yaml.Unmarshal(raw, &man))
	assert.Equal(t, manifest.KindCollection, man.Kind)
	require.Len(t, man.Identities, 1)
	assert.Equal(t, "root", man.Identities[0].Name)
	assert.Equal(t, 1, man.Identities[0].Containers)
	assert.Equal(t, 1, man.Identities[0].Images)
	assert.Equal(t, 1, man.Identities[0].Volumes)
	assert.Equal(t, []string{plan.TagListContainers}, man.Tags["root/podman_ps"])
	assert.Equal(t, []string{plan.TagContainerInspect}, man.Tags["root/containers/podman_inspect_abc123"])
}

func TestCollectorRun_FailedListings(t *testing.T) {
	run := &scriptedRunner{outputs: map[string]runner.Result{
		"podman ps":                {Status: 125, Output: "cannot connect\n"},
		"podman images --no-trunc": {Status: 125},
		`podman volume ls --format "{{.Name}}"`: {Status: 125},
		"podman network ls":                     {Status: 125},
	}}

	store := newTestStore(t)
	c := &Collector{Version: "test", Runner: run, Store: store, Concurrency: 1}

	require.NoError(t, c.Run(context.Background()))

	// No entities, so only the catalog plus the network listing ran.
	assert.FileExists(t, filepath.Join(store.Root, "root", "podman_version"))
	assert.FileExists(t, filepath.Join(store.Root, "root", "networks", "podman_network_ls"))
	assert.NoDirExists(t, filepath.Join(store.Root, "root", "containers"))
	assert.NoDirExists(t, filepath.Join(store.Root, "root", "volumes"))

	raw, err := os.ReadFile(filepath.Join(store.Root, manifest.FileName))
	require.NoError(t, err)
	var man manifest.Manifest
	require.NoError(t, yaml.Unmarshal(raw, &man))
	require.Len(t, man.Identities, 1)
	assert.Zero(t, man.Identities[0].Containers)
	assert.Zero(t, man.Identities[0].Images)
}

func TestCollectorRun_Bundle(t *testing.T) {
	store := newTestStore(t)
	bundle := filepath.Join(t.TempDir(), "run.tar.gz")
	c := &Collector{
		Version:     "test",
		Runner:      &scriptedRunner{},
		Store:       store,
		Concurrency: 2,
		BundlePath:  bundle,
	}

	require.NoError(t, c.Run(context.Background()))
	assert.FileExists(t, bundle)
}

type outputMap map[string]string

func (m outputMap) asResults() map[string]runner.Result {
	out := make(map[string]runner.Result, len(m))
	for cmd, text := range m {
		out[cmd] = runner.Result{Output: text}
	}
	return out
}
