package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poddiag/poddiag/pkg/plan"
	"github.com/poddiag/poddiag/pkg/runner"
)

type scriptedRunner struct {
	results map[string]runner.Result
	calls   []string
}

func (s *scriptedRunner) Run(_ context.Context, command string) runner.Result {
	s.calls = append(s.calls, command)
	if res, ok := s.results[command]; ok {
		return res
	}
	return runner.Result{Status: 1}
}

func TestCLI_ContainersCachedPerFlavor(t *testing.T) {
	run := &scriptedRunner{results: map[string]runner.Result{
		"podman ps":    {Status: 0, Output: "HEADER\nrunning1\n"},
		"podman ps -a": {Status: 0, Output: "HEADER\nrunning1\nstopped1\n"},
	}}
	inv := NewCLI(run)
	ctx := context.Background()

	assert.Len(t, inv.Containers(ctx, false), 1)
	assert.Len(t, inv.Containers(ctx, false), 1)
	assert.Len(t, inv.Containers(ctx, true), 2)

	// one listing per flavor, regardless of lookups
	assert.Equal(t, []string{"podman ps", "podman ps -a"}, run.calls)
}

func TestCLI_ImagesCachedIncludingFailure(t *testing.T) {
	run := &scriptedRunner{results: map[string]runner.Result{
		"podman images --no-trunc": {Status: 125, Output: "cannot connect"},
	}}
	inv := NewCLI(run)
	ctx := context.Background()

	assert.Empty(t, inv.Images(ctx))
	assert.Empty(t, inv.Images(ctx))
	assert.Len(t, run.calls, 1)
}

func TestCLI_Images(t *testing.T) {
	run := &scriptedRunner{results: map[string]runner.Result{
		"podman images --no-trunc": {
			Status: 0,
			Output: "REPOSITORY  TAG  IMAGE ID\nrepo  tag  abc123\n<none>  <none>  def456\n",
		},
	}}
	inv := NewCLI(run)

	got := inv.Images(context.Background())
	assert.Equal(t, []plan.Image{
		{RepoTag: "repo:tag", ID: "abc123"},
		{RepoTag: "<none>:<none>", ID: "def456"},
	}, got)
}

func TestCLI_Volumes(t *testing.T) {
	run := &scriptedRunner{results: map[string]runner.Result{
		`podman volume ls --format "{{.Name}}"`: {Status: 0, Output: "vol1\nvol2\n\n"},
	}}
	inv := NewCLI(run)

	got := inv.Volumes(context.Background())
	assert.Equal(t, []plan.Volume{{Name: "vol1"}, {Name: "vol2"}}, got)
}
