package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/poddiag/poddiag/pkg/plan"
)

func TestOptionsFrom(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want plan.Options
	}{
		{
			name: "no flags",
			args: []string{"test"},
			want: plan.Options{},
		},
		{
			name: "all flag",
			args: []string{"test", "--all"},
			want: plan.Options{All: true},
		},
		{
			name: "logs and size",
			args: []string{"test", "--logs", "--size"},
			want: plan.Options{Logs: true, Size: true},
		},
		{
			name: "all users",
			args: []string{"test", "--all-users"},
			want: plan.Options{AllUsers: true},
		},
		{
			name: "everything",
			args: []string{"test", "--all", "--logs", "--size", "--all-users"},
			want: plan.Options{All: true, Logs: true, Size: true, AllUsers: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: discoveryFlags(),
				Action: func(_ context.Context, c *cli.Command) error {
					if got := optionsFrom(c); got != tt.want {
						t.Errorf("optionsFrom() = %+v, want %+v", got, tt.want)
					}
					return nil
				},
			}

			if err := cmd.Run(context.Background(), tt.args); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestRootCmdCommands(t *testing.T) {
	root := rootCmd()

	want := []string{"collect", "plan", "version"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands {
			if sub.Name == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("rootCmd() missing %q subcommand", name)
		}
	}
}

func TestDefaultOutputDir(t *testing.T) {
	dir := defaultOutputDir()
	if !strings.HasPrefix(dir, "poddiag-") {
		t.Errorf("defaultOutputDir() = %q, want poddiag- prefix", dir)
	}
	if len(dir) <= len("poddiag-") {
		t.Errorf("defaultOutputDir() = %q, missing timestamp", dir)
	}
}
