package identity

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poddiag/poddiag/pkg/runner"
)

const (
	// RootName is the name of the privileged identity.
	RootName = "root"

	listLoginsCommand = "lslogins -u --noheadings"
	livenessCommand   = "podman ps -aq"
)

// Context is a user security context under which diagnostic commands run.
// Prefix is the textual invocation prefix needed to run a command as this
// identity; it is empty for the privileged identity.
type Context struct {
	Name       string
	Privileged bool
	Prefix     string
}

// Command prepends the identity's invocation prefix to a command.
func (c Context) Command(command string) string {
	if c.Prefix == "" {
		return command
	}
	return c.Prefix + " " + command
}

// Root returns the privileged identity context.
func Root() Context {
	return Context{Name: RootName, Privileged: true}
}

// Resolve determines the identity contexts to probe. The privileged context
// is always present, exactly once, and first. When probeAllUsers is set,
// login accounts are enumerated and each candidate must pass a liveness
// probe (a container listing under that identity producing non-blank
// output) to be included. Enumeration failure falls back to the privileged
// context alone; it is not an error.
func Resolve(ctx context.Context, run runner.Runner, probeAllUsers bool) []Context {
	contexts := []Context{Root()}
	if !probeAllUsers {
		return contexts
	}

	logins := run.Run(ctx, listLoginsCommand)
	if !logins.OK() {
		slog.Debug("login enumeration failed, collecting for root only",
			"status", logins.Status)
		return contexts
	}

	for _, line := range strings.Split(logins.Output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := fields[1]
		if name == RootName {
			continue
		}
		ident := Context{Name: name, Prefix: "sudo -u " + name}

		probe := run.Run(ctx, ident.Command(livenessCommand))
		if !probe.OK() || strings.TrimSpace(probe.Output) == "" {
			slog.Debug("skipping user without container activity", "user", name)
			continue
		}
		contexts = append(contexts, ident)
	}

	return contexts
}
