package collect

import (
	"context"
	"log/slog"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"
	"gopkg.in/yaml.v3"
)

// engineUnits are the systemd units describing the engine service on hosts
// that run podman under systemd.
var engineUnits = []string{
	"podman.service",
	"podman.socket",
}

// filterOutUnitKeys removes noisy or sensitive systemd properties before
// the unit state is archived.
var filterOutUnitKeys = []string{
	"AllowedCPUs",
	"AllowedMemoryNodes",
	"Asserts",
	"BPFProgram",
	"*Credential*",
}

// collectUnitInfo captures systemd unit properties for the engine units and
// files them under service/. Hosts without systemd, or without the units,
// contribute nothing; this step never fails the run.
func (c *Collector) collectUnitInfo(ctx context.Context) {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		slog.Debug("systemd not reachable, skipping unit info", "error", err)
		return
	}
	defer conn.Close()

	for _, unit := range engineUnits {
		props, err := conn.GetAllPropertiesContext(ctx, unit)
		if err != nil {
			slog.Debug("failed to read unit properties", "unit", unit, "error", err)
			continue
		}

		filtered := make(map[string]any, len(props))
		for k, v := range props {
			if matchesAny(k, filterOutUnitKeys) {
				continue
			}
			filtered[k] = v
		}

		data, err := yaml.Marshal(filtered)
		if err != nil {
			slog.Warn("failed to marshal unit properties", "unit", unit, "error", err)
			continue
		}
		if err := c.Store.WriteFile("service", unit+".yaml", data); err != nil {
			slog.Warn("failed to archive unit properties", "unit", unit, "error", err)
		}
	}
}

// matchesAny reports whether key matches one of the patterns; a pattern
// wrapped in asterisks matches as a substring, otherwise exactly.
func matchesAny(key string, patterns []string) bool {
	for _, p := range patterns {
		if strings.HasPrefix(p, "*") && strings.HasSuffix(p, "*") && len(p) > 1 {
			if strings.Contains(key, strings.Trim(p, "*")) {
				return true
			}
			continue
		}
		if key == p {
			return true
		}
	}
	return false
}
