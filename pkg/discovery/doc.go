// Package discovery enumerates live podman entities (containers, images,
// volumes, networks) per identity context by parsing listing command
// output. Failed probes yield empty sets rather than errors; malformed rows
// are skipped individually.
package discovery
