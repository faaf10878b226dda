// Package inventory provides the cached runtime inventory for the
// privileged identity. Discovery consults it instead of re-listing root's
// containers, images, and volumes, mirroring the shared cache a host
// diagnostics framework keeps for root-owned resources.
package inventory
