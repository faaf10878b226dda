// Package archive owns the on-disk layout of a collection run: per-command
// output files grouped by subpath, captured engine configuration trees, and
// the optional compressed bundle of the whole run.
package archive
