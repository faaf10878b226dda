// Package manifest defines the run manifest written at the root of every
// collection: kind/apiVersion/metadata header, effective options, probed
// identities, and the tag index mapping archived files to their
// classification tags.
package manifest
