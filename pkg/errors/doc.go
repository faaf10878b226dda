// Package errors provides structured error types with classification codes
// for the failure taxonomy of a collection run: probe failures, parse
// anomalies, and archive errors. Probe and parse conditions are non-fatal
// by contract and are absorbed into empty results at the point of use; the
// codes exist so the few callers that need to branch can do so without
// string matching.
package errors
