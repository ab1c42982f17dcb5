// Package station defines the value types shared across the pipeline:
// exit points, source station groups, match results and consolidated
// registry entries.
package station
