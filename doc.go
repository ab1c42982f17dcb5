// Package stationregistry builds a canonical, deduplicated registry of
// Singapore rail stations from the data.gov.sg exits dataset and the OneMap
// place directory.
//
// The pipeline groups raw exit records by their free-text source label,
// resolves each group to an official station identity (see the matcher
// package), consolidates records that describe the same physical station
// (see the consolidate package) and writes the final registry artifact.
// A small HTTP server can expose the built registry for downstream
// consumers.
package stationregistry
