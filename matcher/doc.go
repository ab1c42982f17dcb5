// Package matcher resolves noisy source station groups to official station
// identities.
//
// Given a free-text source label and the coordinates of the group's exits,
// the matcher queries a place-directory search collaborator, gathers
// station codes from every result within a proximity epsilon of the exit
// centroid, and picks the best display name by fuzzy string similarity.
// When search yields no recognizable code it falls back to a
// nearest-station lookup at the centroid. A group that still has no code is
// reported as unmatched rather than failing the run.
package matcher
