package storage

import (
	"errors"
	"io/fs"

	"github.com/sgraildata/station-registry/station"
)

// Checkpoint records per-group matching outcomes so an interrupted batch
// run can resume without re-querying groups it already resolved.
type Checkpoint struct {
	store    *Store
	filename string

	// Matched maps source group name to its resolved match.
	Matched map[string]station.RawMatch `json:"matched"`
	// Unmatched lists source group names that resolved to nothing.
	Unmatched map[string]bool `json:"unmatched"`
}

// LoadCheckpoint reads an existing checkpoint or starts an empty one when
// the file does not exist yet.
func LoadCheckpoint(store *Store, filename string) (*Checkpoint, error) {
	cp := &Checkpoint{
		store:     store,
		filename:  filename,
		Matched:   map[string]station.RawMatch{},
		Unmatched: map[string]bool{},
	}
	err := store.LoadJSON(cp, filename)
	if errors.Is(err, fs.ErrNotExist) {
		return cp, nil
	}
	if err != nil {
		return nil, err
	}
	if cp.Matched == nil {
		cp.Matched = map[string]station.RawMatch{}
	}
	if cp.Unmatched == nil {
		cp.Unmatched = map[string]bool{}
	}
	return cp, nil
}

// Seen reports whether the group was already processed in a prior run.
func (cp *Checkpoint) Seen(sourceName string) bool {
	if _, ok := cp.Matched[sourceName]; ok {
		return true
	}
	return cp.Unmatched[sourceName]
}

// RecordMatch stores a resolved group.
func (cp *Checkpoint) RecordMatch(sourceName string, m station.RawMatch) {
	cp.Matched[sourceName] = m
	delete(cp.Unmatched, sourceName)
}

// RecordUnmatched stores a group that resolved to nothing.
func (cp *Checkpoint) RecordUnmatched(sourceName string) {
	cp.Unmatched[sourceName] = true
}

// Flush persists the checkpoint to disk.
func (cp *Checkpoint) Flush() error {
	return cp.store.SaveJSON(cp, cp.filename)
}
