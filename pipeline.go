package stationregistry

import (
	"context"
	"fmt"
	"log"

	"github.com/sgraildata/station-registry/consolidate"
	"github.com/sgraildata/station-registry/datagov"
	"github.com/sgraildata/station-registry/matcher"
	"github.com/sgraildata/station-registry/onemap"
	"github.com/sgraildata/station-registry/station"
	"github.com/sgraildata/station-registry/storage"
)

// ExitSource provides the raw station-exit records of the open-data feed.
type ExitSource interface {
	AllExits(ctx context.Context) ([]datagov.ExitRecord, error)
}

// Directory enumerates the official station directory and its exits; used
// to backfill stations the exits feed omits.
type Directory interface {
	AllStations(ctx context.Context) ([]onemap.Station, error)
	StationExits(ctx context.Context, name string) ([]station.ExitPoint, error)
}

// Pipeline wires the fetch, matching and consolidation stages of a registry
// build. Directory and Checkpoint are optional; nil disables backfill and
// resume respectively.
type Pipeline struct {
	Exits        ExitSource
	Directory    Directory
	Matcher      *matcher.Matcher
	Consolidator *consolidate.Consolidator
	Checkpoint   *storage.Checkpoint
}

// Result summarizes one registry build.
type Result struct {
	Stations []station.Consolidated
	// RawMatches are the resolved-but-unconsolidated records in match
	// order, kept so consolidation can be replayed offline.
	RawMatches []station.RawMatch
	// Groups is the number of source station groups processed.
	Groups int
	// Unmatched counts groups that resolved to no station code and were
	// dropped from the output.
	Unmatched int
	// SkippedRecords counts malformed feed records dropped during grouping.
	SkippedRecords int
	// Backfilled counts groups synthesized from the directory for stations
	// missing from the exits feed.
	Backfilled int
	// Resumed counts groups whose outcome was reused from the checkpoint.
	Resumed int
}

// Run executes a full registry build: fetch, group, backfill, match and
// consolidate. Matching is sequential; group order is the feed's
// first-seen order, which fixes the consolidation result.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	records, err := p.Exits.AllExits(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch exits feed: %w", err)
	}

	groups, skipped := GroupExits(records)
	res := &Result{Groups: len(groups), SkippedRecords: skipped}
	if skipped > 0 {
		log.Printf("dropped %d malformed exit records", skipped)
	}

	if p.Directory != nil {
		backfilled, err := p.backfill(ctx, records)
		if err != nil {
			return nil, err
		}
		groups = append(groups, backfilled...)
		res.Groups = len(groups)
		res.Backfilled = len(backfilled)
	}

	log.Printf("processing %d station groups", len(groups))
	var rawMatches []station.RawMatch
	for _, g := range groups {
		m, reused, err := p.matchGroup(ctx, g)
		if err != nil {
			return nil, err
		}
		if reused {
			res.Resumed++
		}
		if m == nil {
			res.Unmatched++
			log.Printf("unmatched group %q", g.SourceName)
			continue
		}
		rawMatches = append(rawMatches, *m)
	}
	if p.Checkpoint != nil {
		if err := p.Checkpoint.Flush(); err != nil {
			return nil, fmt.Errorf("flush checkpoint: %w", err)
		}
	}

	res.RawMatches = rawMatches
	res.Stations = p.Consolidator.Consolidate(rawMatches)
	log.Printf("consolidated %d groups into %d stations (%d unmatched)", len(rawMatches), len(res.Stations), res.Unmatched)
	return res, nil
}

// matchGroup resolves one group, consulting the checkpoint first. The
// returned match carries the group's original exits, not the matcher's
// centroid view.
func (p *Pipeline) matchGroup(ctx context.Context, g station.Group) (*station.RawMatch, bool, error) {
	if p.Checkpoint != nil && p.Checkpoint.Seen(g.SourceName) {
		if m, ok := p.Checkpoint.Matched[g.SourceName]; ok {
			return &m, true, nil
		}
		return nil, true, nil
	}

	m, err := p.Matcher.Match(ctx, g.SourceName, g.Exits)
	if err != nil {
		return nil, false, fmt.Errorf("match group %q: %w", g.SourceName, err)
	}
	if m == nil {
		if p.Checkpoint != nil {
			p.Checkpoint.RecordUnmatched(g.SourceName)
		}
		return nil, false, nil
	}
	raw := station.RawMatch{OfficialName: m.OfficialName, Codes: m.Codes, Exits: g.Exits}
	if p.Checkpoint != nil {
		p.Checkpoint.RecordMatch(g.SourceName, raw)
	}
	return &raw, false, nil
}

// backfill synthesizes groups for directory stations the exits feed omits.
// Stations whose exits cannot be found get a single synthetic exit at the
// station coordinate.
func (p *Pipeline) backfill(ctx context.Context, records []datagov.ExitRecord) ([]station.Group, error) {
	directory, err := p.Directory.AllStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan station directory: %w", err)
	}
	missing := MissingStations(records, directory)
	if len(missing) == 0 {
		return nil, nil
	}
	log.Printf("found %d stations missing from the exits feed", len(missing))

	groups := make([]station.Group, 0, len(missing))
	for _, s := range missing {
		exits, err := p.Directory.StationExits(ctx, s.Name)
		if err != nil {
			return nil, fmt.Errorf("fetch exits for %q: %w", s.Name, err)
		}
		if len(exits) == 0 {
			log.Printf("no exits found for %q, using station center", s.Name)
			ex, err := station.NewExitPoint("A", s.Location.Lat, s.Location.Lng)
			if err != nil {
				continue
			}
			exits = []station.ExitPoint{ex}
		}
		groups = append(groups, station.Group{SourceName: s.Name, Exits: exits})
	}
	return groups, nil
}
