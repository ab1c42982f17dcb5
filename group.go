package stationregistry

import (
	"strings"

	"github.com/sgraildata/station-registry/datagov"
	"github.com/sgraildata/station-registry/onemap"
	"github.com/sgraildata/station-registry/station"
)

// GroupExits groups flat exit records by their source station label,
// preserving first-seen order so downstream consolidation is deterministic.
// Records with coordinates outside the Singapore bounding box are dropped;
// the second return value counts them.
func GroupExits(records []datagov.ExitRecord) ([]station.Group, int) {
	index := map[string]int{}
	groups := []station.Group{}
	skipped := 0

	for _, r := range records {
		if r.StationName == "" {
			skipped++
			continue
		}
		ex, err := station.NewExitPoint(r.ExitCode, r.Lat, r.Lng)
		if err != nil {
			skipped++
			continue
		}
		i, ok := index[r.StationName]
		if !ok {
			index[r.StationName] = len(groups)
			groups = append(groups, station.Group{SourceName: r.StationName})
			i = len(groups) - 1
		}
		groups[i].Exits = append(groups[i].Exits, ex)
	}
	return groups, skipped
}

// MissingStations returns directory stations absent from the exits feed.
// The feed reports some interchanges only under their MRT label, so LRT
// labels are folded into MRT before the containment check.
func MissingStations(records []datagov.ExitRecord, directory []onemap.Station) []onemap.Station {
	feedNames := map[string]struct{}{}
	for _, r := range records {
		name := strings.ToUpper(r.StationName)
		name = strings.ReplaceAll(name, " LRT STATION", " MRT STATION")
		feedNames[name] = struct{}{}
	}

	var missing []onemap.Station
	for _, s := range directory {
		base := strings.ReplaceAll(s.Name, " MRT STATION", "")
		base = strings.ReplaceAll(base, " LRT STATION", "")
		found := false
		for feedName := range feedNames {
			if strings.Contains(feedName, base) || strings.Contains(s.Name, feedName) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, s)
		}
	}
	return missing
}
