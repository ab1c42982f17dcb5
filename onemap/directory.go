package onemap

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sgraildata/station-registry/geo"
	"github.com/sgraildata/station-registry/station"
)

// directoryPrefixes are the line prefixes scanned when enumerating the
// whole rail network from search queries.
var directoryPrefixes = []string{"NS", "EW", "NE", "CC", "DT", "TE", "BP", "SW", "SE", "PW"}

// targetedStations are newer stations the prefix scan tends to miss.
var targetedStations = []string{"PUNGGOL COAST", "SUNGEI BEDOK"}

var (
	anyCodeRe     = regexp.MustCompile(`[A-Z]{1,3}\d+`)
	parensRe      = regexp.MustCompile(`\(.*?\)`)
	exitFragRe    = regexp.MustCompile(`\s+EXIT\s+[A-Z0-9]+`)
	exitLabelRe   = regexp.MustCompile(`EXIT\s+([A-Z0-9]+)`)
	maxNumberedEx = 14
)

// Station is a directory entry built from search results: an official
// station name with the codes embedded in it and the station coordinate.
type Station struct {
	Name     string
	Codes    []string
	Location geo.Point
}

// AllStations enumerates the rail network by searching each line prefix
// plus a few targeted names, concurrently with a bounded worker count.
// The result is sorted by name so callers iterate deterministically.
func (c *Client) AllStations(ctx context.Context) ([]Station, error) {
	var mu sync.Mutex
	found := map[string]Station{}

	collect := func(results []searchResult) {
		for _, r := range results {
			building := strings.ToUpper(r.Building)
			if !strings.Contains(building, "MRT STATION") || strings.Contains(building, "EXIT") {
				continue
			}
			codes := anyCodeRe.FindAllString(building, -1)
			if len(codes) == 0 {
				continue
			}
			lat, latErr := strconv.ParseFloat(r.Latitude, 64)
			lng, lngErr := strconv.ParseFloat(r.Longitude, 64)
			if latErr != nil || lngErr != nil {
				continue
			}
			name := cleanStationName(building)
			mu.Lock()
			if _, ok := found[name]; !ok {
				found[name] = Station{
					Name:     name,
					Codes:    dedupeSorted(codes),
					Location: geo.Point{Lat: lat, Lng: lng},
				}
			}
			mu.Unlock()
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	queries := make([]string, 0, len(directoryPrefixes)+len(targetedStations))
	for _, prefix := range directoryPrefixes {
		queries = append(queries, prefix+" MRT STATION")
	}
	for _, name := range targetedStations {
		queries = append(queries, name+" MRT STATION")
	}
	for _, q := range queries {
		q := q
		g.Go(func() error {
			raw, err := c.rawSearch(gctx, q)
			if err != nil {
				return fmt.Errorf("directory scan %q: %w", q, err)
			}
			collect(raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Station, 0, len(found))
	for _, s := range found {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// StationExits looks up the exits of one station by name. It first searches
// "<name> EXIT" and falls back to probing numbered exits when the combined
// query returns nothing usable.
func (c *Client) StationExits(ctx context.Context, name string) ([]station.ExitPoint, error) {
	upper := strings.ToUpper(name)

	raw, err := c.rawSearch(ctx, name+" EXIT")
	if err != nil {
		return nil, err
	}
	var exits []station.ExitPoint
	for _, r := range raw {
		building := strings.ToUpper(r.Building)
		if !strings.Contains(building, upper) || !strings.Contains(building, "EXIT") {
			continue
		}
		m := exitLabelRe.FindStringSubmatch(building)
		if m == nil {
			continue
		}
		if ex, ok := exitFromResult(m[1], r); ok {
			exits = append(exits, ex)
		}
	}
	if len(exits) > 0 {
		return exits, nil
	}

	for n := 1; n <= maxNumberedEx; n++ {
		raw, err := c.rawSearch(ctx, fmt.Sprintf("%s EXIT %d", name, n))
		if err != nil {
			return nil, err
		}
		for _, r := range raw {
			if !strings.Contains(strings.ToUpper(r.Building), upper) {
				continue
			}
			if ex, ok := exitFromResult(strconv.Itoa(n), r); ok {
				exits = append(exits, ex)
				break
			}
		}
	}
	return exits, nil
}

func exitFromResult(code string, r searchResult) (station.ExitPoint, bool) {
	lat, latErr := strconv.ParseFloat(r.Latitude, 64)
	lng, lngErr := strconv.ParseFloat(r.Longitude, 64)
	if latErr != nil || lngErr != nil {
		return station.ExitPoint{}, false
	}
	ex, err := station.NewExitPoint(code, lat, lng)
	if err != nil {
		return station.ExitPoint{}, false
	}
	return ex, true
}

func cleanStationName(building string) string {
	name := strings.TrimSpace(parensRe.ReplaceAllString(building, ""))
	return strings.TrimSpace(exitFragRe.ReplaceAllString(name, ""))
}

func dedupeSorted(codes []string) []string {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
