package consolidate

import (
	"sort"
	"strings"

	"github.com/sgraildata/station-registry/geo"
	"github.com/sgraildata/station-registry/station"
)

// Config holds the consolidator's distance thresholds in meters.
type Config struct {
	// ThresholdMeters bounds the code-overlap and base-name merge criteria.
	ThresholdMeters float64
	// ExactNameMeters is the tighter bound for the exact-name criterion.
	ExactNameMeters float64
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{ThresholdMeters: 800, ExactNameMeters: 300}
}

// Consolidator merges resolved matches that represent the same physical
// station into single registry entries.
type Consolidator struct {
	cfg Config
}

// New builds a Consolidator with explicit thresholds.
func New(cfg Config) *Consolidator {
	if cfg.ThresholdMeters <= 0 {
		cfg.ThresholdMeters = 800
	}
	if cfg.ExactNameMeters <= 0 {
		cfg.ExactNameMeters = 300
	}
	return &Consolidator{cfg: cfg}
}

// Consolidate merges matches in input order with a single greedy scan.
// Each incoming match joins the FIRST prior entry that satisfies any of:
//
//  1. shared station code and centroids within ThresholdMeters,
//  2. identical official name and centroids within ExactNameMeters,
//  3. identical base name (line-type suffixes stripped) and centroids
//     within ThresholdMeters, which fuses the MRT and LRT halves of an
//     interchange reported separately with disjoint codes.
//
// There is no re-scan after a merge, so the result depends on input order.
// Upstream grouping is deterministic, which makes the output reproducible;
// the trade-off is accepted because at most a handful of records ever fuse
// for one physical station.
func (c *Consolidator) Consolidate(matches []station.RawMatch) []station.Consolidated {
	consolidated := []station.Consolidated{}

	for _, m := range matches {
		matchCentroid, hasCentroid := geo.Centroid(station.Points(m.Exits))
		matchBase := baseName(m.OfficialName)

		merged := false
		for i := range consolidated {
			s := &consolidated[i]
			if !hasCentroid {
				break
			}
			existingCentroid, ok := geo.Centroid(station.Points(s.Exits))
			if !ok {
				continue
			}
			dist := geo.HaversineDistance(matchCentroid, existingCentroid)

			codeOverlap := intersects(m.Codes, s.MRTCodes) && dist < c.cfg.ThresholdMeters
			exactName := m.OfficialName == s.OfficialName && dist < c.cfg.ExactNameMeters
			sameBase := matchBase == baseName(s.OfficialName) && dist < c.cfg.ThresholdMeters

			if codeOverlap || exactName || sameBase {
				s.MRTCodes = unionSorted(s.MRTCodes, m.Codes)
				appendExits(s, m.Exits)
				merged = true
				break
			}
		}

		if !merged {
			entry := station.Consolidated{
				OfficialName: m.OfficialName,
				MRTCodes:     append([]string(nil), m.Codes...),
			}
			appendExits(&entry, m.Exits)
			consolidated = append(consolidated, entry)
		}
	}

	for i := range consolidated {
		exits := consolidated[i].Exits
		sort.SliceStable(exits, func(a, b int) bool {
			return lessExitCode(exits[a].ExitCode, exits[b].ExitCode)
		})
	}
	return consolidated
}

// appendExits adds exits to an entry keyed by normalized exit code,
// first occurrence wins.
func appendExits(s *station.Consolidated, exits []station.ExitPoint) {
	seen := make(map[string]struct{}, len(s.Exits)+len(exits))
	for _, ex := range s.Exits {
		seen[ex.ExitCode] = struct{}{}
	}
	for _, ex := range exits {
		norm := NormalizeExitCode(ex.ExitCode)
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		ex.ExitCode = norm
		s.Exits = append(s.Exits, ex)
	}
}

// baseName strips line-type suffixes from a station name, so that
// "BUKIT PANJANG MRT STATION" and "BUKIT PANJANG LRT STATION" compare equal.
func baseName(officialName string) string {
	base := strings.ToUpper(officialName)
	for _, suffix := range []string{" MRT/LRT STATION", " MRT STATION", " LRT STATION", " STATION"} {
		base = strings.ReplaceAll(base, suffix, "")
	}
	return strings.TrimSpace(base)
}

func intersects(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

func unionSorted(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		set[v] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
