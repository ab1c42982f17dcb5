package matcher

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/sgraildata/station-registry/geo"
	"github.com/sgraildata/station-registry/station"
)

// DefaultCodePrefixes are the line prefixes that identify a station code.
// Single-letter tokens like A1 or B2 are exit labels, never station codes,
// so bare letters are deliberately absent.
var DefaultCodePrefixes = []string{
	"NS", "EW", "NE", "CC", "DT", "TE", "CG", "CR", "CE",
	"BP", "SW", "SE", "PW", "PE", "STC", "PTC", "JS", "JW", "JE",
}

// Candidate is one result from the search collaborator.
type Candidate struct {
	Name     string
	Location geo.Point
}

// NearbyStation is one result from the nearest-station collaborator,
// ordered nearest first by the collaborator.
type NearbyStation struct {
	Name string
	Code string
}

// Searcher is the free-text search collaborator (an authoritative place
// directory such as OneMap).
type Searcher interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
}

// NearbyFinder is the fallback collaborator used when search yields no
// usable station code.
type NearbyFinder interface {
	NearestStations(ctx context.Context, p geo.Point) ([]NearbyStation, error)
}

// Config holds the matcher thresholds. Values are passed explicitly so
// tests can vary them without shared state.
type Config struct {
	// EpsilonMeters is the maximum distance between the group centroid and
	// a search candidate for the candidate to contribute codes.
	EpsilonMeters float64
	// FuzzyThreshold is carried in configuration but is not an accept/reject
	// gate: the score only ranks candidate names. See Matcher.Match.
	FuzzyThreshold int
	// CodePrefixes overrides DefaultCodePrefixes when non-empty.
	CodePrefixes []string
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{EpsilonMeters: 800, FuzzyThreshold: 70, CodePrefixes: DefaultCodePrefixes}
}

var (
	parensRe   = regexp.MustCompile(`\(.*?\)`)
	exitFragRe = regexp.MustCompile(`\s+EXIT\s+[A-Z0-9]+`)
)

// Matcher resolves a source station group to an official identity.
type Matcher struct {
	search Searcher
	nearby NearbyFinder
	cfg    Config
	codeRe *regexp.Regexp
}

// New builds a Matcher from its two collaborators and explicit thresholds.
func New(search Searcher, nearby NearbyFinder, cfg Config) (*Matcher, error) {
	if cfg.EpsilonMeters <= 0 {
		cfg.EpsilonMeters = 800
	}
	prefixes := cfg.CodePrefixes
	if len(prefixes) == 0 {
		prefixes = DefaultCodePrefixes
	}
	re, err := regexp.Compile(`\b(?:` + strings.Join(prefixes, "|") + `)\d*\b`)
	if err != nil {
		return nil, fmt.Errorf("bad station code prefixes: %w", err)
	}
	return &Matcher{search: search, nearby: nearby, cfg: cfg, codeRe: re}, nil
}

// Match resolves one (source name, exits) group to an official name and the
// full set of station codes for it. It returns (nil, nil) when the group
// cannot be resolved to any code; callers count and log such groups.
//
// Codes are accumulated from every search candidate within epsilon of the
// exit centroid, not just the best-named one: an interchange appears as one
// search hit per line, each contributing a different code for the same
// physical station. The fuzzy score only picks the cleanest display name.
func (m *Matcher) Match(ctx context.Context, sourceName string, exits []station.ExitPoint) (*station.MatchResult, error) {
	centroid, ok := geo.Centroid(station.Points(exits))
	if !ok {
		return nil, errors.New("station group has no exits")
	}

	candidates, err := m.search.Search(ctx, sourceName)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", sourceName, err)
	}

	codes := map[string]struct{}{}
	bestName := ""
	highestScore := -1

	for _, cand := range candidates {
		name := strings.ToUpper(cand.Name)
		if name == "" {
			continue
		}
		if geo.HaversineDistance(centroid, cand.Location) > m.cfg.EpsilonMeters {
			continue
		}
		for _, code := range m.codeRe.FindAllString(name, -1) {
			codes[code] = struct{}{}
		}
		if score := fuzzy.WRatio(sourceName, name); score > highestScore {
			highestScore = score
			bestName = cleanName(name)
		}
	}

	if len(codes) == 0 {
		nearby, err := m.nearby.NearestStations(ctx, centroid)
		if err != nil {
			return nil, fmt.Errorf("nearest stations for %q: %w", sourceName, err)
		}
		if len(nearby) > 0 {
			nb := nearby[0]
			for _, code := range m.codeRe.FindAllString(strings.ToUpper(nb.Code), -1) {
				codes[code] = struct{}{}
			}
			bestName = strings.ToUpper(nb.Name)
		}
	}

	if len(codes) == 0 {
		return nil, nil
	}

	official := bestName
	if official == "" {
		official = strings.ToUpper(sourceName)
	}
	sorted := make([]string, 0, len(codes))
	for c := range codes {
		sorted = append(sorted, c)
	}
	sort.Strings(sorted)

	return &station.MatchResult{OfficialName: official, Codes: sorted, Centroid: centroid}, nil
}

// cleanName strips parenthetical annotations and embedded exit references
// from an upper-cased candidate name.
func cleanName(name string) string {
	clean := strings.TrimSpace(parensRe.ReplaceAllString(name, ""))
	clean = strings.TrimSpace(exitFragRe.ReplaceAllString(clean, ""))
	return clean
}
