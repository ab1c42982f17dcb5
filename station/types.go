package station

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/sgraildata/station-registry/geo"
)

var validate = validator.New()

// ExitPoint is a single physical station exit. ExitCode is free-form as
// reported by the source ("A", "1", "Exit A") until the consolidator
// normalizes it.
type ExitPoint struct {
	ExitCode string  `json:"exit_code"`
	Lat      float64 `json:"lat" validate:"gte=1.0,lte=2.0"`
	Lng      float64 `json:"lng" validate:"gte=103.0,lte=105.0"`
}

// NewExitPoint builds an ExitPoint, rejecting coordinates outside the
// Singapore bounding box so malformed records fail at construction instead
// of propagating into the merge logic.
func NewExitPoint(exitCode string, lat, lng float64) (ExitPoint, error) {
	e := ExitPoint{ExitCode: exitCode, Lat: lat, Lng: lng}
	if err := validate.Struct(e); err != nil {
		return ExitPoint{}, fmt.Errorf("exit %q: coordinates (%g, %g) outside Singapore bounds: %w", exitCode, lat, lng, err)
	}
	return e, nil
}

// Point returns the exit's coordinate pair.
func (e ExitPoint) Point() geo.Point {
	return geo.Point{Lat: e.Lat, Lng: e.Lng}
}

// Group is all exits reported by the source feed under one free-text label.
// A group always has at least one exit.
type Group struct {
	SourceName string      `json:"source_name"`
	Exits      []ExitPoint `json:"exits"`
}

// MatchResult is the identity matcher's resolution of a Group: the official
// station name, the full set of station codes found for it, and the centroid
// of the group's exits. Codes is sorted and never empty.
type MatchResult struct {
	OfficialName string    `json:"official_name"`
	Codes        []string  `json:"codes"`
	Centroid     geo.Point `json:"centroid"`
}

// RawMatch pairs a match with the original exits of its source group; it is
// the consolidator's input record.
type RawMatch struct {
	OfficialName string      `json:"official_name"`
	Codes        []string    `json:"codes"`
	Exits        []ExitPoint `json:"exits"`
}

// Consolidated is one station in the final registry. MRTCodes is the union
// of codes from every merged match; Exits holds each physical exit once,
// keyed by normalized exit code, in natural order.
type Consolidated struct {
	OfficialName string      `json:"official_name"`
	MRTCodes     []string    `json:"mrt_codes"`
	Exits        []ExitPoint `json:"exits"`
}

// Points returns the coordinates of all exits in the group.
func Points(exits []ExitPoint) []geo.Point {
	pts := make([]geo.Point, len(exits))
	for i, e := range exits {
		pts[i] = e.Point()
	}
	return pts
}
