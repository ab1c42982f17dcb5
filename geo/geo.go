package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Centroid returns the arithmetic mean position of pts, averaging latitude
// and longitude independently. The second return value is false for an
// empty slice.
func Centroid(pts []Point) (Point, bool) {
	if len(pts) == 0 {
		return Point{}, false
	}
	var lat, lng float64
	for _, p := range pts {
		lat += p.Lat
		lng += p.Lng
	}
	n := float64(len(pts))
	return Point{Lat: lat / n, Lng: lng / n}, true
}

// HaversineDistance returns the great-circle distance between p1 and p2 in meters.
func HaversineDistance(p1, p2 Point) float64 {
	phi1 := degreesToRadians(p1.Lat)
	phi2 := degreesToRadians(p2.Lat)
	dPhi := degreesToRadians(p2.Lat - p1.Lat)
	dLambda := degreesToRadians(p2.Lng - p1.Lng)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180.0
}
