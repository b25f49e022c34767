// Package geo implements the geofence: great-circle distance and the
// radius-membership test, including normalization of the provider's
// coordinate shape variants.
package geo

import (
	"math"

	"github.com/eneda8/nearby/pkg/places"
)

const earthRadiusMeters = 6371000

// Point is a normalized coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Haversine returns the great-circle distance between two points in meters.
func Haversine(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLng/2), 2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Position normalizes a provider location into a Point. The wrapped latLng
// shape wins over the flat shape, which wins over the short lat/lng keys.
// A missing or incomplete pair returns ok=false; callers must treat that as
// a failing radius test, never as the origin.
func Position(loc *places.Location) (Point, bool) {
	if loc == nil {
		return Point{}, false
	}
	if loc.LatLng != nil && loc.LatLng.Latitude != nil && loc.LatLng.Longitude != nil {
		return Point{Lat: *loc.LatLng.Latitude, Lng: *loc.LatLng.Longitude}, true
	}
	if loc.Latitude != nil && loc.Longitude != nil {
		return Point{Lat: *loc.Latitude, Lng: *loc.Longitude}, true
	}
	if loc.Lat != nil && loc.Lng != nil {
		return Point{Lat: *loc.Lat, Lng: *loc.Lng}, true
	}
	return Point{}, false
}

// Distance returns the distance in meters from origin to the place's location.
// ok is false when the location cannot be normalized.
func Distance(origin Point, loc *places.Location) (float64, bool) {
	pos, ok := Position(loc)
	if !ok {
		return 0, false
	}
	return Haversine(origin, pos), true
}

// WithinRadius reports whether the place's location lies within radiusMeters
// of origin. Unparseable locations fail the test.
func WithinRadius(origin Point, loc *places.Location, radiusMeters float64) bool {
	dist, ok := Distance(origin, loc)
	return ok && dist <= radiusMeters
}
