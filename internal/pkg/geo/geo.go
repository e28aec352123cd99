package geo

import (
	"errors"
	"math"
)

var ErrInvalidCoordinates = errors.New("latitude must be between -90 and 90 and longitude between -180 and 180")

const earthRadiusMeters = 6371000

// ValidateCoordinates rejects NaN and out-of-range values before any distance math runs.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return ErrInvalidCoordinates
	}
	if lat < -90 || lat > 90 {
		return ErrInvalidCoordinates
	}
	if lon < -180 || lon > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// DistanceMeters returns the great-circle distance between two coordinates in meters.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	// Haversine formula
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WithinRadius reports whether the point is at most radiusMeters away from the center.
func WithinRadius(lat, lon, centerLat, centerLon, radiusMeters float64) bool {
	return DistanceMeters(lat, lon, centerLat, centerLon) <= radiusMeters
}
