package geo

import (
	"math"

	"fieldops/models"
)

const (
	// EarthRadiusMeters is the mean Earth radius used by the haversine
	// formula.
	EarthRadiusMeters = 6371000.0

	// DefaultGeofenceRadius is the on-site radius in meters applied when a
	// caller passes a non-positive radius.
	DefaultGeofenceRadius = 200.0
)

// DistanceMeters returns the great-circle distance between two points.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// IsWithinGeofence reports whether current lies inside the circle of
// radiusMeters around target. The boundary counts as inside.
func IsWithinGeofence(current, target models.Coordinates, radiusMeters float64) bool {
	if radiusMeters <= 0 {
		radiusMeters = DefaultGeofenceRadius
	}
	return DistanceMeters(current.Lat, current.Lng, target.Lat, target.Lng) <= radiusMeters
}
