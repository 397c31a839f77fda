package geofence

import "math"

// earthRadiusM is the spherical Earth radius used for distance calculations.
const earthRadiusM = 6371000.0

// DefaultRadiusM is applied when a stamp's location has no configured radius.
const DefaultRadiusM = 100.0

type Result struct {
	DistanceM       float64
	Within          bool
	EffectiveRadius float64
}

// Distance returns the great-circle distance in meters between two
// coordinates using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// EffectiveRadius widens the configured radius by the device-reported
// accuracy. A noisy reading (accuracy > radius) expands the admission
// region; a precise one never shrinks it below the configured radius.
func EffectiveRadius(radiusM, accuracyM float64) float64 {
	if accuracyM > 0 {
		return math.Max(radiusM, accuracyM)
	}
	return radiusM
}

// Verify decides whether a participant at (userLat, userLon) with the given
// accuracy is inside the geofence around (stampLat, stampLon).
func Verify(userLat, userLon, accuracyM, stampLat, stampLon, radiusM float64) Result {
	if radiusM <= 0 {
		radiusM = DefaultRadiusM
	}

	distance := Distance(userLat, userLon, stampLat, stampLon)
	effective := EffectiveRadius(radiusM, accuracyM)

	return Result{
		DistanceM:       distance,
		Within:          distance <= effective,
		EffectiveRadius: effective,
	}
}

// ValidCoordinate reports whether a latitude/longitude pair is in range.
func ValidCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Round2 rounds a distance to 2 decimal places for responses.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
