package geo

import "math"

// Mean Earth radius, kilometer-scale accuracy is all we need.
const earthRadiusKm = 6371.0

// Flight time model: fixed ground/climb overhead plus cruise at an effective
// ground speed that folds in non-great-circle routing.
const (
	flightOverheadHours  = 0.5
	effectiveCruiseKmPerH = 800.0
)

// Distance returns the great-circle distance in kilometers between two
// decimal-degree coordinates using the haversine formula. Inputs are assumed
// to be finite valid coordinates.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// EstimateFlightHours converts a distance into an estimated flight duration.
// Monotonic in distance: short-haul hops land under 3 hours, intercontinental
// routes exceed 6.
func EstimateFlightHours(distanceKm float64) float64 {
	return flightOverheadHours + distanceKm/effectiveCruiseKmPerH
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
