// Package geo computes great-circle distances and filters candidates by radius.
package geo

import "math"

const (
	// EarthRadiusKm is the mean Earth radius.
	EarthRadiusKm = 6371.0
	// DefaultRadiusKm is the search radius used for nearby job lookups.
	DefaultRadiusKm = 10.0
)

// Positioned is anything with an optional latitude/longitude.
type Positioned interface {
	Coordinates() (lat, lon *float64)
}

// Distance returns the haversine distance in kilometers between two points
// given in decimal degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := radians(lat1)
	lat2Rad := radians(lat2)
	dLat := lat2Rad - lat1Rad
	dLon := radians(lon2) - radians(lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(lat1Rad)*math.Cos(lat2Rad)*sinLon*sinLon
	// rounding can push a slightly above 1 for antipodal points
	a = math.Min(a, 1)

	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

// FindNearby keeps the candidates within radiusKm of the origin, in input
// order. Candidates missing either coordinate are skipped.
func FindNearby[T Positioned](originLat, originLon float64, candidates []T, radiusKm float64) []T {
	nearby := make([]T, 0, len(candidates))
	for _, c := range candidates {
		lat, lon := c.Coordinates()
		if lat == nil || lon == nil {
			continue
		}
		if Distance(originLat, originLon, *lat, *lon) <= radiusKm {
			nearby = append(nearby, c)
		}
	}
	return nearby
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
