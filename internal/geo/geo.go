package geo

import (
	"math"
)

const earthRadiusMiles = 3959

// Distance returns the great-circle distance in miles between two
// coordinates using the haversine formula. Symmetric, zero for
// coincident points; NaN inputs propagate NaN.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

// ValidateRadius returns a human-readable message per violated bound.
// An empty slice means the inputs are valid.
func ValidateRadius(lat, lon, radius float64) []string {
	var flags []string

	if lat < -90 || lat > 90 {
		flags = append(flags, "Invalid latitude: must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		flags = append(flags, "Invalid longitude: must be between -180 and 180")
	}
	if radius <= 0 {
		flags = append(flags, "Invalid radius: must be greater than 0")
	}

	return flags
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
