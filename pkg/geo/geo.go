package geo

import (
	"fmt"
	"math"
)

// EarthRadiusKM is the mean Earth radius used by the haversine formula.
const EarthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance in kilometres between two
// (latitude, longitude) points.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dlat := radians(lat2 - lat1)
	dlon := radians(lon2 - lon1)
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))
	return EarthRadiusKM * c
}

// Distance computes the distance between two [lat, lon] pairs, rejecting
// malformed coordinates so a single bad record can be skipped by callers.
func Distance(from, to []float64) (float64, error) {
	if len(from) != 2 || len(to) != 2 {
		return 0, fmt.Errorf("coordinate must be [lat, lon], got %d and %d elements", len(from), len(to))
	}
	return HaversineKM(from[0], from[1], to[0], to[1]), nil
}

// Valid reports whether a [lat, lon] pair is well-formed and in range.
func Valid(loc []float64) bool {
	if len(loc) != 2 {
		return false
	}
	return loc[0] >= -90 && loc[0] <= 90 && loc[1] >= -180 && loc[1] <= 180
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
