// Package geo holds the great-circle math behind the nearby query.
package geo

import (
	"fmt"
	"math"

	"address-api/internal/models"
)

// EarthRadiusKm is the IUGG mean Earth radius. Distances are computed on a
// sphere of this radius, not on the WGS-84 ellipsoid.
const EarthRadiusKm = 6371.0088

// Distance returns the haversine great-circle distance in kilometres between
// two latitude/longitude pairs given in degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// rounding near the poles and the antimeridian can push a outside [0, 1]
	a = math.Min(1, math.Max(0, a))

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// Within returns the addresses whose distance from (lat, lon) is at most
// radiusKm, in their original order. A negative radius matches nothing.
func Within(lat, lon, radiusKm float64, addresses []models.Address) []models.Address {
	nearby := make([]models.Address, 0)
	if radiusKm < 0 {
		return nearby
	}

	for _, a := range addresses {
		if Distance(lat, lon, a.Latitude, a.Longitude) <= radiusKm {
			nearby = append(nearby, a)
		}
	}
	return nearby
}

// ValidateCoordinate reports whether lat and lon fall within the WGS-84 ranges.
func ValidateCoordinate(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}
	return nil
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
