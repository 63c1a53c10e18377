package geo

import (
	"math"
	"sort"
)

// earthRadiusMiles is the spherical earth radius used by the haversine
// formula.
const earthRadiusMiles = 3959.0

// DistanceMiles computes the great-circle distance between two coordinates
// using the haversine formula. Symmetric; zero for identical points.
func DistanceMiles(a, b Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

// FilterByRadius keeps the items whose coordinate lies within radiusMiles of
// origin (inclusive), attaches the distance rounded to one decimal place,
// and returns them ascending by distance with ties keeping input order.
// Items whose coord accessor reports no coordinate are excluded up front.
func FilterByRadius[T any](items []T, origin Coordinate, radiusMiles float64, coord func(T) (Coordinate, bool)) []Within[T] {
	var within []Within[T]
	for _, item := range items {
		c, ok := coord(item)
		if !ok {
			continue
		}
		d := DistanceMiles(origin, c)
		if d <= radiusMiles {
			within = append(within, Within[T]{
				Item:          item,
				DistanceMiles: d,
			})
		}
	}

	// Sort on the exact distance; rounding afterwards keeps two items that
	// round to the same display value in true ascending order.
	sort.SliceStable(within, func(i, j int) bool {
		return within[i].DistanceMiles < within[j].DistanceMiles
	})
	for i := range within {
		within[i].DistanceMiles = RoundMiles(within[i].DistanceMiles)
	}

	return within
}

// RoundMiles rounds a distance to one decimal place for display.
func RoundMiles(d float64) float64 {
	return math.Round(d*10) / 10
}
