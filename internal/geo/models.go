package geo

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Within pairs an item with its computed distance from a filter origin.
// DistanceMiles is rounded to one decimal place.
type Within[T any] struct {
	Item          T       `json:"item"`
	DistanceMiles float64 `json:"distanceMiles"`
}

// nominatimResult is the slice element returned by the lookup service.
// Lat/lon arrive as strings and may be malformed.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}
