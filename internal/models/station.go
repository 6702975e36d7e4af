package models

// Station is a tide prediction station from the free provider's directory.
type Station struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// Distance from the query point in kilometers, populated by
	// nearest-station lookups.
	Distance float64 `json:"distance"`
}

// Coordinate returns the station's location as a Coordinate value.
func (s Station) Coordinate() Coordinate {
	return Coordinate{Latitude: s.Latitude, Longitude: s.Longitude}
}
