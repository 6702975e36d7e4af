package models

import "fmt"

// Coordinate is an immutable latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// InvalidCoordinatesError indicates a latitude or longitude outside the
// valid range.
type InvalidCoordinatesError struct {
	Latitude  float64
	Longitude float64
}

func (e InvalidCoordinatesError) Error() string {
	return fmt.Sprintf("invalid coordinates: lat=%f lon=%f", e.Latitude, e.Longitude)
}

// Validate checks that the coordinate lies within [-90,90] x [-180,180].
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
		return InvalidCoordinatesError{Latitude: c.Latitude, Longitude: c.Longitude}
	}
	return nil
}
