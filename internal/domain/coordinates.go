package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Immutable geographic position captured from the location provider.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate rejects positions outside the WGS84 range.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return fmt.Errorf("coordinate: NaN component")
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("coordinate: latitude %v out of range", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("coordinate: longitude %v out of range", c.Longitude)
	}
	return nil
}

// Return "lat,lng" using the shortest exact decimal form of each component.
func (c Coordinate) String() string {
	return formatFloat(c.Latitude) + "," + formatFloat(c.Longitude)
}

// MapURL returns the shareable map link embedded in SOS messages.
func (c Coordinate) MapURL() string {
	return "https://maps.google.com/?q=" + c.String()
}

// Cell rounds the coordinate to three decimals (~100m) for cache keys.
func (c Coordinate) Cell() string {
	return fmt.Sprintf("%.3f,%.3f", c.Latitude, c.Longitude)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
