package dto

import (
	"emergency-response-service/internal/domain"
	"errors"
)

var errPartialLocation = errors.New("latitude and longitude must be set together")

// LocationOverride is embedded in request bodies that may carry a
// device-reported fix. Both fields must be set for it to apply.
type LocationOverride struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Coordinate reports ok=false when neither field is set. A half-set or
// out-of-range pair is an error.
func (l LocationOverride) Coordinate() (domain.Coordinate, bool, error) {
	switch {
	case l.Latitude == nil && l.Longitude == nil:
		return domain.Coordinate{}, false, nil
	case l.Latitude == nil || l.Longitude == nil:
		return domain.Coordinate{}, false, errPartialLocation
	}
	c := domain.Coordinate{Latitude: *l.Latitude, Longitude: *l.Longitude}
	if err := c.Validate(); err != nil {
		return domain.Coordinate{}, false, err
	}
	return c, true, nil
}
