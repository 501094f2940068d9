package ports

import (
	"context"
	"emergency-response-service/internal/domain"
)

// Contract for reverse geocoding a coordinate to an ISO country short code.
type CountryGeocoder interface {
	CountryCode(ctx context.Context, at domain.Coordinate) (string, error)
}
