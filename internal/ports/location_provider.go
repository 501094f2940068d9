package ports

import (
	"context"
	"emergency-response-service/internal/domain"
)

// Contract for reading the device's current position.
// A provider makes a single attempt; it may fail or be denied.
type LocationProvider interface {
	CurrentLocation(ctx context.Context) (domain.Coordinate, error)
}
