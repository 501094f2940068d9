package services

import (
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"emergency-response-service/internal/ports"
	"fmt"
)

// LocationResolver wraps the location provider with a single-attempt,
// typed-failure contract. Callers decide whether to retry.
type LocationResolver struct {
	provider ports.LocationProvider
}

func NewLocationResolver(provider ports.LocationProvider) *LocationResolver {
	return &LocationResolver{provider: provider}
}

// Resolve returns the current coordinate. Every failure wraps
// domain.ErrLocationUnavailable.
func (r *LocationResolver) Resolve(ctx context.Context) (_ domain.Coordinate, err error) {
	defer obs.Time(ctx, "location.Resolve")(&err)

	if r == nil || r.provider == nil {
		return domain.Coordinate{}, fmt.Errorf("resolve location: %w: no provider configured", domain.ErrLocationUnavailable)
	}

	c, err := r.provider.CurrentLocation(ctx)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("resolve location: %w: %w", domain.ErrLocationUnavailable, err)
	}

	if err := c.Validate(); err != nil {
		return domain.Coordinate{}, fmt.Errorf("resolve location: %w: %w", domain.ErrLocationUnavailable, err)
	}

	return c, nil
}
