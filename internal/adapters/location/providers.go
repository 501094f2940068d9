package location

import (
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/ports"
	"errors"
	"fmt"
)

// ErrNoFix is returned by providers that have no position to report.
var ErrNoFix = errors.New("no location fix")

// Static always reports the same configured coordinate.
type Static struct {
	At domain.Coordinate
}

func NewStatic(at domain.Coordinate) *Static {
	return &Static{At: at}
}

func (s *Static) CurrentLocation(ctx context.Context) (domain.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinate{}, err
	}
	return s.At, nil
}

// Reported carries a coordinate the client sent with its request.
type Reported domain.Coordinate

func (r Reported) CurrentLocation(ctx context.Context) (domain.Coordinate, error) {
	c := domain.Coordinate(r)
	if err := c.Validate(); err != nil {
		return domain.Coordinate{}, fmt.Errorf("reported location: %w", err)
	}
	return c, nil
}

// Unavailable models a denied or missing location service.
type Unavailable struct {
	Err error
}

func (u Unavailable) CurrentLocation(ctx context.Context) (domain.Coordinate, error) {
	if u.Err != nil {
		return domain.Coordinate{}, u.Err
	}
	return domain.Coordinate{}, ErrNoFix
}

// Chain tries each provider once, in order, and returns the first fix.
// All failures are joined when none succeeds.
type Chain []ports.LocationProvider

func (c Chain) CurrentLocation(ctx context.Context) (domain.Coordinate, error) {
	if len(c) == 0 {
		return domain.Coordinate{}, ErrNoFix
	}

	var errs []error
	for _, p := range c {
		if p == nil {
			continue
		}
		at, err := p.CurrentLocation(ctx)
		if err == nil {
			return at, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return domain.Coordinate{}, ErrNoFix
	}
	return domain.Coordinate{}, errors.Join(errs...)
}

// Counting wraps a provider and records how often it was asked.
type Counting struct {
	Next  ports.LocationProvider
	Calls int
}

func (c *Counting) CurrentLocation(ctx context.Context) (domain.Coordinate, error) {
	c.Calls++
	return c.Next.CurrentLocation(ctx)
}
