package ports

import (
	"context"
	"emergency-response-service/internal/domain"
)

// Contract for the remote first-aid guidance endpoint.
type GuidanceProvider interface {
	Guidance(ctx context.Context, message string) (domain.GuidanceResult, error)
}
