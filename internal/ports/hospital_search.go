package ports

import (
	"context"
	"emergency-response-service/internal/domain"
)

// Contract for the remote hospital search. The returned order is the
// server's ranking; index 0 is the nearest hospital.
type HospitalSearch interface {
	NearbyHospitals(ctx context.Context, at domain.Coordinate) ([]domain.Hospital, error)
}
