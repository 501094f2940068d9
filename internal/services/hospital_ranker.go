package services

import (
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/ports"
	"fmt"
)

// HospitalRanker fetches nearby hospitals and exposes the nearest one.
// The search endpoint's order is trusted; nothing is re-sorted locally.
type HospitalRanker struct {
	search ports.HospitalSearch
}

func NewHospitalRanker(search ports.HospitalSearch) *HospitalRanker {
	return &HospitalRanker{search: search}
}

// Fetch returns hospitals near at. Failures wrap domain.ErrNetwork.
func (r *HospitalRanker) Fetch(ctx context.Context, at domain.Coordinate) ([]domain.Hospital, error) {
	hospitals, err := r.search.NearbyHospitals(ctx, at)
	if err != nil {
		return nil, fmt.Errorf("fetch hospitals near %s: %w: %w", at, domain.ErrNetwork, err)
	}
	if hospitals == nil {
		hospitals = []domain.Hospital{}
	}
	return hospitals, nil
}

// Nearest returns the first hospital, or false when the list is empty.
func (r *HospitalRanker) Nearest(hospitals []domain.Hospital) (domain.Hospital, bool) {
	return domain.NearestHospital(hospitals)
}
