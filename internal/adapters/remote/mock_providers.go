package remote

import (
	"context"
	"emergency-response-service/internal/domain"
	"sync/atomic"
	"time"
)

// MockHospitalSearch returns a fixed list or error and counts calls.
type MockHospitalSearch struct {
	Hospitals []domain.Hospital
	Err       error
	Calls     atomic.Int32
}

func (m *MockHospitalSearch) NearbyHospitals(ctx context.Context, at domain.Coordinate) ([]domain.Hospital, error) {
	m.Calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Hospitals, nil
}

// MockGeocoder returns a fixed country code or error.
type MockGeocoder struct {
	Code  string
	Err   error
	Panic bool
	Calls atomic.Int32
}

func (m *MockGeocoder) CountryCode(ctx context.Context, at domain.Coordinate) (string, error) {
	m.Calls.Add(1)
	if m.Panic {
		panic("geocoder exploded")
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Code, nil
}

// MockGuidanceProvider answers after Delay. With IgnoreCancel set it keeps
// sleeping through context cancellation, modelling a response that arrives late.
type MockGuidanceProvider struct {
	Delay        time.Duration
	Result       domain.GuidanceResult
	Err          error
	IgnoreCancel bool
	Calls        atomic.Int32
	Returned     atomic.Int32
}

func (m *MockGuidanceProvider) Guidance(ctx context.Context, message string) (domain.GuidanceResult, error) {
	m.Calls.Add(1)
	defer m.Returned.Add(1)

	if m.IgnoreCancel {
		time.Sleep(m.Delay)
		return m.Result, m.Err
	}

	timer := time.NewTimer(m.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return m.Result, m.Err
	case <-ctx.Done():
		return domain.GuidanceResult{}, ctx.Err()
	}
}
