package remote

import (
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// HospitalAPIClient implements HospitalSearch against the
// GET /api/nearby-hospitals endpoint. Entries are returned in server order,
// including any without a location.
type HospitalAPIClient struct {
	c *client
}

func NewHospitalAPIClient(baseURL string, opts ...Option) (*HospitalAPIClient, error) {
	if baseURL == "" {
		return nil, errors.New("hospital api base url is empty")
	}
	return &HospitalAPIClient{c: newClient(baseURL, opts...)}, nil
}

func (h *HospitalAPIClient) NearbyHospitals(ctx context.Context, at domain.Coordinate) (_ []domain.Hospital, err error) {
	defer obs.Time(ctx, "hospitals.NearbyHospitals")(&err)

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(at.Latitude, 'f', -1, 64))
	q.Set("long", strconv.FormatFloat(at.Longitude, 'f', -1, 64))

	var hospitals []domain.Hospital
	if err := h.c.getJSON(ctx, h.c.baseURL+"/api/nearby-hospitals", q, &hospitals); err != nil {
		return nil, fmt.Errorf("nearby hospitals: %w", err)
	}
	if hospitals == nil {
		hospitals = []domain.Hospital{}
	}

	return hospitals, nil
}
