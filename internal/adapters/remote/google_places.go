package remote

import (
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const nearbyRadiusMeters = 5000

type placesResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name     string   `json:"name"`
		Vicinity string   `json:"vicinity"`
		Rating   *float64 `json:"rating"`
		Geometry *struct {
			Location *domain.LatLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GooglePlacesSearch implements HospitalSearch directly on the Places
// Nearby Search API (5km radius, type=hospital). Places without a geometry
// location are dropped; Google's ranking order is kept.
type GooglePlacesSearch struct {
	c      *client
	apiKey string
}

func NewGooglePlacesSearch(apiKey string, opts ...Option) (*GooglePlacesSearch, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}
	return &GooglePlacesSearch{c: newClient(googleMapsBaseURL, opts...), apiKey: apiKey}, nil
}

func (p *GooglePlacesSearch) NearbyHospitals(ctx context.Context, at domain.Coordinate) (_ []domain.Hospital, err error) {
	defer obs.Time(ctx, "google.NearbyHospitals")(&err)

	q := url.Values{}
	q.Set("location", at.String())
	q.Set("radius", strconv.Itoa(nearbyRadiusMeters))
	q.Set("type", "hospital")
	q.Set("key", p.apiKey)

	var decoded placesResponse
	if err := p.c.getJSON(ctx, p.c.baseURL+"/place/nearbysearch/json", q, &decoded); err != nil {
		return nil, fmt.Errorf("places nearby search: %w", err)
	}

	switch decoded.Status {
	case "", "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("places nearby search: status %s %s", decoded.Status, strings.TrimSpace(decoded.ErrorMessage))
	}

	hospitals := make([]domain.Hospital, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		if r.Geometry == nil || r.Geometry.Location == nil {
			continue
		}
		loc := *r.Geometry.Location
		hospitals = append(hospitals, domain.Hospital{
			Name:     r.Name,
			Address:  r.Vicinity,
			Rating:   r.Rating,
			Location: &loc,
		})
	}

	return hospitals, nil
}
