package remote

import (
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"fmt"
	"net/url"
)

const defaultIPAPIURL = "http://ip-api.com/json"

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// IPAPILocator implements LocationProvider with an IP geolocation lookup.
// It is coarse (city level) and used only when no device fix is available.
type IPAPILocator struct {
	c *client
}

func NewIPAPILocator(endpoint string, opts ...Option) *IPAPILocator {
	if endpoint == "" {
		endpoint = defaultIPAPIURL
	}
	return &IPAPILocator{c: newClient(endpoint, opts...)}
}

func (l *IPAPILocator) CurrentLocation(ctx context.Context) (_ domain.Coordinate, err error) {
	defer obs.Time(ctx, "ipapi.CurrentLocation")(&err)

	q := url.Values{}
	q.Set("fields", "status,message,lat,lon")

	var decoded ipAPIResponse
	if err := l.c.getJSON(ctx, l.c.baseURL, q, &decoded); err != nil {
		return domain.Coordinate{}, fmt.Errorf("ip lookup: %w", err)
	}
	if decoded.Status != "success" {
		return domain.Coordinate{}, fmt.Errorf("ip lookup: status %q: %s", decoded.Status, decoded.Message)
	}

	return domain.Coordinate{Latitude: decoded.Lat, Longitude: decoded.Lon}, nil
}
