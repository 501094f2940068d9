package remote

import (
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

const googleMapsBaseURL = "https://maps.googleapis.com/maps/api"

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		AddressComponents []struct {
			ShortName string   `json:"short_name"`
			Types     []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// CountryCache is the persistent cell -> country code store consulted
// before calling the geocoding API.
type CountryCache interface {
	Get(ctx context.Context, cell string) (string, bool, error)
	Put(ctx context.Context, cell, code string) error
}

// GoogleGeocoder implements CountryGeocoder with the Google Geocoding API.
// Lookups are cached per ~100m cell when a cache is configured.
type GoogleGeocoder struct {
	c      *client
	apiKey string
	cache  CountryCache
}

func NewGoogleGeocoder(apiKey string, cache CountryCache, opts ...Option) (*GoogleGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("google maps api key is empty")
	}
	return &GoogleGeocoder{
		c:      newClient(googleMapsBaseURL, opts...),
		apiKey: apiKey,
		cache:  cache,
	}, nil
}

func (g *GoogleGeocoder) CountryCode(ctx context.Context, at domain.Coordinate) (_ string, err error) {
	defer obs.Time(ctx, "google.CountryCode")(&err)

	cell := at.Cell()
	if g.cache != nil {
		code, ok, err := g.cache.Get(ctx, cell)
		if err != nil {
			log.Warn().Str("cell", cell).Err(err).Msg("country cache read failed")
		} else if ok {
			return code, nil
		}
	}

	q := url.Values{}
	q.Set("latlng", at.String())
	q.Set("key", g.apiKey)

	var decoded geocodeResponse
	if err := g.c.getJSON(ctx, g.c.baseURL+"/geocode/json", q, &decoded); err != nil {
		return "", fmt.Errorf("reverse geocode %s: %w", at, err)
	}

	if decoded.Status != "" && decoded.Status != "OK" {
		return "", fmt.Errorf("reverse geocode %s: status %s %s", at, decoded.Status, strings.TrimSpace(decoded.ErrorMessage))
	}

	code := countryComponent(decoded)
	if code == "" {
		return "", fmt.Errorf("reverse geocode %s: no country component", at)
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, cell, code); err != nil {
			log.Warn().Str("cell", cell).Err(err).Msg("country cache write failed")
		}
	}

	return code, nil
}

// countryComponent returns the short name of the first component typed "country".
func countryComponent(r geocodeResponse) string {
	for _, res := range r.Results {
		for _, comp := range res.AddressComponents {
			for _, t := range comp.Types {
				if t == "country" {
					return strings.ToUpper(comp.ShortName)
				}
			}
		}
	}
	return ""
}
