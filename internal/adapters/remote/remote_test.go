package remote

import (
	"context"
	"emergency-response-service/internal/domain"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bangalore = domain.Coordinate{Latitude: 12.9716, Longitude: 77.5946}

func TestHospitalAPIClientPreservesServerOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/nearby-hospitals", r.URL.Path)
		assert.Equal(t, "12.9716", r.URL.Query().Get("lat"))
		assert.Equal(t, "77.5946", r.URL.Query().Get("long"))
		_, _ = w.Write([]byte(`[
			{"name":"B","address":"2 St","rating":4.1,"location":{"lat":12.98,"lng":77.6}},
			{"name":"A","address":"1 St"}
		]`))
	}))
	defer srv.Close()

	c, err := NewHospitalAPIClient(srv.URL)
	require.NoError(t, err)

	got, err := c.NearbyHospitals(context.Background(), bangalore)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Name)
	assert.Nil(t, got[1].Location)
	require.NotNil(t, got[0].Rating)
	assert.InDelta(t, 4.1, *got[0].Rating, 1e-9)
}

func TestHospitalAPIClientEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	c, err := NewHospitalAPIClient(srv.URL)
	require.NoError(t, err)

	got, err := c.NearbyHospitals(context.Background(), bangalore)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestHospitalAPIClientRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"name":"A","address":"1 St"}]`))
	}))
	defer srv.Close()

	c, err := NewHospitalAPIClient(srv.URL, WithRetryBackoff(time.Millisecond))
	require.NoError(t, err)

	got, err := c.NearbyHospitals(context.Background(), bangalore)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHospitalAPIClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad coords", http.StatusBadRequest)
	}))
	defer srv.Close()

	c, err := NewHospitalAPIClient(srv.URL, WithRetryBackoff(time.Millisecond))
	require.NoError(t, err)

	_, err = c.NearbyHospitals(context.Background(), bangalore)
	require.Error(t, err)

	var he *httpStatusError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGuidanceAPIClientDecodesKnownAndUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/emergency-response", r.URL.Path)

		var body guidanceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.Message == "burn" {
			_, _ = w.Write([]byte(`{"emergency_type":"burn","remedy":{"steps":["Cool the burn"],"warnings":[],"call_911":"no"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"emergency_type":"unknown","message":"Please describe more"}`))
	}))
	defer srv.Close()

	c, err := NewGuidanceAPIClient(srv.URL)
	require.NoError(t, err)

	known, err := c.Guidance(context.Background(), "burn")
	require.NoError(t, err)
	assert.Equal(t, domain.GuidanceKnown, known.Kind())
	assert.Equal(t, "burn", known.EmergencyType())

	unknown, err := c.Guidance(context.Background(), "???")
	require.NoError(t, err)
	assert.Equal(t, domain.GuidanceUnknown, unknown.Kind())
}

func TestGuidanceAPIClientHonoursCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewGuidanceAPIClient(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = c.Guidance(ctx, "burn")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type memoryCountryCache struct {
	m    map[string]string
	puts int
}

func (c *memoryCountryCache) Get(ctx context.Context, cell string) (string, bool, error) {
	v, ok := c.m[cell]
	return v, ok, nil
}

func (c *memoryCountryCache) Put(ctx context.Context, cell, code string) error {
	c.puts++
	c.m[cell] = code
	return nil
}

func TestGoogleGeocoderCountryCodeCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/geocode/json", r.URL.Path)
		assert.Equal(t, "12.9716,77.5946", r.URL.Query().Get("latlng"))
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"address_components":[
			{"short_name":"KA","types":["administrative_area_level_1","political"]},
			{"short_name":"in","types":["country","political"]}
		]}]}`))
	}))
	defer srv.Close()

	cache := &memoryCountryCache{m: map[string]string{}}
	g, err := NewGoogleGeocoder("k", cache, WithBaseURL(srv.URL))
	require.NoError(t, err)

	code, err := g.CountryCode(context.Background(), bangalore)
	require.NoError(t, err)
	assert.Equal(t, "IN", code)

	code, err = g.CountryCode(context.Background(), domain.Coordinate{Latitude: 12.9718, Longitude: 77.5949})
	require.NoError(t, err)
	assert.Equal(t, "IN", code)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, cache.puts)
}

func TestGoogleGeocoderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
	}))
	defer srv.Close()

	g, err := NewGoogleGeocoder("k", nil, WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = g.CountryCode(context.Background(), bangalore)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestGoogleGeocoderRequiresKey(t *testing.T) {
	_, err := NewGoogleGeocoder("", nil)
	require.Error(t, err)
}

func TestGooglePlacesSearchDropsUnplaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/place/nearbysearch/json", r.URL.Path)
		assert.Equal(t, "hospital", r.URL.Query().Get("type"))
		assert.Equal(t, "5000", r.URL.Query().Get("radius"))
		_, _ = w.Write([]byte(`{"status":"OK","results":[
			{"name":"City Hospital","vicinity":"MG Road","rating":4.5,"geometry":{"location":{"lat":12.97,"lng":77.59}}},
			{"name":"Nowhere Clinic","vicinity":"?"}
		]}`))
	}))
	defer srv.Close()

	p, err := NewGooglePlacesSearch("k", WithBaseURL(srv.URL))
	require.NoError(t, err)

	got, err := p.NearbyHospitals(context.Background(), bangalore)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "City Hospital", got[0].Name)
	assert.Equal(t, "MG Road", got[0].Address)
	require.NotNil(t, got[0].Location)
	assert.InDelta(t, 77.59, got[0].Location.Lng, 1e-9)
}

func TestGooglePlacesSearchZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer srv.Close()

	p, err := NewGooglePlacesSearch("k", WithBaseURL(srv.URL))
	require.NoError(t, err)

	got, err := p.NearbyHospitals(context.Background(), bangalore)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSMSGatewaySendsSingleDispatch(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body smsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"+15550100", "+15550101"}, body.Recipients)
		assert.Contains(t, body.Body, "I need help")

		_, _ = w.Write([]byte(`{"result":"sent"}`))
	}))
	defer srv.Close()

	gw, err := NewSMSGateway(srv.URL, "tok")
	require.NoError(t, err)

	report, err := gw.Send(context.Background(), []string{"+15550100", "+15550101"}, "Message Alert!\n I need help.")
	require.NoError(t, err)
	assert.Equal(t, "sent", report.Result)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSMSGatewayDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	gw, err := NewSMSGateway(srv.URL, "", WithRetryBackoff(time.Millisecond))
	require.NoError(t, err)

	_, err = gw.Send(context.Background(), []string{"+15550100"}, "hi")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestIPAPILocator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","lat":12.9716,"lon":77.5946}`))
	}))
	defer srv.Close()

	got, err := NewIPAPILocator(srv.URL).CurrentLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bangalore, got)
}

func TestIPAPILocatorFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer srv.Close()

	_, err := NewIPAPILocator(srv.URL).CurrentLocation(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private range")
}
