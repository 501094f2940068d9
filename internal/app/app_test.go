package app

import (
	"context"
	"emergency-response-service/internal/adapters/messaging"
	"emergency-response-service/internal/api"
	"emergency-response-service/internal/config"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, upstream string) *config.Config {
	t.Helper()
	mr := miniredis.RunT(t)
	return &config.Config{
		StoreDriver:      config.StoreSQLite,
		DBPath:           ":memory:",
		RedisURL:         "redis://" + mr.Addr(),
		HospitalAPIURL:   upstream,
		GuidanceAPIURL:   upstream,
		HospitalCacheTTL: time.Minute,
		GuidanceCacheTTL: time.Minute,
		LocationSource:   config.LocationStatic,
		LocationLat:      "40.7128",
		LocationLng:      "-74.006",
		GuidanceTimeout:  time.Second,
	}
}

func TestWiredServerStartsSession(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/nearby-hospitals":
			_, _ = w.Write([]byte(`[{"name":"Bellevue","address":"First Ave"}]`))
		case "/api/emergency-response":
			_, _ = w.Write([]byte(`{"emergency_type":"unknown","message":"Please describe more"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	cfg := testConfig(t, upstream.URL)

	st, err := OpenStore(cfg)
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.Migrate(cfg))

	adapters, err := NewAdapters(cfg, st)
	require.NoError(t, err)
	assert.IsType(t, messaging.LogMessenger{}, adapters.Messenger)
	assert.Nil(t, adapters.Geocoder)

	router := api.NewRouter(Deps(cfg, st, adapters))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var sess struct {
		EmergencyNumber string `json:"emergency_number"`
		Hospitals       []struct {
			Name string `json:"name"`
		} `json:"hospitals"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sess))
	assert.Equal(t, "911", sess.EmergencyNumber)
	require.Len(t, sess.Hospitals, 1)
	assert.Equal(t, "Bellevue", sess.Hospitals[0].Name)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(`{"name":"Ann","phone":"+15550100"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sos", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLocationProviderSelection(t *testing.T) {
	cfg := &config.Config{LocationSource: config.LocationStatic}
	p, err := newLocationProvider(cfg)
	require.NoError(t, err)
	_, err = p.CurrentLocation(context.Background())
	assert.Error(t, err)

	cfg.LocationLat = "not-a-number"
	cfg.LocationLng = "1"
	_, err = newLocationProvider(cfg)
	assert.Error(t, err)
}

func TestOpenStoreRejectsRedisWithoutURL(t *testing.T) {
	_, err := OpenStore(&config.Config{StoreDriver: config.StoreRedis})
	assert.Error(t, err)
}
