package app

import (
	"emergency-response-service/internal/adapters/cache"
	"emergency-response-service/internal/adapters/location"
	"emergency-response-service/internal/adapters/messaging"
	"emergency-response-service/internal/adapters/remote"
	"emergency-response-service/internal/api"
	"emergency-response-service/internal/config"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/ports"
	"emergency-response-service/internal/services"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Adapters are the concrete remote collaborators chosen from configuration.
type Adapters struct {
	Location  ports.LocationProvider
	Hospitals ports.HospitalSearch
	Proxy     ports.HospitalSearch
	Guidance  ports.GuidanceProvider
	Geocoder  ports.CountryGeocoder
	Messenger ports.Messenger
}

// NewAdapters builds the remote adapters and wraps them in the Redis caches
// when a Redis client is available.
func NewAdapters(cfg *config.Config, st *Store) (*Adapters, error) {
	a := &Adapters{}

	var err error
	if a.Location, err = newLocationProvider(cfg); err != nil {
		return nil, err
	}

	var places ports.HospitalSearch
	if cfg.GoogleMapsAPIKey != "" {
		p, err := remote.NewGooglePlacesSearch(cfg.GoogleMapsAPIKey)
		if err != nil {
			return nil, fmt.Errorf("places search: %w", err)
		}
		places = p

		g, err := remote.NewGoogleGeocoder(cfg.GoogleMapsAPIKey, st.Countries)
		if err != nil {
			return nil, fmt.Errorf("geocoder: %w", err)
		}
		a.Geocoder = g
	} else {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY not set; emergency number falls back to " + domain.DefaultEmergencyNumber)
	}

	if cfg.HospitalAPIURL != "" {
		h, err := remote.NewHospitalAPIClient(cfg.HospitalAPIURL)
		if err != nil {
			return nil, fmt.Errorf("hospital api: %w", err)
		}
		a.Hospitals = h
	} else {
		a.Hospitals = places
	}

	a.Proxy = places
	if a.Proxy == nil {
		a.Proxy = a.Hospitals
	}

	guidance, err := remote.NewGuidanceAPIClient(cfg.GuidanceAPIURL)
	if err != nil {
		return nil, fmt.Errorf("guidance api: %w", err)
	}
	a.Guidance = guidance

	if st.Redis != nil {
		a.Hospitals = cache.NewRedisHospitalCache(a.Hospitals, st.Redis, cfg.HospitalCacheTTL)
		a.Proxy = cache.NewRedisHospitalCache(a.Proxy, st.Redis, cfg.HospitalCacheTTL)
		a.Guidance = cache.NewRedisGuidanceCache(a.Guidance, st.Redis, cfg.GuidanceCacheTTL)
	}

	if cfg.SMSGatewayURL != "" {
		sms, err := remote.NewSMSGateway(cfg.SMSGatewayURL, cfg.SMSGatewayToken)
		if err != nil {
			return nil, fmt.Errorf("sms gateway: %w", err)
		}
		a.Messenger = sms
	} else {
		log.Warn().Msg("SMS_GATEWAY_URL not set; SOS messages are logged only")
		a.Messenger = messaging.LogMessenger{}
	}

	return a, nil
}

// newLocationProvider returns the configured source. With ipapi selected a
// configured static fix is kept as the fallback.
func newLocationProvider(cfg *config.Config) (ports.LocationProvider, error) {
	lat, lng, ok, err := cfg.StaticLocation()
	if err != nil {
		return nil, err
	}

	var static ports.LocationProvider = location.Unavailable{}
	if ok {
		static = location.NewStatic(domain.Coordinate{Latitude: lat, Longitude: lng})
	}

	if cfg.LocationSource == config.LocationIPAPI {
		return location.Chain{remote.NewIPAPILocator(cfg.IPAPIURL), static}, nil
	}
	return static, nil
}

// Deps builds the HTTP dependencies.
func Deps(cfg *config.Config, st *Store, a *Adapters) api.Deps {
	locator := services.NewLocationResolver(a.Location)
	contacts := services.NewContactStore(st.KV)
	profiles := services.NewProfileStore(st.KV)
	numbers := services.NewEmergencyNumberResolver(a.Geocoder)

	sessions := services.NewSessionManager(a.Guidance, services.WithGuidanceTimeout(cfg.GuidanceTimeout))
	sessions.SetIdleTTL(cfg.SessionIdleTTL)

	return api.Deps{
		Sessions:   sessions,
		Home:       services.NewHomeService(locator, services.NewHospitalRanker(a.Hospitals), numbers, profiles).WithTimeout(cfg.HomeTimeout),
		Contacts:   contacts,
		Profiles:   profiles,
		Dispatcher: services.NewSOSDispatcher(contacts, locator, a.Messenger),
		Numbers:    numbers,
		Hospitals:  a.Proxy,
	}
}
