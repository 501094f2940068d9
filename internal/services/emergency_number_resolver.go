package services

import (
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"emergency-response-service/internal/ports"
	"fmt"

	"github.com/rs/zerolog/log"
)

// EmergencyNumberResolver maps a coordinate to the local emergency dial number.
// It is total: every failure degrades to domain.DefaultEmergencyNumber.
type EmergencyNumberResolver struct {
	geocoder ports.CountryGeocoder
}

func NewEmergencyNumberResolver(geocoder ports.CountryGeocoder) *EmergencyNumberResolver {
	return &EmergencyNumberResolver{geocoder: geocoder}
}

func (r *EmergencyNumberResolver) Resolve(ctx context.Context, at domain.Coordinate) (number string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("req_id", obs.RequestID(ctx)).Interface("panic", rec).Msg("emergency number lookup panicked; using default")
			obs.ObserveNumberFallback()
			number = domain.DefaultEmergencyNumber
		}
	}()

	if r.geocoder == nil {
		obs.ObserveNumberFallback()
		return domain.DefaultEmergencyNumber
	}

	code, err := r.geocoder.CountryCode(ctx, at)
	if err != nil {
		log.Warn().
			Str("req_id", obs.RequestID(ctx)).
			Str("coord", at.String()).
			Err(fmt.Errorf("%w: %w", domain.ErrNetwork, err)).
			Msg("country lookup failed; using default emergency number")
		obs.ObserveNumberFallback()
		return domain.DefaultEmergencyNumber
	}

	if !domain.KnownCountry(code) {
		log.Info().
			Str("req_id", obs.RequestID(ctx)).
			Str("country", code).
			Msg("no emergency number mapping for country; using default")
		obs.ObserveNumberFallback()
		return domain.DefaultEmergencyNumber
	}

	return domain.EmergencyNumberFor(code)
}
