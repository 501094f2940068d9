package handlers

import (
	"emergency-response-service/internal/api/dto"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"emergency-response-service/internal/ports"
	"emergency-response-service/internal/services"
	"net/http"

	"github.com/rs/zerolog/log"
)

// LookupHandler serves the stateless location-keyed lookups.
type LookupHandler struct {
	Numbers *services.EmergencyNumberResolver
	Search  ports.HospitalSearch
}

func (h *LookupHandler) EmergencyNumber(w http.ResponseWriter, r *http.Request) {
	at, ok := coordinateFromQuery(w, r, []string{"lat"}, []string{"lng", "long"})
	if !ok {
		return
	}

	n := h.Numbers.Resolve(r.Context(), at)
	writeJSON(w, r, http.StatusOK, dto.EmergencyNumberResponse{Number: n, DialURI: domain.DialURI(n)})
}

// NearbyHospitals proxies the hospital search. The body is the bare ordered
// array the search endpoint contract defines.
func (h *LookupHandler) NearbyHospitals(w http.ResponseWriter, r *http.Request) {
	at, ok := coordinateFromQuery(w, r, []string{"lat"}, []string{"long", "lng"})
	if !ok {
		return
	}

	hospitals, err := h.Search.NearbyHospitals(r.Context(), at)
	if err != nil {
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("nearby hospitals failed")
		writeError(w, r, http.StatusBadGateway, "Error fetching hospitals")
		return
	}
	if hospitals == nil {
		hospitals = []domain.Hospital{}
	}

	writeJSON(w, r, http.StatusOK, hospitals)
}

func coordinateFromQuery(w http.ResponseWriter, r *http.Request, latKeys, lngKeys []string) (domain.Coordinate, bool) {
	lat, latOK, latErr := queryFloat(r, latKeys...)
	lng, lngOK, lngErr := queryFloat(r, lngKeys...)
	if !latOK || !lngOK {
		writeError(w, r, http.StatusBadRequest, "Latitude and longitude are required")
		return domain.Coordinate{}, false
	}
	if latErr != nil || lngErr != nil {
		writeError(w, r, http.StatusBadRequest, "Latitude and longitude must be numbers")
		return domain.Coordinate{}, false
	}

	at := domain.Coordinate{Latitude: lat, Longitude: lng}
	if err := at.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return domain.Coordinate{}, false
	}
	return at, true
}
