package handlers

import (
	"emergency-response-service/internal/api/dto"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"emergency-response-service/internal/services"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

type ProfileHandler struct {
	Profiles *services.ProfileStore
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Profiles.Load(r.Context())
	if err != nil {
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("load profile failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if p == nil {
		writeError(w, r, http.StatusNotFound, "profile not set")
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	var p domain.UserProfile
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Profiles.Save(r.Context(), p); err != nil {
		if errors.Is(err, domain.ErrInvalidProfile) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("save profile failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, p)
}

// Donors lists willing donors. A "+" sent unencoded in the query arrives as a
// space, so spaces are read back as "+".
func (h *ProfileHandler) Donors(w http.ResponseWriter, r *http.Request) {
	raw := strings.ReplaceAll(r.URL.Query().Get("blood_group"), " ", "+")
	group := domain.BloodGroup(strings.ToUpper(strings.TrimSpace(raw)))

	donors, err := h.Profiles.FindDonors(r.Context(), group)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProfile) {
			writeError(w, r, http.StatusBadRequest, "unknown blood group")
			return
		}
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("find donors failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DonorsResponse{Donors: donors})
}
