package handlers

import (
	"emergency-response-service/internal/api/dto"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"emergency-response-service/internal/services"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

type SOSHandler struct {
	Dispatcher *services.SOSDispatcher
}

func (h *SOSHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req dto.SOSRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	dispatcher := h.Dispatcher
	loc, err := reportedLocator(req.LocationOverride)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if loc != nil {
		dispatcher = dispatcher.WithLocator(loc)
	}

	receipt, err := dispatcher.Send(r.Context())
	if err != nil {
		status, msg := sosFailure(err)
		log.Warn().Str("req_id", obs.RequestID(r.Context())).Int("status", status).Err(err).Msg("sos failed")
		writeError(w, r, status, msg)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SOSResponse{
		Status:     "sent",
		Recipients: receipt.Recipients,
		Message:    receipt.Message,
		Location:   receipt.Location,
		SentAt:     receipt.SentAt,
	})
}

func sosFailure(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNoContacts):
		return http.StatusUnprocessableEntity, "No emergency contacts found."
	case errors.Is(err, domain.ErrLocationUnavailable):
		return http.StatusServiceUnavailable, "Unable to fetch location."
	case errors.Is(err, domain.ErrSendFailed):
		return http.StatusBadGateway, "Failed to send SOS."
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
