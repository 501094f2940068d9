package handlers

import (
	"emergency-response-service/internal/api/dto"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"emergency-response-service/internal/services"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type ContactHandler struct {
	Contacts *services.ContactStore
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Contacts.List(r.Context())
	if err != nil {
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("list contacts failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListContactsResponse{Contacts: contacts})
}

func (h *ContactHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	phone := strings.TrimSpace(req.Phone)
	if req.DialCode != "" {
		phone = domain.FormatPhone(req.DialCode, phone)
	}
	c := domain.Contact{Name: strings.TrimSpace(req.Name), Phone: phone}

	if err := h.Contacts.Add(r.Context(), c); err != nil {
		if errors.Is(err, domain.ErrInvalidContact) {
			writeError(w, r, http.StatusBadRequest, "Please enter both name and phone number")
			return
		}
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("add contact failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, c)
}

func (h *ContactHandler) Remove(w http.ResponseWriter, r *http.Request) {
	phone, err := url.PathUnescape(chi.URLParam(r, "phone"))
	if err != nil || strings.TrimSpace(phone) == "" {
		writeError(w, r, http.StatusBadRequest, "invalid phone")
		return
	}

	removed, err := h.Contacts.Remove(r.Context(), phone)
	if err != nil {
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("remove contact failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if removed == 0 {
		writeError(w, r, http.StatusNotFound, "contact not found")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RemoveContactResponse{Removed: removed})
}
