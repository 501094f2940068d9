package handlers

import (
	"emergency-response-service/internal/api/dto"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"emergency-response-service/internal/services"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SessionHandler manages home sessions and their guidance state machines.
type SessionHandler struct {
	Sessions *services.SessionManager
	Home     *services.HomeService
}

func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req dto.StartSessionRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	home := h.Home
	loc, err := reportedLocator(req.LocationOverride)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if loc != nil {
		home = home.WithLocator(loc)
	}

	sess := h.Sessions.Start()
	snap := home.Enter(r.Context(), sess)

	log.Info().
		Str("req_id", obs.RequestID(r.Context())).
		Str("session", sess.ID.String()).
		Int("hospitals", len(snap.Hospitals)).
		Str("emergency_number", snap.EmergencyNumber).
		Msg("session started")

	writeJSON(w, r, http.StatusCreated, sessionResponse(snap))
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse(sess.Snapshot()))
}

func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid session id")
		return
	}
	if !h.Sessions.End(id) {
		writeError(w, r, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AskGuidance blocks until the request resolves, times out or is superseded.
func (h *SessionHandler) AskGuidance(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req dto.AskGuidanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	st, err := sess.Guidance().Ask(r.Context(), req.Message)
	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, guidanceResponse(st))
	case errors.Is(err, domain.ErrGuidanceSuperseded):
		writeJSON(w, r, http.StatusConflict, guidanceResponse(st))
	default:
		// Caller went away; nothing useful to write.
		log.Debug().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("guidance request abandoned")
	}
}

func (h *SessionHandler) GuidanceState(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, guidanceResponse(sess.Guidance().State()))
}

func (h *SessionHandler) ResetGuidance(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, guidanceResponse(sess.Guidance().Reset()))
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid session id")
		return nil, false
	}
	sess, ok := h.Sessions.Get(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

func sessionResponse(s services.SessionSnapshot) dto.SessionResponse {
	res := dto.SessionResponse{
		ID:              s.ID,
		StartedAt:       s.StartedAt,
		Location:        s.Location,
		Hospitals:       dto.NewHospitalResponses(s.Hospitals),
		EmergencyNumber: s.EmergencyNumber,
		DialURI:         domain.DialURI(s.EmergencyNumber),
		ProfileRequired: s.ProfileRequired,
		Warnings:        s.Warnings,
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	if s.Location != nil {
		res.MapURL = s.Location.MapURL()
	}
	if s.NearestHospital != nil {
		nh := dto.NewHospitalResponse(*s.NearestHospital)
		res.NearestHospital = &nh
	}
	return res
}

func guidanceResponse(st services.GuidanceState) dto.GuidanceStateResponse {
	res := dto.GuidanceStateResponse{
		Phase:     string(st.Phase),
		RequestID: st.RequestID,
		Query:     st.Query,
		Result:    st.Result,
		UpdatedAt: st.UpdatedAt,
	}
	if st.NearestHospital != nil {
		nh := dto.NewHospitalResponse(*st.NearestHospital)
		res.NearestHospital = &nh
	}
	if st.Phase == services.PhaseTimedOut {
		res.Message = domain.ErrTimedOut.Error()
	}
	return res
}
