package api

import (
	"emergency-response-service/internal/api/handlers"
	"emergency-response-service/internal/ports"
	"emergency-response-service/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the services the HTTP surface is built on.
type Deps struct {
	Sessions   *services.SessionManager
	Home       *services.HomeService
	Contacts   *services.ContactStore
	Profiles   *services.ProfileStore
	Dispatcher *services.SOSDispatcher
	Numbers    *services.EmergencyNumberResolver
	Hospitals  ports.HospitalSearch
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)

	sessions := &handlers.SessionHandler{Sessions: d.Sessions, Home: d.Home}
	contacts := &handlers.ContactHandler{Contacts: d.Contacts}
	profiles := &handlers.ProfileHandler{Profiles: d.Profiles}
	sos := &handlers.SOSHandler{Dispatcher: d.Dispatcher}
	lookups := &handlers.LookupHandler{Numbers: d.Numbers, Search: d.Hospitals}

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/nearby-hospitals", lookups.NearbyHospitals)
	r.Get("/emergency-number", lookups.EmergencyNumber)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessions.Start)
		r.Get("/{id}", sessions.Get)
		r.Delete("/{id}", sessions.End)
		r.Post("/{id}/guidance", sessions.AskGuidance)
		r.Get("/{id}/guidance", sessions.GuidanceState)
		r.Delete("/{id}/guidance", sessions.ResetGuidance)
	})

	r.Get("/contacts", contacts.List)
	r.Post("/contacts", contacts.Add)
	r.Delete("/contacts/{phone}", contacts.Remove)

	r.Get("/profile", profiles.Get)
	r.Put("/profile", profiles.Put)
	r.Get("/donors", profiles.Donors)

	r.Post("/sos", sos.Send)

	return r
}
