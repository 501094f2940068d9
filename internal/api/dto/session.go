package dto

import (
	"emergency-response-service/internal/domain"
	"time"

	"github.com/google/uuid"
)

type StartSessionRequest struct {
	LocationOverride
}

type HospitalResponse struct {
	Name      string         `json:"name"`
	Address   string         `json:"address"`
	Rating    *float64       `json:"rating,omitempty"`
	Location  *domain.LatLng `json:"location,omitempty"`
	SearchURL string         `json:"search_url"`
}

type SessionResponse struct {
	ID              uuid.UUID          `json:"id"`
	StartedAt       time.Time          `json:"started_at"`
	Location        *domain.Coordinate `json:"location"`
	MapURL          string             `json:"map_url,omitempty"`
	Hospitals       []HospitalResponse `json:"hospitals"`
	NearestHospital *HospitalResponse  `json:"nearest_hospital"`
	EmergencyNumber string             `json:"emergency_number"`
	DialURI         string             `json:"dial_uri"`
	ProfileRequired bool               `json:"profile_required"`
	Warnings        []string           `json:"warnings"`
}

func NewHospitalResponse(h domain.Hospital) HospitalResponse {
	return HospitalResponse{
		Name:      h.Name,
		Address:   h.Address,
		Rating:    h.Rating,
		Location:  h.Location,
		SearchURL: h.SearchURL(),
	}
}

func NewHospitalResponses(hs []domain.Hospital) []HospitalResponse {
	out := make([]HospitalResponse, 0, len(hs))
	for _, h := range hs {
		out = append(out, NewHospitalResponse(h))
	}
	return out
}
