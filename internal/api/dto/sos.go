package dto

import (
	"emergency-response-service/internal/domain"
	"time"
)

type SOSRequest struct {
	LocationOverride
}

type SOSResponse struct {
	Status     string            `json:"status"`
	Recipients []string          `json:"recipients"`
	Message    string            `json:"message"`
	Location   domain.Coordinate `json:"location"`
	SentAt     time.Time         `json:"sent_at"`
}

type EmergencyNumberResponse struct {
	Number  string `json:"number"`
	DialURI string `json:"dial_uri"`
}

type DonorsResponse struct {
	Donors []domain.UserProfile `json:"donors"`
}
