package dto

import (
	"emergency-response-service/internal/domain"
	"time"
)

type AskGuidanceRequest struct {
	Message string `json:"message"`
}

type GuidanceStateResponse struct {
	Phase           string                 `json:"phase"`
	RequestID       uint64                 `json:"request_id"`
	Query           string                 `json:"query,omitempty"`
	Result          *domain.GuidanceResult `json:"result,omitempty"`
	NearestHospital *HospitalResponse      `json:"nearest_hospital,omitempty"`
	Message         string                 `json:"message,omitempty"`
	UpdatedAt       time.Time              `json:"updated_at"`
}
