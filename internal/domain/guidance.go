package domain

import (
	"encoding/json"
	"fmt"
)

const UnknownEmergencyType = "unknown"

type GuidanceKind string

const (
	GuidanceKnown   GuidanceKind = "known"
	GuidanceUnknown GuidanceKind = "unknown"
)

type Remedy struct {
	Steps    []string `json:"steps"`
	Warnings []string `json:"warnings"`
	Call911  string   `json:"call_911"`
}

// GuidanceResult is the normalized answer from the guidance endpoint.
// Exactly one of Known or Unknown is set.
type GuidanceResult struct {
	Known   *KnownGuidance
	Unknown *UnknownGuidance
}

type KnownGuidance struct {
	EmergencyType string   `json:"emergency_type"`
	Remedy        Remedy   `json:"remedy"`
	Disclaimer    string   `json:"disclaimer"`
	Confidence    *float64 `json:"confidence,omitempty"`
}

type UnknownGuidance struct {
	EmergencyType string   `json:"emergency_type"`
	Message       string   `json:"message"`
	GeneralAdvice string   `json:"general_advice,omitempty"`
	Confidence    *float64 `json:"confidence,omitempty"`
}

func UnknownResult(message string) GuidanceResult {
	return GuidanceResult{Unknown: &UnknownGuidance{
		EmergencyType: UnknownEmergencyType,
		Message:       message,
	}}
}

func (g GuidanceResult) Kind() GuidanceKind {
	if g.Known != nil {
		return GuidanceKnown
	}
	return GuidanceUnknown
}

func (g GuidanceResult) EmergencyType() string {
	if g.Known != nil {
		return g.Known.EmergencyType
	}
	return UnknownEmergencyType
}

func (g GuidanceResult) MarshalJSON() ([]byte, error) {
	if g.Known != nil {
		return json.Marshal(g.Known)
	}
	if g.Unknown != nil {
		return json.Marshal(g.Unknown)
	}
	return json.Marshal(UnknownGuidance{EmergencyType: UnknownEmergencyType})
}

// UnmarshalJSON discriminates on emergency_type: "unknown" (or a missing
// type) decodes as UnknownGuidance, anything else as KnownGuidance.
func (g *GuidanceResult) UnmarshalJSON(b []byte) error {
	var probe struct {
		EmergencyType string `json:"emergency_type"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return fmt.Errorf("decode guidance result: %w", err)
	}

	if probe.EmergencyType == "" || probe.EmergencyType == UnknownEmergencyType {
		var u UnknownGuidance
		if err := json.Unmarshal(b, &u); err != nil {
			return fmt.Errorf("decode unknown guidance: %w", err)
		}
		u.EmergencyType = UnknownEmergencyType
		*g = GuidanceResult{Unknown: &u}
		return nil
	}

	var k KnownGuidance
	if err := json.Unmarshal(b, &k); err != nil {
		return fmt.Errorf("decode known guidance: %w", err)
	}
	if k.Remedy.Steps == nil {
		k.Remedy.Steps = []string{}
	}
	if k.Remedy.Warnings == nil {
		k.Remedy.Warnings = []string{}
	}
	*g = GuidanceResult{Known: &k}
	return nil
}
