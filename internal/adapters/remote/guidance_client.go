package remote

import (
	"bytes"
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type guidanceRequest struct {
	Message string `json:"message"`
}

// GuidanceAPIClient implements GuidanceProvider against
// POST /api/emergency-response. The request is not retried; the caller owns
// the time budget.
type GuidanceAPIClient struct {
	c *client
}

func NewGuidanceAPIClient(baseURL string, opts ...Option) (*GuidanceAPIClient, error) {
	if baseURL == "" {
		return nil, errors.New("guidance api base url is empty")
	}
	// The guidance call is bounded by the caller's timeout, not the transport's.
	opts = append([]Option{WithHTTPClient(&http.Client{})}, opts...)
	return &GuidanceAPIClient{c: newClient(baseURL, opts...)}, nil
}

func (g *GuidanceAPIClient) Guidance(ctx context.Context, message string) (_ domain.GuidanceResult, err error) {
	defer obs.Time(ctx, "guidance.Guidance")(&err)

	payload, err := json.Marshal(guidanceRequest{Message: message})
	if err != nil {
		return domain.GuidanceResult{}, fmt.Errorf("marshal guidance request: %w", err)
	}

	req, err := g.c.newRequest(ctx, http.MethodPost, g.c.baseURL+"/api/emergency-response", bytes.NewReader(payload))
	if err != nil {
		return domain.GuidanceResult{}, fmt.Errorf("guidance request: %w", err)
	}

	resp, err := g.c.do(req)
	if err != nil {
		return domain.GuidanceResult{}, fmt.Errorf("guidance request failed: %w", err)
	}
	defer resp.Body.Close()

	var res domain.GuidanceResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return domain.GuidanceResult{}, fmt.Errorf("decode guidance response: %w", err)
	}

	return res, nil
}
