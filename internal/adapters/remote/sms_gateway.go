package remote

import (
	"bytes"
	"context"
	"emergency-response-service/internal/platform/obs"
	"emergency-response-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type smsRequest struct {
	Recipients []string `json:"recipients"`
	Body       string   `json:"body"`
}

// SMSGateway implements Messenger by posting one dispatch to an HTTP SMS
// gateway. The gateway's "result" field is passed through untouched; judging
// it is left to the caller.
type SMSGateway struct {
	c *client
}

func NewSMSGateway(endpoint, token string, opts ...Option) (*SMSGateway, error) {
	if endpoint == "" {
		return nil, errors.New("sms gateway url is empty")
	}
	if token != "" {
		opts = append([]Option{WithHeader("Authorization", "Bearer "+token)}, opts...)
	}
	return &SMSGateway{c: newClient(endpoint, opts...)}, nil
}

func (s *SMSGateway) Send(ctx context.Context, recipients []string, body string) (_ ports.SendReport, err error) {
	defer obs.Time(ctx, "sms.Send")(&err)

	payload, err := json.Marshal(smsRequest{Recipients: recipients, Body: body})
	if err != nil {
		return ports.SendReport{}, fmt.Errorf("marshal sms request: %w", err)
	}

	req, err := s.c.newRequest(ctx, http.MethodPost, s.c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return ports.SendReport{}, fmt.Errorf("sms request: %w", err)
	}

	// Not retried: a resend could deliver the alert twice.
	resp, err := s.c.do(req)
	if err != nil {
		return ports.SendReport{}, fmt.Errorf("sms dispatch to %d recipients: %w", len(recipients), err)
	}
	defer resp.Body.Close()

	var report ports.SendReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return ports.SendReport{}, fmt.Errorf("decode sms response: %w", err)
	}
	report.Result = strings.TrimSpace(report.Result)

	return report, nil
}
