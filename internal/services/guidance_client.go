package services

import (
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"emergency-response-service/internal/ports"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultGuidanceTimeout = 15 * time.Second

type GuidancePhase string

const (
	PhaseIdle     GuidancePhase = "idle"
	PhaseLoading  GuidancePhase = "loading"
	PhaseResolved GuidancePhase = "resolved"
	PhaseTimedOut GuidancePhase = "timed_out"
)

// Snapshot of the guidance state machine. RequestID is the generation that
// produced the state.
type GuidanceState struct {
	Phase           GuidancePhase
	RequestID       uint64
	Query           string
	Result          *domain.GuidanceResult
	NearestHospital *domain.Hospital
	UpdatedAt       time.Time
}

type GuidanceOption func(*GuidanceClient)

func WithGuidanceTimeout(d time.Duration) GuidanceOption {
	return func(c *GuidanceClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithNearestHospital sets the lookup attached to Known results.
func WithNearestHospital(fn func() (domain.Hospital, bool)) GuidanceOption {
	return func(c *GuidanceClient) { c.nearest = fn }
}

// GuidanceClient drives Idle → Loading → {Resolved | TimedOut}.
//
// Every Ask bumps a generation counter. Transitions carry the generation that
// started them and are dropped when it is no longer current, so a late
// response, a superseded request or a fired timer can never overwrite newer state.
type GuidanceClient struct {
	provider ports.GuidanceProvider
	timeout  time.Duration
	nearest  func() (domain.Hospital, bool)
	now      func() time.Time

	mu     sync.Mutex
	gen    uint64
	state  GuidanceState
	cancel context.CancelFunc
}

func NewGuidanceClient(provider ports.GuidanceProvider, opts ...GuidanceOption) *GuidanceClient {
	c := &GuidanceClient{
		provider: provider,
		timeout:  DefaultGuidanceTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.state = GuidanceState{Phase: PhaseIdle, UpdatedAt: c.now()}
	return c
}

func (c *GuidanceClient) State() GuidanceState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset returns to Idle and invalidates any in-flight request.
func (c *GuidanceClient) Reset() GuidanceState {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
	c.state = GuidanceState{Phase: PhaseIdle, RequestID: c.gen, UpdatedAt: c.now()}
	return c.state
}

type guidanceOutcome struct {
	result domain.GuidanceResult
	err    error
}

// Ask sends text to the guidance endpoint and blocks until this request
// settles. Empty text is a no-op. A request replaced by a newer Ask returns
// domain.ErrGuidanceSuperseded with the newer state. A timeout is not an
// error: the returned state is PhaseTimedOut.
func (c *GuidanceClient) Ask(ctx context.Context, text string) (GuidanceState, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return c.State(), nil
	}

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	id := c.gen
	c.cancel = cancel
	c.state = GuidanceState{Phase: PhaseLoading, RequestID: id, Query: text, UpdatedAt: c.now()}
	c.mu.Unlock()

	// Buffered so a response arriving after timeout or supersession never blocks.
	done := make(chan guidanceOutcome, 1)
	go func() {
		res, err := c.provider.Guidance(reqCtx, text)
		done <- guidanceOutcome{result: res, err: err}
	}()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case o := <-done:
		if ctx.Err() != nil {
			return c.abandon(id, ctx.Err())
		}
		if reqCtx.Err() != nil {
			// Cancelled by a newer Ask or a Reset.
			obs.ObserveGuidance("superseded")
			return c.State(), domain.ErrGuidanceSuperseded
		}
		return c.resolve(ctx, id, o)

	case <-timer.C:
		st, ok := c.settle(id, func(s *GuidanceState) {
			s.Phase = PhaseTimedOut
		})
		if !ok {
			obs.ObserveGuidance("superseded")
			return st, domain.ErrGuidanceSuperseded
		}
		log.Warn().Str("req_id", obs.RequestID(ctx)).Uint64("request", id).Dur("timeout", c.timeout).Msg("guidance request timed out")
		obs.ObserveGuidance("timed_out")
		return st, nil

	case <-ctx.Done():
		return c.abandon(id, ctx.Err())
	}
}

func (c *GuidanceClient) resolve(ctx context.Context, id uint64, o guidanceOutcome) (GuidanceState, error) {
	result := o.result
	outcome := "resolved"
	if o.err != nil {
		// Transport failures are recovered locally as an Unknown result.
		result = domain.UnknownResult("Error fetching advice: " + o.err.Error())
		outcome = "recovered"
		log.Warn().Str("req_id", obs.RequestID(ctx)).Uint64("request", id).Err(o.err).Msg("guidance request failed")
	}

	var nearest *domain.Hospital
	if result.Kind() == domain.GuidanceKnown && c.nearest != nil {
		if h, ok := c.nearest(); ok {
			nearest = &h
		}
	}

	st, ok := c.settle(id, func(s *GuidanceState) {
		s.Phase = PhaseResolved
		s.Result = &result
		s.NearestHospital = nearest
	})
	if !ok {
		obs.ObserveGuidance("superseded")
		return st, domain.ErrGuidanceSuperseded
	}
	obs.ObserveGuidance(outcome)
	return st, nil
}

// settle applies a terminal transition only if id is still the current
// generation and the machine is still loading it.
func (c *GuidanceClient) settle(id uint64, apply func(*GuidanceState)) (GuidanceState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id != c.gen || c.state.Phase != PhaseLoading {
		return c.state, false
	}

	apply(&c.state)
	c.state.UpdatedAt = c.now()
	c.cancel = nil
	return c.state, true
}

func (c *GuidanceClient) abandon(id uint64, err error) (GuidanceState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id == c.gen && c.state.Phase == PhaseLoading {
		c.state = GuidanceState{Phase: PhaseIdle, RequestID: id, UpdatedAt: c.now()}
		c.cancel = nil
	}
	obs.ObserveGuidance("abandoned")
	return c.state, err
}
