package services

import (
	"context"
	"emergency-response-service/internal/platform/obs"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// HomeService runs the home-context bootstrap for a session: resolve the
// location once, then fetch hospitals and resolve the dial number concurrently.
type HomeService struct {
	locator  *LocationResolver
	ranker   *HospitalRanker
	numbers  *EmergencyNumberResolver
	profiles *ProfileStore
	timeout  time.Duration
}

func NewHomeService(
	locator *LocationResolver,
	ranker *HospitalRanker,
	numbers *EmergencyNumberResolver,
	profiles *ProfileStore,
) *HomeService {
	return &HomeService{
		locator:  locator,
		ranker:   ranker,
		numbers:  numbers,
		profiles: profiles,
	}
}

// WithLocator returns a copy of h resolving location through locator.
func (h *HomeService) WithLocator(locator *LocationResolver) *HomeService {
	cp := *h
	cp.locator = locator
	return &cp
}

// WithTimeout returns a copy of h that bounds each Enter call by d. Lookups
// still running at the deadline fall back to their defaults. Zero disables it.
func (h *HomeService) WithTimeout(d time.Duration) *HomeService {
	cp := *h
	cp.timeout = d
	return &cp
}

// Enter populates sess and returns its snapshot. It never fails: a missing
// location leaves hospitals empty and the number at its default, and each
// branch swallows its own error so neither cancels the other.
func (h *HomeService) Enter(ctx context.Context, sess *Session) SessionSnapshot {
	reqID := obs.RequestID(ctx)

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	if h.profiles != nil {
		p, err := h.profiles.Load(ctx)
		if err != nil {
			log.Warn().Str("req_id", reqID).Err(err).Msg("home: profile load failed")
			sess.addWarning("profile unavailable")
		} else {
			sess.SetProfileRequired(p == nil)
		}
	}

	coord, err := h.locator.Resolve(ctx)
	if err != nil {
		log.Warn().Str("req_id", reqID).Str("session", sess.ID.String()).Err(err).Msg("home: location unavailable")
		sess.addWarning("location unavailable")
		return sess.Snapshot()
	}
	sess.SetLocation(coord)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hospitals, err := h.ranker.Fetch(gctx, coord)
		if err != nil {
			log.Warn().Str("req_id", reqID).Err(err).Msg("home: hospital search failed")
			sess.addWarning("hospital search failed")
			return nil
		}
		sess.SetHospitals(hospitals)
		return nil
	})

	g.Go(func() error {
		sess.SetEmergencyNumber(h.numbers.Resolve(gctx, coord))
		return nil
	})

	_ = g.Wait()

	return sess.Snapshot()
}
