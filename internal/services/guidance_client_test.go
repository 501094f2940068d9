package services

import (
	"context"
	"emergency-response-service/internal/adapters/remote"
	"emergency-response-service/internal/domain"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guidanceFunc func(ctx context.Context, message string) (domain.GuidanceResult, error)

func (f guidanceFunc) Guidance(ctx context.Context, message string) (domain.GuidanceResult, error) {
	return f(ctx, message)
}

func knownBurn() domain.GuidanceResult {
	return domain.GuidanceResult{Known: &domain.KnownGuidance{
		EmergencyType: "burn",
		Remedy:        domain.Remedy{Steps: []string{"Cool the burn under running water"}, Warnings: []string{}},
	}}
}

func blockUntilCancelled(ctx context.Context, message string) (domain.GuidanceResult, error) {
	<-ctx.Done()
	return domain.GuidanceResult{}, ctx.Err()
}

func TestGuidanceResolvesBeforeTimeout(t *testing.T) {
	provider := &remote.MockGuidanceProvider{Delay: 5 * time.Millisecond, Result: knownBurn()}
	c := NewGuidanceClient(provider, WithGuidanceTimeout(500*time.Millisecond))

	st, err := c.Ask(context.Background(), "  my hand is burned ")
	require.NoError(t, err)
	assert.Equal(t, PhaseResolved, st.Phase)
	assert.Equal(t, "my hand is burned", st.Query)
	require.NotNil(t, st.Result)
	assert.Equal(t, "burn", st.Result.EmergencyType())
	assert.Nil(t, st.NearestHospital)
}

func TestGuidanceTimesOut(t *testing.T) {
	provider := &remote.MockGuidanceProvider{Delay: time.Second, Result: knownBurn()}
	c := NewGuidanceClient(provider, WithGuidanceTimeout(20*time.Millisecond))

	st, err := c.Ask(context.Background(), "burn")
	require.NoError(t, err)
	assert.Equal(t, PhaseTimedOut, st.Phase)
	assert.Nil(t, st.Result)

	require.Eventually(t, func() bool { return provider.Returned.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestGuidanceLateResponseIsDiscarded(t *testing.T) {
	provider := &remote.MockGuidanceProvider{Delay: 60 * time.Millisecond, Result: knownBurn(), IgnoreCancel: true}
	c := NewGuidanceClient(provider, WithGuidanceTimeout(10*time.Millisecond))

	st, err := c.Ask(context.Background(), "burn")
	require.NoError(t, err)
	require.Equal(t, PhaseTimedOut, st.Phase)

	require.Eventually(t, func() bool { return provider.Returned.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	after := c.State()
	assert.Equal(t, PhaseTimedOut, after.Phase)
	assert.Nil(t, after.Result)
	assert.Equal(t, st.RequestID, after.RequestID)
}

func TestGuidanceNewAskSupersedesInFlight(t *testing.T) {
	provider := guidanceFunc(func(ctx context.Context, message string) (domain.GuidanceResult, error) {
		if message == "first" {
			return blockUntilCancelled(ctx, message)
		}
		return knownBurn(), nil
	})
	c := NewGuidanceClient(provider, WithGuidanceTimeout(time.Second))

	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Ask(context.Background(), "first")
		firstErr <- err
	}()
	require.Eventually(t, func() bool {
		st := c.State()
		return st.Phase == PhaseLoading && st.Query == "first"
	}, time.Second, time.Millisecond)

	st, err := c.Ask(context.Background(), "second")
	require.NoError(t, err)
	assert.Equal(t, PhaseResolved, st.Phase)
	assert.Equal(t, "second", st.Query)

	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, domain.ErrGuidanceSuperseded)
	case <-time.After(time.Second):
		t.Fatal("superseded ask did not return")
	}

	assert.Equal(t, "second", c.State().Query)
}

func TestGuidanceResetCancelsInFlight(t *testing.T) {
	c := NewGuidanceClient(guidanceFunc(blockUntilCancelled), WithGuidanceTimeout(time.Second))

	errc := make(chan error, 1)
	go func() {
		_, err := c.Ask(context.Background(), "burn")
		errc <- err
	}()
	require.Eventually(t, func() bool { return c.State().Phase == PhaseLoading }, time.Second, time.Millisecond)

	st := c.Reset()
	assert.Equal(t, PhaseIdle, st.Phase)

	assert.ErrorIs(t, <-errc, domain.ErrGuidanceSuperseded)
	assert.Equal(t, PhaseIdle, c.State().Phase)
}

func TestGuidanceCallerCancellationAbandons(t *testing.T) {
	c := NewGuidanceClient(guidanceFunc(blockUntilCancelled), WithGuidanceTimeout(time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	st, err := c.Ask(ctx, "burn")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, PhaseIdle, st.Phase)
}

func TestGuidanceEmptyTextIsNoop(t *testing.T) {
	provider := &remote.MockGuidanceProvider{Result: knownBurn()}
	c := NewGuidanceClient(provider)

	st, err := c.Ask(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Zero(t, provider.Calls.Load())
}

func TestGuidanceTransportErrorBecomesUnknown(t *testing.T) {
	provider := &remote.MockGuidanceProvider{Err: errors.New("connection refused")}
	c := NewGuidanceClient(provider, WithGuidanceTimeout(time.Second))

	st, err := c.Ask(context.Background(), "burn")
	require.NoError(t, err)
	assert.Equal(t, PhaseResolved, st.Phase)
	require.NotNil(t, st.Result)
	assert.Equal(t, domain.GuidanceUnknown, st.Result.Kind())
	assert.Equal(t, "Error fetching advice: connection refused", st.Result.Unknown.Message)
}

func TestGuidanceAttachesNearestHospitalToKnownOnly(t *testing.T) {
	hospitals := []domain.Hospital{{Name: "City General"}, {Name: "Second"}}
	nearest := func() (domain.Hospital, bool) { return domain.NearestHospital(hospitals) }

	known := NewGuidanceClient(&remote.MockGuidanceProvider{Result: knownBurn()}, WithNearestHospital(nearest))
	st, err := known.Ask(context.Background(), "burn")
	require.NoError(t, err)
	require.NotNil(t, st.NearestHospital)
	assert.Equal(t, "City General", st.NearestHospital.Name)

	unknown := NewGuidanceClient(&remote.MockGuidanceProvider{Result: domain.UnknownResult("describe more")}, WithNearestHospital(nearest))
	st, err = unknown.Ask(context.Background(), "???")
	require.NoError(t, err)
	assert.Nil(t, st.NearestHospital)
}

func TestSessionManagerWiresNearestHospital(t *testing.T) {
	m := NewSessionManager(&remote.MockGuidanceProvider{Result: knownBurn()}, WithGuidanceTimeout(time.Second))
	s := m.Start()
	s.SetHospitals([]domain.Hospital{{Name: "Closest"}})

	st, err := s.Guidance().Ask(context.Background(), "burn")
	require.NoError(t, err)
	require.NotNil(t, st.NearestHospital)
	assert.Equal(t, "Closest", st.NearestHospital.Name)

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	assert.True(t, m.End(s.ID))
	assert.False(t, m.End(s.ID))
	assert.Zero(t, m.Len())
}

func TestSessionManagerExpiresIdleSessions(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewSessionManager(&remote.MockGuidanceProvider{Result: knownBurn()})
	m.now = func() time.Time { return clock }
	m.SetIdleTTL(time.Minute)

	idle := m.Start()
	active := m.Start()

	clock = clock.Add(45 * time.Second)
	_, ok := m.Get(active.ID)
	require.True(t, ok)

	clock = clock.Add(30 * time.Second)
	_, ok = m.Get(idle.ID)
	assert.False(t, ok)
	_, ok = m.Get(active.ID)
	assert.True(t, ok)

	clock = clock.Add(2 * time.Minute)
	m.Start()
	assert.Equal(t, 1, m.Len())
	assert.False(t, m.End(active.ID))
}

func TestSessionManagerWithoutTTLKeepsSessions(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewSessionManager(&remote.MockGuidanceProvider{Result: knownBurn()})
	m.now = func() time.Time { return clock }

	s := m.Start()
	clock = clock.Add(24 * time.Hour)

	_, ok := m.Get(s.ID)
	assert.True(t, ok)
}
