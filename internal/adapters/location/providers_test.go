package location

import (
	"context"
	"emergency-response-service/internal/domain"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var here = domain.Coordinate{Latitude: 40.7128, Longitude: -74.006}

func TestChainReturnsFirstFix(t *testing.T) {
	denied := errors.New("permission denied")
	second := &Counting{Next: NewStatic(here)}
	third := &Counting{Next: NewStatic(domain.Coordinate{Latitude: 1, Longitude: 1})}

	got, err := Chain{Unavailable{Err: denied}, second, third}.CurrentLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, here, got)
	assert.Equal(t, 1, second.Calls)
	assert.Equal(t, 0, third.Calls)
}

func TestChainJoinsFailures(t *testing.T) {
	denied := errors.New("permission denied")

	_, err := Chain{Unavailable{Err: denied}, Unavailable{}}.CurrentLocation(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, denied)
	assert.ErrorIs(t, err, ErrNoFix)
}

func TestEmptyChain(t *testing.T) {
	_, err := Chain{}.CurrentLocation(context.Background())
	assert.ErrorIs(t, err, ErrNoFix)
}

func TestReportedValidates(t *testing.T) {
	got, err := Reported(here).CurrentLocation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, here, got)

	_, err = Reported{Latitude: 91}.CurrentLocation(context.Background())
	require.Error(t, err)
}

func TestStaticHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStatic(here).CurrentLocation(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
