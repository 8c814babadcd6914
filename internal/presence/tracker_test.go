package presence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTracker(t *testing.T) (*Tracker, *fakeClock) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	clock := &fakeClock{now: time.Date(2025, 6, 12, 15, 0, 0, 0, time.UTC)}
	return NewTracker(rdb, clock), clock
}

func TestUnknownUserIsOffline(t *testing.T) {
	tracker, _ := newTracker(t)
	ctx := context.Background()

	online, err := tracker.IsOnline(ctx, 42)
	require.NoError(t, err)
	assert.False(t, online)

	_, ok, err := tracker.LastActive(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTouchMarksOnline(t *testing.T) {
	tracker, clock := newTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, 42))

	last, ok, err := tracker.LastActive(ctx, 42)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, clock.now.Unix(), last.Unix())

	online, err := tracker.IsOnline(ctx, 42)
	require.NoError(t, err)
	assert.True(t, online)
}

func TestOnlineWindowEdges(t *testing.T) {
	tracker, clock := newTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, 42))

	// Exactly at the window edge still counts as online.
	clock.now = clock.now.Add(OnlineWindow)
	online, err := tracker.IsOnline(ctx, 42)
	require.NoError(t, err)
	assert.True(t, online)

	clock.now = clock.now.Add(time.Second)
	online, err = tracker.IsOnline(ctx, 42)
	require.NoError(t, err)
	assert.False(t, online)
}

func TestTouchRefreshesWindow(t *testing.T) {
	tracker, clock := newTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.Touch(ctx, 42))
	clock.now = clock.now.Add(10 * time.Minute)
	require.NoError(t, tracker.Touch(ctx, 42))

	online, err := tracker.IsOnline(ctx, 42)
	require.NoError(t, err)
	assert.True(t, online)
}
