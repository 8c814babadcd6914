// Package presence tracks when users were last seen, backed by redis.
package presence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fitmatch-app/backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

// OnlineWindow is how recently a user must have been active to count
// as online.
const OnlineWindow = 5 * time.Minute

// Keys expire well after the online window so LastActive can still
// answer "last seen two hours ago" style queries.
const keyTTL = 24 * time.Hour

type Tracker struct {
	rdb   *redis.Client
	clock domain.Clock
}

func NewTracker(rdb *redis.Client, clock domain.Clock) *Tracker {
	return &Tracker{rdb: rdb, clock: clock}
}

func key(userID int) string {
	return fmt.Sprintf("presence:last_active:%d", userID)
}

// Touch records activity for the user at the current time.
func (t *Tracker) Touch(ctx context.Context, userID int) error {
	now := t.clock.Now().Unix()
	if err := t.rdb.Set(ctx, key(userID), now, keyTTL).Err(); err != nil {
		return fmt.Errorf("touch presence for user %d: %w", userID, err)
	}
	return nil
}

// LastActive returns the user's last recorded activity time. The second
// return value is false when the user has no recorded activity.
func (t *Tracker) LastActive(ctx context.Context, userID int) (time.Time, bool, error) {
	val, err := t.rdb.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("get presence for user %d: %w", userID, err)
	}
	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse presence for user %d: %w", userID, err)
	}
	return time.Unix(unix, 0), true, nil
}

// IsOnline reports whether the user was active within OnlineWindow.
func (t *Tracker) IsOnline(ctx context.Context, userID int) (bool, error) {
	last, ok, err := t.LastActive(ctx, userID)
	if err != nil || !ok {
		return false, err
	}
	return t.clock.Now().Sub(last) <= OnlineWindow, nil
}
