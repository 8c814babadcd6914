package chat

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fitmatch-app/backend/internal/domain"
	"github.com/fitmatch-app/backend/internal/fanout"
	"github.com/fitmatch-app/backend/internal/presence"
	"github.com/fitmatch-app/backend/internal/repository/memory"
	"github.com/fitmatch-app/backend/internal/usecase/match"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	uc      *UseCase
	store   *memory.Store
	hub     *fanout.Hub
	tracker *presence.Tracker
	clock   *fakeClock
	u1, u2  int
	chatID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	clock := &fakeClock{now: time.Date(2025, 6, 12, 15, 0, 0, 0, time.UTC)}
	hub := fanout.NewHub(zerolog.Nop())

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tracker := presence.NewTracker(rdb, clock)

	u1 := seedUser(t, store, "a")
	u2 := seedUser(t, store, "b")

	// Open the chat the way production does: through a mutual like.
	matchUC := match.NewUseCase(store.Users(), store.Matches(), clock, zerolog.Nop())
	_, err := matchUC.Like(ctx, u1, u2)
	require.NoError(t, err)
	res, err := matchUC.Like(ctx, u2, u1)
	require.NoError(t, err)
	require.True(t, res.Mutual)

	uc := NewUseCase(store.Chats(), store.Users(), hub, tracker, clock, zerolog.Nop())
	return &fixture{
		uc: uc, store: store, hub: hub, tracker: tracker, clock: clock,
		u1: u1, u2: u2, chatID: res.ChatID,
	}
}

func seedUser(t *testing.T, store *memory.Store, name string) int {
	t.Helper()
	p := &domain.UserProfile{
		Name:         name,
		FitnessLevel: domain.LevelIntermediate,
		Active:       true,
		LocationLat:  38.7286,
		LocationLon:  -9.1527,
	}
	require.NoError(t, store.Users().Create(context.Background(), p, ""))
	return p.ID
}

func TestSendAppendsAndNotifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session := f.hub.Register(f.u2)
	require.NoError(t, f.hub.Subscribe(session.ID, f.chatID))

	msg, err := f.uc.Send(ctx, f.chatID, f.u1, "see you at the track?")
	require.NoError(t, err)
	assert.Equal(t, []int{f.u1}, msg.ReadBy, "sender reads their own message")
	assert.Equal(t, int64(1), msg.Seq)

	chat, err := f.uc.Get(ctx, f.chatID, f.u2)
	require.NoError(t, err)
	require.NotNil(t, chat.LastMessage)
	assert.Equal(t, msg.ID, chat.LastMessage.ID)
	assert.Equal(t, f.clock.now, chat.LastActivity)

	select {
	case ev := <-session.Events():
		assert.Equal(t, fanout.EventNewMessage, ev.Type)
		assert.Equal(t, f.chatID, ev.ChatID)
		require.NotNil(t, ev.Message)
		assert.Equal(t, msg.ID, ev.Message.ID)
	default:
		t.Fatal("expected a fanout event")
	}

	// Sending marks the sender active.
	online, err := f.tracker.IsOnline(ctx, f.u1)
	require.NoError(t, err)
	assert.True(t, online)
}

func TestSendValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Send(ctx, f.chatID, f.u1, "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)

	outsider := seedUser(t, f.store, "outsider")
	_, err = f.uc.Send(ctx, f.chatID, outsider, "hi")
	assert.ErrorIs(t, err, domain.ErrChatNotFound)

	_, err = f.uc.Send(ctx, "no-such-chat", f.u1, "hi")
	assert.ErrorIs(t, err, domain.ErrChatNotFound)
}

func TestSeqStaysMonotonicPerChat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		msg, err := f.uc.Send(ctx, f.chatID, f.u1, "ping")
		require.NoError(t, err)
		assert.Equal(t, int64(i), msg.Seq)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Send(ctx, f.chatID, f.u1, "one")
	require.NoError(t, err)
	_, err = f.uc.Send(ctx, f.chatID, f.u1, "two")
	require.NoError(t, err)

	n, err := f.uc.MarkRead(ctx, f.chatID, f.u2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = f.uc.MarkRead(ctx, f.chatID, f.u2)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// The sender has nothing to mark.
	n, err = f.uc.MarkRead(ctx, f.chatID, f.u1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestListForUserSummaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Send(ctx, f.chatID, f.u1, "free tomorrow?")
	require.NoError(t, err)

	summaries, err := f.uc.ListForUser(ctx, f.u2)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, f.chatID, s.ChatID)
	assert.Equal(t, "a", s.Partner.Name)
	assert.Equal(t, 1, s.UnreadCount)
	assert.Equal(t, "15:00", s.LastActivity)
	assert.True(t, s.PartnerOnline, "u1 just sent a message")

	// The sender sees no unread messages and an offline partner.
	summaries, err = f.uc.ListForUser(ctx, f.u1)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries[0].UnreadCount)
	assert.False(t, summaries[0].PartnerOnline)
}

func TestPartnerGoesStaleAfterWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Send(ctx, f.chatID, f.u1, "hey")
	require.NoError(t, err)

	f.clock.Advance(presence.OnlineWindow + time.Second)
	summaries, err := f.uc.ListForUser(ctx, f.u2)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.False(t, summaries[0].PartnerOnline)
	assert.Equal(t, "15:00", summaries[0].LastActivity, "still the same day")
}

func TestGetDetailFormatsHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Send(ctx, f.chatID, f.u1, "morning run?")
	require.NoError(t, err)
	f.clock.Advance(24 * time.Hour)
	_, err = f.uc.Send(ctx, f.chatID, f.u2, "yes!")
	require.NoError(t, err)

	detail, err := f.uc.GetDetail(ctx, f.chatID, f.u1)
	require.NoError(t, err)
	assert.Equal(t, "b", detail.Partner.Name)
	require.Len(t, detail.Messages, 2)
	assert.Equal(t, "yesterday", detail.Messages[0].SentAt)
	assert.Equal(t, "15:00", detail.Messages[1].SentAt)

	// Fetching history does not touch read receipts.
	n, err := f.uc.MarkRead(ctx, f.chatID, f.u1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = f.uc.GetDetail(ctx, f.chatID, 999)
	assert.ErrorIs(t, err, domain.ErrChatNotFound)
}

func TestArchivedChatIsHiddenAndClosed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Chats().Archive(ctx, f.chatID))

	summaries, err := f.uc.ListForUser(ctx, f.u1)
	require.NoError(t, err)
	assert.Empty(t, summaries)

	_, err = f.uc.Send(ctx, f.chatID, f.u1, "anyone there?")
	assert.ErrorIs(t, err, domain.ErrChatNotFound)

	_, err = f.uc.Get(ctx, f.chatID, f.u1)
	assert.ErrorIs(t, err, domain.ErrChatNotFound)

	_, err = f.uc.GetDetail(ctx, f.chatID, f.u1)
	assert.ErrorIs(t, err, domain.ErrChatNotFound)
}
