package client

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-client/internal/audio"
	"github.com/rocketscienceinc/tictactoe-client/internal/chat"
	"github.com/rocketscienceinc/tictactoe-client/internal/connection"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/event"
	"github.com/rocketscienceinc/tictactoe-client/internal/match"
	"github.com/rocketscienceinc/tictactoe-client/internal/notify"
	"github.com/rocketscienceinc/tictactoe-client/internal/scheduler"
	"github.com/rocketscienceinc/tictactoe-client/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopEmitter struct{}

func (nopEmitter) Emit(string, any) error { return nil }

type gateStoreStub struct{}

func (gateStoreStub) SaveSoundEnabled(context.Context, bool) error { return nil }

type prefsStoreStub struct{}

func (prefsStoreStub) SaveRecentEmojis(context.Context, []string) error { return nil }

func (prefsStoreStub) SaveChatSettings(context.Context, entity.ChatSettings) error { return nil }

type roomStub struct{}

func (roomStub) RoomID() string { return "AB12" }

func newTestClient(t *testing.T) (*Client, *entity.PlayerInfo, *chat.Session) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	player := &entity.PlayerInfo{}
	sink := &view.NopSink{Caps: view.Capabilities{view.CapabilityChat: true}}
	gate := audio.New(logger, gateStoreStub{}, true, map[string]audio.Clip{})

	var loop *Client
	sched := scheduler.New(func(fn func()) { loop.Post(fn) })

	notifier := notify.New(logger, sink, gate, sched, notify.DefaultTiming)
	lifecycle := connection.New(logger, notifier, sink, player)

	chatSession := chat.NewSession(logger, nopEmitter{}, sink, gate, sched, prefsStoreStub{}, player, roomStub{}, entity.DefaultChatSettings(), nil, chat.DefaultTiming)
	matchSession := match.NewSession(logger, nopEmitter{}, sink, gate, notifier, chatSession, sched, player, match.DefaultTiming)

	loop = New(logger, lifecycle, matchSession, chatSession)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = loop.Run(ctx) }()

	return loop, player, chatSession
}

func TestClient_DispatchRouting(t *testing.T) {
	loop, player, chatSession := newTestClient(t)

	// When: identity and a chat message arrive through the loop
	loop.Dispatch(event.Connected{ClientID: "p1"})
	loop.Dispatch(event.ChatMessage{Message: entity.ChatMessage{
		MessageID:  "m1",
		PlayerID:   "p2",
		PlayerName: "Noah",
		Message:    "hello",
		Type:       entity.MessageTypeText,
	}})

	// Then: both were handled, in order, on the loop goroutine
	type probe struct {
		playerID string
		history  int
	}

	got := make(chan probe, 1)
	loop.Post(func() {
		got <- probe{playerID: player.ID, history: len(chatSession.History())}
	})

	select {
	case result := <-got:
		assert.Equal(t, "p1", result.playerID)
		assert.Equal(t, 1, result.history)
	case <-time.After(time.Second):
		t.Fatal("dispatch loop never processed the probe")
	}
}

func TestClient_SchedulerCallbacksRunOnLoop(t *testing.T) {
	loop, _, _ := newTestClient(t)

	// Given: a scheduler wired through Post, handlers and timer callbacks
	// must interleave instead of racing
	sched := scheduler.New(loop.Post)

	fired := make(chan struct{}, 1)
	sched.After(time.Millisecond, func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("scheduled callback never ran")
	}
}

func TestClient_RunStopsOnCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loop := New(logger, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := loop.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
