package connection

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/rocketscienceinc/tictactoe-client/internal/audio"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/notify"
	"github.com/rocketscienceinc/tictactoe-client/internal/scheduler"
	"github.com/rocketscienceinc/tictactoe-client/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sinkRecorder struct {
	view.NopSink

	mu            sync.Mutex
	screens       []view.Screen
	notifications []string
}

func (that *sinkRecorder) ShowScreen(screen view.Screen) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.screens = append(that.screens, screen)
}

func (that *sinkRecorder) ShowNotification(_, message, _ string) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.notifications = append(that.notifications, message)
}

type storeStub struct{}

func (storeStub) SaveSoundEnabled(context.Context, bool) error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLifecycle(player *entity.PlayerInfo) (*Lifecycle, *sinkRecorder) {
	sink := &sinkRecorder{}
	gate := audio.New(testLogger(), storeStub{}, true, map[string]audio.Clip{})
	sched := scheduler.New(func(fn func()) { fn() })
	notifier := notify.New(testLogger(), sink, gate, sched, notify.DefaultTiming)

	return New(testLogger(), notifier, sink, player), sink
}

func TestLifecycle_HandleOpen(t *testing.T) {
	// Given: a fresh session with no identity
	player := &entity.PlayerInfo{}
	lifecycle, sink := newTestLifecycle(player)

	// When: the transport opens
	lifecycle.HandleOpen("conn-1")

	// Then: the connection id becomes the provisional identity and the
	// menu is revealed
	assert.Equal(t, StatusConnected, lifecycle.Status())
	assert.Equal(t, "conn-1", player.ID)
	require.NotEmpty(t, sink.screens)
	assert.Equal(t, view.ScreenMenu, sink.screens[0])
	assert.Contains(t, sink.notifications, "Connected to server!")
}

func TestLifecycle_IdentityPrecedence(t *testing.T) {
	t.Run("Authoritative_OverridesProvisional", func(t *testing.T) {
		player := &entity.PlayerInfo{}
		lifecycle, _ := newTestLifecycle(player)

		lifecycle.HandleOpen("conn-1")
		lifecycle.HandleIdentity("p1")

		assert.Equal(t, "p1", player.ID)
	})

	t.Run("Provisional_NeverClobbersAssigned", func(t *testing.T) {
		// Given: an authoritative identity from a previous connection
		player := &entity.PlayerInfo{}
		lifecycle, _ := newTestLifecycle(player)
		lifecycle.HandleIdentity("p1")

		// When: a reconnect opens with a new connection id
		lifecycle.HandleOpen("conn-2")

		// Then: the assigned identity survives
		assert.Equal(t, "p1", player.ID)
	})

	t.Run("Empty_IDIgnored", func(t *testing.T) {
		player := &entity.PlayerInfo{}
		lifecycle, _ := newTestLifecycle(player)

		lifecycle.HandleIdentity("p1")
		lifecycle.HandleIdentity("")

		assert.Equal(t, "p1", player.ID)
	})
}

func TestLifecycle_HandleError(t *testing.T) {
	// Given: an established identity and room membership
	player := &entity.PlayerInfo{ID: "p1", Name: "Ava", Symbol: entity.PlayerX, RoomID: "AB12"}
	lifecycle, sink := newTestLifecycle(player)

	// When: a connect attempt fails
	lifecycle.HandleError(errors.New("dial tcp: refused"))

	// Then: it is reported but never fatal, and session state is untouched
	assert.Equal(t, StatusError, lifecycle.Status())
	assert.Equal(t, "p1", player.ID)
	assert.Equal(t, "AB12", player.RoomID)
	assert.Contains(t, sink.notifications, "Failed to connect to server. Please check if the server is running.")
}

func TestLifecycle_HandleClose(t *testing.T) {
	player := &entity.PlayerInfo{ID: "p1", RoomID: "AB12"}
	lifecycle, sink := newTestLifecycle(player)

	reconnects := 0
	lifecycle.Reconnect = func() { reconnects++ }

	lifecycle.HandleClose("going away")

	// room state stays pending a resume or an explicit termination
	assert.Equal(t, StatusDisconnected, lifecycle.Status())
	assert.Equal(t, "AB12", player.RoomID)
	assert.Equal(t, 1, reconnects)
	assert.Contains(t, sink.notifications, "Connection lost: going away")
}
