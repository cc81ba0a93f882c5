package notify

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-client/internal/audio"
	"github.com/rocketscienceinc/tictactoe-client/internal/scheduler"
	"github.com/rocketscienceinc/tictactoe-client/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shownNotification struct {
	id      string
	message string
	kind    string
}

type sinkRecorder struct {
	view.NopSink

	mu        sync.Mutex
	shown     []shownNotification
	dismissed []string
	removed   []string
}

func (that *sinkRecorder) ShowNotification(id, message, kind string) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.shown = append(that.shown, shownNotification{id: id, message: message, kind: kind})
}

func (that *sinkRecorder) DismissNotification(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.dismissed = append(that.dismissed, id)
}

func (that *sinkRecorder) RemoveNotification(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.removed = append(that.removed, id)
}

func (that *sinkRecorder) snapshot() ([]shownNotification, []string, []string) {
	that.mu.Lock()
	defer that.mu.Unlock()
	return append([]shownNotification(nil), that.shown...),
		append([]string(nil), that.dismissed...),
		append([]string(nil), that.removed...)
}

type clipCounter struct {
	mu    sync.Mutex
	plays int
}

func (that *clipCounter) Play() error {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.plays++
	return nil
}

func (that *clipCounter) Stop()            {}
func (that *clipCounter) SetVolume(float64) {}

func (that *clipCounter) count() int {
	that.mu.Lock()
	defer that.mu.Unlock()
	return that.plays
}

type storeStub struct{}

func (storeStub) SaveSoundEnabled(context.Context, bool) error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastTiming() Timing {
	return Timing{
		Display:           10 * time.Millisecond,
		SymbolSwapDisplay: 15 * time.Millisecond,
		Exit:              5 * time.Millisecond,
	}
}

func newTestQueue(sink view.Sink, gate *audio.Gate) *Queue {
	sched := scheduler.New(func(fn func()) { fn() })
	return New(testLogger(), sink, gate, sched, fastTiming())
}

func TestQueue_Push(t *testing.T) {
	t.Run("Push_TwoPhaseExpiry", func(t *testing.T) {
		sink := &sinkRecorder{}
		gate := audio.New(testLogger(), storeStub{}, true, map[string]audio.Clip{})
		queue := newTestQueue(sink, gate)

		// When: a notification is pushed
		queue.Push("Connected to server!", KindSuccess, false)

		// Then: it shows immediately
		shown, _, _ := sink.snapshot()
		require.Len(t, shown, 1)
		assert.Equal(t, "Connected to server!", shown[0].message)
		assert.Equal(t, KindSuccess, shown[0].kind)

		// and expires in two phases, dismissal before removal
		require.Eventually(t, func() bool {
			_, _, removed := sink.snapshot()
			return len(removed) == 1
		}, time.Second, time.Millisecond)

		_, dismissed, removed := sink.snapshot()
		require.Len(t, dismissed, 1)
		assert.Equal(t, shown[0].id, dismissed[0])
		assert.Equal(t, shown[0].id, removed[0])
	})

	t.Run("Push_RapidEntriesExpireIndependently", func(t *testing.T) {
		sink := &sinkRecorder{}
		gate := audio.New(testLogger(), storeStub{}, true, map[string]audio.Clip{})
		queue := newTestQueue(sink, gate)

		// Given: three pushes in quick succession
		queue.Push("one", KindInfo, false)
		queue.Push("two", KindInfo, false)
		queue.Push("three", KindInfo, false)

		// Then: each owns its timers and all three get removed
		require.Eventually(t, func() bool {
			_, _, removed := sink.snapshot()
			return len(removed) == 3
		}, time.Second, time.Millisecond)

		shown, _, removed := sink.snapshot()
		require.Len(t, shown, 3)
		assert.NotEqual(t, shown[0].id, shown[1].id)
		assert.NotEqual(t, shown[1].id, shown[2].id)
		assert.ElementsMatch(t, []string{shown[0].id, shown[1].id, shown[2].id}, removed)
	})
}

func TestQueue_SoundGating(t *testing.T) {
	t.Run("Sound_SkippedWhileLocked", func(t *testing.T) {
		// Given: an enabled but still locked gate
		sink := &sinkRecorder{}
		clip := &clipCounter{}
		gate := audio.New(testLogger(), storeStub{}, true, map[string]audio.Clip{audio.ClipNotification: clip})
		queue := newTestQueue(sink, gate)

		// When: a sounded notification is pushed before any user gesture
		queue.Push("hello", KindInfo, true)

		// Then: the sound is skipped outright, the notification still shows
		assert.Zero(t, clip.count())
		shown, _, _ := sink.snapshot()
		assert.Len(t, shown, 1)
	})

	t.Run("Sound_PlayedOnceUnlocked", func(t *testing.T) {
		sink := &sinkRecorder{}
		clip := &clipCounter{}
		gate := audio.New(testLogger(), storeStub{}, true, map[string]audio.Clip{audio.ClipNotification: clip})
		gate.RequestUnlock()
		primed := clip.count()

		queue := newTestQueue(sink, gate)
		queue.Push("hello", KindInfo, true)

		assert.Equal(t, primed+1, clip.count())
	})
}

func TestQueue_PushSymbolSwap(t *testing.T) {
	sink := &sinkRecorder{}
	gate := audio.New(testLogger(), storeStub{}, true, map[string]audio.Clip{})
	queue := newTestQueue(sink, gate)

	// Given: one completed match behind us
	queue.PushSymbolSwap("X", "O", 1)

	// Then: the upcoming match is announced, not the finished one
	shown, _, _ := sink.snapshot()
	require.Len(t, shown, 1)
	assert.Equal(t, "Symbols swapped! You are now O (Match 2)", shown[0].message)
	assert.Equal(t, KindSymbolSwap, shown[0].kind)
}
