package notify

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-client/internal/audio"
	"github.com/rocketscienceinc/tictactoe-client/internal/scheduler"
	"github.com/rocketscienceinc/tictactoe-client/internal/view"
)

// Notification kinds, matching the visual variants the view knows.
const (
	KindInfo       = "info"
	KindSuccess    = "success"
	KindWarning    = "warning"
	KindError      = "error"
	KindSymbolSwap = "symbol-swap"
)

// Timing holds the display durations. The symbol-swap variant stays
// longer because it changes what the player's own mark means.
type Timing struct {
	Display           time.Duration
	SymbolSwapDisplay time.Duration
	Exit              time.Duration
}

var DefaultTiming = Timing{
	Display:           4 * time.Second,
	SymbolSwapDisplay: 5 * time.Second,
	Exit:              300 * time.Millisecond,
}

// Queue renders transient notifications and expires them independently.
// Entries stack; there is no deduplication, and every push owns its own
// timers so rapid duplicates cannot leak or race each other.
type Queue struct {
	logger *slog.Logger
	view   view.Sink
	audio  *audio.Gate
	sched  *scheduler.Scheduler
	timing Timing
}

func New(logger *slog.Logger, sink view.Sink, gate *audio.Gate, sched *scheduler.Scheduler, timing Timing) *Queue {
	return &Queue{
		logger: logger.With("component", "notify"),
		view:   sink,
		audio:  gate,
		sched:  sched,
		timing: timing,
	}
}

// Push shows a transient notification. The sound is skipped outright
// (never deferred) while audio is still locked.
func (that *Queue) Push(message, kind string, playSound bool) {
	if playSound && that.audio.Unlocked() {
		that.audio.Play(audio.ClipNotification)
	}

	that.show(message, kind, that.timing.Display)
}

// PushSymbolSwap raises the distinguished symbol-swap variant.
// matchCount is the count of completed matches; the upcoming match is
// announced as matchCount+1.
func (that *Queue) PushSymbolSwap(oldSymbol, newSymbol string, matchCount int) {
	if that.audio.Unlocked() {
		that.audio.Play(audio.ClipNotification)
	}

	message := fmt.Sprintf("Symbols swapped! You are now %s (Match %d)", newSymbol, matchCount+1)
	that.logger.Debug("symbol swap", "old", oldSymbol, "new", newSymbol)

	that.show(message, KindSymbolSwap, that.timing.SymbolSwapDisplay)
}

// show runs the two-phase removal: visual exit transition first, then
// structural removal once the transition has played out.
func (that *Queue) show(message, kind string, display time.Duration) {
	id := uuid.NewString()
	that.view.ShowNotification(id, message, kind)

	that.sched.After(display, func() {
		that.view.DismissNotification(id)

		that.sched.After(that.timing.Exit, func() {
			that.view.RemoveNotification(id)
		})
	})
}
