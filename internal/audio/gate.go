package audio

import (
	"context"
	"log/slog"
)

// Clip names. They mirror the sound set of the web client.
const (
	ClipClickX       = "click_x"
	ClipClickO       = "click_o"
	ClipWin          = "win"
	ClipLoss         = "loss"
	ClipNotification = "notification"
)

const defaultVolume = 0.7

// Clip is a playable sound. Implementations must tolerate Play failing
// or resolving asynchronously; the gate never waits on playback.
type Clip interface {
	Play() error
	Stop()
	SetVolume(volume float64)
}

// Store persists the user's sound preference.
type Store interface {
	SaveSoundEnabled(ctx context.Context, enabled bool) error
}

// Gate gates every sound behind a one-time user-interaction unlock.
// Platforms refuse playback that was not triggered by a genuine user
// gesture, so the first qualifying input primes every clip with a
// silent play/stop cycle; until then Play is a no-op, never an error.
type Gate struct {
	logger *slog.Logger
	store  Store

	clips    map[string]Clip
	enabled  bool
	unlocked bool
}

// New creates a gate. enabled is the persisted preference; unlocked
// always starts false and is session-only.
func New(logger *slog.Logger, store Store, enabled bool, clips map[string]Clip) *Gate {
	for _, clip := range clips {
		clip.SetVolume(defaultVolume)
	}

	return &Gate{
		logger:  logger.With("component", "audio"),
		store:   store,
		clips:   clips,
		enabled: enabled,
	}
}

// RequestUnlock is called on the first qualifying user input. Idempotent:
// exactly one priming pass happens no matter how often it is invoked,
// and once unlocked the caller should stop forwarding input here.
func (that *Gate) RequestUnlock() {
	if that.unlocked {
		return
	}

	for name, clip := range that.clips {
		if err := clip.Play(); err != nil {
			// priming failures are expected on restricted devices
			that.logger.Debug("priming play failed", "clip", name, "error", err)
			continue
		}
		clip.Stop()
	}

	that.unlocked = true
	that.logger.Info("audio unlocked")
}

// Play plays a named clip. A no-op while disabled or locked, for unknown
// clips, and on playback failure; sound is never critical to gameplay.
func (that *Gate) Play(name string) {
	if !that.enabled || !that.unlocked {
		return
	}

	clip, ok := that.clips[name]
	if !ok {
		that.logger.Debug("unknown clip", "clip", name)
		return
	}

	if err := clip.Play(); err != nil {
		that.logger.Debug("sound play failed", "clip", name, "error", err)
	}
}

// Toggle flips and persists the enabled flag, returning the new value.
func (that *Gate) Toggle() bool {
	that.enabled = !that.enabled

	if err := that.store.SaveSoundEnabled(context.Background(), that.enabled); err != nil {
		that.logger.Error("failed to persist sound preference", "error", err)
	}

	return that.enabled
}

func (that *Gate) Enabled() bool {
	return that.enabled
}

func (that *Gate) Unlocked() bool {
	return that.unlocked
}

// SetVolume clamps volume to [0,1] and applies it to every clip.
func (that *Gate) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}

	for _, clip := range that.clips {
		clip.SetVolume(volume)
	}
}
