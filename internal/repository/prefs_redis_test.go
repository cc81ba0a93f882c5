package repository

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefsRepository_Redis(t *testing.T) {
	ctx, st := suite.New(t)

	prefs := NewPrefsRepository(st.Storage)

	t.Run("Redis_Defaults", func(t *testing.T) {
		// Given: an empty database

		// When: the sound preference is read
		soundEnabled, err := prefs.SoundEnabled(ctx)

		// Then: the fresh-install default comes back
		require.NoError(t, err)
		assert.True(t, soundEnabled)
	})

	t.Run("Redis_Roundtrip", func(t *testing.T) {
		// When: every preference is written and read back
		require.NoError(t, prefs.SaveSoundEnabled(ctx, false))
		require.NoError(t, prefs.SaveTheme(ctx, "light"))
		require.NoError(t, prefs.SaveRecentEmojis(ctx, []string{"🎮", "🍀"}))
		require.NoError(t, prefs.SaveChatSettings(ctx, entity.ChatSettings{EnterToSend: false, SoundEnabled: true}))

		soundEnabled, err := prefs.SoundEnabled(ctx)
		require.NoError(t, err)

		theme, err := prefs.Theme(ctx)
		require.NoError(t, err)

		emojis, err := prefs.RecentEmojis(ctx)
		require.NoError(t, err)

		settings, err := prefs.ChatSettings(ctx)
		require.NoError(t, err)

		// Then: every stored value survives
		assert.False(t, soundEnabled)
		assert.Equal(t, "light", theme)
		assert.Equal(t, []string{"🎮", "🍀"}, emojis)
		assert.Equal(t, entity.ChatSettings{EnterToSend: false, SoundEnabled: true}, settings)
	})
}
