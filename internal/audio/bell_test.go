package audio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBellClip_Play(t *testing.T) {
	t.Run("Play_FirstIsSilentPriming", func(t *testing.T) {
		var out bytes.Buffer
		clip := NewBellClip(&out)
		clip.SetVolume(defaultVolume)

		require.NoError(t, clip.Play())

		assert.Empty(t, out.Bytes())
	})

	t.Run("Play_RingsAfterPriming", func(t *testing.T) {
		var out bytes.Buffer
		clip := NewBellClip(&out)
		clip.SetVolume(defaultVolume)

		require.NoError(t, clip.Play())
		require.NoError(t, clip.Play())

		assert.Equal(t, []byte{'\a'}, out.Bytes())
	})

	t.Run("Play_MutedAtZeroVolume", func(t *testing.T) {
		var out bytes.Buffer
		clip := NewBellClip(&out)

		require.NoError(t, clip.Play())
		require.NoError(t, clip.Play())

		assert.Empty(t, out.Bytes())
	})
}

func TestTerminalClips(t *testing.T) {
	var out bytes.Buffer

	clips := TerminalClips(&out)

	for _, name := range []string{ClipClickX, ClipClickO, ClipWin, ClipLoss, ClipNotification} {
		assert.Contains(t, clips, name)
	}
}
