package audio

import "io"

// BellClip is the terminal's sound device: any non-silent play writes
// the bell character. Volume below the audible threshold mutes it, which
// also makes priming silent.
type BellClip struct {
	out    io.Writer
	volume float64
	primed bool
}

func NewBellClip(out io.Writer) *BellClip {
	return &BellClip{out: out}
}

func (that *BellClip) Play() error {
	// the first play is the priming pass and stays silent
	if !that.primed {
		that.primed = true
		return nil
	}

	if that.volume <= 0 {
		return nil
	}

	if _, err := that.out.Write([]byte{'\a'}); err != nil {
		return err
	}

	return nil
}

func (that *BellClip) Stop() {}

func (that *BellClip) SetVolume(volume float64) {
	that.volume = volume
}

// TerminalClips builds the full clip set backed by the terminal bell.
func TerminalClips(out io.Writer) map[string]Clip {
	return map[string]Clip{
		ClipClickX:       NewBellClip(out),
		ClipClickO:       NewBellClip(out),
		ClipWin:          NewBellClip(out),
		ClipLoss:         NewBellClip(out),
		ClipNotification: NewBellClip(out),
	}
}
