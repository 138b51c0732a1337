package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/diegok/solopong/internal/game"
	"github.com/diegok/solopong/internal/protocol"
)

const (
	sampleRate = beep.SampleRate(44100)
	volume     = 0.2
)

// Player turns match events into short square-wave effects
type Player struct {
	muted bool
	play  func(beep.Streamer) // nil when no audio device is open
}

// New opens the speaker unless mute is set. When the device cannot be opened
// the error is returned together with a silent Player, so callers may log it
// and carry on.
func New(mute bool) (*Player, error) {
	p := &Player{muted: mute}
	if mute {
		return p, nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/30)); err != nil {
		return p, err
	}
	p.play = func(s beep.Streamer) { speaker.Play(s) }
	return p, nil
}

// Close shuts down the audio system
func (p *Player) Close() {
	if p.play != nil {
		speaker.Close()
		p.play = nil
	}
}

// ToggleMute flips muting and reports whether sound is now muted
func (p *Player) ToggleMute() bool {
	p.muted = !p.muted
	return p.muted
}

func (p *Player) Muted() bool {
	return p.muted
}

// Handle plays the effect for each event in order
func (p *Player) Handle(events []game.Event) {
	if p.muted || p.play == nil {
		return
	}
	for _, ev := range events {
		if s := Effect(ev); s != nil {
			p.play(s)
		}
	}
}

// Effect returns the sound for an event, or nil for silent ones
func Effect(ev game.Event) beep.Streamer {
	switch ev.Kind {
	case game.EventPaddleHit:
		// High-pitched short beep
		return squareWave(880, 50*time.Millisecond)
	case game.EventWallBounce:
		return squareWave(440, 30*time.Millisecond)
	case game.EventServe:
		return squareWave(550, 40*time.Millisecond)
	case game.EventScore:
		if ev.Side == protocol.SideLeft {
			return melody(100*time.Millisecond, 330, 440, 660)
		}
		// Descending tone when the left side concedes
		return melody(100*time.Millisecond, 660, 440, 330)
	case game.EventGameOver:
		if ev.Side == protocol.SideLeft {
			return melody(120*time.Millisecond, 523, 659, 784, 1047)
		}
		return melody(160*time.Millisecond, 392, 330, 262)
	}
	return nil
}

// melody plays the notes back to back, each lasting step
func melody(step time.Duration, freqs ...float64) beep.Streamer {
	notes := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		notes[i] = squareWave(f, step)
	}
	return beep.Seq(notes...)
}

// squareWave generates a square wave tone (more retro/8-bit feel)
func squareWave(freq float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, i > 0
			}
			val := volume
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}
