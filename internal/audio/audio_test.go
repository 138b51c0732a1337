package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/diegok/solopong/internal/game"
	"github.com/diegok/solopong/internal/protocol"
)

// drain counts samples and checks every one stays within the volume
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		for _, sample := range buf[:n] {
			if math.Abs(sample[0]) > volume || sample[0] != sample[1] {
				t.Fatalf("unexpected sample %v", sample)
			}
		}
		total += n
		if !ok {
			return total
		}
	}
}

func TestEffect_Lengths(t *testing.T) {
	tests := []struct {
		name string
		ev   game.Event
		want time.Duration
	}{
		{"paddle hit", game.Event{Kind: game.EventPaddleHit, Side: protocol.SideLeft}, 50 * time.Millisecond},
		{"wall bounce", game.Event{Kind: game.EventWallBounce}, 30 * time.Millisecond},
		{"serve", game.Event{Kind: game.EventServe}, 40 * time.Millisecond},
		{"player scores", game.Event{Kind: game.EventScore, Side: protocol.SideLeft}, 300 * time.Millisecond},
		{"opponent scores", game.Event{Kind: game.EventScore, Side: protocol.SideRight}, 300 * time.Millisecond},
		{"player wins", game.Event{Kind: game.EventGameOver, Side: protocol.SideLeft}, 480 * time.Millisecond},
		{"opponent wins", game.Event{Kind: game.EventGameOver, Side: protocol.SideRight}, 480 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Effect(tt.ev)
			if s == nil {
				t.Fatal("expected a sound")
			}
			if got, want := drain(t, s), sampleRate.N(tt.want); got != want {
				t.Errorf("expected %d samples, got %d", want, got)
			}
		})
	}
}

func TestEffect_UnknownIsSilent(t *testing.T) {
	if s := Effect(game.Event{Kind: game.EventKind(99)}); s != nil {
		t.Error("expected no sound for an unknown event")
	}
}

func TestPlayer_Handle(t *testing.T) {
	played := 0
	p := &Player{play: func(beep.Streamer) { played++ }}

	p.Handle([]game.Event{
		{Kind: game.EventPaddleHit, Side: protocol.SideRight},
		{Kind: game.EventKind(99)},
		{Kind: game.EventScore, Side: protocol.SideLeft},
	})

	if played != 2 {
		t.Errorf("expected 2 sounds, got %d", played)
	}
}

func TestPlayer_Mute(t *testing.T) {
	played := 0
	p := &Player{play: func(beep.Streamer) { played++ }}

	if !p.ToggleMute() || !p.Muted() {
		t.Fatal("expected muted after toggle")
	}
	p.Handle([]game.Event{{Kind: game.EventWallBounce}})
	if played != 0 {
		t.Errorf("expected no sound while muted, got %d", played)
	}

	p.ToggleMute()
	p.Handle([]game.Event{{Kind: game.EventWallBounce}})
	if played != 1 {
		t.Errorf("expected sound after unmuting, got %d", played)
	}
}

func TestNew_Muted(t *testing.T) {
	p, err := New(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Muted() {
		t.Error("expected muted player")
	}
	// Must not touch the speaker
	p.Handle([]game.Event{{Kind: game.EventPaddleHit}})
	p.Close()
}
