package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/solopong/internal/game"
	"github.com/diegok/solopong/internal/protocol"
	"github.com/diegok/solopong/internal/replay"
	"github.com/diegok/solopong/internal/ui"
)

// playback steps through recorded snapshots one per tick
type playback struct {
	header protocol.RecordingHeader
	frames []protocol.MatchState
	frame  int
	paused bool
}

func (p *playback) finished() bool {
	return p.frame >= len(p.frames)-1
}

func (p *playback) advance() {
	if p.paused || p.finished() {
		return
	}
	p.frame++
}

// handleKey processes a key press during playback. Returns true to quit.
func (p *playback) handleKey(key tcell.Key, r rune) bool {
	switch ui.KeyToAction(key, r) {
	case ui.ActionQuit, ui.ActionBack:
		return true
	case ui.ActionSpace:
		p.paused = !p.paused
	case ui.ActionConfirm:
		// Restart from the first frame
		p.frame = 0
		p.paused = false
	}
	return false
}

func (p *playback) view() ui.ReplayView {
	v := ui.ReplayView{
		Header:   p.header,
		Frame:    p.frame,
		Paused:   p.paused,
		Finished: p.finished(),
	}
	if len(p.frames) > 0 {
		v.State = p.frames[p.frame]
	}
	return v
}

// interval is the recorded tick length, or the live one for old recordings
func (p *playback) interval() time.Duration {
	if p.header.TickMillis <= 0 {
		return game.TickInterval
	}
	return time.Duration(p.header.TickMillis) * time.Millisecond
}

func loadPlayback(path string) (*playback, error) {
	r, err := replay.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	frames, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return &playback{header: r.Header, frames: frames}, nil
}

// RunReplay plays back the recording at cfg.ReplayPath at its recorded speed.
func (a *App) RunReplay() error {
	if err := a.openOutputs(); err != nil {
		a.cleanup()
		return err
	}

	p, err := loadPlayback(a.cfg.ReplayPath)
	if err != nil {
		a.cleanup()
		return err
	}
	a.log.Printf("replaying %s: %d frames, difficulty=%s multiplayer=%t seed=%d",
		p.header.MatchID, len(p.frames), p.header.Difficulty, p.header.Multiplayer, p.header.Seed)

	screen, err := ui.InitScreen()
	if err != nil {
		a.cleanup()
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	a.attach(screen)
	a.handleSignals()

	runErr := a.mainLoop(p.interval(), p.handleKey, func() {
		p.advance()
		a.renderer.RenderReplay(p.view())
	})

	a.cleanup()

	return runErr
}
