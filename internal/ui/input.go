package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/diegok/solopong/internal/protocol"
)

// Action is what a key means outside of paddle movement
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionBack    // Esc: leave the current screen
	ActionConfirm // Enter
	ActionSpace   // start, pause/resume, play again
	ActionUp
	ActionDown
	ActionMute
)

// KeyToAction maps a key event to a screen action. Arrow keys double as
// menu navigation; in a match they are read with KeyToPaddle instead.
func KeyToAction(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyEscape:
		return ActionBack
	case tcell.KeyEnter:
		return ActionConfirm
	case tcell.KeyUp:
		return ActionUp
	case tcell.KeyDown:
		return ActionDown
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return ActionQuit
		case ' ':
			return ActionSpace
		case 'm', 'M':
			return ActionMute
		case 'k', 'K':
			return ActionUp
		case 'j', 'J':
			return ActionDown
		}
	}
	return ActionNone
}

// KeyToPaddle maps a key to a paddle and direction (-1 up, +1 down).
// W/S drive the left paddle, the arrows drive the right one. It returns
// SideNone for any other key.
func KeyToPaddle(key tcell.Key, r rune) (protocol.Side, int) {
	switch key {
	case tcell.KeyUp:
		return protocol.SideRight, -1
	case tcell.KeyDown:
		return protocol.SideRight, 1
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return protocol.SideLeft, -1
		case 's', 'S':
			return protocol.SideLeft, 1
		}
	}
	return protocol.SideNone, 0
}

const (
	// FirstHoldTicks covers the terminal's delay before key repeat starts
	FirstHoldTicks = 32
	// HoldTicks keeps moving between repeats (~133ms at 60Hz)
	HoldTicks = 8
)

// HeldKey emulates a held movement key. Terminals only report presses, so a
// direction stays held until no repeat arrives for a few ticks.
type HeldKey struct {
	dir       int
	ticksLeft int
}

// Press starts or extends movement in dir. A repeat of the current
// direction only needs to bridge the gap to the next repeat.
func (h *HeldKey) Press(dir int) {
	if dir == h.dir && h.ticksLeft > 0 {
		h.ticksLeft = HoldTicks
		return
	}
	h.dir = dir
	h.ticksLeft = FirstHoldTicks
}

// Release stops movement at once
func (h *HeldKey) Release() {
	h.dir = 0
	h.ticksLeft = 0
}

// Tick returns the direction for this tick and counts down the hold
func (h *HeldKey) Tick() int {
	if h.ticksLeft == 0 {
		return 0
	}
	dir := h.dir
	h.ticksLeft--
	if h.ticksLeft == 0 {
		h.dir = 0
	}
	return dir
}
