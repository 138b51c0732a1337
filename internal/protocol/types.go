package protocol

import (
	"encoding/gob"
	"time"
)

// Side identifies one half of the court
type Side int

const (
	SideNone  Side = 0
	SideLeft  Side = 1
	SideRight Side = 2
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "none"
}

// Winner is the announced winner of a finished match
type Winner int

const (
	WinnerNone    Winner = 0
	WinnerPlayer  Winner = 1
	WinnerAI      Winner = 2
	WinnerPlayer1 Winner = 3
	WinnerPlayer2 Winner = 4
)

func (w Winner) String() string {
	switch w {
	case WinnerPlayer:
		return "Player"
	case WinnerAI:
		return "AI"
	case WinnerPlayer1:
		return "Player 1"
	case WinnerPlayer2:
		return "Player 2"
	}
	return ""
}

// Phase is the externally visible state of a match
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseRunning
	PhasePaused
	PhaseScoreDelay
	PhaseGameOver
	PhaseDemo
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseScoreDelay:
		return "score_delay"
	case PhaseGameOver:
		return "game_over"
	case PhaseDemo:
		return "demo"
	}
	return "menu"
}

// MessageType identifies the type of a recorded message
type MessageType int

const (
	MsgRecordingHeader MessageType = iota
	MsgMatchState
)

// Message is the wrapper for all recorded messages
type Message struct {
	Type    MessageType
	Payload interface{}
}

// BallState represents the ball's bounding box and velocity
type BallState struct {
	X  int
	Y  int
	W  int
	H  int
	VX float64
	VY float64
}

// PaddleState represents a paddle's bounding box
type PaddleState struct {
	Side      Side
	X         int
	Y         int
	W         int
	H         int
	YVelocity int
}

// MatchState is the read model the UI polls once per tick
type MatchState struct {
	Tick            int
	Phase           Phase
	Ball            BallState
	Player          PaddleState
	Opponent        PaddleState
	PlayerScore     int
	AIScore         int
	WinningScore    int
	Running         bool
	Paused          bool
	Over            bool
	Multiplayer     bool
	Demo            bool
	Winner          Winner
	LastScorer      Side
	DelayAfterScore bool
	DelayTicksLeft  int
	Difficulty      string
	Theme           string
	FieldWidth      int
	FieldHeight     int
}

// RecordingHeader opens every recording
type RecordingHeader struct {
	MatchID     string
	StartedAt   time.Time
	Difficulty  string
	Multiplayer bool
	Seed        int64
	TickMillis  int
}

func init() {
	// Register all payload types with gob for recording
	gob.Register(BallState{})
	gob.Register(PaddleState{})
	gob.Register(MatchState{})
	gob.Register(RecordingHeader{})
}
