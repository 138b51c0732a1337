package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/diegok/solopong/internal/protocol"
)

// Constants for match management
const (
	FieldWidth   = 800
	FieldHeight  = 600
	WinningScore = 10

	TickInterval    = 16 * time.Millisecond
	ScoreDelay      = 1500 * time.Millisecond
	ScoreDelayTicks = int((ScoreDelay + TickInterval - 1) / TickInterval)
)

// EventKind classifies something noteworthy that happened during a tick
type EventKind int

const (
	EventPaddleHit EventKind = iota
	EventWallBounce
	EventScore
	EventServe
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventPaddleHit:
		return "paddle_hit"
	case EventWallBounce:
		return "wall_bounce"
	case EventScore:
		return "score"
	case EventServe:
		return "serve"
	case EventGameOver:
		return "game_over"
	}
	return "unknown"
}

// Event is emitted by Tick for the UI, audio and telemetry. Side is the paddle
// that was hit, the side that scored, or the winning side.
type Event struct {
	Kind  EventKind
	Side  protocol.Side
	Rally int // paddle hits in the rally that just ended (EventScore only)
}

// Match owns the ball and both paddles and runs the game rules. It is not
// safe for concurrent use; commands and Tick must come from one goroutine.
type Match struct {
	Width        int
	Height       int
	Ball         *Ball
	Player       *Paddle // left
	Opponent     *Paddle // right, AI or second player
	PlayerScore  int
	AIScore      int
	WinningScore int
	Ticks        int

	Running     bool
	Paused      bool
	Over        bool
	Multiplayer bool
	Demo        bool

	Winner         protocol.Winner
	LastScorer     protocol.Side
	DelayTicksLeft int
	RallyHits      int

	Difficulty Difficulty
	Theme      string

	rng    *rand.Rand
	events []Event
}

// NewMatch creates a match on a width x height field. A nil rng is seeded
// from the clock; pointsToWin below 1 falls back to WinningScore.
func NewMatch(width, height, pointsToWin int, rng *rand.Rand) *Match {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if pointsToWin < 1 {
		pointsToWin = WinningScore
	}

	startY := height/2 - PaddleHeight/2
	return &Match{
		Width:        width,
		Height:       height,
		Ball:         NewBall(width, height, BallSize),
		Player:       NewPaddle(protocol.SideLeft, PaddleOffset, startY, PaddleWidth, PaddleHeight, height),
		Opponent:     NewPaddle(protocol.SideRight, width-PaddleOffset-PaddleWidth, startY, PaddleWidth, PaddleHeight, height),
		WinningScore: pointsToWin,
		Difficulty:   Medium,
		rng:          rng,
	}
}

// StartGame resets ball, paddles and scores and begins play
func (m *Match) StartGame() {
	m.Ball.Reset(m.rng)
	m.Player.Reset()
	m.Opponent.Reset()

	m.PlayerScore = 0
	m.AIScore = 0
	m.Running = true
	m.Over = false
	m.Winner = protocol.WinnerNone
	m.LastScorer = protocol.SideNone
	m.Paused = false
	m.Demo = false
	m.DelayTicksLeft = 0
	m.RallyHits = 0
}

// PauseToggle flips the pause state. It returns false when pausing is not
// available (no game in progress, game over or demo).
func (m *Match) PauseToggle() bool {
	if !m.Running || m.Over || m.Demo {
		return false
	}
	m.Paused = !m.Paused
	return true
}

func (m *Match) SetDifficulty(d Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(d))
	}
	m.Difficulty = d
	return nil
}

func (m *Match) SetMultiplayer(on bool) {
	if m.Multiplayer != on {
		m.Opponent.SetYVelocity(0)
	}
	m.Multiplayer = on
}

// SetTheme records the cosmetic theme name; it has no effect on physics
func (m *Match) SetTheme(name string) {
	m.Theme = name
}

// SetDemoMode switches attract mode. Entering it drops any pause or score
// delay and serves the ball if it is parked.
func (m *Match) SetDemoMode(on bool) {
	m.Demo = on
	if !on {
		return
	}
	m.Paused = false
	m.DelayTicksLeft = 0
	if m.Ball.Stationary() {
		m.Ball.Reset(m.rng)
	}
}

// SetPlayerPaddleVelocity applies player input. Movement requests are
// ignored while paused, after the game ends and in demo; stopping always works.
func (m *Match) SetPlayerPaddleVelocity(v int) {
	if v != 0 && !m.acceptsInput() {
		return
	}
	m.Player.SetYVelocity(v)
}

// SetOpponentPaddleVelocity applies second player input in multiplayer
func (m *Match) SetOpponentPaddleVelocity(v int) {
	if !m.Multiplayer {
		return
	}
	if v != 0 && !m.acceptsInput() {
		return
	}
	m.Opponent.SetYVelocity(v)
}

func (m *Match) acceptsInput() bool {
	return !m.Paused && !m.Over && !m.Demo
}

// Phase derives the state machine position from the flags
func (m *Match) Phase() protocol.Phase {
	switch {
	case m.Demo:
		return protocol.PhaseDemo
	case !m.Running:
		return protocol.PhaseMenu
	case m.Over:
		return protocol.PhaseGameOver
	case m.Paused:
		return protocol.PhasePaused
	case m.DelayTicksLeft > 0:
		return protocol.PhaseScoreDelay
	}
	return protocol.PhaseRunning
}

// Tick advances the simulation one fixed step and returns what happened.
// Demo ticks return no events.
func (m *Match) Tick() []Event {
	m.events = nil

	if m.Paused {
		return nil
	}
	m.Ticks++

	if m.Demo {
		m.tickDemo()
		return nil
	}

	m.Player.Update()

	if !m.Running {
		return nil
	}

	if m.Over {
		m.Opponent.SetYVelocity(0)
		m.Opponent.Update()
		return m.events
	}

	if m.DelayTicksLeft > 0 {
		m.DelayTicksLeft--
		if m.DelayTicksLeft == 0 {
			m.serve()
		}
		return m.events
	}

	if m.Multiplayer {
		m.Opponent.Update()
	} else {
		NewAI(m.Difficulty.Profile()).Drive(m.Ball, m.Opponent)
	}

	m.Ball.SetSpeedMultiplier(m.speedMultiplier())
	if m.Ball.Update() && m.Ball.VY != 0 {
		m.emit(Event{Kind: EventWallBounce})
	}

	m.checkPaddleCollisions()
	m.CheckScore()

	return m.events
}

// tickDemo plays both paddles with the demo AI and never scores
func (m *Match) tickDemo() {
	m.Ball.SetSpeedMultiplier(DemoProfile.BallSpeedMultiplier)
	m.Ball.Update()

	demo := NewAI(DemoProfile)
	demo.Drive(m.Ball, m.Player)
	demo.Drive(m.Ball, m.Opponent)

	m.checkPaddleCollisions()

	if m.Ball.OutLeft() || m.Ball.OutRight() {
		m.Ball.Reset(m.rng)
	}
}

func (m *Match) speedMultiplier() float64 {
	if m.Multiplayer {
		return MultiplayerSpeedMultiplier
	}
	return m.Difficulty.Profile().BallSpeedMultiplier
}

// checkPaddleCollisions deflects the ball off every paddle it overlaps
func (m *Match) checkPaddleCollisions() {
	for _, p := range []*Paddle{m.Player, m.Opponent} {
		if !p.Intersects(m.Ball) {
			continue
		}
		m.Ball.DeflectFromPaddle(p)
		m.RallyHits++
		m.emit(Event{Kind: EventPaddleHit, Side: p.Side})
	}
}

// CheckScore awards a point when the ball reaches a side wall
func (m *Match) CheckScore() {
	if m.Demo || m.DelayTicksLeft > 0 || m.Over {
		return
	}

	// Ball at right wall - player scores
	if m.Ball.OutRight() {
		m.PlayerScore++
		m.score(protocol.SideLeft, m.PlayerScore)
	}

	// Ball at left wall - opponent scores
	if m.Ball.OutLeft() {
		m.AIScore++
		m.score(protocol.SideRight, m.AIScore)
	}
}

func (m *Match) score(side protocol.Side, points int) {
	m.LastScorer = side
	m.emit(Event{Kind: EventScore, Side: side, Rally: m.RallyHits})
	m.Ball.Park()

	if points >= m.WinningScore {
		m.endGame(side)
		return
	}
	m.DelayTicksLeft = ScoreDelayTicks
}

func (m *Match) endGame(side protocol.Side) {
	m.Over = true
	m.Paused = false
	m.DelayTicksLeft = 0
	m.Winner = m.winnerFor(side)
	m.Player.SetYVelocity(0)
	m.Opponent.SetYVelocity(0)
	m.emit(Event{Kind: EventGameOver, Side: side})
}

func (m *Match) winnerFor(side protocol.Side) protocol.Winner {
	switch {
	case side == protocol.SideLeft && m.Multiplayer:
		return protocol.WinnerPlayer1
	case side == protocol.SideLeft:
		return protocol.WinnerPlayer
	case m.Multiplayer:
		return protocol.WinnerPlayer2
	}
	return protocol.WinnerAI
}

// serve ends the score delay and puts the ball back in play
func (m *Match) serve() {
	m.Ball.Reset(m.rng)
	m.RallyHits = 0
	m.emit(Event{Kind: EventServe})
}

func (m *Match) emit(ev Event) {
	if m.Demo {
		return
	}
	m.events = append(m.events, ev)
}

// Snapshot converts the match to the read model polled by the UI
func (m *Match) Snapshot() protocol.MatchState {
	return protocol.MatchState{
		Tick:            m.Ticks,
		Phase:           m.Phase(),
		Ball:            m.Ball.State(),
		Player:          m.Player.State(),
		Opponent:        m.Opponent.State(),
		PlayerScore:     m.PlayerScore,
		AIScore:         m.AIScore,
		WinningScore:    m.WinningScore,
		Running:         m.Running,
		Paused:          m.Paused,
		Over:            m.Over,
		Multiplayer:     m.Multiplayer,
		Demo:            m.Demo,
		Winner:          m.Winner,
		LastScorer:      m.LastScorer,
		DelayAfterScore: m.DelayTicksLeft > 0,
		DelayTicksLeft:  m.DelayTicksLeft,
		Difficulty:      m.Difficulty.String(),
		Theme:           m.Theme,
		FieldWidth:      m.Width,
		FieldHeight:     m.Height,
	}
}
