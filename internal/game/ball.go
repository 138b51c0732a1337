package game

import (
	"math"
	"math/rand"

	"github.com/diegok/solopong/internal/protocol"
)

const (
	DefaultBallSpeed  = 4.0
	MaxBallSpeed      = 15.0
	BounceAngleFactor = 0.75
	SpeedIncrement    = 1.08 // |VX| growth per paddle hit
	BallSize          = 15
)

type Ball struct {
	X, Y            int
	Size            int
	VX, VY          float64
	SpeedMultiplier float64
	FieldWidth      int
	FieldHeight     int
}

// NewBall creates a ball parked at the centre of the field
func NewBall(fieldWidth, fieldHeight, size int) *Ball {
	b := &Ball{
		Size:            size,
		SpeedMultiplier: 1.0,
		FieldWidth:      fieldWidth,
		FieldHeight:     fieldHeight,
	}
	b.Park()
	return b
}

func (b *Ball) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Size, H: b.Size}
}

func (b *Ball) CenterY() int {
	return b.Y + b.Size/2
}

func (b *Ball) center() {
	b.X = b.FieldWidth/2 - b.Size/2
	b.Y = b.FieldHeight/2 - b.Size/2
}

// Reset centres the ball and serves it diagonally in a random direction
func (b *Ball) Reset(rng *rand.Rand) {
	b.center()
	b.VX = randomSign(rng) * DefaultBallSpeed
	b.VY = randomSign(rng) * DefaultBallSpeed
}

// Park centres the ball and stops it
func (b *Ball) Park() {
	b.center()
	b.VX = 0
	b.VY = 0
}

// Stationary reports whether the ball has no velocity
func (b *Ball) Stationary() bool {
	return b.VX == 0 && b.VY == 0
}

// SetSpeedMultiplier scales movement in Update without touching VX/VY
func (b *Ball) SetSpeedMultiplier(m float64) {
	if m < 0 {
		m = 0
	}
	b.SpeedMultiplier = m
}

// Update advances the ball one tick and bounces it off the top and bottom
// walls. It returns true when a wall was touched.
func (b *Ball) Update() bool {
	b.X += int(b.VX * b.SpeedMultiplier)
	b.Y += int(b.VY * b.SpeedMultiplier)

	maxY := b.FieldHeight - b.Size
	if b.Y <= 0 {
		b.Y = 0
		b.VY = math.Abs(b.VY)
		return true
	}
	if b.Y >= maxY {
		b.Y = maxY
		b.VY = -math.Abs(b.VY)
		return true
	}
	return false
}

// DeflectFromPaddle sends the ball back at an angle set only by where it hit
// the paddle, speeding it up and moving it flush against the paddle face.
func (b *Ball) DeflectFromPaddle(p *Paddle) {
	b.VX = -b.VX

	relativeHit := float64(p.CenterY()-b.CenterY()) / (float64(p.Height) / 2)
	if relativeHit < -1 {
		relativeHit = -1
	}
	if relativeHit > 1 {
		relativeHit = 1
	}
	b.VY = DefaultBallSpeed * -relativeHit * BounceAngleFactor

	if math.Abs(b.VX) < MaxBallSpeed {
		b.VX *= SpeedIncrement
	}
	if math.Abs(b.VX) > MaxBallSpeed {
		b.VX = math.Copysign(MaxBallSpeed, b.VX)
	}

	if p.Side == protocol.SideLeft {
		b.X = p.Rect().Right()
	} else {
		b.X = p.X - b.Size
	}
}

// OutLeft reports whether the ball reached the left wall
func (b *Ball) OutLeft() bool {
	return b.X <= 0
}

// OutRight reports whether the ball reached the right wall
func (b *Ball) OutRight() bool {
	return b.X+b.Size >= b.FieldWidth
}

func (b *Ball) State() protocol.BallState {
	return protocol.BallState{X: b.X, Y: b.Y, W: b.Size, H: b.Size, VX: b.VX, VY: b.VY}
}

func randomSign(rng *rand.Rand) float64 {
	if rng.Float64() > 0.5 {
		return 1
	}
	return -1
}
