package game

import (
	"math"

	"github.com/diegok/solopong/internal/protocol"
)

const (
	// AIMaxSpeed caps the AI paddle at the speed a human gets
	AIMaxSpeed = PaddleSpeed
	// aiSpeedDivisor turns pixels-to-target into tracking speed
	aiSpeedDivisor = 10.0
)

// AIMode says what the controller is aiming for on a given tick
type AIMode int

const (
	AITracking    AIMode = iota // ball approaching: aim at predicted intercept
	AIRecentering               // ball receding or stopped: drift back to the middle
)

// AI steers a paddle toward the ball. It keeps no state between ticks.
type AI struct {
	Profile Profile
}

func NewAI(p Profile) AI {
	return AI{Profile: p}
}

// Mode reports whether the ball is heading toward the paddle's side.
// A ball with no horizontal velocity is never approaching.
func (ai AI) Mode(b *Ball, p *Paddle) AIMode {
	if (p.Side == protocol.SideRight && b.VX > 0) || (p.Side == protocol.SideLeft && b.VX < 0) {
		return AITracking
	}
	return AIRecentering
}

// Target computes the Y the paddle centre should move to
func (ai AI) Target(b *Ball, p *Paddle) int {
	var target int

	if ai.Mode(b, p) == AITracking {
		var distance float64
		if p.Side == protocol.SideRight {
			distance = float64(p.X - b.Rect().Right())
		} else {
			distance = float64(b.X - p.Rect().Right())
		}
		timeToIntercept := math.Max(1, distance/math.Abs(b.VX))

		predicted := float64(b.Y) + b.VY*timeToIntercept + float64(b.Size/2)
		pf := ai.Profile.PredictFactor
		target = int(pf*predicted + (1-pf)*float64(b.CenterY()))
	} else {
		target = p.FieldHeight / 2
	}

	half := p.Height / 2
	return clamp(target, half, p.FieldHeight-half)
}

// Velocity turns the gap between target and paddle centre into a paddle speed
func (ai AI) Velocity(target int, p *Paddle) int {
	distance := target - p.CenterY()
	abs := distance
	if abs < 0 {
		abs = -abs
	}
	if abs <= ai.Profile.DeadZone {
		return 0
	}

	speed := math.Min(float64(abs)/aiSpeedDivisor, AIMaxSpeed) * ai.Profile.ReactionSpeed
	v := int(speed)
	if distance < 0 {
		v = -v
	}
	return v
}

// Drive sets the paddle velocity for this tick and moves the paddle
func (ai AI) Drive(b *Ball, p *Paddle) {
	p.SetYVelocity(ai.Velocity(ai.Target(b, p), p))
	p.Update()
}
