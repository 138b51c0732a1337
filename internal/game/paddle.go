package game

import "github.com/diegok/solopong/internal/protocol"

const (
	PaddleWidth  = 15
	PaddleHeight = 80
	PaddleOffset = 30 // gap between a side wall and its paddle
	PaddleSpeed  = 6  // pixels per tick while a key is held
)

type Paddle struct {
	Side        protocol.Side
	X           int // fixed
	Y           int
	Width       int
	Height      int
	YVelocity   int
	StartY      int
	FieldHeight int
}

func NewPaddle(side protocol.Side, x, y, width, height, fieldHeight int) *Paddle {
	return &Paddle{
		Side:        side,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		StartY:      y,
		FieldHeight: fieldHeight,
	}
}

func (p *Paddle) SetYVelocity(v int) {
	p.YVelocity = v
}

// Update moves the paddle by its velocity, keeping it inside the field
func (p *Paddle) Update() {
	p.Y = clamp(p.Y+p.YVelocity, 0, p.FieldHeight-p.Height)
}

// Reset returns the paddle to where it started, at rest
func (p *Paddle) Reset() {
	p.Y = p.StartY
	p.YVelocity = 0
}

func (p *Paddle) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

func (p *Paddle) CenterY() int {
	return p.Y + p.Height/2
}

func (p *Paddle) Intersects(b *Ball) bool {
	return Intersects(b.Rect(), p.Rect())
}

func (p *Paddle) State() protocol.PaddleState {
	return protocol.PaddleState{
		Side:      p.Side,
		X:         p.X,
		Y:         p.Y,
		W:         p.Width,
		H:         p.Height,
		YVelocity: p.YVelocity,
	}
}
