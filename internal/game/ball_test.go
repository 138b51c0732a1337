package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/diegok/solopong/internal/protocol"
)

// Where a served or parked ball sits on the default field
const (
	centreX = FieldWidth/2 - BallSize/2
	centreY = FieldHeight/2 - BallSize/2
)

func newTestBall() *Ball {
	return NewBall(FieldWidth, FieldHeight, BallSize)
}

func TestNewBall_Parked(t *testing.T) {
	ball := newTestBall()

	if ball.X != centreX || ball.Y != centreY {
		t.Errorf("expected ball centred at (%d,%d), got (%d,%d)", centreX, centreY, ball.X, ball.Y)
	}
	if !ball.Stationary() {
		t.Errorf("expected new ball to be stationary, got VX=%f VY=%f", ball.VX, ball.VY)
	}
	if ball.SpeedMultiplier != 1.0 {
		t.Errorf("expected SpeedMultiplier=1.0, got %f", ball.SpeedMultiplier)
	}
}

func TestBall_Update(t *testing.T) {
	ball := newTestBall()
	ball.X, ball.Y = 100, 100
	ball.VX = 4.0
	ball.VY = -4.0
	ball.SetSpeedMultiplier(1.2)

	ball.Update()

	// 4.8 truncates to 4
	if ball.X != 104 {
		t.Errorf("expected X=104, got %d", ball.X)
	}
	if ball.Y != 96 {
		t.Errorf("expected Y=96, got %d", ball.Y)
	}
	if ball.VX != 4.0 || ball.VY != -4.0 {
		t.Errorf("multiplier must not be folded into velocity, got VX=%f VY=%f", ball.VX, ball.VY)
	}
}

func TestBall_UpdateTruncatesTowardZero(t *testing.T) {
	ball := newTestBall()
	ball.X, ball.Y = 100, 100
	ball.VX = -4.0
	ball.VY = 0.8
	ball.SetSpeedMultiplier(1.2)

	ball.Update()

	if ball.X != 96 {
		t.Errorf("expected X=96 (-4.8 truncated to -4), got %d", ball.X)
	}
	if ball.Y != 100 {
		t.Errorf("expected Y=100 (0.96 truncated to 0), got %d", ball.Y)
	}
}

func TestBall_WallBounce(t *testing.T) {
	tests := []struct {
		name   string
		y      int
		vy     float64
		wantY  int
		wantVY float64
	}{
		{"top wall", 2, -4, 0, 4},
		{"bottom wall", 583, 4, 585, -4},
		{"exactly at top", 4, -4, 0, 4},
		{"exactly at bottom", 581, 4, 585, -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ball := newTestBall()
			ball.Y = tt.y
			ball.VX = 4
			ball.VY = tt.vy

			if !ball.Update() {
				t.Error("expected Update to report a wall touch")
			}
			if ball.Y != tt.wantY {
				t.Errorf("expected Y=%d, got %d", tt.wantY, ball.Y)
			}
			if ball.VY != tt.wantVY {
				t.Errorf("expected VY=%f, got %f", tt.wantVY, ball.VY)
			}
		})
	}
}

func TestBall_NoWallTouchInOpenField(t *testing.T) {
	ball := newTestBall()
	ball.VX = 4
	ball.VY = 4

	if ball.Update() {
		t.Error("expected no wall touch in the middle of the field")
	}
}

func TestBall_StaysInsideVerticalBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ball := newTestBall()

	for i := 0; i < 5000; i++ {
		if i%100 == 0 {
			ball.VX = rng.Float64()*30 - 15
			ball.VY = rng.Float64()*60 - 30
			ball.SetSpeedMultiplier(1 + rng.Float64())
			ball.X = FieldWidth / 2
		}

		ball.Update()

		maxY := FieldHeight - ball.Size
		if ball.Y < 0 || ball.Y > maxY {
			t.Fatalf("tick %d: Y=%d outside [0,%d]", i, ball.Y, maxY)
		}
		if ball.Y == 0 && ball.VY < 0 {
			t.Fatalf("tick %d: clamped to top but VY=%f", i, ball.VY)
		}
		if ball.Y == maxY && ball.VY > 0 {
			t.Fatalf("tick %d: clamped to bottom but VY=%f", i, ball.VY)
		}
	}
}

func TestBall_DeflectFromPaddle(t *testing.T) {
	// Paddle centre is at 300
	left := NewPaddle(protocol.SideLeft, 30, 260, PaddleWidth, PaddleHeight, FieldHeight)
	right := NewPaddle(protocol.SideRight, 755, 260, PaddleWidth, PaddleHeight, FieldHeight)

	tests := []struct {
		name   string
		paddle *Paddle
		ballY  int // ball centre is ballY+7
		vx     float64
		wantVY float64
		wantX  int
	}{
		{"left centre hit", left, 293, -5, 0, 45},
		{"left upper half", left, 273, -5, DefaultBallSpeed * -0.5 * BounceAngleFactor, 45},
		{"left lower half", left, 313, -5, DefaultBallSpeed * 0.5 * BounceAngleFactor, 45},
		{"left past the edge clamps", left, 373, -5, DefaultBallSpeed * 1 * BounceAngleFactor, 45},
		{"right upper edge", right, 253, 5, DefaultBallSpeed * -1 * BounceAngleFactor, 740},
		{"right quarter", right, 303, 5, DefaultBallSpeed * 0.25 * BounceAngleFactor, 740},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ball := newTestBall()
			ball.X = tt.paddle.X
			ball.Y = tt.ballY
			ball.VX = tt.vx
			ball.VY = 2.5 // must be replaced, not blended

			ball.DeflectFromPaddle(tt.paddle)

			if ball.VY != tt.wantVY {
				t.Errorf("expected VY=%f, got %f", tt.wantVY, ball.VY)
			}
			wantVX := -tt.vx * SpeedIncrement
			if ball.VX != wantVX {
				t.Errorf("expected VX=%f, got %f", wantVX, ball.VX)
			}
			if ball.X != tt.wantX {
				t.Errorf("expected ball flush at X=%d, got %d", tt.wantX, ball.X)
			}
			if tt.paddle.Intersects(ball) {
				t.Error("ball still overlaps the paddle after deflection")
			}
		})
	}
}

func TestBall_SpeedCap(t *testing.T) {
	left := NewPaddle(protocol.SideLeft, 30, 260, PaddleWidth, PaddleHeight, FieldHeight)
	right := NewPaddle(protocol.SideRight, 755, 260, PaddleWidth, PaddleHeight, FieldHeight)

	ball := newTestBall()
	ball.VX = DefaultBallSpeed

	for i := 0; i < 100; i++ {
		if ball.VX > 0 {
			ball.DeflectFromPaddle(right)
		} else {
			ball.DeflectFromPaddle(left)
		}
		if math.Abs(ball.VX) > MaxBallSpeed {
			t.Fatalf("hit %d: |VX|=%f exceeds cap %f", i, math.Abs(ball.VX), MaxBallSpeed)
		}
	}

	if math.Abs(ball.VX) != MaxBallSpeed {
		t.Errorf("expected ball to reach the cap after 100 hits, got %f", ball.VX)
	}
}

func TestBall_DeflectAtCapOnlyFlips(t *testing.T) {
	right := NewPaddle(protocol.SideRight, 755, 260, PaddleWidth, PaddleHeight, FieldHeight)
	ball := newTestBall()
	ball.VX = MaxBallSpeed

	ball.DeflectFromPaddle(right)

	if ball.VX != -MaxBallSpeed {
		t.Errorf("expected VX=%f, got %f", -MaxBallSpeed, ball.VX)
	}
}

func TestBall_Reset(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	signs := make(map[[2]bool]bool)

	for i := 0; i < 200; i++ {
		ball := newTestBall()
		ball.X, ball.Y = 10, 10

		ball.Reset(rng)

		if ball.X != centreX || ball.Y != centreY {
			t.Fatalf("expected reset to centre, got (%d,%d)", ball.X, ball.Y)
		}
		if math.Abs(ball.VX) != DefaultBallSpeed || math.Abs(ball.VY) != DefaultBallSpeed {
			t.Fatalf("expected |VX|=|VY|=%f, got VX=%f VY=%f", DefaultBallSpeed, ball.VX, ball.VY)
		}
		signs[[2]bool{ball.VX > 0, ball.VY > 0}] = true
	}

	if len(signs) != 4 {
		t.Errorf("expected all four serve directions over 200 resets, saw %d", len(signs))
	}
}

func TestBall_Park(t *testing.T) {
	ball := newTestBall()
	ball.X, ball.Y = 790, 10
	ball.VX, ball.VY = 5, -3

	ball.Park()

	if ball.X != centreX || ball.Y != centreY {
		t.Errorf("expected parked at centre, got (%d,%d)", ball.X, ball.Y)
	}
	if !ball.Stationary() {
		t.Errorf("expected zero velocity, got VX=%f VY=%f", ball.VX, ball.VY)
	}
}

func TestBall_SetSpeedMultiplierNeverNegative(t *testing.T) {
	ball := newTestBall()
	ball.SetSpeedMultiplier(-2)

	if ball.SpeedMultiplier != 0 {
		t.Errorf("expected negative multiplier to clamp to 0, got %f", ball.SpeedMultiplier)
	}
}

func TestBall_OutOfBounds(t *testing.T) {
	tests := []struct {
		name      string
		x         int
		wantLeft  bool
		wantRight bool
	}{
		{"centre", 392, false, false},
		{"touching left", 0, true, false},
		{"past left", -3, true, false},
		{"touching right", 785, false, true},
		{"just inside right", 784, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ball := newTestBall()
			ball.X = tt.x
			if got := ball.OutLeft(); got != tt.wantLeft {
				t.Errorf("OutLeft() = %v, want %v", got, tt.wantLeft)
			}
			if got := ball.OutRight(); got != tt.wantRight {
				t.Errorf("OutRight() = %v, want %v", got, tt.wantRight)
			}
		})
	}
}
