package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/solopong/internal/game"
	"github.com/diegok/solopong/internal/protocol"
	"github.com/diegok/solopong/internal/theme"
)

const (
	BallChar    = '⬤' // large circle, one cell wide
	PaddleChar  = '█' // full block, stacked for the paddle height
	DividerChar = '│' // drawn on every other row for the dashed centre line
)

// MenuView is everything the main menu shows
type MenuView struct {
	Backdrop protocol.MatchState // demo match playing behind the menu
	Items    []string
	Cursor   int
}

// Option is one line of a picker screen
type Option struct {
	Label       string
	Description string
	Current     bool
	Theme       *theme.Theme // shows colour swatches when set
}

// ReplayView is a recorded frame plus playback status
type ReplayView struct {
	State    protocol.MatchState
	Header   protocol.RecordingHeader
	Frame    int
	Paused   bool
	Finished bool
}

// Renderer handles rendering all game screens
type Renderer struct {
	screen *Screen
	theme  theme.Theme
	styles Styles
}

// NewRenderer creates a new renderer with the given screen and theme
func NewRenderer(screen *Screen, t theme.Theme) *Renderer {
	r := &Renderer{screen: screen}
	r.SetTheme(t)
	return r
}

func (r *Renderer) SetTheme(t theme.Theme) {
	r.theme = t
	r.styles = NewStyles(t)
}

// RenderMenu displays the main menu over the demo match
func (r *Renderer) RenderMenu(v MenuView) {
	r.screen.Clear(r.styles.Field)
	screenW, screenH := r.screen.Size()

	r.drawField(v.Backdrop, true)

	boxW := 34
	boxH := len(v.Items)*2 + 6
	boxX := (screenW - boxW) / 2
	boxY := (screenH - boxH) / 2
	r.screen.FillRect(boxX, boxY, boxW, boxH, r.styles.Field, ' ')
	r.screen.DrawBox(boxX, boxY, boxW, boxH, r.styles.Divider)

	r.screen.DrawCentered(boxY+1, "S O L O P O N G", r.styles.Title)

	for i, item := range v.Items {
		y := boxY + 4 + i*2
		style := r.styles.Button
		label := item
		if i == v.Cursor {
			style = r.styles.Selected
			label = "> " + item + " <"
		}
		w := 26
		x := (screenW - w) / 2
		r.screen.FillRect(x, y, w, 1, style, ' ')
		r.screen.DrawText(x+(w-TextWidth(label))/2, y, label, style)
	}

	r.screen.DrawCentered(screenH-2, "↑/↓ select   ENTER choose   Q quit", r.styles.Hint)

	r.screen.Show()
}

// RenderGame displays a match in progress with any overlay its phase needs
func (r *Renderer) RenderGame(s protocol.MatchState) {
	r.screen.Clear(r.styles.Field)

	r.drawField(s, false)
	r.renderScoreboard(s)
	r.renderStatus(s)

	switch s.Phase {
	case protocol.PhasePaused:
		r.renderMessageBox("PAUSED", "Press SPACE to continue", "ESC menu")
	case protocol.PhaseScoreDelay:
		left, right := sideNames(s.Multiplayer)
		scorer := left
		if s.LastScorer == protocol.SideRight {
			scorer = right
		}
		r.renderMessageBox(scorer+" SCORES!", fmt.Sprintf("Next serve in %d", delaySeconds(s.DelayTicksLeft)), "")
	case protocol.PhaseGameOver:
		r.renderMessageBox("GAME OVER", fmt.Sprintf("%s wins! %d - %d", s.Winner, s.PlayerScore, s.AIScore),
			"Press SPACE to play again, ESC for menu")
	}

	r.screen.Show()
}

// RenderReplay draws a recorded frame with the playback status bar
func (r *Renderer) RenderReplay(v ReplayView) {
	r.screen.Clear(r.styles.Field)
	screenW, screenH := r.screen.Size()

	r.drawField(v.State, false)
	r.renderScoreboard(v.State)

	statusY := screenH - 1
	r.screen.FillRect(0, statusY, screenW, 1, r.styles.Status, ' ')
	state := "playing"
	switch {
	case v.Finished:
		state = "finished"
	case v.Paused:
		state = "paused"
	}
	id := v.Header.MatchID
	if len(id) > 8 {
		id = id[:8]
	}
	status := fmt.Sprintf(" REPLAY %s | %s | frame %d | tick %d | SPACE pause  Q quit", id, state, v.Frame, v.State.Tick)
	r.screen.DrawText(0, statusY, status, r.styles.Status)

	if v.Finished {
		r.renderMessageBox("END OF REPLAY", fmt.Sprintf("Final score %d - %d", v.State.PlayerScore, v.State.AIScore), "Press Q to quit")
	}

	r.screen.Show()
}

// RenderInstructions shows the controls for the selected mode
func (r *Renderer) RenderInstructions(multiplayer bool, points int) {
	r.screen.Clear(r.styles.Field)
	_, screenH := r.screen.Size()

	r.screen.DrawCentered(2, "HOW TO PLAY", r.styles.Title)

	var lines []string
	if multiplayer {
		lines = []string{
			"Player 1: W moves the paddle up",
			"Player 1: S moves the paddle down",
			"Player 2: UP ARROW moves the paddle up",
			"Player 2: DOWN ARROW moves the paddle down",
			"Score by getting the ball past the other paddle",
		}
	} else {
		lines = []string{
			"W (or UP ARROW) moves the paddle up",
			"S (or DOWN ARROW) moves the paddle down",
			"Score by getting the ball past the AI paddle",
		}
	}
	lines = append(lines,
		"Where the ball hits the paddle sets its angle",
		"SPACE pauses and resumes the game",
		"M toggles sound, ESC returns to the menu",
		fmt.Sprintf("First to %d points wins!", points),
	)

	for i, line := range lines {
		r.screen.DrawCentered(5+i*2, "• "+line, r.styles.Text)
	}

	r.screen.DrawCentered(screenH-2, "Have fun!   ESC or ENTER to go back", r.styles.Hint)

	r.screen.Show()
}

// RenderPicker shows a titled list of options such as difficulties or themes
func (r *Renderer) RenderPicker(title string, options []Option, cursor int) {
	r.screen.Clear(r.styles.Field)
	screenW, screenH := r.screen.Size()

	r.screen.DrawCentered(2, title, r.styles.Title)

	w := 24
	x := (screenW - w) / 2
	for i, opt := range options {
		y := 5 + i*2
		style := r.styles.Button
		if i == cursor {
			style = r.styles.Selected
		}
		label := opt.Label
		if opt.Current {
			label += " ✓"
		}
		r.screen.FillRect(x, y, w, 1, style, ' ')
		r.screen.DrawText(x+(w-TextWidth(label))/2, y, label, style)

		if opt.Theme != nil {
			r.drawSwatches(x+w+2, y, *opt.Theme)
		}
	}

	if cursor >= 0 && cursor < len(options) {
		descY := 6 + len(options)*2
		for i, line := range strings.Split(options[cursor].Description, "\n") {
			r.screen.DrawCentered(descY+i, line, r.styles.Text)
		}
	}

	r.screen.DrawCentered(screenH-2, "↑/↓ select   ENTER choose   ESC back", r.styles.Hint)

	r.screen.Show()
}

func (r *Renderer) drawSwatches(x, y int, t theme.Theme) {
	bg := tcell.StyleDefault.Background(Color(t.Background))
	r.screen.SetCell(x, y, bg.Foreground(Color(t.Paddle)), PaddleChar)
	r.screen.SetCell(x+1, y, bg, ' ')
	r.screen.SetCell(x+2, y, bg.Foreground(Color(t.Ball)), '●')
	r.screen.SetCell(x+3, y, bg, ' ')
	r.screen.SetCell(x+4, y, bg.Foreground(Color(t.Divider)), DividerChar)
	r.screen.SetCell(x+5, y, bg, ' ')
	r.screen.SetCell(x+6, y, bg.Foreground(Color(t.Paddle)), PaddleChar)
}

// drawField maps the field onto rows 1..h-2 and draws divider, paddles and ball
func (r *Renderer) drawField(s protocol.MatchState, dim bool) {
	screenW, screenH := r.screen.Size()
	if s.FieldWidth == 0 || s.FieldHeight == 0 || screenH < 3 {
		return
	}

	fieldH := screenH - 2 // minus scoreboard and status bar
	toX := func(x int) int { return x * screenW / s.FieldWidth }
	toY := func(y int) int { return y*fieldH/s.FieldHeight + 1 }

	paddleStyle, ballStyle, dividerStyle := r.styles.Paddle, r.styles.Ball, r.styles.Divider
	if dim {
		field := r.styles.Field
		paddleStyle = field.Foreground(Color(r.theme.Dim(r.theme.Paddle, 0.6)))
		ballStyle = field.Foreground(Color(r.theme.Dim(r.theme.Ball, 0.6)))
		dividerStyle = field.Foreground(Color(r.theme.Dim(r.theme.Divider, 0.7)))
	}

	// Draw center dashed line
	centerX := screenW / 2
	for y := 1; y < screenH-1; y += 2 {
		r.screen.SetCell(centerX, y, dividerStyle, DividerChar)
	}

	for _, p := range []protocol.PaddleState{s.Player, s.Opponent} {
		px := toX(p.X)
		top, bottom := toY(p.Y), toY(p.Y+p.H)
		if bottom <= top {
			bottom = top + 1
		}
		for py := top; py < bottom && py < screenH-1; py++ {
			r.screen.SetCell(px, py, paddleStyle, PaddleChar)
		}
	}

	ballX := toX(s.Ball.X + s.Ball.W/2)
	ballY := toY(s.Ball.Y + s.Ball.H/2)
	if ballX >= 0 && ballX < screenW && ballY >= 1 && ballY < screenH-1 {
		r.screen.SetCell(ballX, ballY, ballStyle, BallChar)
	}
}

// renderScoreboard draws a stadium-style scoreboard at top center
func (r *Renderer) renderScoreboard(s protocol.MatchState) {
	screenW, _ := r.screen.Size()
	r.screen.FillRect(0, 0, screenW, 1, r.styles.Status, ' ')

	left, right := sideNames(s.Multiplayer)
	text := fmt.Sprintf("[ %s %d - %d %s ]", left, s.PlayerScore, s.AIScore, right)
	r.screen.DrawCentered(0, text, r.styles.Status.Bold(true))
}

func (r *Renderer) renderStatus(s protocol.MatchState) {
	screenW, screenH := r.screen.Size()
	statusY := screenH - 1
	r.screen.FillRect(0, statusY, screenW, 1, r.styles.Status, ' ')

	mode := "One Player | " + Title(s.Difficulty)
	if s.Multiplayer {
		mode = "Two Players"
	}
	status := fmt.Sprintf(" %s | Theme: %s | First to %d | SPACE pause  ESC menu", mode, s.Theme, s.WinningScore)
	r.screen.DrawText(0, statusY, status, r.styles.Status)
}

// renderMessageBox draws a centred box with up to three lines
func (r *Renderer) renderMessageBox(title, line, hint string) {
	screenW, screenH := r.screen.Size()

	boxW := max(30, TextWidth(line)+6, TextWidth(hint)+6)
	boxH := 7
	boxX := (screenW - boxW) / 2
	boxY := (screenH - boxH) / 2

	r.screen.FillRect(boxX, boxY, boxW, boxH, r.styles.Overlay, ' ')
	r.screen.DrawBox(boxX, boxY, boxW, boxH, r.styles.Overlay)

	r.screen.DrawCentered(boxY+1, title, r.styles.Overlay.Bold(true))
	r.screen.DrawCentered(boxY+3, line, r.styles.Overlay)
	if hint != "" {
		r.screen.DrawCentered(boxY+5, hint, r.styles.Overlay.Italic(true))
	}
}

// Title upper-cases the first letter of a lower-case name
func Title(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func sideNames(multiplayer bool) (string, string) {
	if multiplayer {
		return "PLAYER 1", "PLAYER 2"
	}
	return "PLAYER", "AI"
}

// delaySeconds rounds the remaining score delay up to whole seconds
func delaySeconds(ticks int) int {
	d := time.Duration(ticks) * game.TickInterval
	return int((d + time.Second - 1) / time.Second)
}
