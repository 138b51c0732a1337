package ui

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"

	"github.com/diegok/solopong/internal/theme"
)

// Styles are the tcell styles derived from a theme
type Styles struct {
	Field    tcell.Style
	Paddle   tcell.Style
	Ball     tcell.Style
	Text     tcell.Style
	Title    tcell.Style
	Hint     tcell.Style
	Divider  tcell.Style
	Button   tcell.Style
	Selected tcell.Style
	Status   tcell.Style
	Overlay  tcell.Style
	Accent   tcell.Style
}

// Color converts a theme colour to a true-colour tcell colour
func Color(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// NewStyles builds the styles for every screen from t
func NewStyles(t theme.Theme) Styles {
	bg := Color(t.Background)
	field := tcell.StyleDefault.Background(bg)
	button := Color(t.Button)
	gold, _ := colorful.Hex("#ffd700")

	return Styles{
		Field:    field,
		Paddle:   field.Foreground(Color(t.Paddle)),
		Ball:     field.Foreground(Color(t.Ball)),
		Text:     field.Foreground(Color(t.Text)),
		Title:    field.Foreground(Color(t.Text)).Bold(true),
		Hint:     field.Foreground(Color(t.Dim(t.Text, 0.45))),
		Divider:  field.Foreground(Color(t.Divider)),
		Button:   tcell.StyleDefault.Background(button).Foreground(Color(t.Text)),
		Selected: tcell.StyleDefault.Background(Color(t.Text)).Foreground(button).Bold(true),
		Status:   tcell.StyleDefault.Background(Color(t.Dim(t.Divider, 0.6))).Foreground(Color(t.Text)),
		Overlay:  tcell.StyleDefault.Background(Color(t.Dim(t.Button, 0.5))).Foreground(Color(t.Text)),
		Accent:   field.Foreground(Color(gold)).Bold(true),
	}
}

type Screen struct {
	screen tcell.Screen
}

func NewScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

func InitScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return NewScreen(s), nil
}

func (s *Screen) Size() (int, int) {
	return s.screen.Size()
}

// Clear blanks every cell with style so the theme background is in the
// cell buffer itself
func (s *Screen) Clear(style tcell.Style) {
	s.screen.SetStyle(style)
	s.screen.Fill(' ', style)
}

func (s *Screen) Show() {
	s.screen.Show()
}

func (s *Screen) Sync() {
	s.screen.Sync()
}

func (s *Screen) Fini() {
	s.screen.Fini()
}

func (s *Screen) SetCell(x, y int, style tcell.Style, r rune) {
	s.screen.SetContent(x, y, r, nil, style)
}

// DrawText writes text one grapheme cluster at a time and returns the
// number of columns used.
func (s *Screen) DrawText(x, y int, text string, style tcell.Style) int {
	start := x
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		s.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += g.Width()
	}
	return x - start
}

// DrawCentered writes text centred on row y
func (s *Screen) DrawCentered(y int, text string, style tcell.Style) {
	w, _ := s.Size()
	s.DrawText((w-TextWidth(text))/2, y, text, style)
}

// TextWidth is the number of terminal columns text occupies
func TextWidth(text string) int {
	return uniseg.StringWidth(text)
}

func (s *Screen) DrawBox(x, y, w, h int, style tcell.Style) {
	const (
		topLeft     = '┌'
		topRight    = '┐'
		bottomLeft  = '└'
		bottomRight = '┘'
		horizontal  = '─'
		vertical    = '│'
	)

	s.screen.SetContent(x, y, topLeft, nil, style)
	s.screen.SetContent(x+w-1, y, topRight, nil, style)
	s.screen.SetContent(x, y+h-1, bottomLeft, nil, style)
	s.screen.SetContent(x+w-1, y+h-1, bottomRight, nil, style)

	for i := x + 1; i < x+w-1; i++ {
		s.screen.SetContent(i, y, horizontal, nil, style)
		s.screen.SetContent(i, y+h-1, horizontal, nil, style)
	}

	for j := y + 1; j < y+h-1; j++ {
		s.screen.SetContent(x, j, vertical, nil, style)
		s.screen.SetContent(x+w-1, j, vertical, nil, style)
	}
}

func (s *Screen) FillRect(x, y, w, h int, style tcell.Style, r rune) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			s.screen.SetContent(x+dx, y+dy, r, nil, style)
		}
	}
}

func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}
