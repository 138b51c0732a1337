// Package theme holds the cosmetic colour schemes. Themes never affect play.
package theme

import (
	"errors"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var ErrUnknownTheme = errors.New("unknown theme")

// Default is used when no theme is configured
const Default = "classic"

type Theme struct {
	Name       string
	Background colorful.Color
	Paddle     colorful.Color
	Ball       colorful.Color
	Text       colorful.Color
	Divider    colorful.Color
	Button     colorful.Color
}

// palette lists hex colours in Theme field order
type palette struct {
	name   string
	colors [6]string
}

var palettes = []palette{
	{"classic", [6]string{"#000000", "#ffffff", "#ffffff", "#ffffff", "#ffffff", "#4682b4"}},
	{"neon", [6]string{"#000000", "#00ffcc", "#ff0080", "#ffff00", "#00ff00", "#8000ff"}},
	{"retro", [6]string{"#003366", "#ff9933", "#ffcc00", "#ffffcc", "#cc6600", "#994c00"}},
	{"dark", [6]string{"#1e1e1e", "#646464", "#c8c8c8", "#c8c8c8", "#505050", "#3c3c3c"}},
}

// Names lists the theme names in menu order
func Names() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.name
	}
	return names
}

// Lookup returns the theme with the given case-insensitive name
func Lookup(name string) (Theme, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range palettes {
		if p.name == key {
			return p.theme()
		}
	}
	return Theme{}, fmt.Errorf("%w: %q (want %s)", ErrUnknownTheme, name, strings.Join(Names(), ", "))
}

// MustLookup is Lookup for names already validated by config
func MustLookup(name string) Theme {
	t, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return t
}

func (p palette) theme() (Theme, error) {
	t := Theme{Name: p.name}
	dst := []*colorful.Color{&t.Background, &t.Paddle, &t.Ball, &t.Text, &t.Divider, &t.Button}
	for i, hex := range p.colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return Theme{}, fmt.Errorf("theme %s: %w", p.name, err)
		}
		*dst[i] = c
	}
	return t, nil
}

// Dim blends c toward the background, used for hints and the frozen field
func (t Theme) Dim(c colorful.Color, amount float64) colorful.Color {
	return c.BlendLab(t.Background, amount).Clamped()
}
