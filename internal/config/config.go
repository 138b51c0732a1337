package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/diegok/solopong/internal/game"
	"github.com/diegok/solopong/internal/theme"
)

// Default values for configuration
const (
	DefaultPoints     = game.WinningScore
	DefaultDifficulty = "medium"
	DefaultTheme      = theme.Default
)

// Config holds the application configuration. Fields with a yaml tag may
// also come from the --config file; explicit flags win over the file.
type Config struct {
	Difficulty  string `yaml:"difficulty"`
	Theme       string `yaml:"theme"`
	Multiplayer bool   `yaml:"multiplayer"`
	PointsToWin int    `yaml:"points"`
	Seed        int64  `yaml:"seed"` // 0 seeds from the clock
	RecordPath  string `yaml:"record"`
	StatsPath   string `yaml:"stats"`
	LogPath     string `yaml:"log"`
	Mute        bool   `yaml:"mute"`

	ConfigPath  string          `yaml:"-"`
	ReplayPath  string          `yaml:"-"`
	PrintConfig bool            `yaml:"-"`
	Level       game.Difficulty `yaml:"-"`
}

// Defaults returns a Config with every default applied
func Defaults() *Config {
	return &Config{
		Difficulty:  DefaultDifficulty,
		Theme:       DefaultTheme,
		PointsToWin: DefaultPoints,
		Level:       game.Medium,
	}
}

// ParseArgs parses command line arguments and returns a Config
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("solopong", flag.ContinueOnError)

	difficulty := fs.String("difficulty", DefaultDifficulty, "AI difficulty (easy, medium, hard)")
	themeName := fs.String("theme", DefaultTheme, "colour theme ("+strings.Join(theme.Names(), ", ")+")")
	multiplayer := fs.Bool("multiplayer", false, "two players on one keyboard")
	points := fs.Int("points", DefaultPoints, "points to win (>=1)")
	seed := fs.Int64("seed", 0, "random seed for serves (0 uses the clock)")
	configPath := fs.String("config", "", "YAML config file")
	record := fs.String("record", "", "record every tick to this file")
	stats := fs.String("stats", "", "append scored points to this CSV file")
	logPath := fs.String("log", "", "write the debug log to this file")
	replay := fs.String("replay", "", "play back a recording instead of a match")
	mute := fs.Bool("mute", false, "disable sound")
	printConfig := fs.Bool("print-config", false, "print the effective config as YAML and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	cfg := Defaults()
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return nil, err
		}
	}

	// Only flags given on the command line override the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "difficulty":
			cfg.Difficulty = *difficulty
		case "theme":
			cfg.Theme = *themeName
		case "multiplayer":
			cfg.Multiplayer = *multiplayer
		case "points":
			cfg.PointsToWin = *points
		case "seed":
			cfg.Seed = *seed
		case "record":
			cfg.RecordPath = *record
		case "stats":
			cfg.StatsPath = *stats
		case "log":
			cfg.LogPath = *logPath
		case "mute":
			cfg.Mute = *mute
		}
	})
	cfg.ConfigPath = *configPath
	cfg.ReplayPath = *replay
	cfg.PrintConfig = *printConfig

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg. Unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate normalises names and fills Level. It fails on the first bad value.
func (c *Config) Validate() error {
	level, err := game.ParseDifficulty(c.Difficulty)
	if err != nil {
		return err
	}
	c.Level = level
	c.Difficulty = level.String()

	t, err := theme.Lookup(c.Theme)
	if err != nil {
		return err
	}
	c.Theme = t.Name

	if c.PointsToWin < 1 {
		return fmt.Errorf("points must be at least 1, got %d", c.PointsToWin)
	}

	if c.ReplayPath != "" && c.RecordPath != "" {
		return errors.New("cannot specify both --replay and --record")
	}

	return nil
}

// WriteYAML saves the file-backed settings, for use as a --config template
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
