package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDifficulty is returned for anything outside Easy, Medium and Hard
var ErrUnknownDifficulty = errors.New("unknown difficulty")

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Profile tunes how aggressively the AI plays and how fast the ball travels
type Profile struct {
	ReactionSpeed       float64 // 0..1 share of the tracking speed actually used
	PredictFactor       float64 // 0..1 weight of the predicted intercept over the ball centre
	DeadZone            int     // pixels of tolerance before the paddle moves
	BallSpeedMultiplier float64
}

var profiles = [...]Profile{
	Easy:   {ReactionSpeed: 0.5, PredictFactor: 0.3, DeadZone: 15, BallSpeedMultiplier: 1.1},
	Medium: {ReactionSpeed: 0.7, PredictFactor: 0.7, DeadZone: 10, BallSpeedMultiplier: 1.2},
	Hard:   {ReactionSpeed: 0.9, PredictFactor: 0.95, DeadZone: 5, BallSpeedMultiplier: 1.5},
}

// DemoProfile drives both paddles in attract mode regardless of difficulty
var DemoProfile = Profile{ReactionSpeed: 0.7, PredictFactor: 0.8, DeadZone: 5, BallSpeedMultiplier: 1.0}

// MultiplayerSpeedMultiplier applies to the ball when two humans play
const MultiplayerSpeedMultiplier = 1.1

// Difficulties lists every level in menu order
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

// Profile returns the preset for d. It panics on an invalid level; use
// ParseDifficulty or Valid at the boundary.
func (d Difficulty) Profile() Profile {
	if !d.Valid() {
		panic(fmt.Sprintf("game: %v: %d", ErrUnknownDifficulty, int(d)))
	}
	return profiles[d]
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty maps a case-insensitive name to a level
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("%w: %q (want easy, medium or hard)", ErrUnknownDifficulty, s)
}
