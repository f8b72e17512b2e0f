// Package model defines shared data structures.
package model

import "time"

// Config holds the resolved settings for a run.
type Config struct {
	Route    string
	Debug    bool
	LogFile  string
	Keyboard KeyboardConfig
	Game     GameConfig
	Practice PracticeConfig
}

// KeyboardConfig defines the virtual keyboard settings.
type KeyboardConfig struct {
	LayoutFile string
	// ReleaseMs is how long a key stays highlighted after its last press.
	ReleaseMs int
}

// GameConfig defines the falling-characters game.
type GameConfig struct {
	Delay    float64
	Capacity int
	Charset  string
}

// PracticeConfig defines the finger practice screens.
type PracticeConfig struct {
	Length     int
	WordList   string
	Delay      float64
	WeakTop    int
	WeakFactor float64
}

// RoundStats captures a completed practice line.
type RoundStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Route      string
	Length     int
	Correct    int
	Incorrect  int
	DurationMs int64
}

// CharStats stores per-character stats for a round.
type CharStats struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// CharAggregate aggregates character stats across rounds.
type CharAggregate struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}
