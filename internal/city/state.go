package city

import (
	"maps"
	"slices"
)

// Stage represents the current phase of a city round.
type Stage int

const (
	// StageMenu is the setup screen with the session score.
	StageMenu Stage = iota
	// StagePlay is the answer sheet for the round's letter.
	StagePlay
	// StageScoring lets the table score each answer.
	StageScoring
)

// String returns a human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageMenu:
		return "menu"
	case StagePlay:
		return "play"
	case StageScoring:
		return "scoring"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the controller state for rendering.
type Snapshot struct {
	Stage        Stage
	Categories   []string
	Letter       string
	Answers      map[string]string
	Scores       map[string]int
	RoundScore   int
	SessionScore int
	RoundsPlayed int
}

// HasLetter reports whether the round's letter is known yet.
func (s Snapshot) HasLetter() bool {
	return s.Letter != ""
}

func (s Snapshot) clone() Snapshot {
	s.Categories = slices.Clone(s.Categories)
	s.Answers = maps.Clone(s.Answers)
	s.Scores = maps.Clone(s.Scores)
	return s
}
