package liar

import (
	"slices"

	"github.com/samdwyer/partybox/internal/gamedata"
	"github.com/samdwyer/partybox/internal/round"
)

// Stage represents the current phase of a liar round.
type Stage int

const (
	// StageMenu is the setup screen.
	StageMenu Stage = iota
	// StageInput collects one private answer per player, in seat order.
	StageInput
	// StageBoard shows every answer to the table.
	StageBoard
)

// String returns a human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageMenu:
		return "menu"
	case StageInput:
		return "input"
	case StageBoard:
		return "board"
	default:
		return "unknown"
	}
}

// Player is one participant of a liar round.
type Player struct {
	ID     int
	Name   string
	IsLiar bool
	Answer string
}

// Settings are the menu choices carried from round to round.
type Settings struct {
	Category  string
	LiarCount int
}

// Snapshot is an immutable copy of the controller state for rendering.
type Snapshot struct {
	Stage    Stage
	Round    int
	Roster   []string
	Settings Settings

	Players     []Player
	Question    gamedata.QuestionPair
	Liars       []int
	ActiveIndex int
	Revealed    bool
}

// Prompt returns the active player's name and the question that player
// must answer. Liars get the liar variant.
func (s Snapshot) Prompt() (name, question string, ok bool) {
	if s.Stage != StageInput || s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Players) {
		return "", "", false
	}
	p := s.Players[s.ActiveIndex]
	if p.IsLiar {
		return p.Name, s.Question.Liar, true
	}
	return p.Name, s.Question.Truth, true
}

// CanStart reports whether the start action is currently enabled.
func (s Snapshot) CanStart() bool {
	return s.Stage == StageMenu && len(s.Roster) >= round.MinPlayers
}

func (s Snapshot) clone() Snapshot {
	s.Roster = slices.Clone(s.Roster)
	s.Players = slices.Clone(s.Players)
	s.Liars = slices.Clone(s.Liars)
	return s
}
