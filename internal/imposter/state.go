package imposter

import (
	"slices"

	"github.com/samdwyer/partybox/internal/gamedata"
	"github.com/samdwyer/partybox/internal/round"
)

// Stage represents the current phase of an imposter round.
type Stage int

const (
	// StageMenu is the setup screen: roster and settings.
	StageMenu Stage = iota
	// StageReveal passes the device from player to player.
	StageReveal
	// StageGameplay is the open discussion, optionally timed.
	StageGameplay
	// StageVoting waits for the single final vote.
	StageVoting
	// StageResults shows who the imposters were.
	StageResults
)

// String returns a human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageMenu:
		return "menu"
	case StageReveal:
		return "reveal"
	case StageGameplay:
		return "gameplay"
	case StageVoting:
		return "voting"
	case StageResults:
		return "results"
	default:
		return "unknown"
	}
}

// Player is one participant of a round. Players are rebuilt from the
// roster at every round start.
type Player struct {
	ID         int
	Name       string
	IsImposter bool
	IsAlive    bool
	VoteCount  int
}

// Settings are the menu choices carried from round to round.
type Settings struct {
	Category      string
	CustomPrompt  string
	ImposterCount int
	TimerEnabled  bool
	TimerMinutes  int
	HintsEnabled  bool
}

// Snapshot is an immutable copy of the controller state for rendering.
type Snapshot struct {
	Stage    Stage
	Loading  bool
	Round    int
	Roster   []string
	Settings Settings

	Players     []Player
	Word        gamedata.WordItem
	Imposters   []int
	RevealIndex int

	TimeLeft      int
	TimerInfinite bool

	VotedID int
	Outcome round.Outcome
}

// Card is what the player currently holding the device is allowed to see.
type Card struct {
	PlayerName string
	IsImposter bool
	Word       string
	Hint       string
}

// Card returns the reveal card for the active player. Imposters never see
// the word; they see the hint only when hints are on.
func (s Snapshot) Card() (Card, bool) {
	if s.Stage != StageReveal || s.RevealIndex < 0 || s.RevealIndex >= len(s.Players) {
		return Card{}, false
	}
	p := s.Players[s.RevealIndex]
	card := Card{PlayerName: p.Name, IsImposter: p.IsImposter}
	if p.IsImposter {
		if s.Settings.HintsEnabled {
			card.Hint = s.Word.Hint
		}
		return card, true
	}
	card.Word = s.Word.Word
	return card, true
}

// ImposterNames lists the names of this round's imposters in seat order.
func (s Snapshot) ImposterNames() []string {
	var names []string
	for _, idx := range s.Imposters {
		if idx >= 0 && idx < len(s.Players) {
			names = append(names, s.Players[idx].Name)
		}
	}
	return names
}

// CanStart reports whether the start action is currently enabled.
func (s Snapshot) CanStart() bool {
	return !s.Loading && (s.Stage == StageMenu || s.Stage == StageResults) && len(s.Roster) >= round.MinPlayers
}

func (s Snapshot) clone() Snapshot {
	s.Roster = slices.Clone(s.Roster)
	s.Players = slices.Clone(s.Players)
	s.Imposters = slices.Clone(s.Imposters)
	return s
}
