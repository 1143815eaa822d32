// Package round provides the round lifecycle pieces shared by every party
// game: the roster, secret role assignment, the per-player reveal sequence,
// the countdown timer and resolution/scoring.
package round

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// MinPlayers is the smallest roster that can play an imposter or liar round.
	MinPlayers = 3

	// DefaultPlayers is the number of empty slots a fresh roster starts with.
	DefaultPlayers = 4
)

// Roster is the editable list of player names shown on a game's menu.
// Names are stored exactly as typed; trimming happens in Materialize.
type Roster struct {
	names []string
}

// NewRoster creates a roster with count empty slots (never fewer than MinPlayers).
func NewRoster(count int) *Roster {
	if count < MinPlayers {
		count = MinPlayers
	}
	return &Roster{names: make([]string, count)}
}

// Count returns the number of slots.
func (r *Roster) Count() int {
	return len(r.names)
}

// Add appends an empty slot.
func (r *Roster) Add() {
	r.names = append(r.names, "")
}

// Remove deletes the slot at index and shifts the rest down.
// It is a no-op when the roster would drop below MinPlayers or the index is
// out of range; the returned bool reports whether anything changed.
func (r *Roster) Remove(index int) bool {
	if len(r.names) <= MinPlayers {
		return false
	}
	if index < 0 || index >= len(r.names) {
		return false
	}
	r.names = append(r.names[:index], r.names[index+1:]...)
	return true
}

// SetName overwrites the name at index. Out-of-range indexes are ignored.
func (r *Roster) SetName(index int, value string) {
	if index < 0 || index >= len(r.names) {
		return
	}
	r.names[index] = value
}

// Names returns a copy of the raw slot values.
func (r *Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Materialize returns the display names for a new round: each slot trimmed
// and NFC-normalised, or "<defaultName> N" (1-based) when blank.
func (r *Roster) Materialize(defaultName string) []string {
	out := make([]string, len(r.names))
	for i, n := range r.names {
		out[i] = DisplayName(n, defaultName, i)
	}
	return out
}

// DisplayName resolves a single slot value to the name used in a round.
func DisplayName(raw, defaultName string, index int) string {
	name := Clean(raw)
	if name != "" {
		return name
	}
	if defaultName == "" {
		defaultName = "Player"
	}
	return defaultName + " " + strconv.Itoa(index+1)
}

// Clean trims surrounding whitespace and NFC-normalises typed text so that
// composed and decomposed input compare equal.
func Clean(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}
