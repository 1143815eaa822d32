package round

import (
	"maps"
	"slices"
)

// ScoreSteps is the per-answer score cycle of the city game.
var ScoreSteps = []int{0, 5, 10, 20}

// NextScore advances a per-answer score one notch, wrapping 20 -> 0.
// Values outside the cycle restart it at the first non-zero step.
func NextScore(current int) int {
	i := slices.Index(ScoreSteps, current)
	if i < 0 {
		return ScoreSteps[1]
	}
	return ScoreSteps[(i+1)%len(ScoreSteps)]
}

// Scoresheet holds one round's per-category scores.
type Scoresheet struct {
	scores map[string]int
}

// NewScoresheet creates an empty sheet; every category starts at 0.
func NewScoresheet() *Scoresheet {
	return &Scoresheet{scores: make(map[string]int)}
}

// Toggle advances the score for category and returns the new value.
func (s *Scoresheet) Toggle(category string) int {
	next := NextScore(s.scores[category])
	s.scores[category] = next
	return next
}

// Score returns the current score for category.
func (s *Scoresheet) Score(category string) int {
	return s.scores[category]
}

// Total sums every category's score.
func (s *Scoresheet) Total() int {
	total := 0
	for _, v := range s.scores {
		total += v
	}
	return total
}

// Scores returns a copy of the per-category scores.
func (s *Scoresheet) Scores() map[string]int {
	return maps.Clone(s.scores)
}

// Tally is a session score accumulator. It only grows, except on Reset.
type Tally struct {
	total  int
	rounds int
}

// Add folds a finished round's score into the session. Negative scores are ignored.
func (t *Tally) Add(roundScore int) {
	if roundScore < 0 {
		return
	}
	t.total += roundScore
	t.rounds++
}

// Total returns the accumulated score.
func (t *Tally) Total() int {
	return t.total
}

// Rounds returns how many rounds have been added since the last reset.
func (t *Tally) Rounds() int {
	return t.rounds
}

// Reset zeroes the accumulator.
func (t *Tally) Reset() {
	t.total = 0
	t.rounds = 0
}
