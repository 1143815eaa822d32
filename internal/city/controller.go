// Package city runs the city/category word game: a letter is drawn, every
// category needs an answer starting with it, and the table scores each
// answer 0, 5, 10 or 20 points.
package city

import (
	"context"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/rivo/uniseg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/partybox/internal/round"
	"github.com/samdwyer/partybox/internal/telemetry"
)

// Config wires a controller to its content.
type Config struct {
	Alphabet   []string
	Categories []string
	Rand       *rand.Rand
}

// Controller owns one city session, including the running session score.
// It is safe for concurrent use.
type Controller struct {
	alphabet  []string
	rng       *rand.Rand
	log       zerolog.Logger
	observers round.Observers[Snapshot]

	mu         sync.Mutex
	stage      Stage
	categories []string
	letter     string
	answers    map[string]string
	sheet      *round.Scoresheet
	tally      round.Tally
}

// New creates a controller in the menu stage.
func New(cfg Config) *Controller {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{
		alphabet:   slices.Clone(cfg.Alphabet),
		rng:        rng,
		log:        log.With().Str("game", "city").Logger(),
		categories: slices.Clone(cfg.Categories),
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Stage:        c.stage,
		Categories:   c.categories,
		Letter:       c.letter,
		Answers:      c.answers,
		SessionScore: c.tally.Total(),
		RoundsPlayed: c.tally.Rounds(),
	}
	if c.sheet != nil {
		s.Scores = c.sheet.Scores()
		s.RoundScore = c.sheet.Total()
	}
	return s.clone()
}

// Subscribe registers fn to receive a snapshot after every accepted action.
func (c *Controller) Subscribe(fn func(Snapshot)) (cancel func()) {
	return c.observers.Subscribe(fn)
}

func (c *Controller) update(fn func() bool) {
	c.mu.Lock()
	changed := fn()
	c.mu.Unlock()
	if changed {
		c.observers.Publish(c.Snapshot())
	}
}

// AddCategory appends an answer column. Blank and duplicate names are
// ignored.
func (c *Controller) AddCategory(name string) {
	name = round.Clean(name)
	c.update(func() bool {
		if c.stage != StageMenu || name == "" || slices.Contains(c.categories, name) {
			return false
		}
		c.categories = append(c.categories, name)
		return true
	})
}

// RemoveCategory drops the column at index. The last column stays.
func (c *Controller) RemoveCategory(index int) {
	c.update(func() bool {
		if c.stage != StageMenu || index < 0 || index >= len(c.categories) || len(c.categories) <= 1 {
			return false
		}
		c.categories = slices.Delete(c.categories, index, index+1)
		return true
	})
}

// StartRandom opens the answer sheet without a letter; SpinLetter picks it.
func (c *Controller) StartRandom() {
	c.update(func() bool {
		if c.stage != StageMenu {
			return false
		}
		c.beginLocked("")
		return true
	})
}

// StartManual opens the answer sheet with a letter chosen by the players.
// Anything other than exactly one character is ignored.
func (c *Controller) StartManual(letter string) {
	letter = round.Clean(letter)
	if uniseg.GraphemeClusterCount(letter) != 1 {
		return
	}
	c.update(func() bool {
		if c.stage != StageMenu {
			return false
		}
		c.beginLocked(letter)
		return true
	})
}

func (c *Controller) beginLocked(letter string) {
	c.stage = StagePlay
	c.letter = letter
	c.answers = make(map[string]string, len(c.categories))
	c.sheet = nil
}

// SpinLetter draws the round's letter uniformly from the alphabet. It only
// applies while the sheet has no letter yet.
func (c *Controller) SpinLetter() {
	c.update(func() bool {
		if c.stage != StagePlay || c.letter != "" {
			return false
		}
		if len(c.alphabet) == 0 {
			c.letter = "?"
		} else {
			c.letter = c.alphabet[c.rng.Intn(len(c.alphabet))]
		}
		c.log.Debug().Str("letter", c.letter).Msg("letter drawn")
		return true
	})
}

// SetAnswer updates the draft answer for a category while playing.
func (c *Controller) SetAnswer(category, value string) {
	c.update(func() bool {
		if c.stage != StagePlay || c.letter == "" || !slices.Contains(c.categories, category) {
			return false
		}
		c.answers[category] = value
		return true
	})
}

// FinishPlay locks in the answers and moves to scoring. Categories missing
// from answers are recorded as empty.
func (c *Controller) FinishPlay(answers map[string]string) {
	c.update(func() bool {
		if c.stage != StagePlay || c.letter == "" {
			return false
		}
		final := make(map[string]string, len(c.categories))
		for _, cat := range c.categories {
			final[cat] = round.Clean(answers[cat])
		}
		c.answers = final
		c.sheet = round.NewScoresheet()
		c.stage = StageScoring
		return true
	})
}

// ToggleScore advances one category's score 0 -> 5 -> 10 -> 20 -> 0.
func (c *Controller) ToggleScore(category string) {
	c.update(func() bool {
		if c.stage != StageScoring || c.sheet == nil || !slices.Contains(c.categories, category) {
			return false
		}
		c.sheet.Toggle(category)
		return true
	})
}

// CompleteScoring adds the round score to the session and returns to the
// menu with letter and answers cleared.
func (c *Controller) CompleteScoring() {
	var roundScore, session int
	scored := false
	c.update(func() bool {
		if c.stage != StageScoring || c.sheet == nil {
			return false
		}
		roundScore = c.sheet.Total()
		c.tally.Add(roundScore)
		session = c.tally.Total()
		c.stage = StageMenu
		c.letter = ""
		c.answers = nil
		c.sheet = nil
		scored = true
		return true
	})

	if scored {
		_, span := telemetry.Tracer("city").Start(context.Background(), "city.complete_scoring")
		span.SetAttributes(
			attribute.Int("round_score", roundScore),
			attribute.Int("session_score", session),
		)
		span.End()
		c.log.Info().Int("round_score", roundScore).Int("session_score", session).Msg("round scored")
	}
}

// ResetScore zeroes the session score.
func (c *Controller) ResetScore() {
	c.update(func() bool {
		if c.stage != StageMenu {
			return false
		}
		c.tally.Reset()
		return true
	})
}

// ResetToMenu abandons the round. The session score is kept.
func (c *Controller) ResetToMenu() {
	c.update(func() bool {
		c.stage = StageMenu
		c.letter = ""
		c.answers = nil
		c.sheet = nil
		return true
	})
}
