// Package liar runs the who-is-the-liar game: everyone answers a question
// in private, the liars answer a slightly different one, and the table
// compares answers on a shared board.
package liar

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/partybox/internal/gamedata"
	"github.com/samdwyer/partybox/internal/round"
	"github.com/samdwyer/partybox/internal/telemetry"
)

// Questions draws a question pair for a category filter.
type Questions interface {
	Draw(rng *rand.Rand, category string) (gamedata.QuestionPair, bool)
}

// Placeholder is used when the question pool is empty.
var Placeholder = gamedata.QuestionPair{ID: "placeholder", Truth: "???", Liar: "???"}

// Config wires a controller to its collaborators.
type Config struct {
	Questions   Questions
	Rand        *rand.Rand
	DefaultName string
}

// Controller owns one liar session. It is safe for concurrent use.
type Controller struct {
	questions   Questions
	rng         *rand.Rand
	defaultName string
	log         zerolog.Logger
	observers   round.Observers[Snapshot]

	mu       sync.Mutex
	roster   *round.Roster
	settings Settings
	stage    Stage
	rounds   int

	players  []Player
	question gamedata.QuestionPair
	liars    []int
	seq      *round.Sequencer
	revealed bool
}

// New creates a controller in the menu stage with the default roster.
func New(cfg Config) *Controller {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{
		questions:   cfg.Questions,
		rng:         rng,
		defaultName: cfg.DefaultName,
		log:         log.With().Str("game", "liar").Logger(),
		roster:      round.NewRoster(round.DefaultPlayers),
		settings: Settings{
			Category:  gamedata.AllQuestions,
			LiarCount: 1,
		},
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Stage:    c.stage,
		Round:    c.rounds,
		Roster:   c.roster.Names(),
		Settings: c.settings,
		Players:  c.players,
		Question: c.question,
		Liars:    c.liars,
		Revealed: c.revealed,
	}
	if c.seq != nil {
		s.ActiveIndex = c.seq.Index()
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

// AddPlayer appends an empty roster slot.
func (c *Controller) AddPlayer() {
	c.update(func() bool {
		if c.stage != StageMenu {
			return false
		}
		c.roster.Add()
		return true
	})
}

// RemovePlayer removes a slot unless the roster is at its minimum and
// re-clamps the liar count.
func (c *Controller) RemovePlayer(index int) {
	c.update(func() bool {
		if c.stage != StageMenu || !c.roster.Remove(index) {
			return false
		}
		c.settings.LiarCount = round.ClampSpecials(c.settings.LiarCount, c.roster.Count())
		return true
	})
}

// SetPlayerName stores the raw name typed for a slot.
func (c *Controller) SetPlayerName(index int, value string) {
	c.update(func() bool {
		if c.stage != StageMenu {
			return false
		}
		c.roster.SetName(index, value)
		return true
	})
}

// SetSpecialCount requests n liars, clamped to what the roster allows.
func (c *Controller) SetSpecialCount(n int) {
	c.update(func() bool {
		if c.stage != StageMenu {
			return false
		}
		c.settings.LiarCount = round.ClampSpecials(n, c.roster.Count())
		return true
	})
}

// CycleSpecialCount steps the liar count, wrapping at the maximum.
func (c *Controller) CycleSpecialCount() {
	c.update(func() bool {
		if c.stage != StageMenu {
			return false
		}
		c.settings.LiarCount = round.CycleSpecials(c.settings.LiarCount, c.roster.Count())
		return true
	})
}

// SetCategory selects the question filter; gamedata.AllQuestions keeps the
// whole pool.
func (c *Controller) SetCategory(id string) {
	c.update(func() bool {
		if c.stage != StageMenu {
			return false
		}
		c.settings.Category = id
		return true
	})
}

// StartRound draws a question and the liars, then opens the first
// player's private input turn.
func (c *Controller) StartRound(ctx context.Context) {
	_, span := telemetry.Tracer("liar").Start(ctx, "liar.start_round")
	defer span.End()

	c.update(func() bool {
		if c.stage != StageMenu || c.roster.Count() < round.MinPlayers {
			return false
		}
		question := Placeholder
		if c.questions != nil {
			if q, ok := c.questions.Draw(c.rng, c.settings.Category); ok {
				question = q
			}
		}

		names := c.roster.Materialize(c.defaultName)
		c.liars = round.ChooseSpecials(c.rng, len(names), c.settings.LiarCount)
		c.players = make([]Player, len(names))
		for i, name := range names {
			c.players[i] = Player{ID: i, Name: name, IsLiar: round.IsSpecial(c.liars, i)}
		}
		c.question = question
		c.seq = round.NewSequencer(len(names))
		c.revealed = false
		c.rounds++
		c.stage = StageInput
		liars := len(c.liars)

		span.SetAttributes(
			attribute.Int("players", len(names)),
			attribute.Int("liars", liars),
			attribute.String("question", question.ID),
			attribute.String("category", c.settings.Category),
		)
		c.log.Info().Int("players", len(names)).Int("liars", liars).Str("question", question.ID).Msg("round started")
		return true
	})
}

// SubmitAnswer stores the active player's answer and moves to the next
// player, or to the board after the last one. Blank answers are ignored.
func (c *Controller) SubmitAnswer(value string) {
	answer := round.Clean(value)
	if answer == "" {
		return
	}
	var board bool
	c.update(func() bool {
		if c.stage != StageInput || c.seq == nil {
			return false
		}
		idx := c.seq.Index()
		if idx < 0 || idx >= len(c.players) {
			return false
		}
		c.players[idx].Answer = answer
		if c.seq.Advance() == round.SignalComplete {
			c.stage = StageBoard
			board = true
		}
		return true
	})
	if board {
		_, span := telemetry.Tracer("liar").Start(context.Background(), "liar.board")
		span.SetAttributes(attribute.Int("answers", len(c.Snapshot().Players)))
		span.End()
		c.log.Debug().Msg("all answers in")
	}
}

// ToggleReveal flips the board between the shared question and the
// revealed view with both questions and the liars marked.
func (c *Controller) ToggleReveal() {
	c.update(func() bool {
		if c.stage != StageBoard {
			return false
		}
		c.revealed = !c.revealed
		return true
	})
}

// ResetToMenu discards the round from any stage.
func (c *Controller) ResetToMenu() {
	c.update(func() bool {
		c.stage = StageMenu
		c.players = nil
		c.question = gamedata.QuestionPair{}
		c.liars = nil
		c.seq = nil
		c.revealed = false
		return true
	})
}
