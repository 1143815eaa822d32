// Package imposter runs the imposter/spyfall word game: everyone but the
// imposters sees a secret word, the table discusses, then votes once.
package imposter

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
	"github.com/samdwyer/partybox/internal/words"
)

// Config wires a controller to its collaborators.
type Config struct {
	Words           words.Supplier
	Rand            *rand.Rand
	Tick            time.Duration
	DefaultName     string
	DefaultCategory string
}

// Controller owns one imposter session. It is safe for concurrent use:
// the UI goroutine calls actions while the timer goroutine delivers ticks.
type Controller struct {
	words       words.Supplier
	rng         *rand.Rand
	tickEvery   time.Duration
	defaultName string
	log         zerolog.Logger
	observers   round.Observers[Snapshot]

	mu       sync.Mutex
	roster   *round.Roster
	settings Settings
	stage    Stage
	loading  bool
	gen      int
	rounds   int

	players   []Player
	word      gamedata.WordItem
	imposters []int
	seq       *round.Sequencer
	timer     *round.Timer
	stopTimer func()
	timed     bool
	votedID   int
	outcome   round.Outcome
}

// New creates a controller in the menu stage with the default roster.
func New(cfg Config) *Controller {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{
		words:       cfg.Words,
		rng:         rng,
		tickEvery:   cfg.Tick,
		defaultName: cfg.DefaultName,
		log:         log.With().Str("game", "imposter").Logger(),
		roster:      round.NewRoster(round.DefaultPlayers),
		settings: Settings{
			Category:      cfg.DefaultCategory,
			ImposterCount: 1,
			TimerMinutes:  round.DefaultDurationMinutes,
		},
		stopTimer: func() {},
		votedID:   -1,
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every accepted action.
func (c *Controller) Subscribe(fn func(Snapshot)) (cancel func()) {
	return c.observers.Subscribe(fn)
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		Stage:     c.stage,
		Loading:   c.loading,
		Round:     c.rounds,
		Roster:    c.roster.Names(),
		Settings:  c.settings,
		Players:   c.players,
		Word:      c.word,
		Imposters: c.imposters,
		VotedID:   c.votedID,
		Outcome:   c.outcome,
	}
	if c.seq != nil {
		s.RevealIndex = c.seq.Index()
	}
	if c.timer != nil {
		s.TimeLeft = c.timer.Remaining()
		s.TimerInfinite = c.timer.Infinite()
	}
	return s.clone()
}

func (c *Controller) publish() {
	c.observers.Publish(c.Snapshot())
}

// update runs fn under the lock and publishes if fn accepted the action.
func (c *Controller) update(fn func() bool) {
	c.mu.Lock()
	changed := fn()
	c.mu.Unlock()
	if changed {
		c.publish()
	}
}

func (c *Controller) editable() bool {
	return c.stage == StageMenu && !c.loading
}

// AddPlayer appends an empty roster slot.
func (c *Controller) AddPlayer() {
	c.update(func() bool {
		if !c.editable() {
			return false
		}
		c.roster.Add()
		return true
	})
}

// RemovePlayer removes the slot at index unless the roster is at its
// minimum. The imposter count is re-clamped to the smaller roster.
func (c *Controller) RemovePlayer(index int) {
	c.update(func() bool {
		if !c.editable() || !c.roster.Remove(index) {
			return false
		}
		c.settings.ImposterCount = round.ClampSpecials(c.settings.ImposterCount, c.roster.Count())
		return true
	})
}

// SetPlayerName stores the raw name typed for a slot.
func (c *Controller) SetPlayerName(index int, value string) {
	c.update(func() bool {
		if !c.editable() {
			return false
		}
		c.roster.SetName(index, value)
		return true
	})
}

// SetSpecialCount requests n imposters, clamped to what the roster allows.
func (c *Controller) SetSpecialCount(n int) {
	c.update(func() bool {
		if !c.editable() {
			return false
		}
		c.settings.ImposterCount = round.ClampSpecials(n, c.roster.Count())
		return true
	})
}

// CycleSpecialCount steps the imposter count, wrapping at the maximum.
func (c *Controller) CycleSpecialCount() {
	c.update(func() bool {
		if !c.editable() {
			return false
		}
		c.settings.ImposterCount = round.CycleSpecials(c.settings.ImposterCount, c.roster.Count())
		return true
	})
}

// SetTimerEnabled switches the discussion timer on or off.
func (c *Controller) SetTimerEnabled(enabled bool) {
	c.update(func() bool {
		if !c.editable() {
			return false
		}
		c.settings.TimerEnabled = enabled
		return true
	})
}

// SetTimerDuration sets the discussion length in minutes.
func (c *Controller) SetTimerDuration(minutes int) {
	c.update(func() bool {
		if !c.editable() || minutes < 1 {
			return false
		}
		c.settings.TimerMinutes = minutes
		return true
	})
}

// CycleTimerDuration steps through the preset discussion lengths.
func (c *Controller) CycleTimerDuration() {
	c.update(func() bool {
		if !c.editable() {
			return false
		}
		c.settings.TimerMinutes = round.NextDuration(c.settings.TimerMinutes)
		return true
	})
}

// SetHintsEnabled controls whether imposters see the word's hint.
func (c *Controller) SetHintsEnabled(enabled bool) {
	c.update(func() bool {
		if !c.editable() {
			return false
		}
		c.settings.HintsEnabled = enabled
		return true
	})
}

// SetCategory selects the word category by id.
func (c *Controller) SetCategory(id string) {
	c.update(func() bool {
		if !c.editable() {
			return false
		}
		c.settings.Category = id
		return true
	})
}

// SetCustomPrompt sets the topic used by the generative category.
func (c *Controller) SetCustomPrompt(text string) {
	c.update(func() bool {
		if !c.editable() {
			return false
		}
		c.settings.CustomPrompt = text
		return true
	})
}

// StartRound fetches a word, draws imposters and enters the reveal stage.
// It blocks on the word supplier; while it does, the controller reports
// Loading and further starts are ignored.
func (c *Controller) StartRound(ctx context.Context) {
	c.startRound(ctx, StageMenu)
}

// ContinueRound re-rolls word and imposters from the results screen,
// keeping roster and settings.
func (c *Controller) ContinueRound(ctx context.Context) {
	c.startRound(ctx, StageResults)
}

func (c *Controller) startRound(ctx context.Context, from Stage) {
	c.mu.Lock()
	if c.loading || c.stage != from || c.roster.Count() < round.MinPlayers {
		c.mu.Unlock()
		return
	}
	c.loading = true
	gen := c.gen
	settings := c.settings
	names := c.roster.Materialize(c.defaultName)
	c.mu.Unlock()
	c.publish()

	tracer := telemetry.Tracer("imposter")
	ctx, span := tracer.Start(ctx, "imposter.start_round")
	defer span.End()
	span.SetAttributes(
		attribute.Int("players", len(names)),
		attribute.Int("imposters.requested", settings.ImposterCount),
		attribute.String("category", settings.Category),
		attribute.Bool("timer", settings.TimerEnabled),
	)

	item := words.Placeholder
	if c.words != nil {
		item = c.words.Supply(ctx, words.Request{
			Category:     settings.Category,
			CustomPrompt: settings.CustomPrompt,
		})
	}

	c.mu.Lock()
	c.loading = false
	if gen != c.gen {
		// Cancelled while the supplier was busy.
		c.mu.Unlock()
		span.SetAttributes(attribute.Bool("cancelled", true))
		c.publish()
		return
	}

	imposters := round.ChooseSpecials(c.rng, len(names), settings.ImposterCount)
	players := make([]Player, len(names))
	for i, name := range names {
		players[i] = Player{
			ID:         i,
			Name:       name,
			IsImposter: round.IsSpecial(imposters, i),
			IsAlive:    true,
		}
	}

	c.stopTimer()
	c.stopTimer = func() {}
	c.players = players
	c.word = item
	c.imposters = imposters
	c.seq = round.NewSequencer(len(players))
	c.timed = settings.TimerEnabled
	c.timer = round.NewTimer(round.SeedSeconds(settings.TimerEnabled, settings.TimerMinutes))
	c.votedID = -1
	c.outcome = round.OutcomeNone
	c.rounds++
	c.stage = StageReveal
	roundNo := c.rounds
	c.mu.Unlock()

	span.SetAttributes(attribute.Int("imposters", len(imposters)))
	c.log.Info().
		Int("round", roundNo).
		Int("players", len(players)).
		Int("imposters", len(imposters)).
		Str("category", settings.Category).
		Msg("round started")
	c.publish()
}

// AdvanceReveal hands the device to the next player. After the last player
// the round moves to gameplay when the timer is on, else straight to voting.
func (c *Controller) AdvanceReveal() {
	c.update(func() bool {
		if c.stage != StageReveal || c.seq == nil {
			return false
		}
		switch c.seq.Advance() {
		case round.SignalStay:
			return true
		case round.SignalComplete:
			if c.timed {
				c.enterGameplayLocked()
			} else {
				c.stage = StageVoting
			}
			return true
		default:
			return false
		}
	})
}

func (c *Controller) enterGameplayLocked() {
	c.stage = StageGameplay
	t := c.timer
	c.stopTimer = t.Start(c.tickEvery, func() { c.onTick(t) })
}

// Tick advances the discussion timer by one second. The ticker goroutine
// calls it; tests call it directly.
func (c *Controller) Tick() {
	c.mu.Lock()
	t := c.timer
	c.mu.Unlock()
	if t != nil {
		c.onTick(t)
	}
}

func (c *Controller) onTick(t *round.Timer) {
	c.update(func() bool {
		if c.stage != StageGameplay || c.timer != t {
			return false
		}
		if t.Infinite() {
			return false
		}
		if t.Tick() {
			c.leaveGameplayLocked()
			c.log.Debug().Msg("timer expired")
		}
		return true
	})
}

func (c *Controller) leaveGameplayLocked() {
	c.stopTimer()
	c.stopTimer = func() {}
	c.stage = StageVoting
}

// VoteNow ends the discussion early.
func (c *Controller) VoteNow() {
	c.update(func() bool {
		if c.stage != StageGameplay {
			return false
		}
		c.leaveGameplayLocked()
		return true
	})
}

// CastVote records the table's single vote. The first vote is final.
func (c *Controller) CastVote(playerID int) {
	c.mu.Lock()
	idx := -1
	for i, p := range c.players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if c.stage != StageVoting || idx < 0 {
		c.mu.Unlock()
		return
	}
	c.players[idx].VoteCount++
	c.votedID = playerID
	c.outcome = round.Resolve(c.imposters, idx)
	c.stage = StageResults
	outcome := c.outcome
	c.mu.Unlock()

	_, span := telemetry.Tracer("imposter").Start(context.Background(), "imposter.vote")
	span.SetAttributes(
		attribute.Int("voted", playerID),
		attribute.String("outcome", outcome.String()),
	)
	span.End()
	c.log.Info().Int("voted", playerID).Stringer("outcome", outcome).Msg("vote cast")
	c.publish()
}

// ResetToMenu abandons the round from any stage. A pending start is
// discarded when its word arrives.
func (c *Controller) ResetToMenu() {
	c.update(func() bool {
		c.stopTimer()
		c.stopTimer = func() {}
		c.gen++
		c.stage = StageMenu
		c.players = nil
		c.word = gamedata.WordItem{}
		c.imposters = nil
		c.seq = nil
		c.timer = nil
		c.timed = false
		c.votedID = -1
		c.outcome = round.OutcomeNone
		return true
	})
}
