package imposter

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/partybox/internal/gamedata"
	"github.com/samdwyer/partybox/internal/round"
	"github.com/samdwyer/partybox/internal/words"
)

type fakeSupplier struct {
	mu    sync.Mutex
	item  gamedata.WordItem
	calls []words.Request
	gate  chan struct{}
}

func (f *fakeSupplier) Supply(ctx context.Context, req words.Request) gamedata.WordItem {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.item
}

func (f *fakeSupplier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestController(seed int64, supplier words.Supplier) *Controller {
	return New(Config{
		Words:           supplier,
		Rand:            rand.New(rand.NewSource(seed)),
		Tick:            time.Hour,
		DefaultName:     "Player",
		DefaultCategory: "EASY",
	})
}

func threePlayers(c *Controller) {
	c.RemovePlayer(3)
	c.SetPlayerName(0, "Ann")
	c.SetPlayerName(1, " Bo ")
	c.SetPlayerName(2, "Cy")
}

func revealAll(c *Controller) {
	for range c.Snapshot().Players {
		c.AdvanceReveal()
	}
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "menu", StageMenu.String())
	assert.Equal(t, "reveal", StageReveal.String())
	assert.Equal(t, "gameplay", StageGameplay.String())
	assert.Equal(t, "voting", StageVoting.String())
	assert.Equal(t, "results", StageResults.String())
	assert.Equal(t, "unknown", Stage(42).String())
}

func TestNewDefaults(t *testing.T) {
	c := newTestController(1, &fakeSupplier{})
	s := c.Snapshot()

	assert.Equal(t, StageMenu, s.Stage)
	assert.Len(t, s.Roster, round.DefaultPlayers)
	assert.Equal(t, 1, s.Settings.ImposterCount)
	assert.False(t, s.Settings.TimerEnabled)
	assert.Equal(t, round.DefaultDurationMinutes, s.Settings.TimerMinutes)
	assert.Equal(t, "EASY", s.Settings.Category)
	assert.Equal(t, -1, s.VotedID)
	assert.True(t, s.CanStart())
}

func TestVoteScenario(t *testing.T) {
	for target := 0; target < 3; target++ {
		supplier := &fakeSupplier{item: gamedata.WordItem{Word: "ვაშლი", Hint: "ხილი"}}
		c := newTestController(7, supplier)
		threePlayers(c)
		c.StartRound(context.Background())

		s := c.Snapshot()
		require.Equal(t, StageReveal, s.Stage)
		require.Len(t, s.Imposters, 1)
		assert.Equal(t, []string{"Ann", "Bo", "Cy"}, []string{s.Players[0].Name, s.Players[1].Name, s.Players[2].Name})

		flagged := 0
		for _, p := range s.Players {
			if p.IsImposter {
				flagged++
			}
			assert.True(t, p.IsAlive)
		}
		assert.Equal(t, 1, flagged)

		revealAll(c)
		require.Equal(t, StageVoting, c.Snapshot().Stage)

		c.CastVote(target)
		s = c.Snapshot()
		require.Equal(t, StageResults, s.Stage)
		assert.Equal(t, target, s.VotedID)
		assert.Equal(t, 1, s.Players[target].VoteCount)
		if s.Players[target].IsImposter {
			assert.Equal(t, round.OutcomeDefendersWin, s.Outcome)
		} else {
			assert.Equal(t, round.OutcomeSpecialsWin, s.Outcome)
		}
	}
}

func TestFirstVoteIsFinal(t *testing.T) {
	c := newTestController(3, &fakeSupplier{item: gamedata.WordItem{Word: "w"}})
	c.StartRound(context.Background())
	revealAll(c)

	c.CastVote(99)
	assert.Equal(t, StageVoting, c.Snapshot().Stage, "unknown player is not a vote")

	c.CastVote(0)
	first := c.Snapshot()
	c.CastVote(1)
	second := c.Snapshot()

	assert.Equal(t, first.VotedID, second.VotedID)
	assert.Equal(t, first.Outcome, second.Outcome)
	assert.Zero(t, second.Players[1].VoteCount)
}

func TestStartRoundMaterializesNamesAndRequest(t *testing.T) {
	supplier := &fakeSupplier{item: gamedata.WordItem{Word: "w", Hint: "h"}}
	c := newTestController(1, supplier)
	c.SetPlayerName(1, "  Bo  ")
	c.SetCategory(gamedata.GenerativeCategoryID)
	c.SetCustomPrompt("space")
	c.StartRound(context.Background())

	s := c.Snapshot()
	assert.Equal(t, "Player 1", s.Players[0].Name)
	assert.Equal(t, "Bo", s.Players[1].Name)
	for i, p := range s.Players {
		assert.Equal(t, i, p.ID)
	}
	require.Equal(t, 1, supplier.callCount())
	assert.Equal(t, words.Request{Category: gamedata.GenerativeCategoryID, CustomPrompt: "space"}, supplier.calls[0])
	assert.Equal(t, gamedata.WordItem{Word: "w", Hint: "h"}, s.Word)
	assert.Equal(t, 1, s.Round)
}

func TestRevealGoesToGameplayWhenTimed(t *testing.T) {
	c := newTestController(1, &fakeSupplier{item: gamedata.WordItem{Word: "w"}})
	c.SetTimerEnabled(true)
	c.SetTimerDuration(1)
	c.StartRound(context.Background())

	for i := 0; i < 3; i++ {
		c.AdvanceReveal()
		assert.Equal(t, StageReveal, c.Snapshot().Stage)
		assert.Equal(t, i+1, c.Snapshot().RevealIndex)
	}
	c.AdvanceReveal()

	s := c.Snapshot()
	require.Equal(t, StageGameplay, s.Stage)
	assert.Equal(t, 60, s.TimeLeft)
	assert.False(t, s.TimerInfinite)

	for i := 0; i < 59; i++ {
		c.Tick()
	}
	s = c.Snapshot()
	assert.Equal(t, StageGameplay, s.Stage)
	assert.Equal(t, 1, s.TimeLeft)

	c.Tick()
	s = c.Snapshot()
	assert.Equal(t, StageVoting, s.Stage)
	assert.Zero(t, s.TimeLeft)

	c.Tick()
	assert.Equal(t, StageVoting, c.Snapshot().Stage)
}

func TestInfiniteTimerNeedsVoteNow(t *testing.T) {
	c := newTestController(1, &fakeSupplier{item: gamedata.WordItem{Word: "w"}})
	c.SetTimerEnabled(true)
	c.SetTimerDuration(200)
	c.StartRound(context.Background())
	revealAll(c)

	s := c.Snapshot()
	require.Equal(t, StageGameplay, s.Stage)
	assert.True(t, s.TimerInfinite)

	for i := 0; i < 100; i++ {
		c.Tick()
	}
	assert.Equal(t, StageGameplay, c.Snapshot().Stage)

	c.VoteNow()
	assert.Equal(t, StageVoting, c.Snapshot().Stage)
}

func TestVoteNowLeavesEarly(t *testing.T) {
	c := newTestController(1, &fakeSupplier{item: gamedata.WordItem{Word: "w"}})
	c.SetTimerEnabled(true)
	c.StartRound(context.Background())
	revealAll(c)
	c.Tick()

	c.VoteNow()
	s := c.Snapshot()
	assert.Equal(t, StageVoting, s.Stage)
	assert.Equal(t, 5*60-1, s.TimeLeft)
}

func TestRealTickerDrivesTimer(t *testing.T) {
	c := New(Config{
		Words: &fakeSupplier{item: gamedata.WordItem{Word: "w"}},
		Rand:  rand.New(rand.NewSource(1)),
		Tick:  time.Millisecond,
	})
	c.SetTimerEnabled(true)
	c.SetTimerDuration(1)
	c.StartRound(context.Background())
	revealAll(c)

	require.Eventually(t, func() bool {
		return c.Snapshot().Stage == StageVoting
	}, 5*time.Second, 5*time.Millisecond)
	assert.Zero(t, c.Snapshot().TimeLeft)
}

func TestContinueRoundIsolation(t *testing.T) {
	c := newTestController(11, &fakeSupplier{item: gamedata.WordItem{Word: "w"}})
	c.StartRound(context.Background())
	revealAll(c)
	c.CastVote(2)
	require.Equal(t, StageResults, c.Snapshot().Stage)

	c.ContinueRound(context.Background())
	s := c.Snapshot()

	require.Equal(t, StageReveal, s.Stage)
	assert.Equal(t, 2, s.Round)
	assert.Zero(t, s.RevealIndex)
	assert.Equal(t, -1, s.VotedID)
	assert.Equal(t, round.OutcomeNone, s.Outcome)
	for _, p := range s.Players {
		assert.Zero(t, p.VoteCount)
		assert.True(t, p.IsAlive)
	}
	assert.Len(t, s.Roster, round.DefaultPlayers)
}

func TestContinueRoundOnlyFromResults(t *testing.T) {
	supplier := &fakeSupplier{item: gamedata.WordItem{Word: "w"}}
	c := newTestController(1, supplier)

	c.ContinueRound(context.Background())
	assert.Equal(t, StageMenu, c.Snapshot().Stage)
	assert.Zero(t, supplier.callCount())
}

func TestResetToMenuDiscardsRound(t *testing.T) {
	c := newTestController(1, &fakeSupplier{item: gamedata.WordItem{Word: "w"}})
	c.SetTimerEnabled(true)
	c.StartRound(context.Background())
	revealAll(c)
	require.Equal(t, StageGameplay, c.Snapshot().Stage)

	c.ResetToMenu()
	s := c.Snapshot()

	assert.Equal(t, StageMenu, s.Stage)
	assert.Nil(t, s.Players)
	assert.Nil(t, s.Imposters)
	assert.Zero(t, s.RevealIndex)
	assert.Empty(t, s.Word.Word)
	assert.True(t, s.Settings.TimerEnabled, "settings survive a reset")

	c.Tick()
	assert.Equal(t, StageMenu, c.Snapshot().Stage)
}

func TestStartRoundLoadingGate(t *testing.T) {
	supplier := &fakeSupplier{item: gamedata.WordItem{Word: "w"}, gate: make(chan struct{})}
	c := newTestController(1, supplier)

	done := make(chan struct{})
	go func() {
		c.StartRound(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool { return c.Snapshot().Loading }, time.Second, time.Millisecond)
	assert.False(t, c.Snapshot().CanStart())

	c.StartRound(context.Background())
	c.AddPlayer()
	assert.Equal(t, 1, supplier.callCount())
	assert.Len(t, c.Snapshot().Roster, round.DefaultPlayers)

	close(supplier.gate)
	<-done

	s := c.Snapshot()
	assert.False(t, s.Loading)
	assert.Equal(t, StageReveal, s.Stage)
	assert.Equal(t, 1, supplier.callCount())
}

func TestResetWhileLoadingDiscardsResult(t *testing.T) {
	supplier := &fakeSupplier{item: gamedata.WordItem{Word: "w"}, gate: make(chan struct{})}
	c := newTestController(1, supplier)

	done := make(chan struct{})
	go func() {
		c.StartRound(context.Background())
		close(done)
	}()
	require.Eventually(t, func() bool { return c.Snapshot().Loading }, time.Second, time.Millisecond)

	c.ResetToMenu()
	close(supplier.gate)
	<-done

	s := c.Snapshot()
	assert.False(t, s.Loading)
	assert.Equal(t, StageMenu, s.Stage)
	assert.Nil(t, s.Players)
	assert.Zero(t, s.Round)
}

func TestRemovePlayerReclampsImposters(t *testing.T) {
	c := newTestController(1, &fakeSupplier{})
	for len(c.Snapshot().Roster) < 7 {
		c.AddPlayer()
	}
	c.SetSpecialCount(3)
	require.Equal(t, 3, c.Snapshot().Settings.ImposterCount)

	c.RemovePlayer(0)
	c.RemovePlayer(0)
	s := c.Snapshot()
	assert.Len(t, s.Roster, 5)
	assert.Equal(t, 2, s.Settings.ImposterCount)

	c.RemovePlayer(0)
	c.RemovePlayer(0)
	c.RemovePlayer(0)
	s = c.Snapshot()
	assert.Len(t, s.Roster, round.MinPlayers)
	assert.Equal(t, 1, s.Settings.ImposterCount)
}

func TestSettingsCycles(t *testing.T) {
	c := newTestController(1, &fakeSupplier{})
	for len(c.Snapshot().Roster) < 7 {
		c.AddPlayer()
	}

	c.CycleSpecialCount()
	c.CycleSpecialCount()
	assert.Equal(t, 3, c.Snapshot().Settings.ImposterCount)
	c.CycleSpecialCount()
	assert.Equal(t, 1, c.Snapshot().Settings.ImposterCount)

	c.CycleTimerDuration()
	assert.Equal(t, 7, c.Snapshot().Settings.TimerMinutes)

	c.SetTimerDuration(0)
	assert.Equal(t, 7, c.Snapshot().Settings.TimerMinutes)

	c.SetSpecialCount(10)
	assert.Equal(t, 3, c.Snapshot().Settings.ImposterCount)
}

func TestSettingsLockedOutsideMenu(t *testing.T) {
	c := newTestController(1, &fakeSupplier{item: gamedata.WordItem{Word: "w"}})
	c.StartRound(context.Background())

	c.AddPlayer()
	c.SetHintsEnabled(true)
	c.SetPlayerName(0, "Zed")

	s := c.Snapshot()
	assert.Len(t, s.Roster, round.DefaultPlayers)
	assert.False(t, s.Settings.HintsEnabled)
	assert.Empty(t, s.Roster[0])
}

func TestCardHidesWordFromImposters(t *testing.T) {
	item := gamedata.WordItem{Word: "ვაშლი", Hint: "ხილი"}

	for _, hints := range []bool{false, true} {
		c := newTestController(5, &fakeSupplier{item: item})
		c.SetHintsEnabled(hints)
		c.StartRound(context.Background())

		for i := 0; i < round.DefaultPlayers; i++ {
			s := c.Snapshot()
			card, ok := s.Card()
			require.True(t, ok)
			assert.Equal(t, s.Players[i].Name, card.PlayerName)
			if card.IsImposter {
				assert.Empty(t, card.Word)
				if hints {
					assert.Equal(t, "ხილი", card.Hint)
				} else {
					assert.Empty(t, card.Hint)
				}
			} else {
				assert.Equal(t, "ვაშლი", card.Word)
				assert.Empty(t, card.Hint)
			}
			c.AdvanceReveal()
		}

		_, ok := c.Snapshot().Card()
		assert.False(t, ok)
	}
}

func TestImposterNames(t *testing.T) {
	c := newTestController(2, &fakeSupplier{item: gamedata.WordItem{Word: "w"}})
	threePlayers(c)
	c.StartRound(context.Background())

	s := c.Snapshot()
	names := s.ImposterNames()
	require.Len(t, names, 1)
	assert.Equal(t, s.Players[s.Imposters[0]].Name, names[0])
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	c := newTestController(1, &fakeSupplier{item: gamedata.WordItem{Word: "w"}})

	var stages []Stage
	cancel := c.Subscribe(func(s Snapshot) { stages = append(stages, s.Stage) })

	c.AddPlayer()
	c.StartRound(context.Background())
	cancel()
	c.AdvanceReveal()

	assert.Equal(t, []Stage{StageMenu, StageMenu, StageReveal}, stages)
}

func TestNilSupplierUsesPlaceholder(t *testing.T) {
	c := newTestController(1, nil)
	c.StartRound(context.Background())

	s := c.Snapshot()
	assert.Equal(t, StageReveal, s.Stage)
	assert.Equal(t, words.Placeholder, s.Word)
}
