package liar

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/partybox/internal/gamedata"
	"github.com/samdwyer/partybox/internal/round"
)

func testQuestions() *gamedata.QuestionRegistry {
	return gamedata.NewQuestionRegistry(gamedata.QuestionsFile{
		Categories: []gamedata.QuestionCategory{
			{ID: gamedata.AllQuestions, Label: "All"},
			{ID: "FOOD", Label: "Food"},
			{ID: "EMPTY", Label: "Nothing here"},
		},
		Questions: []gamedata.QuestionPair{
			{ID: "q1", Truth: "Favourite fruit?", Liar: "Favourite vegetable?", Category: "FOOD"},
			{ID: "q2", Truth: "How many siblings?", Liar: "How many pets?", Category: "NUMBERS"},
		},
	})
}

func newTestController(seed int64) *Controller {
	return New(Config{
		Questions:   testQuestions(),
		Rand:        rand.New(rand.NewSource(seed)),
		DefaultName: "Player",
	})
}

func answerAll(c *Controller) {
	for i := range c.Snapshot().Players {
		c.SubmitAnswer("answer " + string(rune('A'+i)))
	}
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "menu", StageMenu.String())
	assert.Equal(t, "input", StageInput.String())
	assert.Equal(t, "board", StageBoard.String())
	assert.Equal(t, "unknown", Stage(-1).String())
}

func TestStartRoundAssignsOneLiar(t *testing.T) {
	c := newTestController(1)
	c.RemovePlayer(0)
	c.SetPlayerName(0, "Ann")
	c.StartRound(context.Background())

	s := c.Snapshot()
	require.Equal(t, StageInput, s.Stage)
	require.Len(t, s.Players, 3)
	require.Len(t, s.Liars, 1)
	assert.Equal(t, "Ann", s.Players[0].Name)
	assert.Equal(t, "Player 2", s.Players[1].Name)

	liars := 0
	for i, p := range s.Players {
		assert.Equal(t, i, p.ID)
		assert.Empty(t, p.Answer)
		if p.IsLiar {
			liars++
			assert.Equal(t, s.Liars[0], i)
		}
	}
	assert.Equal(t, 1, liars)
}

func TestPromptShowsLiarVariant(t *testing.T) {
	c := newTestController(4)
	c.SetCategory("FOOD")
	c.StartRound(context.Background())

	s := c.Snapshot()
	require.Equal(t, "q1", s.Question.ID)

	for range s.Players {
		snap := c.Snapshot()
		name, question, ok := snap.Prompt()
		require.True(t, ok)
		p := snap.Players[snap.ActiveIndex]
		assert.Equal(t, p.Name, name)
		if p.IsLiar {
			assert.Equal(t, "Favourite vegetable?", question)
		} else {
			assert.Equal(t, "Favourite fruit?", question)
		}
		c.SubmitAnswer("x")
	}

	_, _, ok := c.Snapshot().Prompt()
	assert.False(t, ok)
}

func TestCategoryWithNoQuestionsFallsBack(t *testing.T) {
	c := newTestController(1)
	c.SetCategory("EMPTY")
	c.StartRound(context.Background())

	s := c.Snapshot()
	assert.Equal(t, StageInput, s.Stage)
	assert.Contains(t, []string{"q1", "q2"}, s.Question.ID)
}

func TestEmptyPoolUsesPlaceholder(t *testing.T) {
	c := New(Config{
		Questions: gamedata.NewQuestionRegistry(gamedata.QuestionsFile{}),
		Rand:      rand.New(rand.NewSource(1)),
	})
	c.StartRound(context.Background())

	s := c.Snapshot()
	assert.Equal(t, StageInput, s.Stage)
	assert.Equal(t, Placeholder, s.Question)
}

func TestSubmitAnswerSequence(t *testing.T) {
	c := newTestController(2)
	c.StartRound(context.Background())

	c.SubmitAnswer("   ")
	s := c.Snapshot()
	assert.Zero(t, s.ActiveIndex, "blank answers do not advance")
	assert.Empty(t, s.Players[0].Answer)

	c.SubmitAnswer("  apple ")
	s = c.Snapshot()
	assert.Equal(t, 1, s.ActiveIndex)
	assert.Equal(t, "apple", s.Players[0].Answer)

	c.SubmitAnswer("b")
	c.SubmitAnswer("c")
	assert.Equal(t, StageInput, c.Snapshot().Stage)

	c.SubmitAnswer("d")
	s = c.Snapshot()
	require.Equal(t, StageBoard, s.Stage)
	assert.Equal(t, []string{"apple", "b", "c", "d"},
		[]string{s.Players[0].Answer, s.Players[1].Answer, s.Players[2].Answer, s.Players[3].Answer})

	c.SubmitAnswer("late")
	assert.Equal(t, "d", c.Snapshot().Players[3].Answer)
}

func TestToggleRevealOnlyOnBoard(t *testing.T) {
	c := newTestController(3)
	c.ToggleReveal()
	assert.False(t, c.Snapshot().Revealed)

	c.StartRound(context.Background())
	c.ToggleReveal()
	assert.False(t, c.Snapshot().Revealed)

	answerAll(c)
	c.ToggleReveal()
	assert.True(t, c.Snapshot().Revealed)
	assert.Equal(t, StageBoard, c.Snapshot().Stage)

	c.ToggleReveal()
	assert.False(t, c.Snapshot().Revealed)
}

func TestResetToMenuAndRoundIsolation(t *testing.T) {
	c := newTestController(9)
	c.StartRound(context.Background())
	answerAll(c)
	c.ToggleReveal()

	c.ResetToMenu()
	s := c.Snapshot()
	assert.Equal(t, StageMenu, s.Stage)
	assert.Nil(t, s.Players)
	assert.Nil(t, s.Liars)
	assert.False(t, s.Revealed)
	assert.Len(t, s.Roster, round.DefaultPlayers)

	c.StartRound(context.Background())
	s = c.Snapshot()
	assert.Equal(t, 2, s.Round)
	assert.Zero(t, s.ActiveIndex)
	assert.False(t, s.Revealed)
	for _, p := range s.Players {
		assert.Empty(t, p.Answer)
	}
}

func TestStartRoundOnlyFromMenu(t *testing.T) {
	c := newTestController(1)
	c.StartRound(context.Background())
	c.SubmitAnswer("a")

	c.StartRound(context.Background())
	s := c.Snapshot()
	assert.Equal(t, 1, s.Round)
	assert.Equal(t, 1, s.ActiveIndex)
}

func TestLiarCountClamp(t *testing.T) {
	c := newTestController(1)
	c.AddPlayer()
	c.AddPlayer()
	c.AddPlayer()
	c.CycleSpecialCount()
	c.CycleSpecialCount()
	require.Equal(t, 3, c.Snapshot().Settings.LiarCount)

	c.RemovePlayer(6)
	assert.Equal(t, 2, c.Snapshot().Settings.LiarCount)

	c.SetSpecialCount(0)
	assert.Equal(t, 1, c.Snapshot().Settings.LiarCount)
}

func TestSubscribe(t *testing.T) {
	c := newTestController(1)
	var got []Stage
	cancel := c.Subscribe(func(s Snapshot) { got = append(got, s.Stage) })
	defer cancel()

	c.StartRound(context.Background())
	c.SubmitAnswer("")
	answerAll(c)

	require.NotEmpty(t, got)
	assert.Equal(t, StageInput, got[0])
	assert.Equal(t, StageBoard, got[len(got)-1])
	assert.Len(t, got, 1+round.DefaultPlayers)
}
