package words

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/partybox/internal/gamedata"
)

type stubGenerator struct {
	items  []gamedata.WordItem
	err    error
	calls  int
	topics []string
}

func (s *stubGenerator) Generate(_ context.Context, topic string) ([]gamedata.WordItem, error) {
	s.calls++
	s.topics = append(s.topics, topic)
	return s.items, s.err
}

func testRegistry() *gamedata.CategoryRegistry {
	return gamedata.NewCategoryRegistry([]gamedata.CategoryDef{
		{
			ID:    "EASY",
			Label: "Easy",
			Words: []gamedata.WordItem{
				{Word: "apple", Hint: "fruit"},
				{Word: "sea"},
			},
		},
		{ID: gamedata.GenerativeCategoryID, Label: "AI", Generative: true},
	})
}

func TestSupplyStaticCategory(t *testing.T) {
	c := NewCatalog(testRegistry(), nil, rand.New(rand.NewSource(1)))

	seen := map[string]string{}
	for i := 0; i < 50; i++ {
		item := c.Supply(context.Background(), Request{Category: "EASY"})
		seen[item.Word] = item.Hint
	}

	require.Len(t, seen, 2, "both words should be drawn eventually")
	assert.Equal(t, "fruit", seen["apple"])
	assert.Equal(t, "Easy", seen["sea"], "missing hint falls back to the category label")
}

func TestSupplyGenerative(t *testing.T) {
	gen := &stubGenerator{items: []gamedata.WordItem{{Word: "robot", Hint: "machine"}}}
	c := NewCatalog(testRegistry(), gen, rand.New(rand.NewSource(1)))

	item := c.Supply(context.Background(), Request{Category: gamedata.GenerativeCategoryID, CustomPrompt: "  space  "})

	assert.Equal(t, gamedata.WordItem{Word: "robot", Hint: "machine"}, item)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, []string{"space"}, gen.topics)
}

func TestSupplyGenerativeFailures(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
	}{
		{"no generator", nil},
		{"network error", &stubGenerator{err: errors.New("connection refused")}},
		{"empty list", &stubGenerator{}},
		{"blank words", &stubGenerator{items: []gamedata.WordItem{{Word: "  "}}}},
		{"missing credential", NewGemini("", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog(testRegistry(), tt.gen, rand.New(rand.NewSource(1)))
			item := c.Supply(context.Background(), Request{Category: gamedata.GenerativeCategoryID, CustomPrompt: "space"})
			assert.Equal(t, Fallback, item)
		})
	}
}

func TestSupplyGenerativeAttemptsOnce(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	c := NewCatalog(testRegistry(), gen, rand.New(rand.NewSource(1)))

	c.Supply(context.Background(), Request{Category: gamedata.GenerativeCategoryID, CustomPrompt: "space"})
	assert.Equal(t, 1, gen.calls, "no retry")
}

func TestSupplyGenerativeWithoutPromptUsesStaticPool(t *testing.T) {
	gen := &stubGenerator{items: []gamedata.WordItem{{Word: "robot"}}}
	c := NewCatalog(testRegistry(), gen, rand.New(rand.NewSource(1)))

	item := c.Supply(context.Background(), Request{Category: gamedata.GenerativeCategoryID, CustomPrompt: "   "})

	assert.Zero(t, gen.calls)
	assert.Contains(t, []string{"apple", "sea"}, item.Word)
}

func TestSupplyUnknownCategory(t *testing.T) {
	c := NewCatalog(testRegistry(), nil, rand.New(rand.NewSource(1)))
	item := c.Supply(context.Background(), Request{Category: "NOPE"})
	assert.Contains(t, []string{"apple", "sea"}, item.Word)
}

func TestSupplyPlaceholder(t *testing.T) {
	empty := gamedata.NewCategoryRegistry([]gamedata.CategoryDef{{ID: "EMPTY"}})
	c := NewCatalog(empty, nil, rand.New(rand.NewSource(1)))
	assert.Equal(t, Placeholder, c.Supply(context.Background(), Request{Category: "EMPTY"}))
}

func TestParseWordList(t *testing.T) {
	items, err := ParseWordList(`[{"word":"მზე","hint":"ცა"},{"word":"მთვარე"}]`)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "მზე", items[0].Word)
	assert.Equal(t, "ცა", items[0].Hint)

	_, err = ParseWordList("")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = ParseWordList("not json")
	assert.Error(t, err)
}

func TestGeminiWithoutKey(t *testing.T) {
	_, err := NewGemini("", "").Generate(context.Background(), "space")
	assert.ErrorIs(t, err, ErrNoCredential)
}
