// Package words supplies the secret word for an imposter round, either from
// the embedded category pools or from a remote text generator.
package words

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/partybox/internal/gamedata"
	"github.com/samdwyer/partybox/internal/telemetry"
)

var (
	// ErrNoCredential is returned by generators that have no API key.
	ErrNoCredential = errors.New("no API key configured")
	// ErrEmptyResponse is returned when the generator answered with no words.
	ErrEmptyResponse = errors.New("generator returned no words")
)

// Fallback is what a generative request yields when the generator fails.
var Fallback = gamedata.WordItem{Word: "Error/Fallback", Hint: "Error"}

// Placeholder is used when no category has any words at all.
var Placeholder = gamedata.WordItem{Word: "???", Hint: GenericHint}

// GenericHint is the hint used when neither the word nor its category has one.
const GenericHint = "ზოგადი"

// Request selects where a word comes from.
type Request struct {
	Category     string
	CustomPrompt string
}

// Supplier returns exactly one word for a round. It never fails; problems
// are absorbed and turned into fallback content.
type Supplier interface {
	Supply(ctx context.Context, req Request) gamedata.WordItem
}

// Generator produces candidate words for a free-text topic.
type Generator interface {
	Generate(ctx context.Context, topic string) ([]gamedata.WordItem, error)
}

// Catalog is the Supplier used by the game: static categories come from the
// embedded registry, the generative category goes to the Generator once.
type Catalog struct {
	categories *gamedata.CategoryRegistry
	generator  Generator
	log        zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCatalog creates a catalog. generator may be nil, in which case
// generative requests yield Fallback.
func NewCatalog(categories *gamedata.CategoryRegistry, generator Generator, rng *rand.Rand) *Catalog {
	return &Catalog{
		categories: categories,
		generator:  generator,
		rng:        rng,
		log:        log.With().Str("component", "words").Logger(),
	}
}

// Supply implements Supplier.
func (c *Catalog) Supply(ctx context.Context, req Request) gamedata.WordItem {
	tracer := telemetry.Tracer("words")
	ctx, span := tracer.Start(ctx, "words.supply")
	defer span.End()
	span.SetAttributes(attribute.String("category", req.Category))

	category := c.categories.GetByID(req.Category)
	prompt := strings.TrimSpace(req.CustomPrompt)

	if category != nil && category.Generative && prompt != "" {
		span.SetAttributes(attribute.Bool("generative", true))
		item, err := c.generate(ctx, prompt)
		if err != nil {
			c.log.Warn().Err(err).Str("topic", prompt).Msg("word generation failed, using fallback")
			span.SetAttributes(attribute.Bool("fallback", true))
			return Fallback
		}
		return item
	}

	if category == nil || len(category.Words) == 0 {
		category = c.categories.First()
	}
	if category == nil {
		span.SetAttributes(attribute.Bool("placeholder", true))
		return Placeholder
	}

	item := category.Words[c.intn(len(category.Words))]
	if item.Hint == "" {
		item.Hint = category.Label
	}
	if item.Hint == "" {
		item.Hint = GenericHint
	}
	return item
}

// generate makes the single attempt at the remote generator and picks one
// of the returned words.
func (c *Catalog) generate(ctx context.Context, topic string) (gamedata.WordItem, error) {
	if c.generator == nil {
		return gamedata.WordItem{}, ErrNoCredential
	}
	items, err := c.generator.Generate(ctx, topic)
	if err != nil {
		return gamedata.WordItem{}, err
	}

	usable := items[:0:0]
	for _, it := range items {
		if strings.TrimSpace(it.Word) != "" {
			usable = append(usable, it)
		}
	}
	if len(usable) == 0 {
		return gamedata.WordItem{}, ErrEmptyResponse
	}
	return usable[c.intn(len(usable))], nil
}

func (c *Catalog) intn(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Intn(n)
}
