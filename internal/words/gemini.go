package words

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"github.com/samdwyer/partybox/internal/gamedata"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

const promptTemplate = `Generate a list of 10 single nouns in Georgian language related to the topic: %q.
Do not translate the topic, use it as a theme.
For each word, also provide a "hint" in Georgian. The hint should be a generalized category or hypernym for that word (e.g. if the word is "Apple", the hint should be "Fruit"; if "Einstein", hint "Scientist").
The words should be suitable for a 'Guess the Word' or 'Spyfall' style party game.
Return ONLY the JSON array of objects.`

// Gemini generates themed words with the Gemini API.
type Gemini struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

// NewGemini creates a generator. The client is built lazily on first use so
// a missing key costs nothing until someone picks the generative category.
func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{apiKey: apiKey, model: model}
}

// Generate implements Generator. It makes exactly one request.
func (g *Gemini) Generate(ctx context.Context, topic string) ([]gamedata.WordItem, error) {
	if g.apiKey == "" {
		return nil, ErrNoCredential
	}

	client, err := g.getClient(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := client.Models.GenerateContent(ctx, g.model,
		genai.Text(fmt.Sprintf(promptTemplate, topic)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   wordListSchema(),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("generating words for %q: %w", topic, err)
	}

	return ParseWordList(resp.Text())
}

func (g *Gemini) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	g.client = client
	return client, nil
}

// ParseWordList decodes the generator's JSON array of {word, hint} objects.
func ParseWordList(text string) ([]gamedata.WordItem, error) {
	if text == "" {
		return nil, ErrEmptyResponse
	}
	var items []gamedata.WordItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("parsing word list: %w", err)
	}
	return items, nil
}

func wordListSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"word": {Type: genai.TypeString},
				"hint": {Type: genai.TypeString},
			},
		},
	}
}
