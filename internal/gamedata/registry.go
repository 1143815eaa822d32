package gamedata

import (
	"errors"
	"math/rand"
)

// CategoryRegistry holds loaded imposter categories and provides lookup utilities.
type CategoryRegistry struct {
	categories []CategoryDef
	byID       map[string]*CategoryDef
}

// NewCategoryRegistry creates a registry from loaded category definitions.
func NewCategoryRegistry(categories []CategoryDef) *CategoryRegistry {
	registry := &CategoryRegistry{
		categories: categories,
		byID:       make(map[string]*CategoryDef, len(categories)),
	}
	for i := range categories {
		registry.byID[categories[i].ID] = &categories[i]
	}
	return registry
}

// LoadCategoryRegistry loads and creates a registry from the embedded categories.json.
func LoadCategoryRegistry() (*CategoryRegistry, error) {
	categories, err := LoadCategories()
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, errors.New("no categories loaded from categories.json")
	}
	return NewCategoryRegistry(categories), nil
}

// MustLoadCategoryRegistry loads a registry, panicking on error.
func MustLoadCategoryRegistry() *CategoryRegistry {
	registry, err := LoadCategoryRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the category with the given ID, or nil if not found.
func (r *CategoryRegistry) GetByID(id string) *CategoryDef {
	return r.byID[id]
}

// First returns the first category with words, used when a lookup misses.
func (r *CategoryRegistry) First() *CategoryDef {
	for i := range r.categories {
		if len(r.categories[i].Words) > 0 {
			return &r.categories[i]
		}
	}
	return nil
}

// All returns all category definitions in file order.
func (r *CategoryRegistry) All() []CategoryDef {
	return r.categories
}

// Count returns the number of categories in the registry.
func (r *CategoryRegistry) Count() int {
	return len(r.categories)
}

// =============================================================================
// QuestionRegistry
// =============================================================================

// QuestionRegistry holds the liar question pool and its category filters.
type QuestionRegistry struct {
	questions  []QuestionPair
	categories []QuestionCategory
}

// NewQuestionRegistry creates a registry from loaded question data.
func NewQuestionRegistry(file QuestionsFile) *QuestionRegistry {
	return &QuestionRegistry{
		questions:  file.Questions,
		categories: file.Categories,
	}
}

// LoadQuestionRegistry loads and creates a registry from the embedded questions.json.
func LoadQuestionRegistry() (*QuestionRegistry, error) {
	file, err := LoadQuestions()
	if err != nil {
		return nil, err
	}
	if len(file.Questions) == 0 {
		return nil, errors.New("no questions loaded from questions.json")
	}
	return NewQuestionRegistry(file), nil
}

// MustLoadQuestionRegistry loads a registry, panicking on error.
func MustLoadQuestionRegistry() *QuestionRegistry {
	registry, err := LoadQuestionRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Pool returns the questions for a category filter. AllQuestions, an empty
// filter, or a filter that matches nothing all yield the full pool.
func (r *QuestionRegistry) Pool(category string) []QuestionPair {
	if category == "" || category == AllQuestions {
		return r.questions
	}
	filtered := make([]QuestionPair, 0, len(r.questions))
	for _, q := range r.questions {
		if q.Category == category {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) == 0 {
		return r.questions
	}
	return filtered
}

// Draw picks one question uniformly from the category's pool.
// It returns false only when the registry is empty.
func (r *QuestionRegistry) Draw(rng *rand.Rand, category string) (QuestionPair, bool) {
	pool := r.Pool(category)
	if len(pool) == 0 {
		return QuestionPair{}, false
	}
	return pool[rng.Intn(len(pool))], true
}

// Categories returns the selectable category filters.
func (r *QuestionRegistry) Categories() []QuestionCategory {
	return r.categories
}

// Label returns the display label for a category filter, or the ID itself.
func (r *QuestionRegistry) Label(category string) string {
	for _, c := range r.categories {
		if c.ID == category {
			return c.Label
		}
	}
	return category
}

// Count returns the number of questions in the registry.
func (r *QuestionRegistry) Count() int {
	return len(r.questions)
}
