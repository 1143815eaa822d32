package gamedata

// WordItem is a secret word and the hint shown to imposters when hints are on.
type WordItem struct {
	Word string `json:"word"`
	Hint string `json:"hint,omitempty"`
}

// CategoryDef is an imposter word category loaded from JSON.
type CategoryDef struct {
	ID         string     `json:"id"`                   // Unique identifier (e.g., "EASY")
	Label      string     `json:"label"`                // Display label; doubles as the fallback hint
	Color      string     `json:"color"`                // Hex colour for the category chip
	Generative bool       `json:"generative,omitempty"` // Words come from the remote generator
	Words      []WordItem `json:"words"`
}

// GenerativeCategoryID is the category whose words come from a custom prompt.
const GenerativeCategoryID = "AI_GEN"

// CategoriesFile represents the structure of categories.json.
type CategoriesFile struct {
	Categories []CategoryDef `json:"categories"`
}

// LoadCategories loads category definitions from the embedded categories.json file.
func LoadCategories() ([]CategoryDef, error) {
	file, err := Load[CategoriesFile]("categories.json")
	if err != nil {
		return nil, err
	}
	return file.Categories, nil
}
