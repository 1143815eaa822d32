package gamedata

// QuestionPair is one liar-game prompt pair. Everyone answers Truth except
// the liars, who answer Liar without knowing it differs.
type QuestionPair struct {
	ID       string `json:"id"`
	Truth    string `json:"truth"`
	Liar     string `json:"liar"`
	Category string `json:"category"`
}

// QuestionCategory is a selectable filter on the liar menu.
type QuestionCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// AllQuestions is the category filter that keeps the whole pool.
const AllQuestions = "ALL"

// QuestionsFile represents the structure of questions.json.
type QuestionsFile struct {
	Categories []QuestionCategory `json:"categories"`
	Questions  []QuestionPair     `json:"questions"`
}

// LoadQuestions loads the liar question pool from the embedded questions.json file.
func LoadQuestions() (QuestionsFile, error) {
	return Load[QuestionsFile]("questions.json")
}
