package trivia

// DefaultPageSize is the number of questions per page when none is configured.
const DefaultPageSize = 10

// AllCategories selects questions from every category in quiz mode.
const AllCategories int64 = 0

// Difficulty bounds for stored questions.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Question is a single trivia question as stored and served.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category groups questions under a display name.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// NewQuestion carries validated fields for an insert.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// QuestionPage is one page of the question list plus the category mapping.
type QuestionPage struct {
	Questions  []Question
	Total      int
	Page       int
	Categories map[int64]string
}

// CategoryQuestions is the result of browsing a single category.
type CategoryQuestions struct {
	Questions []Question
	Total     int
	Category  Category
}

// SearchResult holds questions matching a search term.
type SearchResult struct {
	Questions []Question
	Total     int
}

// QuizResult is the outcome of a next-question draw. Exhausted means the round is over.
type QuizResult struct {
	Question  *Question
	Exhausted bool
}

// CategoryMap converts categories into the id -> type mapping served to clients.
func CategoryMap(categories []Category) map[int64]string {
	out := make(map[int64]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out
}
