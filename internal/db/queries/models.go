package queries

type Category struct {
	ID   int64
	Type string
}

type Question struct {
	ID         int64
	Question   string
	Answer     string
	Category   int64
	Difficulty int32
}

type InsertQuestionParams struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int32
}
