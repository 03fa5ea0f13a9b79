package trivia

import (
	"fmt"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// ByCategory restricts corpus to questions of categoryID. The category must
// exist in categories; an existing category with no questions is not an error.
func ByCategory(categoryID int64, categories []Category, corpus []Question) ([]Question, Category, error) {
	category, ok := findCategory(categories, categoryID)
	if !ok {
		return nil, Category{}, notFound("by_category", httperrors.ErrCodeCategoryNotFound,
			fmt.Sprintf("category %d does not exist", categoryID))
	}
	return filterCategory(categoryID, corpus), category, nil
}

func findCategory(categories []Category, id int64) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func filterCategory(categoryID int64, corpus []Question) []Question {
	out := make([]Question, 0)
	for _, q := range corpus {
		if q.Category == categoryID {
			out = append(out, q)
		}
	}
	return out
}

// danglingCategories lists question ids whose category is not in categories.
func danglingCategories(questions []Question, categories map[int64]string) []int64 {
	var ids []int64
	for _, q := range questions {
		if _, ok := categories[q.Category]; !ok {
			ids = append(ids, q.ID)
		}
	}
	return ids
}
