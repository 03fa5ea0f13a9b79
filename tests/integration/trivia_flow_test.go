//go:build integration
// +build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestCategories(t *testing.T) {
	status, out := doJSON(t, http.MethodGet, "/categories", nil)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d", status)
	}

	categories, ok := out["categories"].(map[string]interface{})
	if !ok {
		t.Fatalf("categories missing: %v", out)
	}
	if categories["1"] != "Science" {
		t.Fatalf("expected seeded Science category, got %v", categories)
	}
}

func TestCreateSearchDelete(t *testing.T) {
	marker := fmt.Sprintf("zebrafish-%d", time.Now().UnixNano())
	id := createQuestion(t, "Which model organism is the "+marker+"?", "Danio rerio", 1, 2)

	status, out := doJSON(t, http.MethodPost, "/questions/search", map[string]string{"searchTerm": marker})
	if status != http.StatusOK {
		t.Fatalf("unexpected search status %d: %v", status, out)
	}
	if out["total_questions"] != float64(1) {
		t.Fatalf("expected exactly one match, got %v", out["total_questions"])
	}

	deleteQuestion(t, id)

	status, out = doJSON(t, http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 deleting twice, got %d: %v", status, out)
	}
}

func TestQuizRoundExhausts(t *testing.T) {
	var created []int64
	for i := 0; i < 3; i++ {
		created = append(created, createQuestion(t, fmt.Sprintf("Sports round question %d?", i), "yes", 6, 1))
	}
	defer func() {
		for _, id := range created {
			deleteQuestion(t, id)
		}
	}()

	status, out := doJSON(t, http.MethodGet, "/categories/6/questions", nil)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d: %v", status, out)
	}
	total := int(out["total_questions"].(float64))

	previous := []int64{}
	for i := 0; i < total; i++ {
		status, out := doJSON(t, http.MethodPost, "/quizzes", map[string]interface{}{
			"quiz_category":      map[string]int{"id": 6},
			"previous_questions": previous,
		})
		if status != http.StatusOK {
			t.Fatalf("unexpected quiz status %d: %v", status, out)
		}
		question, ok := out["question"].(map[string]interface{})
		if !ok {
			t.Fatalf("round ended early after %d questions", i)
		}
		id := int64(question["id"].(float64))
		for _, seen := range previous {
			if seen == id {
				t.Fatalf("question %d served twice", id)
			}
		}
		previous = append(previous, id)
	}

	status, out = doJSON(t, http.MethodPost, "/quizzes", map[string]interface{}{
		"quiz_category":      map[string]int{"id": 6},
		"previous_questions": previous,
	})
	if status != http.StatusOK || out["exhausted"] != true {
		t.Fatalf("expected exhausted round, got %d: %v", status, out)
	}
}
