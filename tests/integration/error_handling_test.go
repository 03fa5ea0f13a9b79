//go:build integration
// +build integration

package integration

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"
)

func TestCreateQuestionValidation(t *testing.T) {
	status, out := doJSON(t, http.MethodPost, "/questions", map[string]interface{}{
		"question":   "What is the speed of light?",
		"category":   1,
		"difficulty": 3,
	})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %v", status, out)
	}
	if out["field"] != "answer" {
		t.Fatalf("expected field answer, got %v", out["field"])
	}
}

func TestCreateQuestionUnknownCategory(t *testing.T) {
	status, out := doJSON(t, http.MethodPost, "/questions", map[string]interface{}{
		"question":   "Orphan?",
		"answer":     "yes",
		"category":   99999,
		"difficulty": 1,
	})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %v", status, out)
	}
}

func TestMalformedJSON(t *testing.T) {
	resp, err := http.Post(fmt.Sprintf("%s/questions", baseURL()), "application/json", bytes.NewReader([]byte(`{"question":`)))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestMalformedQuizCategory(t *testing.T) {
	status, out := doJSON(t, http.MethodPost, "/quizzes", map[string]interface{}{
		"quiz_category":      map[string]int{"ids": 1},
		"previous_questions": []int{},
	})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %v", status, out)
	}
	if out["error"] != "invalid_quiz_category" {
		t.Fatalf("unexpected error code: %v", out["error"])
	}
}

func TestUnknownCategoryBrowse(t *testing.T) {
	status, _ := doJSON(t, http.MethodGet, "/categories/99999/questions", nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestUnknownRoute(t *testing.T) {
	status, out := doJSON(t, http.MethodGet, "/v1/users/me", nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if out["error"] == nil {
		t.Fatal("error field is missing")
	}
}
