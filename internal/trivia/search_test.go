package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

func TestSearch(t *testing.T) {
	corpus := fixtureQuestions()

	tests := []struct {
		name    string
		term    string
		wantIDs []int64
	}{
		{name: "case insensitive substring", term: "title", wantIDs: []int64{5, 6}},
		{name: "upper case term", term: "TITLE", wantIDs: []int64{5, 6}},
		{name: "inner word", term: "soccer", wantIDs: []int64{10, 11}},
		{name: "no match", term: "quantum chromodynamics", wantIDs: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Search(tt.term, corpus)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantIDs, ids(got))
		})
	}
}

func TestSearch_WhitespaceIsARealTerm(t *testing.T) {
	corpus := fixtureQuestions()
	got, err := Search(" ", corpus)
	require.NoError(t, err)
	assert.Len(t, got, len(corpus))
}

func TestSearch_EmptyTermIsUnprocessable(t *testing.T) {
	_, err := Search("", fixtureQuestions())
	require.Error(t, err)

	classified := Classify(err)
	assert.Equal(t, KindUnprocessable, classified.Kind)
	assert.Equal(t, httperrors.ErrCodeMissingField, classified.Code)
	assert.Equal(t, "searchTerm", classified.Field)
}

func TestSearch_PreservesCorpusOrder(t *testing.T) {
	got, err := Search("what", fixtureQuestions())
	require.NoError(t, err)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].ID, got[i].ID)
	}
}
