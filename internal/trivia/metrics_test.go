package trivia

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	deps := newTestService(t, ServiceOptions{Metrics: metrics})

	deps.questions.On("ListQuestions", mock.Anything).Return(fixtureQuestions(), nil)
	deps.categories.On("ListCategories", mock.Anything).Return(fixtureCategories(), nil)
	deps.categories.On("GetCategory", mock.Anything, int64(1000)).Return(Category{}, ErrRecordNotFound)

	ctx := context.Background()
	_, err := deps.service.NextQuestion(ctx, QuizRequest{QuizCategory: SelectCategory(1)})
	require.NoError(t, err)
	_, err = deps.service.NextQuestion(ctx, QuizRequest{QuizCategory: SelectCategory(1), PreviousQuestions: []int64{20, 21, 22}})
	require.NoError(t, err)
	_, err = deps.service.QuestionsByCategory(ctx, 1000)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues(opNextQuestion, outcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues(opNextQuestion, outcomeExhausted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues(opByCategory, KindNotFound.String())))

	var sample dto.Metric
	require.NoError(t, metrics.eligible.Write(&sample))
	assert.Equal(t, uint64(2), sample.GetHistogram().GetSampleCount())
	assert.Equal(t, 3.0, sample.GetHistogram().GetSampleSum())
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observe(opListQuestions, errors.New("boom"))
		m.observeDraw(0)
	})
}
