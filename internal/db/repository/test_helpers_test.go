package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

type mockQueries struct {
	mock.Mock
}

func (m *mockQueries) ListQuestions(ctx context.Context) ([]queries.Question, error) {
	args := m.Called(ctx)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQueries) InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(queries.Question), args.Error(1)
}

func (m *mockQueries) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockQueries) GetCategory(ctx context.Context, id int64) (queries.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(queries.Category), args.Error(1)
}

func (m *mockQueries) ListCategories(ctx context.Context) ([]queries.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]queries.Category), args.Error(1)
}

// directTx runs fn against the mock and records whether it would have committed.
type directTx struct {
	store     questionStore
	committed int
	rolled    int
}

func (d *directTx) InTx(_ context.Context, fn func(store questionStore) error) error {
	if err := fn(d.store); err != nil {
		d.rolled++
		return err
	}
	d.committed++
	return nil
}
