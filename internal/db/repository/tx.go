package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

type txRunner interface {
	InTx(ctx context.Context, fn func(store questionStore) error) error
}

// PoolTx runs repository work inside a pgx transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
type PoolTx struct {
	pool *pgxpool.Pool
}

func NewPoolTx(pool *pgxpool.Pool) *PoolTx {
	return &PoolTx{pool: pool}
}

func (p *PoolTx) InTx(ctx context.Context, fn func(store questionStore) error) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		return fn(queries.New(tx))
	})
}
