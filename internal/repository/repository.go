package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier abstracts the subset of pgxpool.Pool the repositories use, so tests
// can inject a mock.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	q Querier
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{q: pool}
}

// NewWithQuerier constructs a Repository with a custom Querier (for tests).
func NewWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}
