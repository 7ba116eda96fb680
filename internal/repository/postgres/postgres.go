// Package postgres implements the repository ports on PostgreSQL using pgx
// and the squirrel statement builder.
package postgres

import (
	"context"
	"errors"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jvfernandez09/jfc-app/internal/repository"
)

const uniqueViolationCode = "23505"

// pgExecutor abstracts pgxpool.Pool and pgx.Tx so repositories can run inside
// or outside a transaction.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgClient adds transaction support on top of pgExecutor. Both *pgxpool.Pool
// and the pgxmock pool satisfy it.
type pgClient interface {
	pgExecutor
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repositories bundles all PostgreSQL-backed repositories over one pool.
type Repositories struct {
	Users      *UserRepository
	Contacts   *ContactRepository
	Businesses *BusinessRepository
	Categories *CategoryRepository
	Tags       *TagRepository
	Tasks      *TaskRepository
}

// NewRepositories wires repositories for the supplied pool.
func NewRepositories(db pgClient) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Contacts:   NewContactRepository(db),
		Businesses: NewBusinessRepository(db),
		Categories: NewCategoryRepository(db),
		Tags:       NewTagRepository(db),
		Tasks:      NewTaskRepository(db),
	}
}

func newBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// translateError maps driver-level failures onto the repository sentinels so
// callers never inspect pgconn details themselves.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return repository.ErrConflict
	}
	return err
}
