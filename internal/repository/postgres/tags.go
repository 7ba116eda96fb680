package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
	"github.com/jvfernandez09/jfc-app/internal/repository"
)

// TagRepository implements port.TagRepository using PostgreSQL.
type TagRepository struct {
	db      pgExecutor
	builder squirrel.StatementBuilderType
}

// NewTagRepository wires a PostgreSQL-backed tag repository.
func NewTagRepository(db pgExecutor) *TagRepository {
	return &TagRepository{
		db:      db,
		builder: newBuilder(),
	}
}

// Create inserts a tag. Duplicate names surface as ErrConflict.
func (r *TagRepository) Create(ctx context.Context, name string) (string, error) {
	stmt, args, err := r.builder.
		Insert("tags").
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert tag sql: %w", err)
	}

	var id string
	if err := r.db.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		if translated := translateError(err); translated == repository.ErrConflict {
			return "", translated
		}
		return "", fmt.Errorf("insert tag: %w", err)
	}

	return id, nil
}

// List returns all tags ordered by name.
func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	stmt, args, err := r.builder.
		Select("id", "name").
		From("tags").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select tags sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	return tags, nil
}

// GetByID retrieves a single tag.
func (r *TagRepository) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	stmt, args, err := r.builder.
		Select("id", "name").
		From("tags").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select tag sql: %w", err)
	}

	var t domain.Tag
	if err := r.db.QueryRow(ctx, stmt, args...).Scan(&t.ID, &t.Name); err != nil {
		if translated := translateError(err); translated == repository.ErrNotFound {
			return nil, translated
		}
		return nil, fmt.Errorf("scan tag: %w", err)
	}

	return &t, nil
}

// Rename updates the tag name.
func (r *TagRepository) Rename(ctx context.Context, id, name string) error {
	stmt, args, err := r.builder.
		Update("tags").
		Set("name", name).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update tag sql: %w", err)
	}

	tag, err := r.db.Exec(ctx, stmt, args...)
	if err != nil {
		if translated := translateError(err); translated == repository.ErrConflict {
			return translated
		}
		return fmt.Errorf("update tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes the tag; link rows cascade.
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.
		Delete("tags").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete tag sql: %w", err)
	}

	tag, err := r.db.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
