package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
	"github.com/jvfernandez09/jfc-app/internal/repository"
)

// CategoryRepository implements port.CategoryRepository using PostgreSQL.
type CategoryRepository struct {
	db      pgExecutor
	builder squirrel.StatementBuilderType
}

// NewCategoryRepository wires a PostgreSQL-backed category repository.
func NewCategoryRepository(db pgExecutor) *CategoryRepository {
	return &CategoryRepository{
		db:      db,
		builder: newBuilder(),
	}
}

// Create inserts a category. Duplicate names surface as ErrConflict.
func (r *CategoryRepository) Create(ctx context.Context, name string) (string, error) {
	stmt, args, err := r.builder.
		Insert("categories").
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert category sql: %w", err)
	}

	var id string
	if err := r.db.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		if translated := translateError(err); translated == repository.ErrConflict {
			return "", translated
		}
		return "", fmt.Errorf("insert category: %w", err)
	}

	return id, nil
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	stmt, args, err := r.builder.
		Select("id", "name").
		From("categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select categories sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a single category.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	stmt, args, err := r.builder.
		Select("id", "name").
		From("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select category sql: %w", err)
	}

	var c domain.Category
	if err := r.db.QueryRow(ctx, stmt, args...).Scan(&c.ID, &c.Name); err != nil {
		if translated := translateError(err); translated == repository.ErrNotFound {
			return nil, translated
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}

	return &c, nil
}

// Rename updates the category name.
func (r *CategoryRepository) Rename(ctx context.Context, id, name string) error {
	stmt, args, err := r.builder.
		Update("categories").
		Set("name", name).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update category sql: %w", err)
	}

	tag, err := r.db.Exec(ctx, stmt, args...)
	if err != nil {
		if translated := translateError(err); translated == repository.ErrConflict {
			return translated
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes the category; link rows cascade.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.
		Delete("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete category sql: %w", err)
	}

	tag, err := r.db.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
