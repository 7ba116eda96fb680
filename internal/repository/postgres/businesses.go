package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
	"github.com/jvfernandez09/jfc-app/internal/repository"
)

// BusinessRepository implements port.BusinessRepository using PostgreSQL.
type BusinessRepository struct {
	db      pgClient
	builder squirrel.StatementBuilderType
}

// NewBusinessRepository wires a PostgreSQL-backed business repository.
func NewBusinessRepository(db pgClient) *BusinessRepository {
	return &BusinessRepository{
		db:      db,
		builder: newBuilder(),
	}
}

// Create inserts a business and its category/tag links in one transaction.
func (r *BusinessRepository) Create(ctx context.Context, business domain.Business, categoryIDs, tagIDs []string) (string, error) {
	var id string
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		stmt, args, err := r.builder.
			Insert("businesses").
			Columns("name", "contact_email").
			Values(business.Name, business.ContactEmail).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert business sql: %w", err)
		}

		if err := tx.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
			return translateError(err)
		}

		if err := r.insertLinks(ctx, tx, "business_categories", "category_id", id, categoryIDs); err != nil {
			return err
		}
		return r.insertLinks(ctx, tx, "business_tags", "tag_id", id, tagIDs)
	})
	if err != nil {
		return "", fmt.Errorf("create business: %w", err)
	}

	return id, nil
}

// List returns all businesses with their categories and tags, ordered by name.
func (r *BusinessRepository) List(ctx context.Context) ([]domain.Business, error) {
	stmt, args, err := r.builder.
		Select("id", "name", "contact_email", "created_at").
		From("businesses").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select businesses sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select businesses: %w", err)
	}
	defer rows.Close()

	var (
		businesses []domain.Business
		indexes    = make(map[string]int)
	)
	for rows.Next() {
		var b domain.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.ContactEmail, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		indexes[b.ID] = len(businesses)
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}

	if len(businesses) == 0 {
		return businesses, nil
	}

	if err := r.loadCategories(ctx, businesses, indexes); err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, businesses, indexes); err != nil {
		return nil, err
	}

	return businesses, nil
}

// GetByID retrieves a single business with its categories and tags.
func (r *BusinessRepository) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	stmt, args, err := r.builder.
		Select("id", "name", "contact_email", "created_at").
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select business sql: %w", err)
	}

	var b domain.Business
	row := r.db.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&b.ID, &b.Name, &b.ContactEmail, &b.CreatedAt); err != nil {
		if translated := translateError(err); translated == repository.ErrNotFound {
			return nil, translated
		}
		return nil, fmt.Errorf("scan business: %w", err)
	}

	list := []domain.Business{b}
	indexes := map[string]int{b.ID: 0}
	if err := r.loadCategories(ctx, list, indexes); err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, list, indexes); err != nil {
		return nil, err
	}

	return &list[0], nil
}

// Update rewrites the business row and replaces category/tag links in one
// transaction.
func (r *BusinessRepository) Update(ctx context.Context, business domain.Business, categoryIDs, tagIDs []string) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		stmt, args, err := r.builder.
			Update("businesses").
			Set("name", business.Name).
			Set("contact_email", business.ContactEmail).
			Where(squirrel.Eq{"id": business.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update business sql: %w", err)
		}

		tag, err := tx.Exec(ctx, stmt, args...)
		if err != nil {
			return translateError(err)
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrNotFound
		}

		for _, link := range []struct{ table string }{
			{"business_categories"},
			{"business_tags"},
		} {
			delStmt, delArgs, err := r.builder.
				Delete(link.table).
				Where(squirrel.Eq{"business_id": business.ID}).
				ToSql()
			if err != nil {
				return fmt.Errorf("build delete %s sql: %w", link.table, err)
			}
			if _, err := tx.Exec(ctx, delStmt, delArgs...); err != nil {
				return fmt.Errorf("delete %s: %w", link.table, err)
			}
		}

		if err := r.insertLinks(ctx, tx, "business_categories", "category_id", business.ID, categoryIDs); err != nil {
			return err
		}
		return r.insertLinks(ctx, tx, "business_tags", "tag_id", business.ID, tagIDs)
	})
	if err != nil {
		if err == repository.ErrNotFound {
			return err
		}
		return fmt.Errorf("update business: %w", err)
	}

	return nil
}

// Delete removes the business; link rows cascade, linked people keep their
// row with business_id set to NULL.
func (r *BusinessRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.
		Delete("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete business sql: %w", err)
	}

	tag, err := r.db.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *BusinessRepository) loadCategories(ctx context.Context, businesses []domain.Business, indexes map[string]int) error {
	stmt, args, err := r.builder.
		Select("bc.business_id", "c.id", "c.name").
		From("business_categories bc").
		Join("categories c ON c.id = bc.category_id").
		OrderBy("c.name ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build select business categories sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("select business categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			businessID string
			category   domain.CategoryRef
		)
		if err := rows.Scan(&businessID, &category.ID, &category.Name); err != nil {
			return fmt.Errorf("scan business category: %w", err)
		}
		if idx, ok := indexes[businessID]; ok {
			businesses[idx].Categories = append(businesses[idx].Categories, category)
		}
	}
	return rows.Err()
}

func (r *BusinessRepository) loadTags(ctx context.Context, businesses []domain.Business, indexes map[string]int) error {
	stmt, args, err := r.builder.
		Select("bt.business_id", "t.id", "t.name").
		From("business_tags bt").
		Join("tags t ON t.id = bt.tag_id").
		OrderBy("t.name ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build select business tags sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("select business tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			businessID string
			tag        domain.TagRef
		)
		if err := rows.Scan(&businessID, &tag.ID, &tag.Name); err != nil {
			return fmt.Errorf("scan business tag: %w", err)
		}
		if idx, ok := indexes[businessID]; ok {
			businesses[idx].Tags = append(businesses[idx].Tags, tag)
		}
	}
	return rows.Err()
}

func (r *BusinessRepository) insertLinks(ctx context.Context, tx pgx.Tx, table, column, businessID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	insert := r.builder.Insert(table).Columns("business_id", column)
	for _, id := range ids {
		insert = insert.Values(businessID, id)
	}

	stmt, args, err := insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s sql: %w", table, err)
	}

	if _, err := tx.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}

	return nil
}
