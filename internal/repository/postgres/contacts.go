package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
	"github.com/jvfernandez09/jfc-app/internal/repository"
)

// ContactRepository implements port.ContactRepository using PostgreSQL.
type ContactRepository struct {
	db      pgClient
	builder squirrel.StatementBuilderType
}

// NewContactRepository wires a PostgreSQL-backed contact repository.
func NewContactRepository(db pgClient) *ContactRepository {
	return &ContactRepository{
		db:      db,
		builder: newBuilder(),
	}
}

// Create inserts a person and their tag links in one transaction.
// A duplicate email surfaces as repository.ErrConflict.
func (r *ContactRepository) Create(ctx context.Context, person domain.Person, tagIDs []string) (string, error) {
	var id string
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		stmt, args, err := r.builder.
			Insert("people").
			Columns("first_name", "last_name", "email", "phone", "business_id").
			Values(person.FirstName, person.LastName, person.Email, person.Phone, person.BusinessID).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert person sql: %w", err)
		}

		if err := tx.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
			return translateError(err)
		}

		return r.insertTagLinks(ctx, tx, id, tagIDs)
	})
	if err != nil {
		if err == repository.ErrConflict {
			return "", err
		}
		return "", fmt.Errorf("create person: %w", err)
	}

	return id, nil
}

// List returns all people with their business name and tags, ordered by last
// then first name.
func (r *ContactRepository) List(ctx context.Context) ([]domain.Person, error) {
	stmt, args, err := r.builder.
		Select("p.id", "p.first_name", "p.last_name", "p.email", "p.phone",
			"p.business_id", "b.name AS business_name", "p.created_at").
		From("people p").
		LeftJoin("businesses b ON b.id = p.business_id").
		OrderBy("p.last_name ASC", "p.first_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select people sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select people: %w", err)
	}
	defer rows.Close()

	var (
		people  []domain.Person
		indexes = make(map[string]int)
	)
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
			&p.BusinessID, &p.BusinessName, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		indexes[p.ID] = len(people)
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}

	if len(people) == 0 {
		return people, nil
	}

	tagStmt, tagArgs, err := r.builder.
		Select("pt.person_id", "t.id", "t.name").
		From("person_tags pt").
		Join("tags t ON t.id = pt.tag_id").
		OrderBy("t.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select person tags sql: %w", err)
	}

	tagRows, err := r.db.Query(ctx, tagStmt, tagArgs...)
	if err != nil {
		return nil, fmt.Errorf("select person tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var (
			personID string
			tag      domain.TagRef
		)
		if err := tagRows.Scan(&personID, &tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scan person tag: %w", err)
		}
		if idx, ok := indexes[personID]; ok {
			people[idx].Tags = append(people[idx].Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate person tags: %w", err)
	}

	return people, nil
}

// GetByID retrieves a single person with business name and tags.
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	stmt, args, err := r.builder.
		Select("p.id", "p.first_name", "p.last_name", "p.email", "p.phone",
			"p.business_id", "b.name AS business_name", "p.created_at").
		From("people p").
		LeftJoin("businesses b ON b.id = p.business_id").
		Where(squirrel.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select person sql: %w", err)
	}

	var p domain.Person
	row := r.db.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
		&p.BusinessID, &p.BusinessName, &p.CreatedAt); err != nil {
		if translated := translateError(err); translated == repository.ErrNotFound {
			return nil, translated
		}
		return nil, fmt.Errorf("scan person: %w", err)
	}

	tagStmt, tagArgs, err := r.builder.
		Select("t.id", "t.name").
		From("person_tags pt").
		Join("tags t ON t.id = pt.tag_id").
		Where(squirrel.Eq{"pt.person_id": id}).
		OrderBy("t.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select person tags sql: %w", err)
	}

	rows, err := r.db.Query(ctx, tagStmt, tagArgs...)
	if err != nil {
		return nil, fmt.Errorf("select person tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tag domain.TagRef
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scan person tag: %w", err)
		}
		p.Tags = append(p.Tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate person tags: %w", err)
	}

	return &p, nil
}

// Update rewrites the person row and replaces the tag links in one
// transaction.
func (r *ContactRepository) Update(ctx context.Context, person domain.Person, tagIDs []string) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		stmt, args, err := r.builder.
			Update("people").
			Set("first_name", person.FirstName).
			Set("last_name", person.LastName).
			Set("email", person.Email).
			Set("phone", person.Phone).
			Set("business_id", person.BusinessID).
			Where(squirrel.Eq{"id": person.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update person sql: %w", err)
		}

		tag, err := tx.Exec(ctx, stmt, args...)
		if err != nil {
			return translateError(err)
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrNotFound
		}

		delStmt, delArgs, err := r.builder.
			Delete("person_tags").
			Where(squirrel.Eq{"person_id": person.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build delete person tags sql: %w", err)
		}
		if _, err := tx.Exec(ctx, delStmt, delArgs...); err != nil {
			return fmt.Errorf("delete person tags: %w", err)
		}

		return r.insertTagLinks(ctx, tx, person.ID, tagIDs)
	})
	if err != nil {
		if err == repository.ErrConflict || err == repository.ErrNotFound {
			return err
		}
		return fmt.Errorf("update person: %w", err)
	}

	return nil
}

// Delete removes the person; tag links and task assignments cascade.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.
		Delete("people").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete person sql: %w", err)
	}

	tag, err := r.db.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *ContactRepository) insertTagLinks(ctx context.Context, tx pgx.Tx, personID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	insert := r.builder.Insert("person_tags").Columns("person_id", "tag_id")
	for _, tagID := range tagIDs {
		insert = insert.Values(personID, tagID)
	}

	stmt, args, err := insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("build insert person tags sql: %w", err)
	}

	if _, err := tx.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert person tags: %w", err)
	}

	return nil
}
