package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
	"github.com/jvfernandez09/jfc-app/internal/repository"
)

// UserRepository implements port.UserRepository using PostgreSQL.
type UserRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewUserRepository wires a PostgreSQL-backed user repository.
func NewUserRepository(db pgExecutor) *UserRepository {
	return &UserRepository{
		exec:    db,
		builder: newBuilder(),
	}
}

var userColumns = []string{"id", "name", "email", "password_hash", "created_at"}

// Create inserts a new user row and returns the generated id. A duplicate
// email surfaces as repository.ErrConflict.
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (string, error) {
	stmt, args, err := r.builder.
		Insert("users").
		Columns("name", "email", "password_hash").
		Values(name, email, passwordHash).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert user sql: %w", err)
	}

	var id string
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		if translated := translateError(err); translated == repository.ErrConflict {
			return "", translated
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	return id, nil
}

// GetByID retrieves a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a user by email. The caller normalises the email to
// lower case; lookup matches the stored normalised value.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) getBy(ctx context.Context, pred squirrel.Eq) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select(userColumns...).
		From("users").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	var user domain.User
	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if translated := translateError(err); translated == repository.ErrNotFound {
			return nil, translated
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return &user, nil
}

// UpdateProfile updates name and email and returns the updated row.
// Returns repository.ErrNotFound when the row is gone and
// repository.ErrConflict when the new email is already taken.
func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, email string) (*domain.User, error) {
	stmt, args, err := r.builder.
		Update("users").
		Set("name", name).
		Set("email", email).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, name, email, password_hash, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update user sql: %w", err)
	}

	var user domain.User
	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if translated := translateError(err); translated == repository.ErrNotFound || translated == repository.ErrConflict {
			return nil, translated
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return &user, nil
}

// UpdatePassword overwrites the password digest.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	stmt, args, err := r.builder.
		Update("users").
		Set("password_hash", passwordHash).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update password sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes the user row. Deletion is terminal; there is no soft-delete.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.
		Delete("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete user sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
