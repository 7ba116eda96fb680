package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/jvfernandez09/jfc-app/internal/repository"
)

func newCategoryMock(t *testing.T) (pgxmock.PgxPoolIface, *CategoryRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock, NewCategoryRepository(mock)
}

func TestCategoryRepository_CreateDuplicateName(t *testing.T) {
	mock, repo := newCategoryMock(t)

	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs("Supplier").
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	_, err := repo.Create(context.Background(), "Supplier")
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCategoryRepository_ListOrdersByName(t *testing.T) {
	mock, repo := newCategoryMock(t)

	rows := pgxmock.NewRows([]string{"id", "name"}).
		AddRow("cat-2", "Customer").
		AddRow("cat-1", "Supplier")

	mock.ExpectQuery(`SELECT id, name FROM categories ORDER BY name ASC`).
		WillReturnRows(rows)

	categories, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "Customer" {
		t.Fatalf("expected Customer first, got %s", categories[0].Name)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCategoryRepository_RenameMissingRow(t *testing.T) {
	mock, repo := newCategoryMock(t)

	mock.ExpectExec(`UPDATE categories`).
		WithArgs("Vendor", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.Rename(context.Background(), "missing", "Vendor"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryRepository_Delete(t *testing.T) {
	mock, repo := newCategoryMock(t)

	mock.ExpectExec(`DELETE FROM categories`).
		WithArgs("cat-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := repo.Delete(context.Background(), "cat-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
