package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
	"github.com/jvfernandez09/jfc-app/internal/repository"
)

// TaskRepository implements port.TaskRepository using PostgreSQL.
type TaskRepository struct {
	db      pgClient
	builder squirrel.StatementBuilderType
}

// NewTaskRepository wires a PostgreSQL-backed task repository.
func NewTaskRepository(db pgClient) *TaskRepository {
	return &TaskRepository{
		db:      db,
		builder: newBuilder(),
	}
}

// Create inserts a task and its single assignment in one transaction. The
// task_assignments check constraint rejects targets that name both or
// neither assignee.
func (r *TaskRepository) Create(ctx context.Context, task domain.Task, target domain.TaskTarget) (string, error) {
	var id string
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		stmt, args, err := r.builder.
			Insert("tasks").
			Columns("title", "description").
			Values(task.Title, task.Description).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert task sql: %w", err)
		}

		if err := tx.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
			return fmt.Errorf("insert task: %w", err)
		}

		stmt, args, err = r.builder.
			Insert("task_assignments").
			Columns("task_id", "person_id", "business_id").
			Values(id, target.PersonID, target.BusinessID).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert task assignment sql: %w", err)
		}

		if _, err := tx.Exec(ctx, stmt, args...); err != nil {
			return fmt.Errorf("insert task assignment: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("create task: %w", err)
	}

	return id, nil
}

// List returns every task joined with its assignee name, newest first.
func (r *TaskRepository) List(ctx context.Context) ([]domain.TaskListItem, error) {
	stmt, args, err := r.builder.
		Select(
			"t.id", "t.title", "t.is_done",
			"ta.person_id", "p.first_name", "p.last_name",
			"ta.business_id", "b.name",
		).
		From("tasks t").
		Join("task_assignments ta ON ta.task_id = t.id").
		LeftJoin("people p ON p.id = ta.person_id").
		LeftJoin("businesses b ON b.id = ta.business_id").
		OrderBy("t.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select tasks sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	var items []domain.TaskListItem
	for rows.Next() {
		var (
			item      domain.TaskListItem
			firstName *string
			lastName  *string
		)
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Done,
			&item.PersonID, &firstName, &lastName,
			&item.BusinessID, &item.BusinessName,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if firstName != nil && lastName != nil {
			full := *firstName + " " + *lastName
			item.PersonName = &full
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return items, nil
}

// ListByPerson returns the tasks assigned to one person, newest first.
func (r *TaskRepository) ListByPerson(ctx context.Context, personID string) ([]domain.Task, error) {
	return r.listByAssignee(ctx, squirrel.Eq{"ta.person_id": personID})
}

// ListByBusiness returns the tasks assigned to one business, newest first.
func (r *TaskRepository) ListByBusiness(ctx context.Context, businessID string) ([]domain.Task, error) {
	return r.listByAssignee(ctx, squirrel.Eq{"ta.business_id": businessID})
}

func (r *TaskRepository) listByAssignee(ctx context.Context, where squirrel.Eq) ([]domain.Task, error) {
	stmt, args, err := r.builder.
		Select("t.id", "t.title", "t.description", "t.is_done", "t.created_at", "t.updated_at").
		From("tasks t").
		Join("task_assignments ta ON ta.task_id = t.id").
		Where(where).
		OrderBy("t.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select assignee tasks sql: %w", err)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select assignee tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Done, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan assignee task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignee tasks: %w", err)
	}

	return tasks, nil
}

// SetDone flips the completion flag and refreshes updated_at.
func (r *TaskRepository) SetDone(ctx context.Context, id string, done bool) error {
	stmt, args, err := r.builder.
		Update("tasks").
		Set("is_done", done).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update task sql: %w", err)
	}

	tag, err := r.db.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
