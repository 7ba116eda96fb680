package domain

import "time"

// Task is a unit of work assigned to exactly one person or one business.
type Task struct {
	ID          string
	Title       string
	Description *string
	Done        bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskTarget names the single assignee of a task. Exactly one of the two
// fields is set; the storage layer enforces the exclusivity.
type TaskTarget struct {
	PersonID   *string
	BusinessID *string
}

// TaskListItem is the denormalised row rendered on the task board.
type TaskListItem struct {
	ID           string
	Title        string
	Done         bool
	PersonID     *string
	PersonName   *string
	BusinessID   *string
	BusinessName *string
}
