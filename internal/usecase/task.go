package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
	"github.com/jvfernandez09/jfc-app/internal/core/port"
	"github.com/jvfernandez09/jfc-app/internal/repository"
)

const (
	msgTaskTitleRequired  = "Title is required."
	msgTaskTargetRequired = "A task must be assigned to a person or a business."
	msgUnableToSaveTask   = "Unable to save task."
)

// TaskInput is the validated form payload for creating a task. Exactly one of
// PersonID and BusinessID must be set.
type TaskInput struct {
	Title       string
	Description string
	PersonID    string
	BusinessID  string
}

// TaskBoard partitions the task list the way the board renders it.
type TaskBoard struct {
	Open      []domain.TaskListItem
	Completed []domain.TaskListItem
}

// TaskService handles tasks and their single person-or-business assignment.
type TaskService struct {
	tasks port.TaskRepository
}

// NewTaskService constructs a task service.
func NewTaskService(tasks port.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// Create validates the form and inserts a task with its assignment.
func (s *TaskService) Create(ctx context.Context, input TaskInput) (string, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return "", NewValidationMessage(msgTaskTitleRequired)
	}

	personID := strings.TrimSpace(input.PersonID)
	businessID := strings.TrimSpace(input.BusinessID)
	if (personID == "") == (businessID == "") {
		return "", NewValidationMessage(msgTaskTargetRequired)
	}

	task := domain.Task{Title: title}
	if description := strings.TrimSpace(input.Description); description != "" {
		task.Description = &description
	}

	target := domain.TaskTarget{}
	if personID != "" {
		target.PersonID = &personID
	} else {
		target.BusinessID = &businessID
	}

	id, err := s.tasks.Create(ctx, task, target)
	if err != nil {
		return "", NewValidationMessage(msgUnableToSaveTask)
	}

	return id, nil
}

// Board returns all tasks split into open and completed, each newest first.
func (s *TaskService) Board(ctx context.Context) (TaskBoard, error) {
	items, err := s.tasks.List(ctx)
	if err != nil {
		return TaskBoard{}, err
	}

	board := TaskBoard{}
	for _, item := range items {
		if item.Done {
			board.Completed = append(board.Completed, item)
		} else {
			board.Open = append(board.Open, item)
		}
	}

	return board, nil
}

// ListByPerson returns a person's tasks for their show page.
func (s *TaskService) ListByPerson(ctx context.Context, personID string) ([]domain.Task, error) {
	return s.tasks.ListByPerson(ctx, personID)
}

// ListByBusiness returns a business's tasks for its show page.
func (s *TaskService) ListByBusiness(ctx context.Context, businessID string) ([]domain.Task, error) {
	return s.tasks.ListByBusiness(ctx, businessID)
}

// Complete marks a task done.
func (s *TaskService) Complete(ctx context.Context, id string) error {
	return s.setDone(ctx, id, true)
}

// Reopen clears the done flag.
func (s *TaskService) Reopen(ctx context.Context, id string) error {
	return s.setDone(ctx, id, false)
}

func (s *TaskService) setDone(ctx context.Context, id string, done bool) error {
	if err := s.tasks.SetDone(ctx, id, done); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
