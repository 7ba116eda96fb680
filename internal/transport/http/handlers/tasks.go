package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
	"github.com/jvfernandez09/jfc-app/internal/usecase"
)

// TaskHandler exposes the task board and completion toggles.
type TaskHandler struct {
	tasks *usecase.TaskService
}

// NewTaskHandler builds the task handler.
func NewTaskHandler(tasks *usecase.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// RegisterRoutes mounts the task endpoints.
func (h *TaskHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.Board)
	group.POST("", h.Create)
	group.POST("/:id/complete", h.Complete)
	group.POST("/:id/reopen", h.Reopen)
}

// Board returns all tasks partitioned into open and completed.
func (h *TaskHandler) Board(c *gin.Context) {
	board, err := h.tasks.Board(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "Unable to load tasks."))
		return
	}

	resp := TaskBoardResponse{
		Open:      make([]TaskListItemResponse, 0, len(board.Open)),
		Completed: make([]TaskListItemResponse, 0, len(board.Completed)),
	}
	for _, item := range board.Open {
		resp.Open = append(resp.Open, newTaskListItemResponse(item))
	}
	for _, item := range board.Completed {
		resp.Completed = append(resp.Completed, newTaskListItemResponse(item))
	}
	c.JSON(http.StatusOK, resp)
}

// Create inserts a task assigned to a person or a business.
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	id, err := h.tasks.Create(c.Request.Context(), usecase.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		PersonID:    req.PersonID,
		BusinessID:  req.BusinessID,
	})
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "Unable to save task.")
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// Complete marks a task done.
func (h *TaskHandler) Complete(c *gin.Context) {
	h.toggle(c, h.tasks.Complete)
}

// Reopen clears the done flag.
func (h *TaskHandler) Reopen(c *gin.Context) {
	h.toggle(c, h.tasks.Reopen)
}

func (h *TaskHandler) toggle(c *gin.Context, set func(ctx context.Context, id string) error) {
	if err := set(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrNotFound, Status: http.StatusNotFound, Message: "Task not found."},
		}, http.StatusInternalServerError, "Unable to save task.")
		return
	}

	c.Status(http.StatusNoContent)
}

func newTaskListItemResponse(item domain.TaskListItem) TaskListItemResponse {
	return TaskListItemResponse{
		ID:           item.ID,
		Title:        item.Title,
		Done:         item.Done,
		PersonID:     item.PersonID,
		PersonName:   item.PersonName,
		BusinessID:   item.BusinessID,
		BusinessName: item.BusinessName,
	}
}
