package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jvfernandez09/jfc-app/internal/usecase"
)

// BusinessHandler exposes CRUD for businesses plus the nested task routes
// used by the business show page.
type BusinessHandler struct {
	businesses *usecase.BusinessService
	tasks      *usecase.TaskService
}

// NewBusinessHandler builds the business handler.
func NewBusinessHandler(businesses *usecase.BusinessService, tasks *usecase.TaskService) *BusinessHandler {
	return &BusinessHandler{businesses: businesses, tasks: tasks}
}

// RegisterRoutes mounts the business endpoints.
func (h *BusinessHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.GET("/:id/tasks", h.ListTasks)
	group.POST("/:id/tasks", h.AddTask)
}

// List returns every business with categories and tags.
func (h *BusinessHandler) List(c *gin.Context) {
	businesses, err := h.businesses.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "Unable to load businesses."))
		return
	}

	resp := make([]BusinessResponse, 0, len(businesses))
	for _, business := range businesses {
		resp = append(resp, NewBusinessResponse(business))
	}
	c.JSON(http.StatusOK, resp)
}

// Create inserts a business with its category and tag links.
func (h *BusinessHandler) Create(c *gin.Context) {
	var req BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	id, err := h.businesses.Create(c.Request.Context(), businessInput(req))
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "Unable to save business.")
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// Get returns one business.
func (h *BusinessHandler) Get(c *gin.Context) {
	business, err := h.businesses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrNotFound, Status: http.StatusNotFound, Message: "Business not found."},
		}, http.StatusInternalServerError, "Unable to load business.")
		return
	}

	c.JSON(http.StatusOK, NewBusinessResponse(*business))
}

// Update rewrites a business and replaces its category/tag links.
func (h *BusinessHandler) Update(c *gin.Context) {
	var req BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	if err := h.businesses.Update(c.Request.Context(), c.Param("id"), businessInput(req)); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrNotFound, Status: http.StatusNotFound, Message: "Business not found."},
		}, http.StatusInternalServerError, "Unable to save business.")
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a business; linked people keep their rows.
func (h *BusinessHandler) Delete(c *gin.Context) {
	if err := h.businesses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrNotFound, Status: http.StatusNotFound, Message: "Business not found."},
		}, http.StatusInternalServerError, "Unable to delete business.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListTasks returns the business's tasks for the show page.
func (h *BusinessHandler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.ListByBusiness(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "Unable to load tasks."))
		return
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, NewTaskResponse(task))
	}
	c.JSON(http.StatusOK, resp)
}

// AddTask creates a task assigned to this business from the show page.
func (h *BusinessHandler) AddTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	id, err := h.tasks.Create(c.Request.Context(), usecase.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		BusinessID:  c.Param("id"),
	})
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "Unable to save task.")
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

func businessInput(req BusinessRequest) usecase.BusinessInput {
	return usecase.BusinessInput{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		CategoryIDs:  req.CategoryIDs,
		TagIDs:       req.TagIDs,
	}
}
