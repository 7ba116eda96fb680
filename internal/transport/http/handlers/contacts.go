package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jvfernandez09/jfc-app/internal/usecase"
)

// ContactHandler exposes CRUD for people plus the nested task routes used by
// the contact show page.
type ContactHandler struct {
	contacts *usecase.ContactService
	tasks    *usecase.TaskService
}

// NewContactHandler builds the contact handler.
func NewContactHandler(contacts *usecase.ContactService, tasks *usecase.TaskService) *ContactHandler {
	return &ContactHandler{contacts: contacts, tasks: tasks}
}

// RegisterRoutes mounts the contact endpoints.
func (h *ContactHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.GET("/:id/tasks", h.ListTasks)
	group.POST("/:id/tasks", h.AddTask)
}

// List returns every contact with business name and tags.
func (h *ContactHandler) List(c *gin.Context) {
	people, err := h.contacts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "Unable to load contacts."))
		return
	}

	resp := make([]PersonResponse, 0, len(people))
	for _, person := range people {
		resp = append(resp, NewPersonResponse(person))
	}
	c.JSON(http.StatusOK, resp)
}

// Create inserts a contact with its tag links.
func (h *ContactHandler) Create(c *gin.Context) {
	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	id, err := h.contacts.Create(c.Request.Context(), contactInput(req))
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "Unable to save contact.")
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// Get returns one contact.
func (h *ContactHandler) Get(c *gin.Context) {
	person, err := h.contacts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrNotFound, Status: http.StatusNotFound, Message: "Contact not found."},
		}, http.StatusInternalServerError, "Unable to load contact.")
		return
	}

	c.JSON(http.StatusOK, NewPersonResponse(*person))
}

// Update rewrites a contact and replaces its tag links.
func (h *ContactHandler) Update(c *gin.Context) {
	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	if err := h.contacts.Update(c.Request.Context(), c.Param("id"), contactInput(req)); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrNotFound, Status: http.StatusNotFound, Message: "Contact not found."},
		}, http.StatusInternalServerError, "Unable to save contact.")
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a contact and the tasks assigned to them.
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrNotFound, Status: http.StatusNotFound, Message: "Contact not found."},
		}, http.StatusInternalServerError, "Unable to delete contact.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListTasks returns the contact's tasks for the show page.
func (h *ContactHandler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.ListByPerson(c.Request.Context(), c.Param("id"))
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

// AddTask creates a task assigned to this contact from the show page.
func (h *ContactHandler) AddTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	id, err := h.tasks.Create(c.Request.Context(), usecase.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		PersonID:    c.Param("id"),
	})
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "Unable to save task.")
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

func contactInput(req PersonRequest) usecase.ContactInput {
	return usecase.ContactInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		BusinessID: req.BusinessID,
		TagIDs:     req.TagIDs,
	}
}
