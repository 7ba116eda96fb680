package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jvfernandez09/jfc-app/internal/usecase"
)

// CategoryHandler exposes CRUD for the category vocabulary.
type CategoryHandler struct {
	categories *usecase.CategoryService
}

// NewCategoryHandler builds the category handler.
func NewCategoryHandler(categories *usecase.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// RegisterRoutes mounts the category endpoints.
func (h *CategoryHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.PUT("/:id", h.Rename)
	group.DELETE("/:id", h.Delete)
}

// List returns all categories.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "Unable to load categories."))
		return
	}

	resp := make([]NamedRef, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, NamedRef{ID: category.ID, Name: category.Name})
	}
	c.JSON(http.StatusOK, resp)
}

// Create inserts a category; names are unique.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	id, err := h.categories.Create(c.Request.Context(), req.Name)
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "Unable to save category.")
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// Rename updates a category's name.
func (h *CategoryHandler) Rename(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	if err := h.categories.Rename(c.Request.Context(), c.Param("id"), req.Name); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrNotFound, Status: http.StatusNotFound, Message: "Category not found."},
		}, http.StatusInternalServerError, "Unable to save category.")
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a category and its business links.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrNotFound, Status: http.StatusNotFound, Message: "Category not found."},
		}, http.StatusInternalServerError, "Unable to delete category.")
		return
	}

	c.Status(http.StatusNoContent)
}

// TagHandler exposes CRUD for the tag vocabulary.
type TagHandler struct {
	tags *usecase.TagService
}

// NewTagHandler builds the tag handler.
func NewTagHandler(tags *usecase.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// RegisterRoutes mounts the tag endpoints.
func (h *TagHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.PUT("/:id", h.Rename)
	group.DELETE("/:id", h.Delete)
}

// List returns all tags.
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "Unable to load tags."))
		return
	}

	resp := make([]NamedRef, 0, len(tags))
	for _, tag := range tags {
		resp = append(resp, NamedRef{ID: tag.ID, Name: tag.Name})
	}
	c.JSON(http.StatusOK, resp)
}

// Create inserts a tag; names are unique.
func (h *TagHandler) Create(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	id, err := h.tags.Create(c.Request.Context(), req.Name)
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "Unable to save tag.")
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// Rename updates a tag's name.
func (h *TagHandler) Rename(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid request payload"))
		return
	}

	if err := h.tags.Rename(c.Request.Context(), c.Param("id"), req.Name); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrNotFound, Status: http.StatusNotFound, Message: "Tag not found."},
		}, http.StatusInternalServerError, "Unable to save tag.")
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a tag and its person/business links.
func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.tags.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrNotFound, Status: http.StatusNotFound, Message: "Tag not found."},
		}, http.StatusInternalServerError, "Unable to delete tag.")
		return
	}

	c.Status(http.StatusNoContent)
}
