package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
	"github.com/jvfernandez09/jfc-app/internal/transport/http/middleware"
)

// ErrorResponse is the error payload. Message-only failures set Error;
// field-scoped validation failures set Errors keyed by form field.
type ErrorResponse struct {
	Error     string            `json:"error,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// NewErrorResponse creates a message-only error payload.
func NewErrorResponse(c *gin.Context, msg string) ErrorResponse {
	return ErrorResponse{Error: msg, RequestID: middleware.GetRequestID(c)}
}

// NewFieldErrorResponse creates a field-scoped error payload.
func NewFieldErrorResponse(c *gin.Context, fields map[string]string) ErrorResponse {
	return ErrorResponse{Errors: fields, RequestID: middleware.GetRequestID(c)}
}

// RedirectResponse tells the client where to navigate after a flow finishes.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUserResponse maps a domain user onto its public view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{ID: user.ID, Name: user.Name, Email: user.Email}
}

// RegisterRequest is the signup form payload.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login alongside the session cookie.
type LoginResponse struct {
	Redirect string       `json:"redirect"`
	User     UserResponse `json:"user"`
}

// MeResponse carries the resolved identity; User is null for anonymous
// requests.
type MeResponse struct {
	User *UserResponse `json:"user"`
}

// UpdateProfileRequest is the profile form payload.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ChangePasswordRequest is the password form payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// DeleteAccountRequest re-authenticates before the account is removed.
type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// NamedRef is a compact id/name pair used for linked categories and tags.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PersonRequest is the contact form payload.
type PersonRequest struct {
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	BusinessID string   `json:"businessId"`
	TagIDs     []string `json:"tagIds"`
}

// PersonResponse is the public view of a contact.
type PersonResponse struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        *string    `json:"email"`
	Phone        *string    `json:"phone"`
	BusinessID   *string    `json:"businessId"`
	BusinessName *string    `json:"businessName"`
	Tags         []NamedRef `json:"tags"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// NewPersonResponse maps a domain person onto its public view.
func NewPersonResponse(person domain.Person) PersonResponse {
	resp := PersonResponse{
		ID:           person.ID,
		FirstName:    person.FirstName,
		LastName:     person.LastName,
		Email:        person.Email,
		Phone:        person.Phone,
		BusinessID:   person.BusinessID,
		BusinessName: person.BusinessName,
		Tags:         make([]NamedRef, 0, len(person.Tags)),
		CreatedAt:    person.CreatedAt,
	}
	for _, tag := range person.Tags {
		resp.Tags = append(resp.Tags, NamedRef{ID: tag.ID, Name: tag.Name})
	}
	return resp
}

// BusinessRequest is the business form payload.
type BusinessRequest struct {
	Name         string   `json:"name"`
	ContactEmail string   `json:"contactEmail"`
	CategoryIDs  []string `json:"categoryIds"`
	TagIDs       []string `json:"tagIds"`
}

// BusinessResponse is the public view of a business.
type BusinessResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	ContactEmail *string    `json:"contactEmail"`
	Categories   []NamedRef `json:"categories"`
	Tags         []NamedRef `json:"tags"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// NewBusinessResponse maps a domain business onto its public view.
func NewBusinessResponse(business domain.Business) BusinessResponse {
	resp := BusinessResponse{
		ID:           business.ID,
		Name:         business.Name,
		ContactEmail: business.ContactEmail,
		Categories:   make([]NamedRef, 0, len(business.Categories)),
		Tags:         make([]NamedRef, 0, len(business.Tags)),
		CreatedAt:    business.CreatedAt,
	}
	for _, category := range business.Categories {
		resp.Categories = append(resp.Categories, NamedRef{ID: category.ID, Name: category.Name})
	}
	for _, tag := range business.Tags {
		resp.Tags = append(resp.Tags, NamedRef{ID: tag.ID, Name: tag.Name})
	}
	return resp
}

// NameRequest covers category and tag forms, which carry only a name.
type NameRequest struct {
	Name string `json:"name"`
}

// TaskRequest is the task form payload. Exactly one of PersonID and
// BusinessID is set; the nested-route handlers fill it from the URL.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PersonID    string `json:"personId"`
	BusinessID  string `json:"businessId"`
}

// TaskResponse is the detailed view of a task on a show page.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTaskResponse maps a domain task onto its detailed view.
func NewTaskResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Done:        task.Done,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// TaskListItemResponse is the denormalised board row.
type TaskListItemResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Done         bool    `json:"done"`
	PersonID     *string `json:"personId"`
	PersonName   *string `json:"personName"`
	BusinessID   *string `json:"businessId"`
	BusinessName *string `json:"businessName"`
}

// TaskBoardResponse partitions the board into open and completed tasks.
type TaskBoardResponse struct {
	Open      []TaskListItemResponse `json:"open"`
	Completed []TaskListItemResponse `json:"completed"`
}

// CreatedResponse acknowledges a successful create with the new row id.
type CreatedResponse struct {
	ID string `json:"id"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports the outcome of each dependency check.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
