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
	msgFirstLastRequired   = "First name and last name are required."
	msgUnableToSaveContact = "Unable to save contact."
)

// ErrNotFound surfaces a missing entity to the transport layer.
var ErrNotFound = errors.New("not found")

// ContactInput is the validated form payload for creating or updating a
// person. Optional fields arrive as empty strings and are stored as NULL.
type ContactInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	BusinessID string
	TagIDs     []string
}

// ContactService handles people and their tag/business links.
type ContactService struct {
	contacts port.ContactRepository
}

// NewContactService constructs a contact service.
func NewContactService(contacts port.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

// Create validates the form and inserts a person with their tag links.
func (s *ContactService) Create(ctx context.Context, input ContactInput) (string, error) {
	person, err := s.validate(input)
	if err != nil {
		return "", err
	}

	id, err := s.contacts.Create(ctx, person, input.TagIDs)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return "", NewFieldErrors(map[string]string{"email": msgEmailExists})
		}
		return "", NewValidationMessage(msgUnableToSaveContact)
	}

	return id, nil
}

// List returns every person with their business name and tags.
func (s *ContactService) List(ctx context.Context) ([]domain.Person, error) {
	return s.contacts.List(ctx)
}

// Get returns one person or ErrNotFound.
func (s *ContactService) Get(ctx context.Context, id string) (*domain.Person, error) {
	person, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return person, nil
}

// Update rewrites the person and replaces their tag links.
func (s *ContactService) Update(ctx context.Context, id string, input ContactInput) error {
	person, err := s.validate(input)
	if err != nil {
		return err
	}
	person.ID = id

	if err := s.contacts.Update(ctx, person, input.TagIDs); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrConflict):
			return NewFieldErrors(map[string]string{"email": msgEmailExists})
		default:
			return NewValidationMessage(msgUnableToSaveContact)
		}
	}

	return nil
}

// Delete removes the person; tasks assigned to them go with the row.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ContactService) validate(input ContactInput) (domain.Person, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return domain.Person{}, NewValidationMessage(msgFirstLastRequired)
	}

	person := domain.Person{
		FirstName: firstName,
		LastName:  lastName,
	}

	if email := NormalizeEmail(input.Email); email != "" {
		if !emailShape.MatchString(email) {
			return domain.Person{}, NewFieldErrors(map[string]string{"email": msgInvalidEmail})
		}
		person.Email = &email
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		person.Phone = &phone
	}
	if businessID := strings.TrimSpace(input.BusinessID); businessID != "" {
		person.BusinessID = &businessID
	}

	return person, nil
}
