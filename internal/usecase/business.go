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
	msgBusinessNameRequired = "Name is required."
	msgUnableToSaveBusiness = "Unable to save business."
)

// BusinessInput is the validated form payload for creating or updating a
// business.
type BusinessInput struct {
	Name         string
	ContactEmail string
	CategoryIDs  []string
	TagIDs       []string
}

// BusinessService handles businesses and their category/tag links.
type BusinessService struct {
	businesses port.BusinessRepository
}

// NewBusinessService constructs a business service.
func NewBusinessService(businesses port.BusinessRepository) *BusinessService {
	return &BusinessService{businesses: businesses}
}

// Create validates the form and inserts a business with its links.
func (s *BusinessService) Create(ctx context.Context, input BusinessInput) (string, error) {
	business, err := s.validate(input)
	if err != nil {
		return "", err
	}

	id, err := s.businesses.Create(ctx, business, input.CategoryIDs, input.TagIDs)
	if err != nil {
		return "", NewValidationMessage(msgUnableToSaveBusiness)
	}

	return id, nil
}

// List returns every business with its categories and tags.
func (s *BusinessService) List(ctx context.Context) ([]domain.Business, error) {
	return s.businesses.List(ctx)
}

// Get returns one business or ErrNotFound.
func (s *BusinessService) Get(ctx context.Context, id string) (*domain.Business, error) {
	business, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return business, nil
}

// Update rewrites the business and replaces its category/tag links.
func (s *BusinessService) Update(ctx context.Context, id string, input BusinessInput) error {
	business, err := s.validate(input)
	if err != nil {
		return err
	}
	business.ID = id

	if err := s.businesses.Update(ctx, business, input.CategoryIDs, input.TagIDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return NewValidationMessage(msgUnableToSaveBusiness)
	}

	return nil
}

// Delete removes the business; linked people keep their rows.
func (s *BusinessService) Delete(ctx context.Context, id string) error {
	if err := s.businesses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *BusinessService) validate(input BusinessInput) (domain.Business, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Business{}, NewValidationMessage(msgBusinessNameRequired)
	}

	business := domain.Business{Name: name}
	if email := NormalizeEmail(input.ContactEmail); email != "" {
		if !emailShape.MatchString(email) {
			return domain.Business{}, NewFieldErrors(map[string]string{"contactEmail": msgInvalidEmail})
		}
		business.ContactEmail = &email
	}

	return business, nil
}
