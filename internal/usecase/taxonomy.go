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
	msgTaxonomyNameRequired = "Name is required."
	msgCategoryExists       = "Category already exists."
	msgTagExists            = "Tag already exists."
)

// CategoryService handles the category vocabulary applied to businesses.
type CategoryService struct {
	categories port.CategoryRepository
}

// NewCategoryService constructs a category service.
func NewCategoryService(categories port.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create inserts a category; the name must be unique.
func (s *CategoryService) Create(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewValidationMessage(msgTaxonomyNameRequired)
	}

	id, err := s.categories.Create(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return "", NewFieldErrors(map[string]string{"name": msgCategoryExists})
		}
		return "", err
	}

	return id, nil
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// Rename updates a category's name; the new name must be unique.
func (s *CategoryService) Rename(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidationMessage(msgTaxonomyNameRequired)
	}

	if err := s.categories.Rename(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrConflict):
			return NewFieldErrors(map[string]string{"name": msgCategoryExists})
		default:
			return err
		}
	}

	return nil
}

// Delete removes a category and its business links.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// TagService handles the tag vocabulary applied to people and businesses.
type TagService struct {
	tags port.TagRepository
}

// NewTagService constructs a tag service.
func NewTagService(tags port.TagRepository) *TagService {
	return &TagService{tags: tags}
}

// Create inserts a tag; the name must be unique.
func (s *TagService) Create(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewValidationMessage(msgTaxonomyNameRequired)
	}

	id, err := s.tags.Create(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return "", NewFieldErrors(map[string]string{"name": msgTagExists})
		}
		return "", err
	}

	return id, nil
}

// List returns all tags.
func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

// Rename updates a tag's name; the new name must be unique.
func (s *TagService) Rename(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidationMessage(msgTaxonomyNameRequired)
	}

	if err := s.tags.Rename(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrConflict):
			return NewFieldErrors(map[string]string{"name": msgTagExists})
		default:
			return err
		}
	}

	return nil
}

// Delete removes a tag and its person/business links.
func (s *TagService) Delete(ctx context.Context, id string) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
