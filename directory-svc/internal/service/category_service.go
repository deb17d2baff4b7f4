package service

import (
	"context"
	"strings"

	"github.com/Densingh-123/Home-Services/directory-svc/internal/domain"
)

type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, storeError("list categories", err)
	}
	return categories, nil
}

// Add creates or replaces a category. The id defaults to the lowercased name.
func (s *CategoryService) Add(ctx context.Context, category *domain.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if err := validateInput(category); err != nil {
		return err
	}
	if category.ID == "" {
		category.ID = strings.ToLower(strings.ReplaceAll(category.Name, " ", "-"))
	}
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		return storeError("save category", err)
	}
	return nil
}
