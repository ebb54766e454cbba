package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tradercheck/tradercheck/internal/application/dto"
	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/port"
)

// ManageCategories is the admin use case for the category list.
type ManageCategories struct {
	categories port.CategoryRepository
	records    port.RecordRepository
}

// NewManageCategories creates a new ManageCategories use case.
func NewManageCategories(categories port.CategoryRepository, records port.RecordRepository) *ManageCategories {
	return &ManageCategories{categories: categories, records: records}
}

// Create adds a category.
func (uc *ManageCategories) Create(ctx context.Context, req dto.CategoryRequest) (dto.CategoryResponse, error) {
	category, err := model.NewCategory(req.Name, req.Description, req.InputType)
	if err != nil {
		return dto.CategoryResponse{}, fmt.Errorf("failed to create category: %w", err)
	}
	if err := uc.categories.Save(ctx, category); err != nil {
		return dto.CategoryResponse{}, fmt.Errorf("failed to save category: %w", err)
	}
	return dto.FromCategory(category, 0), nil
}

// Update replaces the fields of an existing category.
func (uc *ManageCategories) Update(ctx context.Context, req dto.CategoryRequest) (dto.CategoryResponse, error) {
	category, err := uc.categories.FindByID(ctx, req.ID)
	if err != nil {
		return dto.CategoryResponse{}, fmt.Errorf("failed to find category: %w", err)
	}
	if err := category.Update(req.Name, req.Description, req.InputType); err != nil {
		return dto.CategoryResponse{}, fmt.Errorf("failed to update category: %w", err)
	}
	if err := uc.categories.Save(ctx, category); err != nil {
		return dto.CategoryResponse{}, fmt.Errorf("failed to save category: %w", err)
	}
	return uc.withCount(ctx, category)
}

// Delete removes a category no record refers to.
func (uc *ManageCategories) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// List returns every category with its record count.
func (uc *ManageCategories) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp, err := uc.withCount(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (uc *ManageCategories) withCount(ctx context.Context, c *model.Category) (dto.CategoryResponse, error) {
	n, err := uc.records.CountByCategory(ctx, c.ID())
	if err != nil {
		return dto.CategoryResponse{}, fmt.Errorf("failed to count records: %w", err)
	}
	return dto.FromCategory(c, n), nil
}
