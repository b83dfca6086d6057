package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/listinker/listinker-api/internal/apperror"
	"github.com/listinker/listinker-api/internal/domain/entity"
	repo "github.com/listinker/listinker-api/internal/domain/repository"
)

// CatalogService exposes the static category tree and validates the
// sub-category IDs attached to ads.
type CatalogService struct {
	Categories repo.CategoryRepository
}

func NewCatalogService(categories repo.CategoryRepository) *CatalogService {
	return &CatalogService{Categories: categories}
}

// ValidateCategories checks that every ID names an existing
// sub-category and that all of them share a single parent department.
// It returns that parent's numb_id, which is the department whose
// credit pool the posting charges.
func (s *CatalogService) ValidateCategories(ctx context.Context, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, apperror.InvalidCategory("at least one category ID is required")
	}
	parents := make(map[int]struct{})
	for _, id := range ids {
		sub, err := s.Categories.GetSubCategory(ctx, id)
		if err != nil {
			return 0, apperror.InvalidCategory(fmt.Sprintf("category ID %d is not valid", id))
		}
		parents[sub.ParentID] = struct{}{}
	}
	if len(parents) > 1 {
		return 0, apperror.InvalidCategory("provided category IDs belong to multiple unrelated categories")
	}
	for parent := range parents {
		return parent, nil
	}
	return 0, apperror.InvalidCategory("no valid parent category found for the provided category IDs")
}

// TopLevel lists the top-level departments.
func (s *CatalogService) TopLevel(ctx context.Context) ([]entity.Category, error) {
	return s.Categories.TopLevel(ctx)
}

// SubCategories lists every sub-category in the catalog.
func (s *CatalogService) SubCategories(ctx context.Context) ([]entity.SubCategory, error) {
	return s.Categories.SubCategories(ctx)
}

// Suggest returns sub-category names matching a prefix, for search
// autocomplete.
func (s *CatalogService) Suggest(ctx context.Context, input string) ([]string, error) {
	return s.Categories.SuggestNames(ctx, input)
}

type CategoryDetails struct {
	Category      string               `json:"category"`
	SubCategories []entity.SubCategory `json:"sub_categories"`
}

// Details resolves a department by numeric ID or by case-insensitive
// name and returns it together with its sub-categories in numb_id
// order.
func (s *CatalogService) Details(ctx context.Context, idOrName string) (*CategoryDetails, error) {
	var cat *entity.Category
	var err error
	if numbID, ok := parseDigits(idOrName); ok {
		cat, err = s.Categories.GetCategory(ctx, numbID)
	} else {
		cat, err = s.Categories.GetCategoryByName(ctx, idOrName)
	}
	if err != nil {
		return nil, err
	}
	subs, err := s.Categories.SubCategoriesOf(ctx, cat.NumbID)
	if err != nil {
		return nil, err
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].NumbID < subs[j].NumbID })
	return &CategoryDetails{Category: cat.Name, SubCategories: subs}, nil
}

func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
