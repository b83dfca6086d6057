package repository

import (
	"context"

	"github.com/listinker/listinker-api/internal/domain/entity"
)

// CategoryRepository exposes the static catalog as read-only lookups.
type CategoryRepository interface {
	TopLevel(ctx context.Context) ([]entity.Category, error)
	GetCategory(ctx context.Context, numbID int) (*entity.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*entity.Category, error)
	GetSubCategory(ctx context.Context, numbID int) (*entity.SubCategory, error)
	SubCategories(ctx context.Context) ([]entity.SubCategory, error)
	SubCategoriesOf(ctx context.Context, parentID int) ([]entity.SubCategory, error)
	SuggestNames(ctx context.Context, prefix string) ([]string, error)
}

// ChatRepository exists only for account-deletion cascades; chat itself is
// plain CRUD outside this service's core.
type ChatRepository interface {
	DeleteForUser(ctx context.Context, uid string) error
}
