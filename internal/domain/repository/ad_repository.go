package repository

import (
	"context"

	"github.com/listinker/listinker-api/internal/domain/entity"
)

// AdFilter holds the optional feed filters. Price bounds apply only when
// both are set, matching the query contract of the feed endpoint.
type AdFilter struct {
	Category *int
	MinPrice *int
	MaxPrice *int
}

// AdRepository defines ad persistence. Reads used by the feed return ads
// newest first.
type AdRepository interface {
	Insert(ctx context.Context, ad *entity.Ad) error
	GetByID(ctx context.Context, adID string) (*entity.Ad, error)
	// Set applies a partial update of already-validated fields.
	Set(ctx context.Context, adID string, fields map[string]any) error
	Delete(ctx context.Context, adID string) error
	DeleteByOwner(ctx context.Context, owner string) error

	FindPage(ctx context.Context, f AdFilter, offset, limit int) ([]entity.Ad, error)
	FindByIDs(ctx context.Context, adIDs []string) ([]entity.Ad, error)
	FindByCategoryExcluding(ctx context.Context, category int, exclude []string, f AdFilter, offset, limit int) ([]entity.Ad, error)
	FindExcluding(ctx context.Context, exclude []string, offset, limit int) ([]entity.Ad, error)

	// RegisterView increments the view counter and records the viewer in one
	// conditional update. Returns false when the viewer was already counted.
	RegisterView(ctx context.Context, adID, viewer string) (bool, error)
	IncFavorited(ctx context.Context, adID string, delta int) error
}
