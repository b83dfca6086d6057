package repository

import (
	"context"

	"github.com/listinker/listinker-api/internal/domain/entity"
)

// UserRepository defines user persistence.
type UserRepository interface {
	Insert(ctx context.Context, u *entity.User) error
	GetByUID(ctx context.Context, uid string) (*entity.User, error)
	GetByMobile(ctx context.Context, mobile string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUIDs(ctx context.Context, uids []string) ([]entity.User, error)
	// Set applies a partial update of already-validated fields.
	Set(ctx context.Context, uid string, fields map[string]any) error
	Delete(ctx context.Context, uid string) error

	PushMyAd(ctx context.Context, uid, adID string) error
	PullMyAd(ctx context.Context, uid, adID string) error

	AddFavorite(ctx context.Context, uid, adID string) error
	// RemoveFavorite reports whether the ad was actually removed.
	RemoveFavorite(ctx context.Context, uid, adID string) (bool, error)

	// PushHistory prepends adID to the viewing history and truncates it to
	// limit entries.
	PushHistory(ctx context.Context, uid, adID string, limit int) error

	SetEmailVerifiedByEmail(ctx context.Context, email string, verified bool) error
}
