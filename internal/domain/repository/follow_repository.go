package repository

import (
	"context"

	"github.com/listinker/listinker-api/internal/domain/entity"
)

// FollowRepository defines the two follow aggregates. The two writes of a
// follow mutation are intentionally separate calls: a crash between them
// leaves the pair temporarily asymmetric, which the next successful write
// heals. A transactional store can be swapped in behind this interface
// without touching callers.
type FollowRepository interface {
	CreateAggregates(ctx context.Context, uid, followersID, followingID string) error

	GetFollowers(ctx context.Context, id string) (*entity.FollowersDoc, error)
	GetFollowing(ctx context.Context, id string) (*entity.FollowingDoc, error)

	// SetFollowers/SetFollowing persist the list together with its
	// recomputed count so the cached count always equals the list length.
	SetFollowers(ctx context.Context, id string, list []string) error
	SetFollowing(ctx context.Context, id string, list []string) error
}
