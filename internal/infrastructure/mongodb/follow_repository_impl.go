package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/listinker/listinker-api/internal/apperror"
	"github.com/listinker/listinker-api/internal/domain/entity"
	"github.com/listinker/listinker-api/internal/domain/repository"
)

type FollowRepository struct {
	followers *mongo.Collection
	following *mongo.Collection
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{
		followers: db.Collection(colFollowers),
		following: db.Collection(colFollowing),
	}
}

func (r *FollowRepository) CreateAggregates(ctx context.Context, uid, followersID, followingID string) error {
	if _, err := r.followers.InsertOne(ctx, entity.FollowersDoc{
		ID:        followersID,
		UserID:    uid,
		Followers: []string{},
		Count:     0,
	}); err != nil {
		return err
	}
	_, err := r.following.InsertOne(ctx, entity.FollowingDoc{
		ID:        followingID,
		UserID:    uid,
		Following: []string{},
		Count:     0,
	})
	return err
}

func (r *FollowRepository) GetFollowers(ctx context.Context, id string) (*entity.FollowersDoc, error) {
	doc := &entity.FollowersDoc{}
	err := r.followers.FindOne(ctx, bson.M{"_id": id}).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("followers record", id)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *FollowRepository) GetFollowing(ctx context.Context, id string) (*entity.FollowingDoc, error) {
	doc := &entity.FollowingDoc{}
	err := r.following.FindOne(ctx, bson.M{"_id": id}).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("following record", id)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// SetFollowers writes the list and its recomputed length together so the
// cached count can never drift from the list.
func (r *FollowRepository) SetFollowers(ctx context.Context, id string, list []string) error {
	_, err := r.followers.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"followers": list, "followers_count": len(list)},
	})
	return err
}

func (r *FollowRepository) SetFollowing(ctx context.Context, id string, list []string) error {
	_, err := r.following.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"following": list, "following_count": len(list)},
	})
	return err
}

var _ repository.FollowRepository = (*FollowRepository)(nil)
