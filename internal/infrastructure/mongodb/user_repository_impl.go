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

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(colUsers)}
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) error {
	_, err := r.col.InsertOne(ctx, u)
	return err
}

func (r *UserRepository) getOne(ctx context.Context, q bson.M, id string) (*entity.User, error) {
	u := &entity.User{}
	err := r.col.FindOne(ctx, q).Decode(u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("user", id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*entity.User, error) {
	return r.getOne(ctx, bson.M{"uid": uid}, uid)
}

func (r *UserRepository) GetByMobile(ctx context.Context, mobile string) (*entity.User, error) {
	return r.getOne(ctx, bson.M{"mobilenumber": mobile}, mobile)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, bson.M{"email": email}, email)
}

func (r *UserRepository) FindByUIDs(ctx context.Context, uids []string) ([]entity.User, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"uid": bson.M{"$in": uids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []entity.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Set(ctx context.Context, uid string, fields map[string]any) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("user", uid)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, uid string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"uid": uid})
	return err
}

func (r *UserRepository) PushMyAd(ctx context.Context, uid, adID string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$push": bson.M{"my_ads": adID}})
	return err
}

func (r *UserRepository) PullMyAd(ctx context.Context, uid, adID string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$pull": bson.M{"my_ads": adID}})
	return err
}

func (r *UserRepository) AddFavorite(ctx context.Context, uid, adID string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$addToSet": bson.M{"favorites": adID}})
	return err
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, uid, adID string) (bool, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$pull": bson.M{"favorites": adID}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// PushHistory prepends adID and truncates the list server-side, keeping the
// bounded most-recent-first invariant in a single write.
func (r *UserRepository) PushHistory(ctx context.Context, uid, adID string, limit int) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{
		"$push": bson.M{"history": bson.M{
			"$each":     []string{adID},
			"$position": 0,
			"$slice":    limit,
		}},
	})
	return err
}

func (r *UserRepository) SetEmailVerifiedByEmail(ctx context.Context, email string, verified bool) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"email_verified": verified}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("user", email)
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
