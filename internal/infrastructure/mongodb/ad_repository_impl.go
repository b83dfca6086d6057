package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/listinker/listinker-api/internal/apperror"
	"github.com/listinker/listinker-api/internal/domain/entity"
	"github.com/listinker/listinker-api/internal/domain/repository"
)

type AdRepository struct {
	col *mongo.Collection
}

func NewAdRepository(db *mongo.Database) *AdRepository {
	return &AdRepository{col: db.Collection(colAds)}
}

func (r *AdRepository) Insert(ctx context.Context, ad *entity.Ad) error {
	_, err := r.col.InsertOne(ctx, ad)
	return err
}

func (r *AdRepository) GetByID(ctx context.Context, adID string) (*entity.Ad, error) {
	ad := &entity.Ad{}
	err := r.col.FindOne(ctx, bson.M{"ad_id": adID}).Decode(ad)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("ad", adID)
	}
	if err != nil {
		return nil, err
	}
	return ad, nil
}

func (r *AdRepository) Set(ctx context.Context, adID string, fields map[string]any) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"ad_id": adID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("ad", adID)
	}
	return nil
}

func (r *AdRepository) Delete(ctx context.Context, adID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"ad_id": adID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("ad", adID)
	}
	return nil
}

func (r *AdRepository) DeleteByOwner(ctx context.Context, owner string) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"owner": owner})
	return err
}

// filterQuery translates the optional feed filters into a Mongo filter.
// Price bounds apply only when both are present.
func filterQuery(f repository.AdFilter) bson.M {
	q := bson.M{}
	if f.Category != nil {
		q["category"] = *f.Category
	}
	if f.MinPrice != nil && f.MaxPrice != nil {
		q["price"] = bson.M{"$gte": *f.MinPrice, "$lte": *f.MaxPrice}
	}
	return q
}

func (r *AdRepository) findPage(ctx context.Context, q bson.M, offset, limit int, newestFirst bool) ([]entity.Ad, error) {
	opts := options.Find().SetSkip(int64(offset)).SetLimit(int64(limit))
	if newestFirst {
		opts.SetSort(bson.D{{Key: "time_created", Value: -1}})
	}
	cur, err := r.col.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var ads []entity.Ad
	if err := cur.All(ctx, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

func (r *AdRepository) FindPage(ctx context.Context, f repository.AdFilter, offset, limit int) ([]entity.Ad, error) {
	return r.findPage(ctx, filterQuery(f), offset, limit, true)
}

func (r *AdRepository) FindByIDs(ctx context.Context, adIDs []string) ([]entity.Ad, error) {
	if len(adIDs) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"ad_id": bson.M{"$in": adIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var ads []entity.Ad
	if err := cur.All(ctx, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

func (r *AdRepository) FindByCategoryExcluding(ctx context.Context, category int, exclude []string, f repository.AdFilter, offset, limit int) ([]entity.Ad, error) {
	q := filterQuery(f)
	q["category"] = category
	if len(exclude) > 0 {
		q["ad_id"] = bson.M{"$nin": exclude}
	}
	return r.findPage(ctx, q, offset, limit, true)
}

func (r *AdRepository) FindExcluding(ctx context.Context, exclude []string, offset, limit int) ([]entity.Ad, error) {
	q := bson.M{}
	if len(exclude) > 0 {
		q["ad_id"] = bson.M{"$nin": exclude}
	}
	return r.findPage(ctx, q, offset, limit, false)
}

// RegisterView counts a view at most once per viewer. The filter excludes
// ads that already list the viewer, so the increment and the viewer-set add
// happen in one conditional write.
func (r *AdRepository) RegisterView(ctx context.Context, adID, viewer string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"ad_id": adID, "viewed_by": bson.M{"$ne": viewer}},
		bson.M{
			"$inc":      bson.M{"views": 1},
			"$addToSet": bson.M{"viewed_by": viewer},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *AdRepository) IncFavorited(ctx context.Context, adID string, delta int) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"ad_id": adID}, bson.M{"$inc": bson.M{"favorited": delta}})
	return err
}

var _ repository.AdRepository = (*AdRepository)(nil)
