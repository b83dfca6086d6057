package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/listinker/listinker-api/internal/apperror"
	"github.com/listinker/listinker-api/internal/domain/entity"
	"github.com/listinker/listinker-api/internal/domain/repository"
)

type CreditRepository struct {
	free *mongo.Collection
	paid *mongo.Collection
}

func NewCreditRepository(db *mongo.Database) *CreditRepository {
	return &CreditRepository{
		free: db.Collection(colFreeCredits),
		paid: db.Collection(colPaidCredits),
	}
}

func (r *CreditRepository) collection(pool repository.Pool) *mongo.Collection {
	if pool == repository.PaidPool {
		return r.paid
	}
	return r.free
}

// EnsureRecord upserts with $setOnInsert only, so an existing record keeps
// its balance no matter how often initialization runs.
func (r *CreditRepository) EnsureRecord(ctx context.Context, pool repository.Pool, uid string, category, credits int) error {
	now := time.Now().UTC()
	_, err := r.collection(pool).UpdateOne(ctx,
		bson.M{"UID": uid, "category": category},
		bson.M{"$setOnInsert": bson.M{
			"credits": credits,
			"created": now,
			"updated": now,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

// ConsumeOne is the single conditional check-and-decrement: the positive
// balance is part of the filter, so two concurrent callers can never spend
// the same unit or drive the count negative.
func (r *CreditRepository) ConsumeOne(ctx context.Context, pool repository.Pool, uid string, category int) (bool, error) {
	res, err := r.collection(pool).UpdateOne(ctx,
		bson.M{"UID": uid, "category": category, "credits": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"credits": -1},
			"$set": bson.M{"updated": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *CreditRepository) Refund(ctx context.Context, pool repository.Pool, uid string, category int) error {
	_, err := r.collection(pool).UpdateOne(ctx,
		bson.M{"UID": uid, "category": category},
		bson.M{
			"$inc": bson.M{"credits": 1},
			"$set": bson.M{"updated": time.Now().UTC()},
		},
	)
	return err
}

func (r *CreditRepository) Get(ctx context.Context, pool repository.Pool, uid string, category int) (*entity.CreditRecord, error) {
	rec := &entity.CreditRecord{}
	err := r.collection(pool).FindOne(ctx, bson.M{"UID": uid, "category": category}).Decode(rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("credit record", uid)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

var _ repository.CreditRepository = (*CreditRepository)(nil)
