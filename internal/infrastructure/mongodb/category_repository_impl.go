package mongodb

import (
	"context"
	"errors"
	"regexp"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/listinker/listinker-api/internal/apperror"
	"github.com/listinker/listinker-api/internal/domain/entity"
	"github.com/listinker/listinker-api/internal/domain/repository"
)

type CategoryRepository struct {
	categories    *mongo.Collection
	subCategories *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		categories:    db.Collection(colCategories),
		subCategories: db.Collection(colSubCategories),
	}
}

func (r *CategoryRepository) TopLevel(ctx context.Context) ([]entity.Category, error) {
	cur, err := r.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var cats []entity.Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *CategoryRepository) GetCategory(ctx context.Context, numbID int) (*entity.Category, error) {
	cat := &entity.Category{}
	err := r.categories.FindOne(ctx, bson.M{"numb_id": numbID}).Decode(cat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("category", "")
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func (r *CategoryRepository) GetCategoryByName(ctx context.Context, name string) (*entity.Category, error) {
	cat := &entity.Category{}
	q := bson.M{"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}}
	err := r.categories.FindOne(ctx, q).Decode(cat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("category", name)
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func (r *CategoryRepository) GetSubCategory(ctx context.Context, numbID int) (*entity.SubCategory, error) {
	sub := &entity.SubCategory{}
	err := r.subCategories.FindOne(ctx, bson.M{"numb_id": numbID}).Decode(sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("sub-category", "")
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *CategoryRepository) SubCategories(ctx context.Context) ([]entity.SubCategory, error) {
	return r.findSubs(ctx, bson.M{})
}

func (r *CategoryRepository) SubCategoriesOf(ctx context.Context, parentID int) ([]entity.SubCategory, error) {
	subs, err := r.findSubs(ctx, bson.M{"parent_id": parentID})
	if err != nil {
		return nil, err
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].NumbID < subs[j].NumbID })
	return subs, nil
}

// SuggestNames returns the distinct sub-category names matching a
// case-insensitive prefix, sorted alphabetically.
func (r *CategoryRepository) SuggestNames(ctx context.Context, prefix string) ([]string, error) {
	q := bson.M{"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(prefix), Options: "i"}}
	subs, err := r.findSubs(ctx, q)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(subs))
	names := make([]string, 0, len(subs))
	for _, s := range subs {
		if _, ok := seen[s.Name]; ok {
			continue
		}
		seen[s.Name] = struct{}{}
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *CategoryRepository) findSubs(ctx context.Context, q bson.M) ([]entity.SubCategory, error) {
	cur, err := r.subCategories.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var subs []entity.SubCategory
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
