package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/listinker/listinker-api/internal/apperror"
	"github.com/listinker/listinker-api/internal/domain/entity"
	repo "github.com/listinker/listinker-api/internal/domain/repository"
)

// FavoriteService maintains each user's saved-ads list together with
// the favorited counter on the ads themselves.
type FavoriteService struct {
	Ads    repo.AdRepository
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewFavoriteService(ads repo.AdRepository, users repo.UserRepository, logger *logrus.Logger) *FavoriteService {
	return &FavoriteService{Ads: ads, Users: users, Logger: logger}
}

// Add saves an existing ad to the user's favorites and bumps its
// favorited count. Saving the same ad twice is rejected without moving
// the counter.
func (s *FavoriteService) Add(ctx context.Context, uid, adID string) error {
	if _, err := s.Ads.GetByID(ctx, adID); err != nil {
		return err
	}
	user, err := s.Users.GetByUID(ctx, uid)
	if err != nil {
		return err
	}
	for _, fav := range user.Favorites {
		if fav == adID {
			return &apperror.AppError{Err: apperror.ErrNoChange, Message: "you have already favorited this ad"}
		}
	}
	if err := s.Users.AddFavorite(ctx, uid, adID); err != nil {
		return err
	}
	return s.Ads.IncFavorited(ctx, adID, 1)
}

// Remove drops an ad from the user's favorites; the counter only moves
// when the ad was actually saved.
func (s *FavoriteService) Remove(ctx context.Context, uid, adID string) error {
	removed, err := s.Users.RemoveFavorite(ctx, uid, adID)
	if err != nil {
		return err
	}
	if !removed {
		return apperror.NotFound("favorite", adID)
	}
	return s.Ads.IncFavorited(ctx, adID, -1)
}

// List pages through the user's favorited ads.
func (s *FavoriteService) List(ctx context.Context, uid string, page, pageSize int) ([]entity.Ad, error) {
	user, err := s.Users.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(user.Favorites) == 0 {
		return []entity.Ad{}, nil
	}
	offset := (page - 1) * pageSize
	if offset >= len(user.Favorites) {
		return []entity.Ad{}, nil
	}
	end := offset + pageSize
	if end > len(user.Favorites) {
		end = len(user.Favorites)
	}
	return s.Ads.FindByIDs(ctx, user.Favorites[offset:end])
}
