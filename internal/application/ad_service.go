package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/listinker/listinker-api/internal/apperror"
	"github.com/listinker/listinker-api/internal/domain/entity"
	repo "github.com/listinker/listinker-api/internal/domain/repository"
)

// AdService handles the posting lifecycle: publish, read (with view
// recording), update, delete, and the owner's ad listing.
type AdService struct {
	Ads     repo.AdRepository
	Users   repo.UserRepository
	Catalog *CatalogService
	Credits *CreditService
	Uploads Uploader
	Logger  *logrus.Logger

	HistoryLimit int
}

func NewAdService(ads repo.AdRepository, users repo.UserRepository, catalog *CatalogService, credits *CreditService, uploads Uploader, logger *logrus.Logger, historyLimit int) *AdService {
	if historyLimit <= 0 {
		historyLimit = entity.HistoryLimit
	}
	return &AdService{
		Ads:          ads,
		Users:        users,
		Catalog:      catalog,
		Credits:      credits,
		Uploads:      uploads,
		Logger:       logger,
		HistoryLimit: historyLimit,
	}
}

type PublishAdInput struct {
	Title       string
	Description string
	Price       int
	Categories  []int
	Location    []float64
	Image       io.Reader
	ImageName   string
	ContentType string
}

// Publish validates the ad's categories, charges one posting credit for
// their shared department, uploads the image, and persists the ad in
// under-review status. A storage or persistence failure after the
// charge refunds the credit so no half-published state survives.
func (s *AdService) Publish(ctx context.Context, uid string, in PublishAdInput) (*entity.Ad, error) {
	parent, err := s.Catalog.ValidateCategories(ctx, in.Categories)
	if err != nil {
		return nil, err
	}
	if in.Image == nil {
		return nil, apperror.Validation("image", "image is required to create an ad")
	}
	if len(in.Location) != 0 && len(in.Location) != 2 {
		return nil, apperror.Validation("ad_loc", "location must be a latitude,longitude pair")
	}

	pool, err := s.Credits.Consume(ctx, uid, parent)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.uploadImage(ctx, uid, in.Image, in.ImageName, in.ContentType)
	if err != nil {
		s.Credits.Refund(ctx, pool, uid, parent)
		return nil, err
	}

	ad := &entity.Ad{
		AdID:        uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Images:      []string{imageURL},
		Categories:  in.Categories,
		Location:    in.Location,
		TimeCreated: time.Now().UTC().Format(time.RFC3339),
		Owner:       uid,
		Status:      entity.StatusUnderReview,
	}
	if err := s.Ads.Insert(ctx, ad); err != nil {
		s.Credits.Refund(ctx, pool, uid, parent)
		return nil, err
	}
	if err := s.Users.PushMyAd(ctx, uid, ad.AdID); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"ad_id": ad.AdID, "owner": uid, "department": parent}).Info("ad published")
	}
	return ad, nil
}

// Get returns an ad by ID. When viewerUID is non-empty the view is
// recorded once per viewer: the counter only moves the first time, and
// the ad is prepended to the viewer's capped history.
func (s *AdService) Get(ctx context.Context, adID, viewerUID string) (*entity.Ad, error) {
	ad, err := s.Ads.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if viewerUID == "" {
		return ad, nil
	}

	counted, err := s.Ads.RegisterView(ctx, adID, viewerUID)
	if err != nil {
		return nil, err
	}
	if counted {
		ad.Views++
		if err := s.Users.PushHistory(ctx, viewerUID, adID, s.HistoryLimit); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{"uid": viewerUID, "ad_id": adID}).Warn("history update failed")
		}
	}
	return ad, nil
}

type UpdateAdInput struct {
	Title       *string
	Description *string
	Price       *int
	Categories  []int
	Location    []float64
}

// Update applies the provided fields to an ad the caller owns. An
// update that changes nothing is rejected, and a category change is
// revalidated against the catalog.
func (s *AdService) Update(ctx context.Context, uid, adID string, in UpdateAdInput) error {
	ad, err := s.Ads.GetByID(ctx, adID)
	if err != nil {
		return err
	}
	if ad.Owner != uid {
		return apperror.Forbidden("not authorized")
	}

	fields := make(map[string]any)
	if in.Title != nil && *in.Title != ad.Title {
		fields["title"] = *in.Title
	}
	if in.Description != nil && *in.Description != ad.Description {
		fields["description"] = *in.Description
	}
	if in.Price != nil && *in.Price != ad.Price {
		fields["price"] = *in.Price
	}
	if in.Categories != nil && !equalInts(in.Categories, ad.Categories) {
		if _, err := s.Catalog.ValidateCategories(ctx, in.Categories); err != nil {
			return err
		}
		fields["category"] = in.Categories
	}
	if in.Location != nil && !equalFloats(in.Location, ad.Location) {
		if len(in.Location) != 2 {
			return apperror.Validation("ad_loc", "location must be a latitude,longitude pair")
		}
		fields["ad_loc"] = in.Location
	}
	if len(fields) == 0 {
		return apperror.NoChange()
	}
	return s.Ads.Set(ctx, adID, fields)
}

// Delete removes an ad the caller owns and drops it from the owner's
// ad list.
func (s *AdService) Delete(ctx context.Context, uid, adID string) error {
	ad, err := s.Ads.GetByID(ctx, adID)
	if err != nil {
		return err
	}
	if ad.Owner != uid {
		return apperror.Forbidden("not authorized")
	}
	if err := s.Ads.Delete(ctx, adID); err != nil {
		return err
	}
	return s.Users.PullMyAd(ctx, uid, adID)
}

// MyAds pages through the ads the user has published.
func (s *AdService) MyAds(ctx context.Context, uid string, page, pageSize int) ([]entity.Ad, error) {
	user, err := s.Users.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(user.MyAds) == 0 {
		return []entity.Ad{}, nil
	}
	offset := (page - 1) * pageSize
	if offset >= len(user.MyAds) {
		return []entity.Ad{}, nil
	}
	end := offset + pageSize
	if end > len(user.MyAds) {
		end = len(user.MyAds)
	}
	return s.Ads.FindByIDs(ctx, user.MyAds[offset:end])
}

func (s *AdService) uploadImage(ctx context.Context, uid string, r io.Reader, filename, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("ads", uid, uuid.NewString()+ext))
	return s.Uploads.Upload(ctx, objectPath, contentType, r)
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
