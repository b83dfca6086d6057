package application

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/listinker/listinker-api/internal/domain/entity"
	repo "github.com/listinker/listinker-api/internal/domain/repository"
	"github.com/listinker/listinker-api/pkg/geo"
)

// FeedService assembles the browse feed. Anonymous callers get a plain
// newest-first page. Signed-in callers get a distance gate around their
// stored location and, once they have viewing history, pages ranked by
// the categories they look at most.
type FeedService struct {
	Ads    repo.AdRepository
	Users  repo.UserRepository
	Logger *logrus.Logger

	MaxDistanceKM float64
	PageSize      int
}

func NewFeedService(ads repo.AdRepository, users repo.UserRepository, logger *logrus.Logger, maxDistanceKM float64, pageSize int) *FeedService {
	return &FeedService{
		Ads:           ads,
		Users:         users,
		Logger:        logger,
		MaxDistanceKM: maxDistanceKM,
		PageSize:      pageSize,
	}
}

type FeedQuery struct {
	UID      string // empty for anonymous callers
	Filter   repo.AdFilter
	Page     int
	PageSize int
}

// Browse returns one page of the feed.
func (s *FeedService) Browse(ctx context.Context, q FeedQuery) ([]entity.FeedEntry, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = s.PageSize
	}
	offset := (q.Page - 1) * q.PageSize

	var ads []entity.Ad
	if q.UID == "" {
		page, err := s.Ads.FindPage(ctx, q.Filter, offset, q.PageSize)
		if err != nil {
			return nil, err
		}
		ads = page
	} else {
		user, err := s.Users.GetByUID(ctx, q.UID)
		if err != nil {
			return nil, err
		}
		if len(user.History) > 0 {
			ads, err = s.rankedFeed(ctx, user, q.Filter, offset, q.PageSize)
		} else {
			ads, err = s.nearbyPage(ctx, user, q.Filter, offset, q.PageSize)
		}
		if err != nil {
			return nil, err
		}
	}
	return s.present(ctx, ads, q.PageSize)
}

// rankedFeed orders candidate pages by the departments the user views
// most often, excludes already-viewed ads, then tops up from the rest
// of the inventory when the ranked pass comes short.
func (s *FeedService) rankedFeed(ctx context.Context, user *entity.User, f repo.AdFilter, offset, pageSize int) ([]entity.Ad, error) {
	historyAds, err := s.Ads.FindByIDs(ctx, user.History)
	if err != nil {
		return nil, err
	}
	rankedCats := rankCategories(historyAds)

	var picked []entity.Ad
	for _, cat := range rankedCats {
		candidates, err := s.Ads.FindByCategoryExcluding(ctx, cat, user.History, f, offset, pageSize)
		if err != nil {
			return nil, err
		}
		picked = append(picked, s.withinRange(user.Location, candidates, pageSize-len(picked))...)
		if len(picked) >= pageSize {
			return picked, nil
		}
	}

	if len(picked) < pageSize {
		seen := make([]string, 0, len(picked)+len(historyAds))
		for _, ad := range picked {
			seen = append(seen, ad.AdID)
		}
		for _, ad := range historyAds {
			seen = append(seen, ad.AdID)
		}
		filler, err := s.Ads.FindExcluding(ctx, seen, offset, pageSize)
		if err != nil {
			return nil, err
		}
		picked = append(picked, s.withinRange(user.Location, filler, pageSize-len(picked))...)
	}
	return picked, nil
}

func (s *FeedService) nearbyPage(ctx context.Context, user *entity.User, f repo.AdFilter, offset, pageSize int) ([]entity.Ad, error) {
	candidates, err := s.Ads.FindPage(ctx, f, offset, pageSize)
	if err != nil {
		return nil, err
	}
	return s.withinRange(user.Location, candidates, pageSize), nil
}

// withinRange keeps ads inside the distance gate. Ads with no stored
// coordinates always pass; ads with malformed coordinates are skipped.
func (s *FeedService) withinRange(userLoc []float64, ads []entity.Ad, limit int) []entity.Ad {
	if limit <= 0 {
		return nil
	}
	out := make([]entity.Ad, 0, len(ads))
	for _, ad := range ads {
		if len(userLoc) == 2 && len(ad.Location) > 0 {
			dist, err := geo.Distance(userLoc, ad.Location)
			if err != nil {
				continue
			}
			if dist > s.MaxDistanceKM {
				continue
			}
		}
		out = append(out, ad)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// rankCategories counts category occurrences across the history ads and
// returns them ordered by frequency, lowest numb_id first on ties.
func rankCategories(historyAds []entity.Ad) []int {
	counts := make(map[int]int)
	for _, ad := range historyAds {
		for _, cat := range ad.Categories {
			counts[cat]++
		}
	}
	cats := make([]int, 0, len(counts))
	for cat := range counts {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		if counts[cats[i]] != counts[cats[j]] {
			return counts[cats[i]] > counts[cats[j]]
		}
		return cats[i] < cats[j]
	})
	return cats
}

// present converts ads into feed entries with the owner's username
// attached, dropping duplicates and anything without an ID.
func (s *FeedService) present(ctx context.Context, ads []entity.Ad, pageSize int) ([]entity.FeedEntry, error) {
	ownerSet := make(map[string]struct{})
	for _, ad := range ads {
		if ad.Owner != "" {
			ownerSet[ad.Owner] = struct{}{}
		}
	}
	ownerIDs := make([]string, 0, len(ownerSet))
	for uid := range ownerSet {
		ownerIDs = append(ownerIDs, uid)
	}
	usernames := make(map[string]string, len(ownerIDs))
	if len(ownerIDs) > 0 {
		owners, err := s.Users.FindByUIDs(ctx, ownerIDs)
		if err != nil {
			return nil, err
		}
		for _, u := range owners {
			usernames[u.UID] = u.Username
		}
	}

	seen := make(map[string]struct{}, len(ads))
	entries := make([]entity.FeedEntry, 0, pageSize)
	for _, ad := range ads {
		if ad.AdID == "" {
			continue
		}
		if _, dup := seen[ad.AdID]; dup {
			continue
		}
		seen[ad.AdID] = struct{}{}

		username, ok := usernames[ad.Owner]
		if !ok {
			username = "Unknown"
		}
		entry := entity.FeedEntry{
			Title:       ad.Title,
			Description: ad.Description,
			Views:       ad.Views,
			Favorited:   ad.Favorited,
			Username:    username,
			AdID:        ad.AdID,
			TimeCreated: ad.TimeCreated,
			Categories:  ad.Categories,
		}
		if len(ad.Images) > 0 {
			entry.Image = ad.Images[0]
		}
		entries = append(entries, entry)
		if len(entries) >= pageSize {
			break
		}
	}
	return entries, nil
}
