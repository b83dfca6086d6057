package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/listinker/listinker-api/internal/domain/entity"
	repo "github.com/listinker/listinker-api/internal/domain/repository"
)

// FollowService maintains the follow graph. Each user owns two
// aggregate documents, one listing their followers and one listing who
// they follow, each carrying a cached count kept equal to the list
// length.
type FollowService struct {
	Users   repo.UserRepository
	Follows repo.FollowRepository
	Logger  *logrus.Logger
}

func NewFollowService(users repo.UserRepository, follows repo.FollowRepository, logger *logrus.Logger) *FollowService {
	return &FollowService{Users: users, Follows: follows, Logger: logger}
}

// Follow adds the caller to the target's followers and the target to
// the caller's following list. Following someone already followed is a
// no-op that returns the unchanged count.
func (s *FollowService) Follow(ctx context.Context, callerUID, targetUID string) (int, error) {
	target, caller, followersDoc, err := s.loadPair(ctx, callerUID, targetUID)
	if err != nil {
		return 0, err
	}

	if contains(followersDoc.Followers, callerUID) {
		return len(followersDoc.Followers), nil
	}
	followers := append(followersDoc.Followers, callerUID)
	if err := s.Follows.SetFollowers(ctx, target.FollowersID, followers); err != nil {
		return 0, err
	}

	followingDoc, err := s.Follows.GetFollowing(ctx, caller.FollowingID)
	if err != nil {
		return 0, err
	}
	if !contains(followingDoc.Following, targetUID) {
		following := append(followingDoc.Following, targetUID)
		if err := s.Follows.SetFollowing(ctx, caller.FollowingID, following); err != nil {
			return 0, err
		}
	}
	return len(followers), nil
}

// Unfollow removes the caller from the target's followers and the
// target from the caller's following list. Unfollowing someone not
// followed is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, callerUID, targetUID string) (int, error) {
	target, caller, followersDoc, err := s.loadPair(ctx, callerUID, targetUID)
	if err != nil {
		return 0, err
	}

	if !contains(followersDoc.Followers, callerUID) {
		return len(followersDoc.Followers), nil
	}
	followers := remove(followersDoc.Followers, callerUID)
	if err := s.Follows.SetFollowers(ctx, target.FollowersID, followers); err != nil {
		return 0, err
	}

	followingDoc, err := s.Follows.GetFollowing(ctx, caller.FollowingID)
	if err != nil {
		return 0, err
	}
	if contains(followingDoc.Following, targetUID) {
		following := remove(followingDoc.Following, targetUID)
		if err := s.Follows.SetFollowing(ctx, caller.FollowingID, following); err != nil {
			return 0, err
		}
	}
	return len(followers), nil
}

// IsFollowing reports whether the caller appears in the target's
// followers list.
func (s *FollowService) IsFollowing(ctx context.Context, callerUID, targetUID string) (bool, error) {
	_, _, followersDoc, err := s.loadPair(ctx, callerUID, targetUID)
	if err != nil {
		return false, err
	}
	return contains(followersDoc.Followers, callerUID), nil
}

// RelatedPage is one page of a followers or following listing.
type RelatedPage struct {
	Total       int
	Users       []entity.RelatedUser
	CurrentPage int
	TotalPages  int
	PageSize    int
}

// ListQuery controls a followers/following listing. When Page or
// PageSize is nil only the count is wanted; Search filters by
// case-insensitive username substring before counting.
type ListQuery struct {
	TargetUID string
	Search    string
	Page      *int
	PageSize  *int
}

// ListFollowers pages through a user's followers in stored order.
func (s *FollowService) ListFollowers(ctx context.Context, q ListQuery) (*RelatedPage, error) {
	target, err := s.Users.GetByUID(ctx, q.TargetUID)
	if err != nil {
		return nil, err
	}
	doc, err := s.Follows.GetFollowers(ctx, target.FollowersID)
	if err != nil {
		return nil, err
	}
	return s.pageList(ctx, doc.Followers, q)
}

// ListFollowing pages through the users someone follows in stored order.
func (s *FollowService) ListFollowing(ctx context.Context, q ListQuery) (*RelatedPage, error) {
	target, err := s.Users.GetByUID(ctx, q.TargetUID)
	if err != nil {
		return nil, err
	}
	doc, err := s.Follows.GetFollowing(ctx, target.FollowingID)
	if err != nil {
		return nil, err
	}
	return s.pageList(ctx, doc.Following, q)
}

func (s *FollowService) pageList(ctx context.Context, ids []string, q ListQuery) (*RelatedPage, error) {
	if q.Search != "" {
		filtered, err := s.filterByUsername(ctx, ids, q.Search)
		if err != nil {
			return nil, err
		}
		ids = filtered
	}
	total := len(ids)

	if q.Page == nil || q.PageSize == nil {
		return &RelatedPage{Total: total}, nil
	}
	page, pageSize := *q.Page, *q.PageSize
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= total {
		return &RelatedPage{Total: total, Users: []entity.RelatedUser{}, CurrentPage: page, TotalPages: totalPages, PageSize: pageSize}, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	pageIDs := ids[start:end]

	users, err := s.Users.FindByUIDs(ctx, pageIDs)
	if err != nil {
		return nil, err
	}
	byUID := make(map[string]entity.User, len(users))
	for _, u := range users {
		byUID[u.UID] = u
	}
	// Preserve the stored list order; skip ids whose user record is gone.
	out := make([]entity.RelatedUser, 0, len(pageIDs))
	for _, id := range pageIDs {
		u, ok := byUID[id]
		if !ok {
			continue
		}
		out = append(out, entity.RelatedUser{UID: u.UID, Username: u.Username, ProfileImg: u.ProfileImg})
	}
	return &RelatedPage{Total: total, Users: out, CurrentPage: page, TotalPages: totalPages, PageSize: pageSize}, nil
}

func (s *FollowService) filterByUsername(ctx context.Context, ids []string, search string) ([]string, error) {
	users, err := s.Users.FindByUIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(search)
	byUID := make(map[string]entity.User, len(users))
	for _, u := range users {
		byUID[u.UID] = u
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		u, ok := byUID[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(u.Username), term) {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *FollowService) loadPair(ctx context.Context, callerUID, targetUID string) (target, caller *entity.User, followers *entity.FollowersDoc, err error) {
	target, err = s.Users.GetByUID(ctx, targetUID)
	if err != nil {
		return nil, nil, nil, err
	}
	caller, err = s.Users.GetByUID(ctx, callerUID)
	if err != nil {
		return nil, nil, nil, err
	}
	followers, err = s.Follows.GetFollowers(ctx, target.FollowersID)
	if err != nil {
		return nil, nil, nil, err
	}
	return target, caller, followers, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}
