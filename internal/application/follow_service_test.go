package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listinker/listinker-api/internal/domain/entity"
)

type followFixture struct {
	svc     *FollowService
	users   *memUserRepo
	follows *memFollowRepo
}

func newFollowFixture(t *testing.T) *followFixture {
	t.Helper()
	users := newMemUserRepo()
	follows := newMemFollowRepo()
	return &followFixture{
		svc:     NewFollowService(users, follows, nil),
		users:   users,
		follows: follows,
	}
}

func (f *followFixture) addUser(t *testing.T, uid, username string) {
	t.Helper()
	ctx := context.Background()
	followersID := "flw-" + uid
	followingID := "fng-" + uid
	require.NoError(t, f.follows.CreateAggregates(ctx, uid, followersID, followingID))
	require.NoError(t, f.users.Insert(ctx, &entity.User{
		UID:         uid,
		Username:    username,
		FollowersID: followersID,
		FollowingID: followingID,
	}))
}

func intPtr(v int) *int { return &v }

func TestFollowUpdatesBothAggregates(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()
	f.addUser(t, "alice", "alice")
	f.addUser(t, "bob", "bob")

	count, err := f.svc.Follow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	followers, err := f.follows.GetFollowers(ctx, "flw-bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, followers.Followers)
	assert.Equal(t, 1, followers.Count)

	following, err := f.follows.GetFollowing(ctx, "fng-alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, following.Following)
	assert.Equal(t, 1, following.Count)
}

func TestFollowTwiceIsIdempotent(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()
	f.addUser(t, "alice", "alice")
	f.addUser(t, "bob", "bob")

	_, err := f.svc.Follow(ctx, "alice", "bob")
	require.NoError(t, err)
	count, err := f.svc.Follow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	followers, err := f.follows.GetFollowers(ctx, "flw-bob")
	require.NoError(t, err)
	assert.Len(t, followers.Followers, 1)
}

func TestUnfollowRemovesBothSides(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()
	f.addUser(t, "alice", "alice")
	f.addUser(t, "bob", "bob")

	_, err := f.svc.Follow(ctx, "alice", "bob")
	require.NoError(t, err)
	count, err := f.svc.Unfollow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	followers, err := f.follows.GetFollowers(ctx, "flw-bob")
	require.NoError(t, err)
	assert.Empty(t, followers.Followers)
	assert.Equal(t, 0, followers.Count)

	following, err := f.follows.GetFollowing(ctx, "fng-alice")
	require.NoError(t, err)
	assert.Empty(t, following.Following)
}

func TestUnfollowWithoutFollowIsNoOp(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()
	f.addUser(t, "alice", "alice")
	f.addUser(t, "bob", "bob")

	count, err := f.svc.Unfollow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestIsFollowingReflectsState(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()
	f.addUser(t, "alice", "alice")
	f.addUser(t, "bob", "bob")

	ok, err := f.svc.IsFollowing(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.svc.Follow(ctx, "alice", "bob")
	require.NoError(t, err)

	ok, err = f.svc.IsFollowing(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListFollowersPagesInStoredOrder(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()
	f.addUser(t, "star", "star")
	for i := 0; i < 25; i++ {
		uid := fmt.Sprintf("fan-%02d", i)
		f.addUser(t, uid, "fan number "+uid)
		_, err := f.svc.Follow(ctx, uid, "star")
		require.NoError(t, err)
	}

	page, err := f.svc.ListFollowers(ctx, ListQuery{
		TargetUID: "star",
		Page:      intPtr(3),
		PageSize:  intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.CurrentPage)
	require.Len(t, page.Users, 5)
	assert.Equal(t, "fan-20", page.Users[0].UID)
	assert.Equal(t, "fan-24", page.Users[4].UID)
}

func TestListFollowersOutOfRangePageIsEmpty(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()
	f.addUser(t, "star", "star")
	f.addUser(t, "fan", "fan")
	_, err := f.svc.Follow(ctx, "fan", "star")
	require.NoError(t, err)

	page, err := f.svc.ListFollowers(ctx, ListQuery{
		TargetUID: "star",
		Page:      intPtr(5),
		PageSize:  intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Empty(t, page.Users)
}

func TestListFollowersCountOnlyWithoutPagination(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()
	f.addUser(t, "star", "star")
	f.addUser(t, "fan", "fan")
	_, err := f.svc.Follow(ctx, "fan", "star")
	require.NoError(t, err)

	page, err := f.svc.ListFollowers(ctx, ListQuery{TargetUID: "star"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Nil(t, page.Users)
}

func TestListFollowersSearchFiltersBeforeCounting(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()
	f.addUser(t, "star", "star")
	f.addUser(t, "u1", "Rohan")
	f.addUser(t, "u2", "mohan kumar")
	f.addUser(t, "u3", "alice")
	for _, uid := range []string{"u1", "u2", "u3"} {
		_, err := f.svc.Follow(ctx, uid, "star")
		require.NoError(t, err)
	}

	page, err := f.svc.ListFollowers(ctx, ListQuery{
		TargetUID: "star",
		Search:    "OHAN",
		Page:      intPtr(1),
		PageSize:  intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Users, 2)
	assert.Equal(t, "Rohan", page.Users[0].Username)
	assert.Equal(t, "mohan kumar", page.Users[1].Username)
}

func TestListFollowingSkipsDeletedUsers(t *testing.T) {
	f := newFollowFixture(t)
	ctx := context.Background()
	f.addUser(t, "alice", "alice")
	f.addUser(t, "bob", "bob")
	f.addUser(t, "gone", "gone")
	for _, uid := range []string{"bob", "gone"} {
		_, err := f.svc.Follow(ctx, "alice", uid)
		require.NoError(t, err)
	}
	require.NoError(t, f.users.Delete(ctx, "gone"))

	page, err := f.svc.ListFollowing(ctx, ListQuery{
		TargetUID: "alice",
		Page:      intPtr(1),
		PageSize:  intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "bob", page.Users[0].UID)
}
