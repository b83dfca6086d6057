package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listinker/listinker-api/internal/apperror"
	"github.com/listinker/listinker-api/internal/domain/entity"
)

func newFavoriteFixture(t *testing.T) (*FavoriteService, *memAdRepo, *memUserRepo) {
	t.Helper()
	ads := newMemAdRepo()
	users := newMemUserRepo()
	ctx := context.Background()
	require.NoError(t, users.Insert(ctx, &entity.User{UID: "buyer"}))
	require.NoError(t, ads.Insert(ctx, &entity.Ad{AdID: "ad-1", Title: "bike", Owner: "seller"}))
	return NewFavoriteService(ads, users, nil), ads, users
}

func TestFavoriteAddMovesCounter(t *testing.T) {
	svc, ads, users := newFavoriteFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "buyer", "ad-1"))

	ad, err := ads.GetByID(ctx, "ad-1")
	require.NoError(t, err)
	assert.Equal(t, 1, ad.Favorited)

	user, err := users.GetByUID(ctx, "buyer")
	require.NoError(t, err)
	assert.Equal(t, []string{"ad-1"}, user.Favorites)
}

func TestFavoriteDoubleAddIsRejected(t *testing.T) {
	svc, ads, _ := newFavoriteFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "buyer", "ad-1"))
	err := svc.Add(ctx, "buyer", "ad-1")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.ErrNoChange))

	ad, err := ads.GetByID(ctx, "ad-1")
	require.NoError(t, err)
	assert.Equal(t, 1, ad.Favorited)
}

func TestFavoriteAddUnknownAd(t *testing.T) {
	svc, _, _ := newFavoriteFixture(t)

	err := svc.Add(context.Background(), "buyer", "missing")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.ErrNotFound))
}

func TestFavoriteRemoveOnlyDecrementsWhenSaved(t *testing.T) {
	svc, ads, _ := newFavoriteFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "buyer", "ad-1"))
	require.NoError(t, svc.Remove(ctx, "buyer", "ad-1"))

	ad, err := ads.GetByID(ctx, "ad-1")
	require.NoError(t, err)
	assert.Equal(t, 0, ad.Favorited)

	err = svc.Remove(ctx, "buyer", "ad-1")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.ErrNotFound))
	ad, err = ads.GetByID(ctx, "ad-1")
	require.NoError(t, err)
	assert.Equal(t, 0, ad.Favorited)
}

func TestFavoriteListPages(t *testing.T) {
	svc, ads, _ := newFavoriteFixture(t)
	ctx := context.Background()
	require.NoError(t, ads.Insert(ctx, &entity.Ad{AdID: "ad-2", Owner: "seller"}))
	require.NoError(t, ads.Insert(ctx, &entity.Ad{AdID: "ad-3", Owner: "seller"}))
	for _, id := range []string{"ad-1", "ad-2", "ad-3"} {
		require.NoError(t, svc.Add(ctx, "buyer", id))
	}

	page, err := svc.List(ctx, "buyer", 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "ad-3", page[0].AdID)

	page, err = svc.List(ctx, "buyer", 3, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}
