package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listinker/listinker-api/internal/apperror"
	"github.com/listinker/listinker-api/internal/domain/entity"
	repo "github.com/listinker/listinker-api/internal/domain/repository"
)

type adFixture struct {
	svc     *AdService
	ads     *memAdRepo
	users   *memUserRepo
	credits *memCreditRepo
	uploads *fakeUploader
}

func newAdFixture(t *testing.T) *adFixture {
	t.Helper()
	ads := newMemAdRepo()
	users := newMemUserRepo()
	credits := newMemCreditRepo()
	cats := newMemCategoryRepo()
	uploads := &fakeUploader{}

	catalog := NewCatalogService(cats)
	creditSvc := NewCreditService(credits, cats, nil)
	svc := NewAdService(ads, users, catalog, creditSvc, uploads, nil, 15)

	require.NoError(t, users.Insert(context.Background(), &entity.User{UID: "seller", Username: "sunny"}))
	require.NoError(t, creditSvc.Initialize(context.Background(), "seller"))
	return &adFixture{svc: svc, ads: ads, users: users, credits: credits, uploads: uploads}
}

func publishInput() PublishAdInput {
	return PublishAdInput{
		Title:       "iPhone 13",
		Description: "lightly used",
		Price:       400,
		Categories:  []int{10},
		Location:    []float64{0.05, 0.05},
		Image:       strings.NewReader("jpeg-bytes"),
		ImageName:   "photo.jpg",
		ContentType: "image/jpeg",
	}
}

func TestPublishConsumesCreditAndRecordsAd(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()

	ad, err := f.svc.Publish(ctx, "seller", publishInput())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusUnderReview, ad.Status)
	assert.NotEmpty(t, ad.AdID)
	require.Len(t, ad.Images, 1)
	assert.Contains(t, ad.Images[0], "ads/seller/")

	user, err := f.users.GetByUID(ctx, "seller")
	require.NoError(t, err)
	assert.Equal(t, []string{ad.AdID}, user.MyAds)

	rec, err := f.credits.Get(ctx, repo.FreePool, "seller", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Credits)
}

func TestPublishMixedParentsFailsWithoutConsuming(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()

	in := publishInput()
	in.Categories = []int{10, 20}
	_, err := f.svc.Publish(ctx, "seller", in)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.ErrInvalidCategory))

	rec, err := f.credits.Get(ctx, repo.FreePool, "seller", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Credits)
	assert.Empty(t, f.uploads.paths)
}

func TestPublishWithoutCreditsIsRejected(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()

	_, err := f.svc.Publish(ctx, "seller", publishInput())
	require.NoError(t, err)

	_, err = f.svc.Publish(ctx, "seller", publishInput())
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.ErrInsufficientCredits))
}

func TestPublishRefundsCreditWhenPersistFails(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()
	f.ads.failInsert = true

	_, err := f.svc.Publish(ctx, "seller", publishInput())
	require.Error(t, err)

	rec, err := f.credits.Get(ctx, repo.FreePool, "seller", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Credits)
}

func TestGetRecordsViewOncePerViewer(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Insert(ctx, &entity.User{UID: "viewer"}))

	ad, err := f.svc.Publish(ctx, "seller", publishInput())
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, ad.AdID, "viewer")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)

	got, err = f.svc.Get(ctx, ad.AdID, "viewer")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)

	viewer, err := f.users.GetByUID(ctx, "viewer")
	require.NoError(t, err)
	assert.Equal(t, []string{ad.AdID}, viewer.History)
}

func TestGetAnonymousDoesNotCount(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()

	ad, err := f.svc.Publish(ctx, "seller", publishInput())
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, ad.AdID, "")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Views)
}

func TestHistoryPrependsAndCapsAtLimit(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Insert(ctx, &entity.User{UID: "viewer"}))

	var lastAd string
	for i := 0; i < 20; i++ {
		// Replenish so every publish succeeds.
		require.NoError(t, f.credits.Refund(ctx, repo.FreePool, "seller", 1))
		ad, err := f.svc.Publish(ctx, "seller", publishInput())
		require.NoError(t, err)
		_, err = f.svc.Get(ctx, ad.AdID, "viewer")
		require.NoError(t, err)
		lastAd = ad.AdID
	}

	viewer, err := f.users.GetByUID(ctx, "viewer")
	require.NoError(t, err)
	assert.Len(t, viewer.History, 15)
	assert.Equal(t, lastAd, viewer.History[0])
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()

	ad, err := f.svc.Publish(ctx, "seller", publishInput())
	require.NoError(t, err)

	title := "hacked"
	err = f.svc.Update(ctx, "intruder", ad.AdID, UpdateAdInput{Title: &title})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.ErrForbidden))
}

func TestUpdateIdenticalValuesIsNoChange(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()

	ad, err := f.svc.Publish(ctx, "seller", publishInput())
	require.NoError(t, err)

	err = f.svc.Update(ctx, "seller", ad.AdID, UpdateAdInput{
		Title: &ad.Title,
		Price: &ad.Price,
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.ErrNoChange))
}

func TestUpdateRevalidatesCategories(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()

	ad, err := f.svc.Publish(ctx, "seller", publishInput())
	require.NoError(t, err)

	err = f.svc.Update(ctx, "seller", ad.AdID, UpdateAdInput{Categories: []int{10, 20}})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.ErrInvalidCategory))

	require.NoError(t, f.svc.Update(ctx, "seller", ad.AdID, UpdateAdInput{Categories: []int{11}}))
	got, err := f.ads.GetByID(ctx, ad.AdID)
	require.NoError(t, err)
	assert.Equal(t, []int{11}, got.Categories)
}

func TestDeleteRemovesAdAndOwnerListEntry(t *testing.T) {
	f := newAdFixture(t)
	ctx := context.Background()

	ad, err := f.svc.Publish(ctx, "seller", publishInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, "seller", ad.AdID))
	_, err = f.ads.GetByID(ctx, ad.AdID)
	assert.True(t, apperror.Is(err, apperror.ErrNotFound))

	user, err := f.users.GetByUID(ctx, "seller")
	require.NoError(t, err)
	assert.Empty(t, user.MyAds)
}
