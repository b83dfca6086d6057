package application

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/listinker/listinker-api/internal/apperror"
	"github.com/listinker/listinker-api/internal/domain/entity"
	repo "github.com/listinker/listinker-api/internal/domain/repository"
)

// In-memory repositories backing the service tests. Guarded by mutexes
// so the concurrency tests exercise real interleavings.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Insert(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.UID] = &cp
	return nil
}

func (r *memUserRepo) GetByUID(_ context.Context, uid string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		return nil, apperror.NotFound("user", uid)
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByMobile(_ context.Context, mobile string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.MobileNumber == mobile {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("user", mobile)
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (r *memUserRepo) FindByUIDs(_ context.Context, uids []string) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.User, 0, len(uids))
	for _, uid := range uids {
		if u, ok := r.users[uid]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memUserRepo) Set(_ context.Context, uid string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		return apperror.NotFound("user", uid)
	}
	for k, v := range fields {
		switch k {
		case "username":
			u.Username = v.(string)
		case "email":
			u.Email = v.(string)
		case "email_verified":
			u.EmailVerified = v.(bool)
		case "user_location":
			u.Location = v.([]float64)
		case "profile_img":
			u.ProfileImg = v.(string)
		default:
			return fmt.Errorf("unexpected field %q", k)
		}
	}
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[uid]; !ok {
		return apperror.NotFound("user", uid)
	}
	delete(r.users, uid)
	return nil
}

func (r *memUserRepo) PushMyAd(_ context.Context, uid, adID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		return apperror.NotFound("user", uid)
	}
	u.MyAds = append(u.MyAds, adID)
	return nil
}

func (r *memUserRepo) PullMyAd(_ context.Context, uid, adID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		return apperror.NotFound("user", uid)
	}
	out := u.MyAds[:0]
	for _, id := range u.MyAds {
		if id != adID {
			out = append(out, id)
		}
	}
	u.MyAds = out
	return nil
}

func (r *memUserRepo) AddFavorite(_ context.Context, uid, adID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		return apperror.NotFound("user", uid)
	}
	for _, id := range u.Favorites {
		if id == adID {
			return nil
		}
	}
	u.Favorites = append(u.Favorites, adID)
	return nil
}

func (r *memUserRepo) RemoveFavorite(_ context.Context, uid, adID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		return false, apperror.NotFound("user", uid)
	}
	for i, id := range u.Favorites {
		if id == adID {
			u.Favorites = append(u.Favorites[:i], u.Favorites[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) PushHistory(_ context.Context, uid, adID string, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		return apperror.NotFound("user", uid)
	}
	history := append([]string{adID}, u.History...)
	if len(history) > limit {
		history = history[:limit]
	}
	u.History = history
	return nil
}

func (r *memUserRepo) SetEmailVerifiedByEmail(_ context.Context, email string, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u.EmailVerified = verified
			return nil
		}
	}
	return apperror.NotFound("user", email)
}

var _ repo.UserRepository = (*memUserRepo)(nil)

type memAdRepo struct {
	mu  sync.Mutex
	ads []*entity.Ad

	failInsert bool
}

func newMemAdRepo() *memAdRepo { return &memAdRepo{} }

func (r *memAdRepo) Insert(_ context.Context, ad *entity.Ad) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failInsert {
		return fmt.Errorf("insert failed")
	}
	cp := *ad
	r.ads = append(r.ads, &cp)
	return nil
}

func (r *memAdRepo) GetByID(_ context.Context, adID string) (*entity.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ad := range r.ads {
		if ad.AdID == adID {
			cp := *ad
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("ad", adID)
}

func (r *memAdRepo) Set(_ context.Context, adID string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ad := range r.ads {
		if ad.AdID != adID {
			continue
		}
		for k, v := range fields {
			switch k {
			case "title":
				ad.Title = v.(string)
			case "description":
				ad.Description = v.(string)
			case "price":
				ad.Price = v.(int)
			case "category":
				ad.Categories = v.([]int)
			case "ad_loc":
				ad.Location = v.([]float64)
			default:
				return fmt.Errorf("unexpected field %q", k)
			}
		}
		return nil
	}
	return apperror.NotFound("ad", adID)
}

func (r *memAdRepo) Delete(_ context.Context, adID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ad := range r.ads {
		if ad.AdID == adID {
			r.ads = append(r.ads[:i], r.ads[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("ad", adID)
}

func (r *memAdRepo) DeleteByOwner(_ context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.ads[:0]
	for _, ad := range r.ads {
		if ad.Owner != owner {
			out = append(out, ad)
		}
	}
	r.ads = out
	return nil
}

func matchesFilter(ad *entity.Ad, f repo.AdFilter) bool {
	if f.Category != nil {
		found := false
		for _, c := range ad.Categories {
			if c == *f.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinPrice != nil && f.MaxPrice != nil {
		if ad.Price < *f.MinPrice || ad.Price > *f.MaxPrice {
			return false
		}
	}
	return true
}

func (r *memAdRepo) newestFirst(keep func(*entity.Ad) bool) []entity.Ad {
	out := make([]entity.Ad, 0, len(r.ads))
	for _, ad := range r.ads {
		if keep(ad) {
			out = append(out, *ad)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TimeCreated > out[j].TimeCreated })
	return out
}

func pageOf(ads []entity.Ad, offset, limit int) []entity.Ad {
	if offset >= len(ads) {
		return nil
	}
	end := offset + limit
	if end > len(ads) {
		end = len(ads)
	}
	return ads[offset:end]
}

func (r *memAdRepo) FindPage(_ context.Context, f repo.AdFilter, offset, limit int) ([]entity.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pageOf(r.newestFirst(func(ad *entity.Ad) bool { return matchesFilter(ad, f) }), offset, limit), nil
}

func (r *memAdRepo) FindByIDs(_ context.Context, adIDs []string) ([]entity.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idSet := make(map[string]struct{}, len(adIDs))
	for _, id := range adIDs {
		idSet[id] = struct{}{}
	}
	out := make([]entity.Ad, 0, len(adIDs))
	for _, ad := range r.ads {
		if _, ok := idSet[ad.AdID]; ok {
			out = append(out, *ad)
		}
	}
	return out, nil
}

func (r *memAdRepo) FindByCategoryExcluding(_ context.Context, category int, exclude []string, f repo.AdFilter, offset, limit int) ([]entity.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	excluded := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}
	return pageOf(r.newestFirst(func(ad *entity.Ad) bool {
		if _, skip := excluded[ad.AdID]; skip {
			return false
		}
		hasCat := false
		for _, c := range ad.Categories {
			if c == category {
				hasCat = true
				break
			}
		}
		return hasCat && matchesFilter(ad, f)
	}), offset, limit), nil
}

func (r *memAdRepo) FindExcluding(_ context.Context, exclude []string, offset, limit int) ([]entity.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	excluded := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}
	out := make([]entity.Ad, 0, len(r.ads))
	for _, ad := range r.ads {
		if _, skip := excluded[ad.AdID]; !skip {
			out = append(out, *ad)
		}
	}
	return pageOf(out, offset, limit), nil
}

func (r *memAdRepo) RegisterView(_ context.Context, adID, viewer string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ad := range r.ads {
		if ad.AdID != adID {
			continue
		}
		for _, v := range ad.ViewedBy {
			if v == viewer {
				return false, nil
			}
		}
		ad.ViewedBy = append(ad.ViewedBy, viewer)
		ad.Views++
		return true, nil
	}
	return false, apperror.NotFound("ad", adID)
}

func (r *memAdRepo) IncFavorited(_ context.Context, adID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ad := range r.ads {
		if ad.AdID == adID {
			ad.Favorited += delta
			return nil
		}
	}
	return apperror.NotFound("ad", adID)
}

var _ repo.AdRepository = (*memAdRepo)(nil)

type creditKey struct {
	pool     repo.Pool
	uid      string
	category int
}

type memCreditRepo struct {
	mu      sync.Mutex
	records map[creditKey]int
}

func newMemCreditRepo() *memCreditRepo {
	return &memCreditRepo{records: make(map[creditKey]int)}
}

func (r *memCreditRepo) EnsureRecord(_ context.Context, pool repo.Pool, uid string, category, credits int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := creditKey{pool, uid, category}
	if _, ok := r.records[k]; !ok {
		r.records[k] = credits
	}
	return nil
}

func (r *memCreditRepo) ConsumeOne(_ context.Context, pool repo.Pool, uid string, category int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := creditKey{pool, uid, category}
	if r.records[k] <= 0 {
		return false, nil
	}
	r.records[k]--
	return true, nil
}

func (r *memCreditRepo) Refund(_ context.Context, pool repo.Pool, uid string, category int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[creditKey{pool, uid, category}]++
	return nil
}

func (r *memCreditRepo) Get(_ context.Context, pool repo.Pool, uid string, category int) (*entity.CreditRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := creditKey{pool, uid, category}
	credits, ok := r.records[k]
	if !ok {
		return nil, apperror.NotFound("credit record", uid)
	}
	return &entity.CreditRecord{UID: uid, Category: category, Credits: credits}, nil
}

var _ repo.CreditRepository = (*memCreditRepo)(nil)

type memFollowRepo struct {
	mu        sync.Mutex
	followers map[string]*entity.FollowersDoc
	following map[string]*entity.FollowingDoc
}

func newMemFollowRepo() *memFollowRepo {
	return &memFollowRepo{
		followers: make(map[string]*entity.FollowersDoc),
		following: make(map[string]*entity.FollowingDoc),
	}
}

func (r *memFollowRepo) CreateAggregates(_ context.Context, uid, followersID, followingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.followers[followersID] = &entity.FollowersDoc{ID: followersID, UserID: uid, Followers: []string{}}
	r.following[followingID] = &entity.FollowingDoc{ID: followingID, UserID: uid, Following: []string{}}
	return nil
}

func (r *memFollowRepo) GetFollowers(_ context.Context, id string) (*entity.FollowersDoc, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.followers[id]
	if !ok {
		return nil, apperror.NotFound("followers record", id)
	}
	cp := *doc
	cp.Followers = append([]string(nil), doc.Followers...)
	return &cp, nil
}

func (r *memFollowRepo) GetFollowing(_ context.Context, id string) (*entity.FollowingDoc, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.following[id]
	if !ok {
		return nil, apperror.NotFound("following record", id)
	}
	cp := *doc
	cp.Following = append([]string(nil), doc.Following...)
	return &cp, nil
}

func (r *memFollowRepo) SetFollowers(_ context.Context, id string, list []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.followers[id]
	if !ok {
		return apperror.NotFound("followers record", id)
	}
	doc.Followers = append([]string(nil), list...)
	doc.Count = len(list)
	return nil
}

func (r *memFollowRepo) SetFollowing(_ context.Context, id string, list []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.following[id]
	if !ok {
		return apperror.NotFound("following record", id)
	}
	doc.Following = append([]string(nil), list...)
	doc.Count = len(list)
	return nil
}

var _ repo.FollowRepository = (*memFollowRepo)(nil)

// memCategoryRepo holds a miniature catalog: two departments with two
// leaves each.
type memCategoryRepo struct {
	cats []entity.Category
	subs []entity.SubCategory
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{
		cats: []entity.Category{
			{NumbID: 1, Name: "Mobiles", IntDate: 30},
			{NumbID: 2, Name: "Cars", IntDate: 70},
		},
		subs: []entity.SubCategory{
			{NumbID: 10, Name: "iPhone", ParentID: 1},
			{NumbID: 11, Name: "Samsung", ParentID: 1},
			{NumbID: 20, Name: "Toyota", ParentID: 2},
			{NumbID: 21, Name: "Honda", ParentID: 2},
		},
	}
}

func (r *memCategoryRepo) TopLevel(_ context.Context) ([]entity.Category, error) {
	return append([]entity.Category(nil), r.cats...), nil
}

func (r *memCategoryRepo) GetCategory(_ context.Context, numbID int) (*entity.Category, error) {
	for _, c := range r.cats {
		if c.NumbID == numbID {
			cp := c
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("category", "")
}

func (r *memCategoryRepo) GetCategoryByName(_ context.Context, name string) (*entity.Category, error) {
	for _, c := range r.cats {
		if strings.EqualFold(c.Name, name) {
			cp := c
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("category", name)
}

func (r *memCategoryRepo) GetSubCategory(_ context.Context, numbID int) (*entity.SubCategory, error) {
	for _, s := range r.subs {
		if s.NumbID == numbID {
			cp := s
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("sub-category", "")
}

func (r *memCategoryRepo) SubCategories(_ context.Context) ([]entity.SubCategory, error) {
	return append([]entity.SubCategory(nil), r.subs...), nil
}

func (r *memCategoryRepo) SubCategoriesOf(_ context.Context, parentID int) ([]entity.SubCategory, error) {
	out := make([]entity.SubCategory, 0, len(r.subs))
	for _, s := range r.subs {
		if s.ParentID == parentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) SuggestNames(_ context.Context, prefix string) ([]string, error) {
	seen := make(map[string]struct{})
	out := []string{}
	for _, s := range r.subs {
		if strings.HasPrefix(strings.ToLower(s.Name), strings.ToLower(prefix)) {
			if _, dup := seen[s.Name]; !dup {
				seen[s.Name] = struct{}{}
				out = append(out, s.Name)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

var _ repo.CategoryRepository = (*memCategoryRepo)(nil)

type memChatRepo struct {
	deleted []string
}

func (r *memChatRepo) DeleteForUser(_ context.Context, uid string) error {
	r.deleted = append(r.deleted, uid)
	return nil
}

var _ repo.ChatRepository = (*memChatRepo)(nil)

// fakeUploader records uploads and returns a deterministic URL.
type fakeUploader struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (u *fakeUploader) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return "", u.err
	}
	_, _ = io.Copy(io.Discard, r)
	u.paths = append(u.paths, objectPath)
	return "https://cdn.example.com/" + objectPath, nil
}

var _ Uploader = (*fakeUploader)(nil)

// fakeOTPStore keeps codes in a map, standing in for the Redis-backed
// store.
type fakeOTPStore struct {
	mu     sync.Mutex
	codes  map[string]string
	sent   []string
	failed bool
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{codes: make(map[string]string)}
}

func (f *fakeOTPStore) SendMobileOTP(_ context.Context, mobile string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return fmt.Errorf("otp store down")
	}
	f.codes["mobile:"+mobile] = "123456"
	f.sent = append(f.sent, mobile)
	return nil
}

func (f *fakeOTPStore) SendEmailOTP(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return fmt.Errorf("otp store down")
	}
	f.codes["email:"+email] = "654321"
	f.sent = append(f.sent, email)
	return nil
}

func (f *fakeOTPStore) CheckMobileOTP(_ context.Context, mobile, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.codes["mobile:"+mobile] != code {
		return false, nil
	}
	delete(f.codes, "mobile:"+mobile)
	return true, nil
}

func (f *fakeOTPStore) CheckEmailOTP(_ context.Context, email, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.codes["email:"+email] != code {
		return false, nil
	}
	delete(f.codes, "email:"+email)
	return true, nil
}

var (
	_ OTPStore           = (*fakeOTPStore)(nil)
	_ VerificationSender = (*fakeOTPStore)(nil)
)
