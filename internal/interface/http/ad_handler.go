package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/listinker/listinker-api/internal/application"
	repo "github.com/listinker/listinker-api/internal/domain/repository"
	"github.com/listinker/listinker-api/internal/interface/middleware"
	"github.com/listinker/listinker-api/pkg/response"
)

type AdHandler struct {
	Ads    *application.AdService
	Feed   *application.FeedService
	Logger *logrus.Logger

	FeedPageSize int
}

func NewAdHandler(ads *application.AdService, feed *application.FeedService, logger *logrus.Logger, feedPageSize int) *AdHandler {
	return &AdHandler{Ads: ads, Feed: feed, Logger: logger, FeedPageSize: feedPageSize}
}

// parseCategoryIDs accepts "12,14" style comma-separated leaf IDs.
func parseCategoryIDs(raw string) ([]int, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, false
		}
		ids = append(ids, n)
	}
	return ids, true
}

// parseLocation accepts "lat,lon".
func parseLocation(raw string) ([]float64, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return nil, false
	}
	loc := make([]float64, 0, 2)
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, false
		}
		loc = append(loc, f)
	}
	return loc, true
}

// Create publishes a new ad from a multipart form. The image part is
// required.
func (h *AdHandler) Create(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	if title == "" || description == "" {
		response.Error[any](c, http.StatusBadRequest, "title and description are required", nil)
		return
	}
	price, err := strconv.Atoi(c.PostForm("price"))
	if err != nil || price < 0 {
		response.Error[any](c, http.StatusBadRequest, "price must be a non-negative integer", nil)
		return
	}
	categories, ok := parseCategoryIDs(c.PostForm("category"))
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "at least one category ID is required", nil)
		return
	}
	location, ok := parseLocation(c.PostForm("ad_loc"))
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "ad_loc must be a latitude,longitude pair", nil)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image is required to create an ad", nil)
		return
	}
	defer func() { _ = file.Close() }()

	ad, err := h.Ads.Publish(c.Request.Context(), middleware.UID(c), application.PublishAdInput{
		Title:       title,
		Description: description,
		Price:       price,
		Categories:  categories,
		Location:    location,
		Image:       file,
		ImageName:   header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, ad, "ad created", nil)
}

// Browse serves the feed. Anonymous callers get the newest ads;
// signed-in callers get the personalized page.
func (h *AdHandler) Browse(c *gin.Context) {
	page, pageSize, ok := pageParams(c, h.FeedPageSize, 100)
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "page number must be greater than 0", nil)
		return
	}
	entries, err := h.Feed.Browse(c.Request.Context(), application.FeedQuery{
		UID: middleware.UID(c),
		Filter: repo.AdFilter{
			Category: queryIntPtr(c, "category"),
			MinPrice: queryIntPtr(c, "min_price"),
			MaxPrice: queryIntPtr(c, "max_price"),
		},
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries, "feed", nil)
}

func (h *AdHandler) MyAds(c *gin.Context) {
	page, pageSize, ok := pageParams(c, 5, 100)
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "page number must be greater than 0", nil)
		return
	}
	ads, err := h.Ads.MyAds(c.Request.Context(), middleware.UID(c), page, pageSize)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, ads, "my ads", nil)
}

// Get returns one ad. A signed-in caller's view is recorded once.
func (h *AdHandler) Get(c *gin.Context) {
	ad, err := h.Ads.Get(c.Request.Context(), c.Param("ad_id"), middleware.UID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, ad, "ad", nil)
}

func (h *AdHandler) Update(c *gin.Context) {
	in := application.UpdateAdInput{}
	if v, ok := c.GetPostForm("title"); ok {
		in.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		in.Description = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		price, err := strconv.Atoi(v)
		if err != nil || price < 0 {
			response.Error[any](c, http.StatusBadRequest, "price must be a non-negative integer", nil)
			return
		}
		in.Price = &price
	}
	if v, ok := c.GetPostForm("category"); ok {
		ids, parsed := parseCategoryIDs(v)
		if !parsed {
			response.Error[any](c, http.StatusBadRequest, "category must be a comma-separated list of IDs", nil)
			return
		}
		in.Categories = ids
	}
	if v, ok := c.GetPostForm("ad_loc"); ok {
		loc, parsed := parseLocation(v)
		if !parsed {
			response.Error[any](c, http.StatusBadRequest, "ad_loc must be a latitude,longitude pair", nil)
			return
		}
		in.Location = loc
	}

	if err := h.Ads.Update(c.Request.Context(), middleware.UID(c), c.Param("ad_id"), in); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "ad updated successfully", nil)
}

func (h *AdHandler) Delete(c *gin.Context) {
	if err := h.Ads.Delete(c.Request.Context(), middleware.UID(c), c.Param("ad_id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "ad deleted successfully", nil)
}
