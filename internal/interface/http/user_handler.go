package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/listinker/listinker-api/internal/application"
	"github.com/listinker/listinker-api/internal/interface/middleware"
	"github.com/listinker/listinker-api/pkg/response"
	"github.com/listinker/listinker-api/pkg/validation"
)

type UserHandler struct {
	Users   *application.UserService
	Follows *application.FollowService
	Logger  *logrus.Logger
}

func NewUserHandler(users *application.UserService, follows *application.FollowService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Follows: follows, Logger: logger}
}

func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Users.Profile(c.Request.Context(), middleware.UID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

// UpdateMe updates the caller's profile from a multipart form. Only the
// submitted fields are considered.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	in := application.UpdateProfileInput{}
	if v, ok := c.GetPostForm("username"); ok {
		in.Username = &v
	}
	if v, ok := c.GetPostForm("email"); ok {
		v = strings.TrimSpace(v)
		in.Email = &v
	}
	if v, ok := c.GetPostForm("user_location"); ok {
		loc, parsed := parseLocation(v)
		if !parsed {
			response.Error[any](c, http.StatusBadRequest, "user_location must be a latitude,longitude pair", nil)
			return
		}
		in.Location = loc
	}
	if file, header, err := c.Request.FormFile("profile_image"); err == nil {
		defer func() { _ = file.Close() }()
		in.ProfileImage = file
		in.ProfileImageName = header.Filename
		in.ContentType = header.Header.Get("Content-Type")
	}

	res, err := h.Users.UpdateProfile(c.Request.Context(), middleware.UID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	msg := "profile updated successfully"
	if res.VerificationSent {
		msg = "verification code has been sent to your email"
	}
	response.Success(c, http.StatusOK, gin.H{"updated_fields": res.UpdatedFields}, msg, nil)
}

func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.Users.DeleteAccount(c.Request.Context(), middleware.UID(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user and all related data deleted successfully", nil)
}

type followRequest struct {
	UID    string `json:"uid" binding:"required"`
	Action string `json:"action" binding:"omitempty,oneof=follow unfollow"`
}

// Follow handles follow, unfollow, and status checks on one endpoint,
// dispatching on the optional action field.
func (h *UserHandler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ctx := c.Request.Context()
	caller := middleware.UID(c)

	switch req.Action {
	case "follow":
		count, err := h.Follows.Follow(ctx, caller, req.UID)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"followers_count": count}, "followed", nil)
	case "unfollow":
		count, err := h.Follows.Unfollow(ctx, caller, req.UID)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"followers_count": count}, "unfollowed", nil)
	default:
		following, err := h.Follows.IsFollowing(ctx, caller, req.UID)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"is_following": following}, "follow status", nil)
	}
}

type relatedListRequest struct {
	UID    string `json:"uid"`
	Search string `json:"search"`
}

func (h *UserHandler) Followers(c *gin.Context) {
	h.listRelated(c, h.Follows.ListFollowers, "followers")
}

func (h *UserHandler) Following(c *gin.Context) {
	h.listRelated(c, h.Follows.ListFollowing, "following")
}

func (h *UserHandler) listRelated(c *gin.Context, list func(ctx context.Context, q application.ListQuery) (*application.RelatedPage, error), kind string) {
	var req relatedListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	target := req.UID
	if target == "" {
		target = middleware.UID(c)
	}

	q := application.ListQuery{TargetUID: target, Search: req.Search}
	page := queryIntPtr(c, "page")
	pageSize := queryIntPtr(c, "page_size")
	if page != nil && pageSize != nil {
		if *page < 1 {
			response.Error[any](c, http.StatusBadRequest, "page number must be greater than 0", nil)
			return
		}
		if *pageSize < 1 {
			response.Error[any](c, http.StatusBadRequest, "page size must be greater than 0", nil)
			return
		}
		q.Page = page
		q.PageSize = pageSize
	}

	res, err := list(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}

	if q.Page == nil {
		response.Success(c, http.StatusOK, gin.H{kind + "_count": res.Total}, kind+" count", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		kind + "_count": res.Total,
		kind:            res.Users,
	}, kind, gin.H{
		"current_page": res.CurrentPage,
		"total_pages":  res.TotalPages,
		"page_size":    res.PageSize,
	})
}
