package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/listinker/listinker-api/internal/application"
	"github.com/listinker/listinker-api/internal/interface/middleware"
	"github.com/listinker/listinker-api/pkg/response"
)

type FavoriteHandler struct {
	Svc    *application.FavoriteService
	Logger *logrus.Logger
}

func NewFavoriteHandler(svc *application.FavoriteService, logger *logrus.Logger) *FavoriteHandler {
	return &FavoriteHandler{Svc: svc, Logger: logger}
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	if err := h.Svc.Add(c.Request.Context(), middleware.UID(c), c.Param("ad_id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "added to favorites", nil)
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	if err := h.Svc.Remove(c.Request.Context(), middleware.UID(c), c.Param("ad_id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "removed from favorites", nil)
}

func (h *FavoriteHandler) List(c *gin.Context) {
	page, pageSize, ok := pageParams(c, 5, 100)
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "page number must be greater than 0", nil)
		return
	}
	ads, err := h.Svc.List(c.Request.Context(), middleware.UID(c), page, pageSize)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, ads, "favorites", nil)
}
