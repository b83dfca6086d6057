package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/listinker/listinker-api/internal/application"
	"github.com/listinker/listinker-api/pkg/response"
)

type CategoryHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCategoryHandler(svc *application.CatalogService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

func (h *CategoryHandler) Suggest(c *gin.Context) {
	input := strings.TrimSpace(c.Query("input"))
	if input == "" {
		response.Error[any](c, http.StatusBadRequest, "input is required", nil)
		return
	}
	names, err := h.Svc.Suggest(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, names, "suggestions", nil)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	cats, err := h.Svc.TopLevel(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, cats, "categories", nil)
}

func (h *CategoryHandler) ListSubCategories(c *gin.Context) {
	subs, err := h.Svc.SubCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, subs, "sub-categories", nil)
}

// Details resolves a department by numeric ID or name.
func (h *CategoryHandler) Details(c *gin.Context) {
	details, err := h.Svc.Details(c.Request.Context(), c.Param("category_id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, details, "category details", nil)
}
