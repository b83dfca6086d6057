package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/listinker/listinker-api/internal/container"
	handlers "github.com/listinker/listinker-api/internal/interface/http"
	"github.com/listinker/listinker-api/internal/interface/middleware"
)

// CategoryModule exposes the static catalog. Everything here is public
// read-only data, so only an IP limiter applies.

type CategoryModule struct {
	Handler *handlers.CategoryHandler
}

func NewCategoryModule(h *handlers.CategoryHandler) *CategoryModule {
	return &CategoryModule{Handler: h}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	grp := rg.Group("/categories", limiter)
	{
		grp.GET("/suggest", m.Handler.Suggest)
		grp.GET("/categories", m.Handler.ListCategories)
		grp.GET("/sub-categories", m.Handler.ListSubCategories)
		grp.GET("/:category_id", m.Handler.Details)
	}
}
