package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/listinker/listinker-api/internal/container"
	handlers "github.com/listinker/listinker-api/internal/interface/http"
	"github.com/listinker/listinker-api/internal/interface/middleware"
	"github.com/listinker/listinker-api/pkg/helpers"
)

type FavoriteModule struct {
	Handler *handlers.FavoriteHandler
	JWT     *helpers.JWTManager
}

func NewFavoriteModule(h *handlers.FavoriteHandler, jwt *helpers.JWTManager) *FavoriteModule {
	return &FavoriteModule{Handler: h, JWT: jwt}
}

func (m *FavoriteModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/favorites")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.List)
		auth.POST("/:ad_id", m.Handler.Add)
		auth.DELETE("/:ad_id", m.Handler.Remove)
	}
}
