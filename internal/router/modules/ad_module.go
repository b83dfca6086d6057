package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/listinker/listinker-api/internal/container"
	handlers "github.com/listinker/listinker-api/internal/interface/http"
	"github.com/listinker/listinker-api/internal/interface/middleware"
	"github.com/listinker/listinker-api/pkg/helpers"
)

// AdModule wires the ad lifecycle and feed routes. The feed and single
// ad read accept anonymous callers; everything else requires a token.

type AdModule struct {
	Handler *handlers.AdHandler
	JWT     *helpers.JWTManager
}

func NewAdModule(h *handlers.AdHandler, jwt *helpers.JWTManager) *AdModule {
	return &AdModule{Handler: h, JWT: jwt}
}

func (m *AdModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	public := rg.Group("/ads")
	public.Use(middleware.OptionalAuth(m.JWT), browseLimiter)
	{
		public.GET("", m.Handler.Browse)
	}

	auth := rg.Group("/ads")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("/my-ads", m.Handler.MyAds)
		auth.PUT("/:ad_id", m.Handler.Update)
		auth.DELETE("/:ad_id", m.Handler.Delete)
	}

	// Anonymous reads allowed; a signed-in caller's view is recorded.
	public.GET("/:ad_id", m.Handler.Get)
}
