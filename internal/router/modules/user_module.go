package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/listinker/listinker-api/internal/container"
	handlers "github.com/listinker/listinker-api/internal/interface/http"
	"github.com/listinker/listinker-api/internal/interface/middleware"
	"github.com/listinker/listinker-api/pkg/helpers"
)

// UserModule wires the profile and follow-graph routes.
// Protected: GET/PUT/DELETE /api/users/me, POST /api/users/follow,
// POST /api/users/followers, POST /api/users/following

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/me", m.Handler.Me)
		auth.PUT("/me", m.Handler.UpdateMe)
		auth.DELETE("/me", m.Handler.DeleteMe)

		auth.POST("/follow", m.Handler.Follow)
		auth.POST("/followers", m.Handler.Followers)
		auth.POST("/following", m.Handler.Following)
	}
}
