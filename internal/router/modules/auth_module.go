package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/listinker/listinker-api/internal/container"
	handlers "github.com/listinker/listinker-api/internal/interface/http"
	"github.com/listinker/listinker-api/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// OTP issuance is the abuse magnet, so it gets the tightest limits.
	requestLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/request-otp", requestLimiter, m.Handler.RequestOTP)
	rg.POST("/auth/request-email-otp", requestLimiter, m.Handler.RequestEmailOTP)
	rg.POST("/auth/verify-otp", verifyLimiter, m.Handler.VerifyOTP)
	rg.POST("/auth/verify-user", verifyLimiter, m.Handler.VerifyUser)
	rg.POST("/auth/verify-email", verifyLimiter, m.Handler.VerifyEmail)
}
