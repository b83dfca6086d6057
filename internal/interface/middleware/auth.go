package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/listinker/listinker-api/pkg/helpers"
	"github.com/listinker/listinker-api/pkg/response"
)

// CtxUID is the Gin context key holding the authenticated user's UID.
const CtxUID = "uid"

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth validates the Bearer token and sets the caller's UID in the Gin
// context. Requests without a valid token are rejected.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		c.Set(CtxUID, claims.UID)
		c.Next()
	}
}

// OptionalAuth sets the caller's UID when a valid token is present and
// lets the request through anonymously otherwise. The feed uses this to
// serve both signed-in and anonymous browsing.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := jwt.Parse(token); err == nil {
				c.Set(CtxUID, claims.UID)
			}
		}
		c.Next()
	}
}

// UID returns the authenticated user's UID from the Gin context, empty
// for anonymous requests.
func UID(c *gin.Context) string {
	return c.GetString(CtxUID)
}
