package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"event-booking-api/internal/core/auth"
	resp "event-booking-api/internal/transport/http/response"
)

const (
	KeyUserID = "userId"
	KeyEmail  = "email"
	KeyRole   = "role"
)

// AuthJWT 解析 Bearer token，把 uid/email/role 放进上下文
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.AbortFail(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.AbortFail(c, http.StatusUnauthorized, "invalid token")
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyEmail, claims.Email)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}

// RequireRoles 角色白名单；挂在 AuthJWT 之后
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := allowed[c.GetString(KeyRole)]; !ok {
			resp.AbortFail(c, http.StatusForbidden, "insufficient permissions")
			return
		}
		c.Next()
	}
}
