package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"event-booking-api/internal/core/auth"
	"event-booking-api/internal/domain"
	mdw "event-booking-api/internal/transport/http/middleware"
)

// NewAdminEngine 管理端独立进程：/admin/v1，整组要求 ADMIN
func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, mods ...AdminModule) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(50, 100),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(4<<20),
		mdw.Timeout(15*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter), mdw.RequireRoles(domain.RoleAdmin))

	mountAdmin(admin, mods...)

	return r
}
