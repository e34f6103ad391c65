package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"event-booking-api/internal/core/auth"
	"event-booking-api/internal/domain"
	mdw "event-booking-api/internal/transport/http/middleware"
)

// NewAPIEngine 对外 API：/api/v1
func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, mods ...APIModule) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)
	r.Use(cors.Default())

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 鉴权分组（需要 userId 的路由必须挂这里）
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter))

	admin := authed.Group("")
	admin.Use(mdw.RequireRoles(domain.RoleAdmin))

	mountAPI(api, authed, admin, mods...)

	return r
}
