package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"event-booking-api/internal/domain"
	"event-booking-api/internal/service"
	mdw "event-booking-api/internal/transport/http/middleware"
	resp "event-booking-api/internal/transport/http/response"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) MountAPI(_, authed, admin *gin.RouterGroup) {
	authed.GET("/dashboard/stats", h.stats)
	authed.GET("/dashboard/activities", h.recentActivities)
	authed.GET("/dashboard/recent-activities", h.recentActivities) // 旧客户端别名
	authed.GET("/dashboard/upcoming-events", h.upcomingEvents)
	authed.GET("/dashboard/top-events", h.topEvents)

	admin.GET("/dashboard/analytics/monthly", h.monthlyAnalytics)
	admin.GET("/dashboard/analytics/category", h.categoryAnalytics)
	admin.GET("/dashboard/analytics/top-events", h.topEvents)
}

func (h *DashboardHandler) MountAdmin(g *gin.RouterGroup) {
	g.GET("/dashboard/stats", h.stats)
	g.GET("/dashboard/activities", h.recentActivities)
	g.GET("/dashboard/upcoming-events", h.upcomingEvents)
	g.GET("/dashboard/top-events", h.topEvents)
	g.GET("/dashboard/analytics/monthly", h.monthlyAnalytics)
	g.GET("/dashboard/analytics/category", h.categoryAnalytics)
	g.GET("/dashboard/analytics/top-events", h.topEvents)
}

func scopeOf(c *gin.Context) domain.Scope {
	return domain.ScopeFor(c.GetString(mdw.KeyUserID), c.GetString(mdw.KeyRole))
}

func (h *DashboardHandler) stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), scopeOf(c))
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Dashboard stats fetched successfully", stats)
}

func (h *DashboardHandler) recentActivities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	acts, err := h.svc.RecentActivities(c.Request.Context(), scopeOf(c), limit)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Recent activities fetched successfully", acts)
}

func (h *DashboardHandler) upcomingEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	events, err := h.svc.UpcomingEvents(c.Request.Context(), scopeOf(c), limit)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Upcoming events fetched successfully", events)
}

func (h *DashboardHandler) topEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	events, err := h.svc.TopEvents(c.Request.Context(), scopeOf(c), limit)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Top events fetched successfully", events)
}

func (h *DashboardHandler) monthlyAnalytics(c *gin.Context) {
	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))
	points, err := h.svc.MonthlyAnalytics(c.Request.Context(), year)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Monthly analytics fetched successfully", points)
}

func (h *DashboardHandler) categoryAnalytics(c *gin.Context) {
	points, err := h.svc.CategoryAnalytics(c.Request.Context())
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Category analytics fetched successfully", points)
}
