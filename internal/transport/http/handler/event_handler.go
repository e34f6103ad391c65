package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"event-booking-api/internal/domain"
	"event-booking-api/internal/service"
	mdw "event-booking-api/internal/transport/http/middleware"
	resp "event-booking-api/internal/transport/http/response"
)

type EventHandler struct {
	svc *service.EventService
}

func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) MountAPI(public, authed, _ *gin.RouterGroup) {
	// 固定路径要排在 :id 前面
	public.GET("/events", h.list)
	public.GET("/events/upcoming", h.upcoming)
	public.GET("/events/category/:category", h.byCategory)
	public.GET("/events/:id", h.getByID)

	authed.POST("/events", h.create)
	authed.PUT("/events/:id", h.update)
	authed.DELETE("/events/:id", h.remove)
}

type eventListQuery struct {
	Search   string   `form:"search"`
	Status   string   `form:"status" binding:"omitempty,oneof=UPCOMING ONGOING COMPLETED CANCELLED"`
	Category string   `form:"category"`
	DateFrom string   `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string   `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
	MinPrice *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
}

func (q eventListQuery) filter() domain.EventFilter {
	f := domain.EventFilter{
		Search:   q.Search,
		Status:   q.Status,
		Category: q.Category,
	}
	if q.DateFrom != "" {
		f.DateFrom, _ = time.Parse("2006-01-02", q.DateFrom)
	}
	if q.DateTo != "" {
		f.DateTo, _ = time.Parse("2006-01-02", q.DateTo)
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		f.HasPrice = true
		if q.MinPrice != nil {
			f.MinPrice = *q.MinPrice
		}
		f.MaxPrice = 1e12
		if q.MaxPrice != nil {
			f.MaxPrice = *q.MaxPrice
		}
	}
	return f
}

func (h *EventHandler) list(c *gin.Context) {
	var q eventListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		resp.BindErr(c, err)
		return
	}
	events, err := h.svc.List(c.Request.Context(), q.filter())
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Events fetched successfully", events)
}

func (h *EventHandler) upcoming(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	events, err := h.svc.ListUpcoming(c.Request.Context(), limit)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Upcoming events fetched successfully", events)
}

func (h *EventHandler) byCategory(c *gin.Context) {
	events, err := h.svc.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Events fetched successfully", events)
}

func (h *EventHandler) getByID(c *gin.Context) {
	e, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Event fetched successfully", e)
}

func (h *EventHandler) create(c *gin.Context) {
	var in service.CreateEventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	e, err := h.svc.Create(c.Request.Context(), in, c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.Created(c, "Event created successfully", e)
}

func (h *EventHandler) update(c *gin.Context) {
	var in service.UpdateEventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	e, err := h.svc.Update(c.Request.Context(), c.Param("id"), in, c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Event updated successfully", e)
}

func (h *EventHandler) remove(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Event deleted successfully", nil)
}
