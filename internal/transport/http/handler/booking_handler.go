package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"event-booking-api/internal/domain"
	"event-booking-api/internal/service"
	mdw "event-booking-api/internal/transport/http/middleware"
	resp "event-booking-api/internal/transport/http/response"
)

type BookingHandler struct {
	svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) MountAPI(_, authed, admin *gin.RouterGroup) {
	authed.POST("/bookings", h.create)
	authed.GET("/bookings/user", h.listMine)

	admin.GET("/bookings/stats", h.stats)
	admin.GET("/bookings", h.list)

	authed.GET("/bookings/:id", h.getByID)
	authed.PUT("/bookings/:id", h.update)
	authed.DELETE("/bookings/:id", h.cancel)
}

func (h *BookingHandler) MountAdmin(g *gin.RouterGroup) {
	g.GET("/bookings", h.list)
	g.GET("/bookings/stats", h.stats)
}

func (h *BookingHandler) create(c *gin.Context) {
	var in service.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	b, err := h.svc.Create(c.Request.Context(), in, c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Err(c, err)
		return
	}
	mdw.BookingsCreated.Inc()
	resp.Created(c, "Booking created successfully", b)
}

func (h *BookingHandler) listMine(c *gin.Context) {
	bookings, err := h.svc.ListByUser(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Bookings fetched successfully", bookings)
}

type bookingListQuery struct {
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit    int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	DateFrom string `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
}

func (h *BookingHandler) list(c *gin.Context) {
	var q bookingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		resp.BindErr(c, err)
		return
	}
	f := domain.BookingFilter{Status: q.Status}
	if q.DateFrom != "" {
		f.DateFrom, _ = time.Parse("2006-01-02", q.DateFrom)
	}
	if q.DateTo != "" {
		f.DateTo, _ = time.Parse("2006-01-02", q.DateTo)
	}
	page, err := h.svc.List(c.Request.Context(), q.Page, q.Limit, f)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.Paged(c, "Bookings fetched successfully", page.Bookings, resp.Pagination{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

func (h *BookingHandler) getByID(c *gin.Context) {
	admin := c.GetString(mdw.KeyRole) == domain.RoleAdmin
	b, err := h.svc.GetForRequester(c.Request.Context(), c.Param("id"), c.GetString(mdw.KeyUserID), admin)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Booking fetched successfully", b)
}

func (h *BookingHandler) update(c *gin.Context) {
	var in service.UpdateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	b, err := h.svc.Update(c.Request.Context(), c.Param("id"), in, c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Booking updated successfully", b)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	b, err := h.svc.Cancel(c.Request.Context(), c.Param("id"), c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Err(c, err)
		return
	}
	mdw.BookingsCancelled.Inc()
	resp.OK(c, "Booking cancelled successfully", b)
}

func (h *BookingHandler) stats(c *gin.Context) {
	s, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Booking stats fetched successfully", s)
}
