package handler

import (
	"github.com/gin-gonic/gin"

	"event-booking-api/internal/service"
	mdw "event-booking-api/internal/transport/http/middleware"
	resp "event-booking-api/internal/transport/http/response"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) MountAPI(public, authed, admin *gin.RouterGroup) {
	public.POST("/users/register", h.register)
	public.POST("/users/login", h.login)

	authed.GET("/users/profile", h.profile)
	authed.PUT("/users/profile", h.updateProfile)

	admin.GET("/users", h.list)
	admin.GET("/users/:id", h.getByID)
	admin.PUT("/users/activate/:id", h.activate)
	admin.PUT("/users/deactivate/:id", h.deactivate)
}

func (h *UserHandler) MountAdmin(g *gin.RouterGroup) {
	g.GET("/users", h.list)
	g.GET("/users/:id", h.getByID)
	g.PUT("/users/activate/:id", h.activate)
	g.PUT("/users/deactivate/:id", h.deactivate)
}

func (h *UserHandler) register(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	out, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.Created(c, "User created successfully", out)
}

func (h *UserHandler) login(c *gin.Context) {
	var in service.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	out, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Login successful", out)
}

func (h *UserHandler) profile(c *gin.Context) {
	u, err := h.svc.Profile(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Profile fetched successfully", u)
}

func (h *UserHandler) updateProfile(c *gin.Context) {
	var in service.UpdateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BindErr(c, err)
		return
	}
	u, err := h.svc.UpdateProfile(c.Request.Context(), c.GetString(mdw.KeyUserID), in)
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Profile updated successfully", u)
}

func (h *UserHandler) list(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "Users fetched successfully", users)
}

func (h *UserHandler) getByID(c *gin.Context) {
	u, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "User fetched successfully", u)
}

func (h *UserHandler) activate(c *gin.Context) {
	u, err := h.svc.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "User activated successfully", u)
}

func (h *UserHandler) deactivate(c *gin.Context) {
	u, err := h.svc.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Err(c, err)
		return
	}
	resp.OK(c, "User deactivated successfully", u)
}
