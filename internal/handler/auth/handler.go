package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/middleware"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	authservice "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/auth"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/httputil"
)

type Handler struct {
	service *authservice.Service
}

func NewHandler(service *authservice.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the endpoints reachable without a session.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

// RegisterRoutes mounts the endpoints requiring an authenticated session.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/logout", h.Logout)
	r.POST("/auth/refresh", h.Refresh)
	r.GET("/auth/me", h.Me)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("correo y contraseña son obligatorios"))
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.SessionID(c)); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "sesión cerrada"})
}

// Refresh rotates the remote tokens behind the session and hands the browser
// a fresh dashboard token.
func (h *Handler) Refresh(c *gin.Context) {
	result, err := h.service.Refresh(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) Me(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return
	}
	httputil.RespondWithSuccess(c, sess.User)
}
