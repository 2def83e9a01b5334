package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/middleware"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	adminservice "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/admin"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/httputil"
)

type Handler struct {
	service *adminservice.Service
}

func NewHandler(service *adminservice.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admins := r.Group("/admins")
	{
		admins.GET("", h.List)
		admins.POST("/:id/edit", h.StartEdit)

		draft := admins.Group("/draft")
		{
			draft.POST("", h.Start)
			draft.GET("", h.Get)
			draft.DELETE("", h.Discard)
			draft.POST("/type", h.SetType)
			draft.POST("/form", h.SetForm)
			draft.POST("/back", h.Back)
			draft.POST("/submit", h.Submit)
		}
	}
}

func (h *Handler) List(c *gin.Context) {
	admins, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, admins)
}

func (h *Handler) Start(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	httputil.RespondWithCreated(c, h.service.Start(middleware.SessionID(c), sess.User))
}

// StartEdit seeds the draft from an existing admin and enters at the form
// step with the type pinned.
func (h *Handler) StartEdit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("identificador de administrador inválido"))
		return
	}

	admins, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var existing *model.Admin
	for i := range admins {
		if admins[i].ID == id {
			existing = &admins[i]
			break
		}
	}
	if existing == nil {
		httputil.RespondWithError(c, apperrors.NotFound("admin", nil))
		return
	}

	sess, _ := middleware.SessionFromContext(c)
	draft, err := h.service.StartEdit(middleware.SessionID(c), sess.User, existing)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) Get(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	httputil.RespondWithSuccess(c, h.service.Get(middleware.SessionID(c), sess.User))
}

func (h *Handler) Discard(c *gin.Context) {
	h.service.Discard(middleware.SessionID(c))
	httputil.RespondWithSuccess(c, gin.H{"message": "borrador descartado"})
}

type setTypeRequest struct {
	Type model.AdminType `json:"type" binding:"required"`
}

func (h *Handler) SetType(c *gin.Context) {
	var req setTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("selecciona un tipo de administrador"))
		return
	}

	sess, _ := middleware.SessionFromContext(c)
	draft, err := h.service.SetType(middleware.SessionID(c), sess.User, req.Type)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) SetForm(c *gin.Context) {
	var form model.AdminForm
	if err := c.ShouldBindJSON(&form); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("correo, nombre y apellido son obligatorios"))
		return
	}

	sess, _ := middleware.SessionFromContext(c)
	draft, err := h.service.SetForm(middleware.SessionID(c), sess.User, form)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) Back(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	draft, err := h.service.Back(middleware.SessionID(c), sess.User)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

// Submit provisions the account and returns it with the refreshed listing.
func (h *Handler) Submit(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	created, err := h.service.Submit(c.Request.Context(), middleware.SessionID(c), sess.User)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	admins, err := h.service.List(c.Request.Context())
	if err != nil {
		// The account exists; return it even if the refresh failed.
		httputil.RespondWithCreated(c, gin.H{"admin": created})
		return
	}
	httputil.RespondWithCreated(c, gin.H{"admin": created, "admins": admins})
}
