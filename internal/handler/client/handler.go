package client

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/middleware"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	clientservice "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/client"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/httputil"
)

type Handler struct {
	service *clientservice.Service
}

func NewHandler(service *clientservice.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clients := r.Group("/clients")
	{
		clients.GET("", h.List)
		clients.GET("/search", h.Search)
		clients.POST("", h.Create)
		clients.POST("/register", h.Register)
		clients.PUT("/:id", h.Update)
	}
}

func (h *Handler) List(c *gin.Context) {
	clients, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, clients)
}

// Search looks a client up by email or document, whichever query parameter
// is present.
func (h *Handler) Search(c *gin.Context) {
	searchType := model.SearchByEmail
	term := c.Query("email")
	if term == "" {
		searchType = model.SearchByDocument
		term = c.Query("document")
	}

	result, err := h.service.Search(c.Request.Context(), searchType, term)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, result)
}

// Create adds a bare client record.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("nombre y correo son obligatorios"))
		return
	}

	sess, _ := middleware.SessionFromContext(c)
	created, err := h.service.Create(c.Request.Context(), sess.User, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

// Register creates a full client account. The form arrives as multipart to
// match the remote registration endpoint.
func (h *Handler) Register(c *gin.Context) {
	var form model.RegisterClientForm
	if err := c.ShouldBind(&form); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("nombre, correo y contraseña son obligatorios"))
		return
	}

	sess, _ := middleware.SessionFromContext(c)
	created, err := h.service.Register(c.Request.Context(), sess.User, &form)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("identificador de cliente inválido"))
		return
	}

	var req model.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("nombre y correo son obligatorios"))
		return
	}

	sess, _ := middleware.SessionFromContext(c)
	updated, err := h.service.Update(c.Request.Context(), sess.User, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}
