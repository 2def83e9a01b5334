package audit

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/middleware"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	auditservice "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/audit"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/httputil"
)

type Handler struct {
	service *auditservice.Service
}

func NewHandler(service *auditservice.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit", h.List)
}

// List shows the operator action trail, filterable by actor, action and
// entity type. Branch admins cannot read it.
func (h *Handler) List(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	if sess.User.Role != model.RoleSuperAdmin && sess.User.Role != model.RoleCompanyAdmin {
		httputil.RespondWithError(c, apperrors.Forbidden("no tienes permisos para ver el registro de auditoría"))
		return
	}

	filters := map[string]interface{}{}
	if v := c.Query("action"); v != "" {
		filters["action"] = v
	}
	if v := c.Query("entity_type"); v != "" {
		filters["entity_type"] = v
	}
	if v := c.Query("actor_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("identificador de operador inválido"))
			return
		}
		filters["actor_id"] = id
	}

	entries, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, entries)
}
