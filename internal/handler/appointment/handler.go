package appointment

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/middleware"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	appointmentservice "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/appointment"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/httputil"
)

type Handler struct {
	service *appointmentservice.Service
}

func NewHandler(service *appointmentservice.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("/latest", h.Latest)
		appointments.GET("", h.Filter)
		appointments.POST("/:id/cancel", h.Cancel)
	}
}

// appointmentView decorates the remote record with the cancel affordance so
// the listing never offers cancellation for non-PENDING rows.
type appointmentView struct {
	model.Appointment
	Cancellable bool `json:"cancellable"`
}

func toViews(items []model.Appointment) []appointmentView {
	views := make([]appointmentView, len(items))
	for i := range items {
		views[i] = appointmentView{Appointment: items[i], Cancellable: items[i].Cancellable()}
	}
	return views
}

func (h *Handler) Latest(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	sess, _ := middleware.SessionFromContext(c)
	items, err := h.service.Latest(c.Request.Context(), sess.User, limit)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, toViews(items))
}

func (h *Handler) Filter(c *gin.Context) {
	var filter model.AppointmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("filtros inválidos"))
		return
	}

	sess, _ := middleware.SessionFromContext(c)
	page, err := h.service.Filter(c.Request.Context(), sess.User, filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithPagination(c, toViews(page.Items), httputil.Pagination{
		Page:       page.Pagination.Page,
		Limit:      page.Pagination.Limit,
		Total:      page.Pagination.Total,
		TotalPages: page.Pagination.TotalPages,
		HasNext:    page.Pagination.HasNext,
		HasPrev:    page.Pagination.HasPrev,
	}, page.FallbackApplied)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("identificador de cita inválido"))
		return
	}

	sess, _ := middleware.SessionFromContext(c)
	cancelled, err := h.service.Cancel(c.Request.Context(), sess.User, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, cancelled)
}
