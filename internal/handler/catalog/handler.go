package catalog

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/middleware"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/reservation"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/httputil"
)

// BookingCatalogAPI is the slice of the booking client the catalog screens
// need.
type BookingCatalogAPI interface {
	Categories(ctx context.Context, language string) ([]model.Category, error)
	Sedes(ctx context.Context, companyID int64) ([]model.Sede, error)
	ProfessionalsBySede(ctx context.Context, sedeID int64, language string) ([]model.Professional, error)
}

type Handler struct {
	api BookingCatalogAPI
}

func NewHandler(api BookingCatalogAPI) *Handler {
	return &Handler{api: api}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	catalog := r.Group("/catalog")
	{
		catalog.GET("/categories", h.Categories)
		catalog.GET("/sedes", h.Sedes)
		catalog.GET("/professionals", h.Professionals)
		catalog.GET("/timeslots", h.TimeSlots)
	}
}

func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.api.Categories(c.Request.Context(), c.Query("language"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Remote("no se pudieron cargar las categorías", err))
		return
	}
	httputil.RespondWithSuccess(c, categories)
}

// Sedes lists the branches of the operator's company.
func (h *Handler) Sedes(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)
	companyID, ok := sess.User.CompanyID()
	if !ok {
		httputil.RespondWithError(c, apperrors.BadRequest("el perfil del operador no tiene una empresa asignada", nil))
		return
	}

	sedes, err := h.api.Sedes(c.Request.Context(), companyID)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Remote("no se pudieron cargar las sedes", err))
		return
	}
	httputil.RespondWithSuccess(c, sedes)
}

// Professionals lists the specialists of a branch, defaulting to the
// operator's own.
func (h *Handler) Professionals(c *gin.Context) {
	sess, _ := middleware.SessionFromContext(c)

	var sedeID int64
	if raw := c.Query("sede_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("identificador de sede inválido"))
			return
		}
		sedeID = parsed
	} else {
		id, ok := sess.User.SedeID()
		if !ok {
			httputil.RespondWithError(c, apperrors.BadRequest("el perfil del operador no tiene una sede asignada", nil))
			return
		}
		sedeID = id
	}

	professionals, err := h.api.ProfessionalsBySede(c.Request.Context(), sedeID, c.Query("language"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Remote("no se pudieron cargar los especialistas", err))
		return
	}
	httputil.RespondWithSuccess(c, professionals)
}

func (h *Handler) TimeSlots(c *gin.Context) {
	httputil.RespondWithSuccess(c, reservation.DaySlots())
}
