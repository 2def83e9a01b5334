package reservation

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/middleware"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	reservationservice "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/reservation"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/httputil"
)

// ProfessionalsAPI resolves specialists so selections are validated against
// the branch's real offer instead of trusting the browser's numbers.
type ProfessionalsAPI interface {
	ProfessionalsBySede(ctx context.Context, sedeID int64, language string) ([]model.Professional, error)
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
			switch model.PaymentMethod(fl.Field().String()) {
			case model.PaymentMethodCash, model.PaymentMethodCard:
				return true
			}
			return false
		})
	}
}

type Handler struct {
	service *reservationservice.Service
	catalog ProfessionalsAPI
}

func NewHandler(service *reservationservice.Service, catalog ProfessionalsAPI) *Handler {
	return &Handler{service: service, catalog: catalog}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	draft := r.Group("/reservations/draft")
	{
		draft.POST("", h.Start)
		draft.GET("", h.Get)
		draft.DELETE("", h.Discard)
		draft.POST("/client", h.SelectClient)
		draft.POST("/service", h.ChooseService)
		draft.POST("/date", h.ChooseDate)
		draft.POST("/time", h.ChooseTime)
		draft.POST("/contact", h.SetContact)
		draft.POST("/payment", h.SetPayment)
		draft.POST("/back", h.Back)
		draft.GET("/summary", h.Summary)
		draft.POST("/submit", h.Submit)
	}
}

func (h *Handler) Start(c *gin.Context) {
	httputil.RespondWithCreated(c, h.service.Start(middleware.SessionID(c)))
}

func (h *Handler) Get(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Get(middleware.SessionID(c)))
}

func (h *Handler) Discard(c *gin.Context) {
	h.service.Discard(middleware.SessionID(c))
	httputil.RespondWithSuccess(c, gin.H{"message": "borrador descartado"})
}

type selectClientRequest struct {
	ID    int64  `json:"id" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

func (h *Handler) SelectClient(c *gin.Context) {
	var req selectClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("selecciona un cliente válido"))
		return
	}

	h.apply(c, reservationservice.SelectClient{Client: &model.Client{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}})
}

type chooseServiceRequest struct {
	SpecialistID int64 `json:"specialistId" binding:"required"`
	ServiceID    int64 `json:"serviceId"`
}

// ChooseService resolves the selection against the branch catalog: name,
// price and duration come from the remote record, never from the browser.
func (h *Handler) ChooseService(c *gin.Context) {
	var req chooseServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("selecciona un especialista"))
		return
	}

	sess, _ := middleware.SessionFromContext(c)
	sedeID, ok := sess.User.SedeID()
	if !ok {
		httputil.RespondWithError(c, apperrors.BadRequest("el perfil del operador no tiene una sede asignada", nil))
		return
	}

	professionals, err := h.catalog.ProfessionalsBySede(c.Request.Context(), sedeID, "")
	if err != nil {
		httputil.RespondWithError(c, apperrors.Remote("no se pudieron cargar los especialistas", err))
		return
	}

	cmd := reservationservice.ChooseService{SpecialistID: req.SpecialistID}
	found := false
	for _, p := range professionals {
		if p.ID != req.SpecialistID {
			continue
		}
		found = true
		cmd.SpecialistName = p.Name
		if req.ServiceID == 0 {
			break
		}
		for _, svc := range p.Services {
			if svc.ID == req.ServiceID {
				amount, duration := svc.Price()
				cmd.ServiceID = svc.ID
				cmd.ServiceName = svc.Name
				cmd.Price = amount
				cmd.DurationMin = duration
				break
			}
		}
		if cmd.ServiceID == 0 {
			httputil.RespondWithError(c, apperrors.Validation("el especialista no ofrece ese servicio"))
			return
		}
		break
	}
	if !found {
		httputil.RespondWithError(c, apperrors.Validation("el especialista no trabaja en esta sede"))
		return
	}

	h.apply(c, cmd)
}

type chooseDateRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

func (h *Handler) ChooseDate(c *gin.Context) {
	var req chooseDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("selecciona una fecha"))
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("formato de fecha inválido, usa AAAA-MM-DD"))
		return
	}

	h.apply(c, reservationservice.ChooseDate{Date: date})
}

type chooseTimeRequest struct {
	Slot string `json:"slot" binding:"required"`
}

func (h *Handler) ChooseTime(c *gin.Context) {
	var req chooseTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("selecciona un horario"))
		return
	}
	h.apply(c, reservationservice.ChooseTime{Slot: req.Slot})
}

func (h *Handler) SetContact(c *gin.Context) {
	var contact reservationservice.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("datos de contacto inválidos"))
		return
	}
	h.apply(c, reservationservice.SetContact{Contact: contact})
}

type setPaymentRequest struct {
	Method     model.PaymentMethod `json:"method" binding:"required,paymentmethod"`
	CardNumber string              `json:"cardNumber"`
	ExpiryDate string              `json:"expiryDate"`
	CVV        string              `json:"cvv"`
	Notes      string              `json:"notes"`
}

func (h *Handler) SetPayment(c *gin.Context) {
	var req setPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("selecciona un método de pago"))
		return
	}

	h.apply(c, reservationservice.SetPayment{
		Payment: reservationservice.Payment{
			Method:     req.Method,
			CardNumber: req.CardNumber,
			ExpiryDate: req.ExpiryDate,
			CVV:        req.CVV,
		},
		Notes: req.Notes,
	})
}

func (h *Handler) Back(c *gin.Context) {
	h.apply(c, reservationservice.Back{})
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summarize(middleware.SessionID(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, summary)
}

type submitRequest struct {
	Confirm bool `json:"confirm"`
}

func (h *Handler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("confirma la reserva para enviarla"))
		return
	}

	sess, _ := middleware.SessionFromContext(c)
	created, attempted, err := h.service.Submit(c.Request.Context(), sess, middleware.SessionID(c), req.Confirm)
	if err != nil {
		// Failed submissions surface the attempted payload for debugging.
		httputil.RespondWithErrorDebug(c, err, attempted)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) apply(c *gin.Context, cmd reservationservice.Command) {
	draft, err := h.service.Apply(middleware.SessionID(c), cmd)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}
