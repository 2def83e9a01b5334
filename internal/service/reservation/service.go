package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/bookingapi"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/email"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/audit"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/session"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/clock"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/metrics"
)

// daySlots is the fixed hourly grid offered at the time step.
var daySlots = bookingapi.TimeSlots()

// DaySlots exposes the slot grid to the handler layer.
func DaySlots() []string {
	return daySlots
}

// draftTTL is how long an untouched draft survives before the wizard
// restarts from scratch.
const draftTTL = 45 * time.Minute

// BookingSubmitAPI is the slice of the booking client the wizard needs.
type BookingSubmitAPI interface {
	CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
}

// Service owns the per-session reservation drafts and the submission flow.
// Drafts live server-side so a browser refresh resumes the wizard in place.
type Service struct {
	api     BookingSubmitAPI
	drafts  *cache.Cache
	mailer  email.Service
	auditor *audit.Service
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewService(api BookingSubmitAPI, mailer email.Service, auditor *audit.Service, m *metrics.Metrics, logger zerolog.Logger) *Service {
	drafts := cache.New(draftTTL, 10*time.Minute)
	s := &Service{
		api:     api,
		drafts:  drafts,
		mailer:  mailer,
		auditor: auditor,
		metrics: m,
		logger:  logger,
	}
	drafts.OnEvicted(func(string, interface{}) {
		if s.metrics != nil {
			s.metrics.ActiveDrafts.Dec()
		}
	})
	return s
}

// Start creates a fresh draft for the session, replacing any existing one.
func (s *Service) Start(sessionID string) *Draft {
	if _, exists := s.drafts.Get(sessionID); !exists && s.metrics != nil {
		s.metrics.ActiveDrafts.Inc()
	}
	d := NewDraft()
	s.drafts.SetDefault(sessionID, d)
	return d
}

// Get returns the session's draft, creating one when none exists.
func (s *Service) Get(sessionID string) *Draft {
	if v, ok := s.drafts.Get(sessionID); ok {
		return v.(*Draft)
	}
	return s.Start(sessionID)
}

// Apply runs one wizard command against the session's draft and returns the
// resulting state. Validation failures leave the draft untouched.
func (s *Service) Apply(sessionID string, cmd Command) (*Draft, error) {
	d := s.Get(sessionID)
	if err := d.Apply(cmd, time.Now()); err != nil {
		return d, err
	}
	s.drafts.SetDefault(sessionID, d)
	return d, nil
}

// Discard abandons the session's draft.
func (s *Service) Discard(sessionID string) {
	if _, exists := s.drafts.Get(sessionID); exists {
		s.drafts.Delete(sessionID)
	}
}

// Summary is the human-readable recap shown before and after submission.
type Summary struct {
	ClientName  string  `json:"clientName"`
	ServiceName string  `json:"serviceName"`
	Specialist  string  `json:"specialist"`
	Date        string  `json:"date"`
	TimeSlot    string  `json:"timeSlot"`
	DurationMin int     `json:"durationMinutes"`
	Price       float64 `json:"price"`
}

// Summarize builds the confirmation recap for the current draft.
func (s *Service) Summarize(sessionID string) (*Summary, error) {
	d := s.Get(sessionID)
	if err := d.ReadyToSubmit(); err != nil {
		return nil, err
	}
	return &Summary{
		ClientName:  d.Contact.Name,
		ServiceName: d.ServiceName,
		Specialist:  d.SpecialistName,
		Date:        d.Date.Format("2006-01-02"),
		TimeSlot:    d.TimeSlot,
		DurationMin: d.DurationMin,
		Price:       d.Price,
	}, nil
}

// Submit composes the reservation payload and sends it to the booking API.
// confirm must be true: the handler only sets it after the operator accepts
// the recap modal. On failure the draft stays intact on the final step and
// the attempted payload is returned for the debug surface; on success the
// draft resets to an empty first step.
func (s *Service) Submit(ctx context.Context, sess *session.Session, sessionID string, confirm bool) (*model.Appointment, *model.CreateAppointmentRequest, error) {
	d := s.Get(sessionID)

	if !confirm {
		return nil, nil, apperrors.Validation("confirma la reserva para enviarla")
	}
	if err := d.ReadyToSubmit(); err != nil {
		return nil, nil, err
	}

	sedeID, ok := sess.User.SedeID()
	if !ok {
		return nil, nil, apperrors.BadRequest("el perfil del operador no tiene una sede asignada", nil)
	}

	start, err := startTime(d)
	if err != nil {
		return nil, nil, apperrors.BadRequest(fmt.Sprintf("horario inválido: %s", d.TimeSlot), err)
	}
	end := start.Add(time.Duration(d.DurationMin) * time.Minute)

	req := &model.CreateAppointmentRequest{
		Date:           d.Date,
		StartTime:      start,
		EndTime:        end,
		DurationMin:    d.DurationMin,
		Status:         model.AppointmentStatusPending,
		Notes:          d.Notes,
		SedeID:         sedeID,
		ServiceID:      d.ServiceID,
		ProfessionalID: d.SpecialistID,
		UserID:         d.Client.ID,
		PaymentMethod:  d.Payment.Method,
		PaymentAmount:  d.Price,
		CardNumber:     d.Payment.CardNumber,
		ExpiryDate:     d.Payment.ExpiryDate,
		CVV:            d.Payment.CVV,
	}

	created, err := s.api.CreateAppointment(ctx, req)
	if err != nil {
		s.countSubmission("failure")
		s.logger.Error().Err(err).Int64("service_id", d.ServiceID).Int64("sede_id", sedeID).Msg("reservation submission failed")
		return nil, req, apperrors.Remote("no se pudo crear la reserva", err)
	}

	s.countSubmission("success")
	s.auditor.Log(ctx, sess.User, "reservation_created", "appointment", fmt.Sprintf("%d", created.ID), &audit.LogOptions{
		Metadata: map[string]interface{}{
			"client_id":  d.Client.ID,
			"service_id": d.ServiceID,
			"date":       d.Date.Format("2006-01-02"),
			"slot":       d.TimeSlot,
		},
	})

	s.sendConfirmation(ctx, d, created)
	s.Discard(sessionID)

	return created, nil, nil
}

func startTime(d *Draft) (time.Time, error) {
	c, err := clock.SlotStart(d.TimeSlot)
	if err != nil {
		return time.Time{}, err
	}
	return clock.Combine(d.Date, c), nil
}

func (s *Service) sendConfirmation(ctx context.Context, d *Draft, created *model.Appointment) {
	if s.mailer == nil || d.Contact.Email == "" {
		return
	}

	sedeName := ""
	if created.Sede != nil {
		sedeName = created.Sede.Name
	}
	confirmation := email.ReservationConfirmation{
		ClientName:   d.Contact.Name,
		ServiceName:  d.ServiceName,
		Professional: d.SpecialistName,
		SedeName:     sedeName,
		Date:         d.Date.Format("2006-01-02"),
		TimeSlot:     d.TimeSlot,
		Amount:       d.Price,
		Currency:     "USD",
	}
	if err := s.mailer.SendReservationConfirmation(ctx, d.Contact.Email, confirmation); err != nil {
		s.logger.Warn().Err(err).Str("to", d.Contact.Email).Msg("failed to send reservation confirmation email")
	}
}

func (s *Service) countSubmission(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.WizardSubmissions.WithLabelValues(outcome).Inc()
}
