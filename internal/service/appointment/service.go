package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/bookingapi"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/service/audit"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
)

const defaultPageSize = 10

// BookingAppointmentAPI is the slice of the booking client this service
// needs.
type BookingAppointmentAPI interface {
	LatestAppointments(ctx context.Context, sedeID int64, limit int) ([]model.Appointment, error)
	FilterAppointments(ctx context.Context, filter model.AppointmentFilter) (*model.AppointmentPage, error)
	CancelAppointment(ctx context.Context, id int64) (*model.Appointment, error)
}

type Service struct {
	api     BookingAppointmentAPI
	auditor *audit.Service
	logger  zerolog.Logger
}

func NewService(api BookingAppointmentAPI, auditor *audit.Service, logger zerolog.Logger) *Service {
	return &Service{api: api, auditor: auditor, logger: logger}
}

// operatorSede resolves the branch scope for listing calls. An operator
// without an assigned branch cannot be scoped, which is a profile problem
// that must surface rather than being papered over with a default branch.
func operatorSede(operator *model.User) (int64, error) {
	sedeID, ok := operator.SedeID()
	if !ok {
		return 0, apperrors.BadRequest("el perfil del operador no tiene una sede asignada", nil)
	}
	return sedeID, nil
}

// Latest returns the most recent appointments for the operator's branch.
func (s *Service) Latest(ctx context.Context, operator *model.User, limit int) ([]model.Appointment, error) {
	sedeID, err := operatorSede(operator)
	if err != nil {
		return nil, err
	}

	items, err := s.api.LatestAppointments(ctx, sedeID, limit)
	if err != nil {
		return nil, apperrors.Remote("no se pudieron cargar las citas recientes", err)
	}
	return items, nil
}

// Filter returns one page of the filtered listing. The branch defaults to
// the operator's own; with no date filter at all, the listing covers the
// current month.
func (s *Service) Filter(ctx context.Context, operator *model.User, filter model.AppointmentFilter) (*model.AppointmentPage, error) {
	if filter.SedeID == 0 {
		sedeID, err := operatorSede(operator)
		if err != nil {
			return nil, err
		}
		filter.SedeID = sedeID
	}
	if filter.Date == "" && filter.StartDate == "" && filter.EndDate == "" {
		start, end := currentMonth(time.Now())
		filter.StartDate = start
		filter.EndDate = end
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}

	page, err := s.api.FilterAppointments(ctx, filter)
	if err != nil {
		return nil, apperrors.Remote("no se pudo cargar el listado de citas", err)
	}
	return page, nil
}

// Cancel flips a PENDING appointment to CANCELLED. The transition is
// one-way; the remote rejects anything else and that rejection is surfaced
// as-is.
func (s *Service) Cancel(ctx context.Context, actor *model.User, id int64) (*model.Appointment, error) {
	cancelled, err := s.api.CancelAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, bookingapi.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, apperrors.Remote("no se pudo cancelar la cita", err)
	}

	s.auditor.Log(ctx, actor, "appointment_cancelled", "appointment", fmt.Sprintf("%d", id), nil)
	return cancelled, nil
}

func currentMonth(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}
