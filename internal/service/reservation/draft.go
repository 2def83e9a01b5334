package reservation

import (
	"time"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/model"
	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
)

// Step is the wizard position. Each step's required fields must be present
// before the draft can advance past it.
type Step int

const (
	// StepSelection resolves the client and picks specialist + service.
	StepSelection Step = iota + 1
	// StepDate picks a non-past calendar date.
	StepDate
	// StepTime picks one of the fixed day slots.
	StepTime
	// StepConfirm collects contact and payment and submits.
	StepConfirm
)

// Contact is the client contact block confirmed at the final step. It is
// pre-seeded from the resolved client and editable before submission.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Payment is the payment block of the final step.
type Payment struct {
	Method     model.PaymentMethod `json:"method"`
	CardNumber string              `json:"cardNumber,omitempty"`
	ExpiryDate string              `json:"expiryDate,omitempty"`
	CVV        string              `json:"cvv,omitempty"`
}

// Draft is the in-progress reservation accumulated by the wizard. All
// mutation goes through Apply so the step invariants hold at every point.
type Draft struct {
	Step           Step          `json:"step"`
	Client         *model.Client `json:"client,omitempty"`
	SpecialistID   int64         `json:"specialistId,omitempty"`
	SpecialistName string        `json:"specialistName,omitempty"`
	ServiceID      int64         `json:"serviceId,omitempty"`
	ServiceName    string        `json:"serviceName,omitempty"`
	Price          float64       `json:"price,omitempty"`
	DurationMin    int           `json:"durationMinutes,omitempty"`
	Date           time.Time     `json:"date,omitempty"`
	TimeSlot       string        `json:"timeSlot,omitempty"`
	Contact        Contact       `json:"contact"`
	Payment        Payment       `json:"payment"`
	Notes          string        `json:"notes,omitempty"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// NewDraft returns an empty draft positioned at the first step.
func NewDraft() *Draft {
	return &Draft{Step: StepSelection, UpdatedAt: time.Now()}
}

// Command mutates a draft through Apply.
type Command interface {
	apply(d *Draft, now time.Time) error
}

// SelectClient resolves the client the reservation is for. Selecting a
// client also seeds the contact block with their details.
type SelectClient struct {
	Client *model.Client
}

// ChooseService picks the specialist and, optionally in the same move, one
// of their services. Picking a different specialist always clears the
// previously selected service because the offerable set changed.
type ChooseService struct {
	SpecialistID   int64
	SpecialistName string
	ServiceID      int64
	ServiceName    string
	Price          float64
	DurationMin    int
}

// ChooseDate picks the calendar date. Past dates are rejected.
type ChooseDate struct {
	Date time.Time
}

// ChooseTime picks one of the fixed day slots.
type ChooseTime struct {
	Slot string
}

// SetContact overrides the confirmed contact block.
type SetContact struct {
	Contact Contact
}

// SetPayment sets the payment block. Card fields are required as soon as
// the method is CARD so the problem surfaces before submission.
type SetPayment struct {
	Payment Payment
	Notes   string
}

// Back moves to the previous step. Data entered for later steps is kept.
type Back struct{}

// Reset discards everything and returns to the first step.
type Reset struct{}

// Apply runs one command against the draft. On error the draft is
// unchanged, including its step.
func (d *Draft) Apply(cmd Command, now time.Time) error {
	if err := cmd.apply(d, now); err != nil {
		return err
	}
	d.UpdatedAt = now
	return nil
}

func (c SelectClient) apply(d *Draft, _ time.Time) error {
	if d.Step != StepSelection {
		return apperrors.Validation("vuelve al primer paso para cambiar el cliente")
	}
	if c.Client == nil || c.Client.ID == 0 {
		return apperrors.Validation("selecciona un cliente válido")
	}
	d.Client = c.Client
	d.Contact = Contact{Name: c.Client.Name, Email: c.Client.Email, Phone: c.Client.Phone}
	return nil
}

func (c ChooseService) apply(d *Draft, _ time.Time) error {
	if d.Step != StepSelection {
		return apperrors.Validation("vuelve al primer paso para cambiar el servicio")
	}
	if c.SpecialistID == 0 {
		return apperrors.Validation("selecciona un especialista")
	}
	if c.ServiceID != 0 && d.Client == nil {
		return apperrors.Validation("selecciona primero un cliente para continuar")
	}

	if c.SpecialistID != d.SpecialistID {
		d.ServiceID = 0
		d.ServiceName = ""
		d.Price = 0
		d.DurationMin = 0
	}
	d.SpecialistID = c.SpecialistID
	d.SpecialistName = c.SpecialistName

	if c.ServiceID == 0 {
		return nil
	}

	d.ServiceID = c.ServiceID
	d.ServiceName = c.ServiceName
	d.Price = c.Price
	d.DurationMin = c.DurationMin
	d.Step = StepDate
	return nil
}

func (c ChooseDate) apply(d *Draft, now time.Time) error {
	if d.Step != StepDate {
		return apperrors.Validation("completa la selección de servicio antes de elegir la fecha")
	}
	if c.Date.IsZero() {
		return apperrors.Validation("selecciona una fecha")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if c.Date.Before(today) {
		return apperrors.Validation("la fecha no puede estar en el pasado")
	}
	d.Date = c.Date
	d.Step = StepTime
	return nil
}

func (c ChooseTime) apply(d *Draft, _ time.Time) error {
	if d.Step != StepTime {
		return apperrors.Validation("selecciona primero una fecha")
	}
	if !validSlot(c.Slot) {
		return apperrors.Validation("selecciona uno de los horarios disponibles")
	}
	d.TimeSlot = c.Slot
	d.Step = StepConfirm
	return nil
}

func (c SetContact) apply(d *Draft, _ time.Time) error {
	if d.Step != StepConfirm {
		return apperrors.Validation("completa los pasos anteriores antes de confirmar el contacto")
	}
	if c.Contact.Name == "" || c.Contact.Email == "" {
		return apperrors.Validation("nombre y correo del cliente son obligatorios")
	}
	d.Contact = c.Contact
	return nil
}

func (c SetPayment) apply(d *Draft, _ time.Time) error {
	if d.Step != StepConfirm {
		return apperrors.Validation("completa los pasos anteriores antes de elegir el pago")
	}
	switch c.Payment.Method {
	case model.PaymentMethodCash:
	case model.PaymentMethodCard:
		if c.Payment.CardNumber == "" || c.Payment.ExpiryDate == "" || c.Payment.CVV == "" {
			return apperrors.Validation("número de tarjeta, vencimiento y CVV son obligatorios para pago con tarjeta")
		}
	default:
		return apperrors.Validation("selecciona un método de pago")
	}
	d.Payment = c.Payment
	d.Notes = c.Notes
	return nil
}

func (Back) apply(d *Draft, _ time.Time) error {
	if d.Step <= StepSelection {
		return apperrors.Validation("ya estás en el primer paso")
	}
	d.Step--
	return nil
}

func (Reset) apply(d *Draft, now time.Time) error {
	*d = *NewDraft()
	d.UpdatedAt = now
	return nil
}

// ReadyToSubmit reports the missing precondition, if any, without touching
// the draft.
func (d *Draft) ReadyToSubmit() error {
	switch {
	case d.Step != StepConfirm:
		return apperrors.Validation("completa todos los pasos antes de confirmar")
	case d.Client == nil:
		return apperrors.Validation("no hay cliente seleccionado")
	case d.ServiceID == 0 || d.SpecialistID == 0:
		return apperrors.Validation("no hay servicio seleccionado")
	case d.Date.IsZero():
		return apperrors.Validation("no hay fecha seleccionada")
	case d.TimeSlot == "":
		return apperrors.Validation("no hay horario seleccionado")
	case d.Contact.Name == "" || d.Contact.Email == "":
		return apperrors.Validation("faltan los datos de contacto")
	case d.Payment.Method == "":
		return apperrors.Validation("selecciona un método de pago")
	case d.Payment.Method == model.PaymentMethodCard &&
		(d.Payment.CardNumber == "" || d.Payment.ExpiryDate == "" || d.Payment.CVV == ""):
		return apperrors.Validation("faltan los datos de la tarjeta")
	}
	return nil
}

func validSlot(slot string) bool {
	for _, s := range daySlots {
		if s == slot {
			return true
		}
	}
	return false
}
