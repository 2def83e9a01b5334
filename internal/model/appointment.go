package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
)

// Appointment is a reservation record owned by the booking API. JSON tags
// follow the remote wire format.
type Appointment struct {
	ID             int64             `json:"id"`
	Date           time.Time         `json:"fecha"`
	StartTime      time.Time         `json:"horaInicio"`
	EndTime        time.Time         `json:"horaFin"`
	DurationMin    int               `json:"duracion"`
	Status         AppointmentStatus `json:"estado"`
	Notes          string            `json:"notas"`
	SedeID         int64             `json:"sedeId"`
	ServiceID      int64             `json:"serviceId"`
	ProfessionalID int64             `json:"profesionalId"`
	UserID         int64             `json:"userId"`
	Sede           *Sede             `json:"sede,omitempty"`
	Professional   *Professional     `json:"profesional,omitempty"`
	User           *User             `json:"user,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// Cancellable reports whether the listing may offer a cancel action.
// Only PENDING appointments can be cancelled, and the transition is one-way.
func (a *Appointment) Cancellable() bool {
	return a.Status == AppointmentStatusPending
}

// AppointmentFilter narrows the filtered listing. Zero values are omitted
// from the remote query.
type AppointmentFilter struct {
	SedeID    int64  `form:"sede_id"`
	Date      string `form:"date"`       // YYYY-MM-DD
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`   // YYYY-MM-DD
	ServiceID int64  `form:"service_id"`
	Hour      string `form:"hour"` // HH:mm
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// PaginationMeta mirrors the remote pagination envelope.
type PaginationMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// AppointmentPage is one page of the filtered listing.
type AppointmentPage struct {
	Items           []Appointment  `json:"items"`
	Pagination      PaginationMeta `json:"pagination"`
	FallbackApplied bool           `json:"fallbackApplied"`
}

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodCard PaymentMethod = "CARD"
)

// CreateAppointmentRequest is the composed submission payload the wizard
// sends to the booking API.
type CreateAppointmentRequest struct {
	Date           time.Time         `json:"fecha"`
	StartTime      time.Time         `json:"horaInicio"`
	EndTime        time.Time         `json:"horaFin"`
	DurationMin    int               `json:"duracion"`
	Status         AppointmentStatus `json:"estado"`
	Notes          string            `json:"notas"`
	SedeID         int64             `json:"sedeId"`
	ServiceID      int64             `json:"serviceId"`
	ProfessionalID int64             `json:"profesionalId"`
	UserID         int64             `json:"userId"`
	PaymentMethod  PaymentMethod     `json:"paymentMethod"`
	PaymentAmount  float64           `json:"paymentAmount"`
	CardNumber     string            `json:"cardNumber,omitempty"`
	ExpiryDate     string            `json:"expiryDate,omitempty"`
	CVV            string            `json:"cvv,omitempty"`
}
