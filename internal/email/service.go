package email

import (
	"context"
)

// Service sends operator-facing notifications. The reservation flow uses it
// to confirm a booking to the client's address.
type Service interface {
	SendReservationConfirmation(ctx context.Context, to string, data ReservationConfirmation) error
	SendAdminWelcome(ctx context.Context, to string, name string) error
	SendCustom(ctx context.Context, to string, subject string, content string) error
}

// ReservationConfirmation carries the details rendered into the confirmation
// message.
type ReservationConfirmation struct {
	ClientName   string
	ServiceName  string
	Professional string
	SedeName     string
	Date         string
	TimeSlot     string
	Amount       float64
	Currency     string
}
