package email

import (
	"context"

	"github.com/rs/zerolog"
)

type noopService struct {
	logger zerolog.Logger
}

// NewNoopService logs instead of sending. Used when no SMTP host is
// configured, so local runs do not need a relay.
func NewNoopService(logger zerolog.Logger) Service {
	return &noopService{logger: logger}
}

func (s *noopService) SendReservationConfirmation(_ context.Context, to string, data ReservationConfirmation) error {
	s.logger.Info().Str("to", to).Str("service", data.ServiceName).Msg("email disabled, skipping reservation confirmation")
	return nil
}

func (s *noopService) SendAdminWelcome(_ context.Context, to string, name string) error {
	s.logger.Info().Str("to", to).Str("name", name).Msg("email disabled, skipping admin welcome")
	return nil
}

func (s *noopService) SendCustom(_ context.Context, to string, subject string, _ string) error {
	s.logger.Info().Str("to", to).Str("subject", subject).Msg("email disabled, skipping message")
	return nil
}
