package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/internal/config"
)

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPService sends mail through the configured SMTP relay.
func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpService) SendReservationConfirmation(_ context.Context, to string, data ReservationConfirmation) error {
	subject := "Tu reserva está confirmada"
	body := fmt.Sprintf(`
		<h2>Reserva confirmada</h2>
		<p>Hola %s,</p>
		<p>Tu cita de <strong>%s</strong> con %s quedó registrada.</p>
		<ul>
			<li>Sede: %s</li>
			<li>Fecha: %s</li>
			<li>Horario: %s</li>
			<li>Total: %.2f %s</li>
		</ul>
	`, data.ClientName, data.ServiceName, data.Professional,
		data.SedeName, data.Date, data.TimeSlot, data.Amount, data.Currency)

	return s.send(to, subject, body)
}

func (s *smtpService) SendAdminWelcome(_ context.Context, to string, name string) error {
	subject := "Tu cuenta de administrador fue creada"
	body := fmt.Sprintf(`
		<h2>Bienvenido, %s</h2>
		<p>Tu cuenta de administrador ya está activa. Puedes iniciar sesión con este correo.</p>
	`, name)

	return s.send(to, subject, body)
}

func (s *smtpService) SendCustom(_ context.Context, to string, subject string, content string) error {
	return s.send(to, subject, content)
}
