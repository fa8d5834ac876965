// Package notify delivers outbound notifications: transactional email via
// SMTP and booking events via the message broker.
package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"cineman/internal/model"
)

// SMTPConfig carries the relay parameters.  An empty Host disables
// delivery; Send becomes a logged no-op so the rest of the system works
// without a mail relay.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Mailer sends the transactional emails.  All methods are safe for
// concurrent use; each send dials its own SMTP session.
type Mailer struct {
	cfg    SMTPConfig
	logger *zerolog.Logger
}

func NewMailer(cfg SMTPConfig, logger *zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

var (
	confirmTmpl = template.Must(template.New("confirm").Parse(
		`<p>Welcome to CineMan!</p><p>Confirm your email with this token: <b>{{.Token}}</b></p>`))
	resetTmpl = template.Must(template.New("reset").Parse(
		`<p>We received a request to reset your password.</p><p>Your reset token: <b>{{.Token}}</b></p><p>If this wasn't you, ignore this email.</p>`))
	changedTmpl = template.Must(template.New("changed").Parse(
		`<p>Your CineMan password was just changed.</p><p>If this wasn't you, contact support immediately.</p>`))
	bookingTmpl = template.Must(template.New("booking").Parse(
		`<p>Your booking is <b>{{.Status}}</b>.</p>
<ul>
<li>Booking: {{.ID}}</li>
<li>Date: {{.Date}}</li>
<li>Theatre: {{.Theatre}}</li>
<li>Slot: {{.Slot}}</li>
<li>Seats: {{.Seats}}</li>
<li>Total: {{.Total}}</li>
</ul>`))
)

func (m *Mailer) SendEmailConfirmation(to, token string) error {
	return m.send(to, "Confirm your CineMan email", confirmTmpl, map[string]string{"Token": token})
}

func (m *Mailer) SendPasswordReset(to, token string) error {
	return m.send(to, "Reset your CineMan password", resetTmpl, map[string]string{"Token": token})
}

func (m *Mailer) SendPasswordChanged(to string) error {
	return m.send(to, "Your CineMan password was changed", changedTmpl, nil)
}

// SendBookingUpdate emails the state of a booking after it is created or
// cancelled.
func (m *Mailer) SendBookingUpdate(to string, b *model.Booking) error {
	subject := "Your CineMan booking is confirmed"
	if b.Status == model.StatusCancelled {
		subject = "Your CineMan booking was cancelled"
	}
	return m.send(to, subject, bookingTmpl, map[string]any{
		"Status":  string(b.Status),
		"ID":      b.ID,
		"Date":    b.ShowDate.Format("2006-01-02"),
		"Theatre": b.TheatreName,
		"Slot":    string(b.TimeSlot),
		"Seats":   b.BookedSeats,
		"Total":   b.TotalAmount,
	})
}

func (m *Mailer) send(to, subject string, tmpl *template.Template, data any) error {
	if m.cfg.Host == "" {
		m.logger.Debug().Str("to", to).Str("subject", subject).Msg("smtp disabled, dropping mail")
		return nil
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render mail template: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Pass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
