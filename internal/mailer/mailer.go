package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
	"gopkg.in/gomail.v2"

	"roombook/config"
	"roombook/internal/events"
)

//go:embed templates/*.html
var templateFS embed.FS

const qrImageSize = 256

type Mailer interface {
	SendBookingConfirmation(event events.BookingEvent) error
	SendBookingCancellation(event events.BookingEvent) error
	SendVerification(event events.UserEvent) error
	SendLoginNotice(event events.UserEvent) error
}

type smtpMailer struct {
	dialer    *gomail.Dialer
	from      string
	frontend  string
	templates *template.Template
}

func New(cfg *config.Config) (Mailer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail templates: %w", err)
	}

	smtp := cfg.External.SMTP

	return &smtpMailer{
		dialer:    gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password),
		from:      smtp.From,
		frontend:  cfg.App.FrontendURL,
		templates: templates,
	}, nil
}

func (m *smtpMailer) SendBookingConfirmation(event events.BookingEvent) error {
	msg, err := m.compose(event.UserEmail, "Your booking is confirmed", "booking_confirmation.html", event)
	if err != nil {
		return err
	}

	png, err := qrcode.Encode(event.CheckInToken, qrcode.Medium, qrImageSize)
	if err != nil {
		log.Error().Err(err).Str("bookingID", event.BookingID).Msg("failed to encode check-in code")

		return fmt.Errorf("failed to encode check-in code: %w", err)
	}

	msg.Embed("checkin.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(png)

		return err
	}))

	return m.send(msg)
}

func (m *smtpMailer) SendBookingCancellation(event events.BookingEvent) error {
	msg, err := m.compose(event.UserEmail, "Your booking was cancelled", "booking_cancellation.html", event)
	if err != nil {
		return err
	}

	return m.send(msg)
}

func (m *smtpMailer) SendVerification(event events.UserEvent) error {
	data := struct {
		events.UserEvent
		VerificationURL string
	}{
		UserEvent:       event,
		VerificationURL: fmt.Sprintf("%s/verify-email?token=%s", m.frontend, event.VerificationToken),
	}

	msg, err := m.compose(event.Email, "Verify your email address", "verification.html", data)
	if err != nil {
		return err
	}

	return m.send(msg)
}

func (m *smtpMailer) SendLoginNotice(event events.UserEvent) error {
	msg, err := m.compose(event.Email, "New login to your account", "login_notice.html", event)
	if err != nil {
		return err
	}

	return m.send(msg)
}

func (m *smtpMailer) compose(to, subject, templateName string, data any) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		log.Error().Err(err).Str("template", templateName).Msg("failed to render mail template")

		return nil, fmt.Errorf("failed to render mail template %s: %w", templateName, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	return msg, nil
}

func (m *smtpMailer) send(msg *gomail.Message) error {
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
