package notify

import (
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

// Mailer delivers a single rendered HTML email.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer sends mail through an authenticated SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "Nazzel & Avionna")
	msg.SetHeader("To", to)
	msg.SetHeader("Reply-To", m.from)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

// LogMailer writes emails to the log instead of sending them. It is used
// outside production when no SMTP credentials are configured.
type LogMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(to, subject, htmlBody string) error {
	m.log.Info("email not sent, SMTP disabled",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("bodyBytes", len(htmlBody)),
	)
	return nil
}
