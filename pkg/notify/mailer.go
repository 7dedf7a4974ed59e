package notify

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gopkg.in/gomail.v2"
)

// ErrDelivery wraps every failure to hand a message to the mail server
var ErrDelivery = errors.New("notification delivery failed")

// SMTPSettings describes the authenticated outbound mail account
type SMTPSettings struct {
	Host     string
	Port     int // 465 uses implicit TLS
	Username string
	Password string
	From     string
	To       string
}

// Mailer delivers messages to the single configured recipient
type Mailer struct {
	from string
	to   string
	send func(m ...*gomail.Message) error
}

// NewMailer creates a mailer that dials the SMTP server for every delivery.
func NewMailer(s SMTPSettings) *Mailer {
	username := s.Username
	if username == "" {
		username = s.From
	}
	dialer := gomail.NewDialer(s.Host, s.Port, username, s.Password)

	return &Mailer{
		from: s.From,
		to:   s.To,
		send: dialer.DialAndSend,
	}
}

// Deliver sends msg to the configured recipient.
func (m *Mailer) Deliver(msg Message) error {
	if err := m.send(m.build(msg)); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return nil
}

func (m *Mailer) build(msg Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", m.to)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	if len(msg.Screenshot) > 0 {
		shot := msg.Screenshot
		name, contentType := attachmentType(shot)
		gm.Attach(name,
			gomail.SetHeader(map[string][]string{"Content-Type": {contentType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(shot)
				return err
			}),
		)
	}

	return gm
}

// attachmentType names the screenshot after what its bytes actually are
func attachmentType(shot []byte) (name, contentType string) {
	if http.DetectContentType(shot) == "image/jpeg" {
		return strings.TrimSuffix(ScreenshotName, ".png") + ".jpg", "image/jpeg"
	}
	return ScreenshotName, "image/png"
}
