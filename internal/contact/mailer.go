package contact

import (
	"fmt"
	"net/smtp"
	"strings"

	"musyoka.dev/internal/config"
	"musyoka.dev/internal/models"
	"musyoka.dev/internal/oops"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier mails contact messages to the configured inbox
type SMTPNotifier struct {
	cfg  config.SMTPConfig
	send sendFunc
}

func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail}
}

func (n *SMTPNotifier) Notify(m *models.ContactMessage) error {
	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	if err := n.send(n.cfg.Addr(), auth, n.cfg.User, []string{n.cfg.To}, n.compose(m)); err != nil {
		return oops.New(err, "failed to send mail via %s", n.cfg.Addr())
	}
	return nil
}

func (n *SMTPNotifier) compose(m *models.ContactMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", n.cfg.To)
	fmt.Fprintf(&b, "From: %s\r\n", n.cfg.User)
	fmt.Fprintf(&b, "Reply-To: %s\r\n", headerSafe(m.Email))
	fmt.Fprintf(&b, "Subject: Portfolio Contact: %s\r\n", headerSafe(m.Name))
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "New contact form submission from your portfolio:\r\n\r\nName: %s\r\nEmail: %s\r\nMessage:\r\n%s\r\n", m.Name, m.Email, m.Message)
	return []byte(b.String())
}

// headerSafe strips line breaks so user input cannot add mail headers
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
