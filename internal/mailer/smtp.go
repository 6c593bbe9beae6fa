package mailer

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"github.com/lahorisamosa/lahorisamosa/config"
)

// smtpTransport delivers through a plain SMTP server for self-hosted
// deployments that do not use the Brevo API.
type smtpTransport struct {
	host   string
	port   int
	user   string
	passwd string
}

func newSmtpTransport(cfg config.MailerConfig) *smtpTransport {
	return &smtpTransport{
		host:   cfg.SmtpHost,
		port:   cfg.SmtpPort,
		user:   cfg.SmtpUser,
		passwd: cfg.SmtpPasswd,
	}
}

func (t *smtpTransport) Send(ctx context.Context, sender Sender, msg *Message) error {
	if t.host == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", sender.Name, sender.Email))
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	if msg.HTMLContent != "" {
		m.SetBody("text/html", msg.HTMLContent)
	} else {
		m.SetBody("text/plain", msg.TextContent)
	}

	d := gomail.NewDialer(t.host, t.port, t.user, t.passwd)
	if err := d.DialAndSend(m); err != nil {
		return errors.Wrap(err, "mailer: smtp send failed")
	}
	return nil
}
