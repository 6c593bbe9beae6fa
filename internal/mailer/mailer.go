// Package mailer is the transactional email relay: it forwards
// {to, subject, htmlContent} requests to the provider with server-held
// credentials. One delivery attempt per call, no queue, no retry.
package mailer

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/lahorisamosa/lahorisamosa/config"
)

// ErrNotConfigured means the provider credentials are missing. This is a
// fatal misconfiguration, surfaced to callers as a server error.
var ErrNotConfigured = errors.New("mailer: provider credentials not configured")

// ProviderError carries a provider-side rejection with its original status
// and response payload.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("mailer: provider rejected message: status=%d body=%s", e.StatusCode, e.Body)
}

// Message is a single outbound email. HTMLContent wins over TextContent
// when both are set.
type Message struct {
	To          []string
	Subject     string
	HTMLContent string
	TextContent string
}

func (m *Message) content() string {
	if m.HTMLContent != "" {
		return m.HTMLContent
	}
	return m.TextContent
}

// Transport delivers an assembled message to a provider
type Transport interface {
	Send(ctx context.Context, sender Sender, msg *Message) error
}

// Sender identifies the configured from-address
type Sender struct {
	Name  string
	Email string
}

type Mailer struct {
	sender    Sender
	transport Transport
}

// New builds a Mailer from config. The transport is selected by
// cfg.Transport: "smtp" uses the gomail dialer, anything else the Brevo
// HTTP API.
func New(cfg config.MailerConfig) *Mailer {
	var transport Transport
	if cfg.Transport == "smtp" {
		transport = newSmtpTransport(cfg)
	} else {
		transport = newBrevoTransport(cfg)
	}
	return NewWithTransport(cfg, transport)
}

// NewWithTransport wires an explicit transport (used in tests)
func NewWithTransport(cfg config.MailerConfig, transport Transport) *Mailer {
	return &Mailer{
		sender:    Sender{Name: cfg.SenderName, Email: cfg.SenderEmail},
		transport: transport,
	}
}

// Send validates and delivers msg. Returns ErrNotConfigured, a
// *ProviderError, or a generic network failure.
func (m *Mailer) Send(ctx context.Context, msg *Message) error {
	if m.sender.Email == "" {
		return ErrNotConfigured
	}
	if len(msg.To) == 0 || msg.Subject == "" || msg.content() == "" {
		return errors.New("mailer: missing required fields")
	}
	return m.transport.Send(ctx, m.sender, msg)
}
