package mailer

import (
	"context"
	"net/http"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"

	"github.com/lahorisamosa/lahorisamosa/config"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

type brevoRecipient struct {
	Email string `json:"email"`
}

type brevoSender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type brevoPayload struct {
	Sender      brevoSender      `json:"sender"`
	To          []brevoRecipient `json:"to"`
	Subject     string           `json:"subject"`
	HtmlContent string           `json:"htmlContent"`
}

// brevoTransport posts to the Brevo SMTP API with the server-held api key
type brevoTransport struct {
	apiKey   string
	endpoint string
	timeout  time.Duration
}

func newBrevoTransport(cfg config.MailerConfig) *brevoTransport {
	return &brevoTransport{
		apiKey:   cfg.ApiKey,
		endpoint: brevoEndpoint,
		timeout:  15 * time.Second,
	}
}

func (t *brevoTransport) Send(ctx context.Context, sender Sender, msg *Message) error {
	if t.apiKey == "" {
		return ErrNotConfigured
	}

	payload := brevoPayload{
		Sender:      brevoSender{Name: sender.Name, Email: sender.Email},
		Subject:     msg.Subject,
		HtmlContent: msg.content(),
	}
	for _, to := range msg.To {
		payload.To = append(payload.To, brevoRecipient{Email: to})
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var (
		code int
		body string
	)
	err := gout.POST(t.endpoint).
		WithContext(ctx).
		SetHeader(gout.H{
			"accept":       "application/json",
			"api-key":      t.apiKey,
			"content-type": "application/json",
		}).
		SetJSON(payload).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		return errors.Wrap(err, "mailer: no response from email provider")
	}
	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		return &ProviderError{StatusCode: code, Body: body}
	}
	return nil
}
