package storeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lahorisamosa/lahorisamosa/internal/mailer"
	"github.com/lahorisamosa/lahorisamosa/internal/webserver"
)

func registerRelayRoutes() {
	webserver.PubPOST("/send-email", sendEmail)
}

// relayPayload accepts `to` as a single address or a list
type relayPayload struct {
	To          interface{} `json:"to"`
	Subject     string      `json:"subject"`
	HtmlContent string      `json:"htmlContent"`
	TextContent string      `json:"textContent"`
}

func (p *relayPayload) recipients() []string {
	switch v := p.To.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []interface{}:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// sendEmail is the relay endpoint: it forwards the request to the provider
// using server-held credentials. One attempt, no retry.
func sendEmail(c echo.Context) error {
	var payload relayPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse email request", err.Error())
	}

	to := payload.recipients()
	if len(to) == 0 || payload.Subject == "" || (payload.HtmlContent == "" && payload.TextContent == "") {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "Missing required fields", nil)
	}

	err := webserver.GetMailer(c).Send(c.Request().Context(), &mailer.Message{
		To:          to,
		Subject:     payload.Subject,
		HTMLContent: payload.HtmlContent,
		TextContent: payload.TextContent,
	})
	if err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			return fail(c, http.StatusInternalServerError, "MAIL_CONFIG", "Server misconfiguration: missing provider credentials", nil)
		}
		var perr *mailer.ProviderError
		if errors.As(err, &perr) {
			// propagate the provider's status and payload
			return fail(c, perr.StatusCode, "PROVIDER_ERROR", "Failed to send email via provider", perr.Body)
		}
		return fail(c, http.StatusInternalServerError, "MAIL_ERROR", "No response from email provider", nil)
	}
	return ok(c, map[string]interface{}{"success": true})
}
