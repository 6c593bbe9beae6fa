package storeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lahorisamosa/lahorisamosa/config"
	"github.com/lahorisamosa/lahorisamosa/internal/mailer"
)

type recordingTransport struct {
	sent []*mailer.Message
	err  error
}

func (rt *recordingTransport) Send(_ context.Context, _ mailer.Sender, msg *mailer.Message) error {
	if rt.err != nil {
		return rt.err
	}
	rt.sent = append(rt.sent, msg)
	return nil
}

func relayContext(t *testing.T, body string, transport mailer.Transport) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	ctx, _, r, _ := newTestContext(t, http.MethodPost, "/api/send-email", body)
	m := mailer.NewWithTransport(config.MailerConfig{
		SenderName:  "Lahori Samosa",
		SenderEmail: "orders@lahorisamosa.pk",
	}, transport)
	ctx.Set("lahori.mailer", m)
	return ctx, r
}

func TestSendEmailMissingFields(t *testing.T) {
	rt := &recordingTransport{}
	c, rec := relayContext(t, `{"to":"a@b.com","subject":""}`, rt)

	require.NoError(t, sendEmail(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_FIELDS")
	assert.Empty(t, rt.sent)
}

func TestSendEmailSingleRecipient(t *testing.T) {
	rt := &recordingTransport{}
	c, rec := relayContext(t,
		`{"to":"a@b.com","subject":"Hi","htmlContent":"<p>Hello</p>"}`, rt)

	require.NoError(t, sendEmail(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rt.sent, 1)
	assert.Equal(t, []string{"a@b.com"}, rt.sent[0].To)
	assert.Equal(t, "Hi", rt.sent[0].Subject)
}

func TestSendEmailRecipientList(t *testing.T) {
	rt := &recordingTransport{}
	c, rec := relayContext(t,
		`{"to":["a@b.com","c@d.com"],"subject":"Hi","textContent":"Hello"}`, rt)

	require.NoError(t, sendEmail(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rt.sent, 1)
	assert.Equal(t, []string{"a@b.com", "c@d.com"}, rt.sent[0].To)
}

func TestSendEmailProviderRejection(t *testing.T) {
	rt := &recordingTransport{err: &mailer.ProviderError{StatusCode: http.StatusUnauthorized, Body: `{"message":"Key not found"}`}}
	c, rec := relayContext(t,
		`{"to":"a@b.com","subject":"Hi","htmlContent":"<p>Hello</p>"}`, rt)

	require.NoError(t, sendEmail(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "PROVIDER_ERROR")
	assert.Contains(t, rec.Body.String(), "Key not found")
}

func TestSendEmailUnconfigured(t *testing.T) {
	rt := &recordingTransport{}
	c, _, rec, _ := newTestContext(t, http.MethodPost, "/api/send-email",
		`{"to":"a@b.com","subject":"Hi","htmlContent":"<p>Hello</p>"}`)
	// no sender address configured
	c.Set("lahori.mailer", mailer.NewWithTransport(config.MailerConfig{}, rt))

	require.NoError(t, sendEmail(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "MAIL_CONFIG")
}
