package webserver

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
)

const (
	sessionCookie = "lahori_session"
	sessionIDKey  = "sid"

	// test override, set directly on the echo context
	ctxKeySessionID = "lahori.sid"
)

// SessionID returns the caller's cart session id, assigning one on first
// contact. The id is an opaque token in a signed cookie; it identifies a
// browser session only, not a user.
func SessionID(c echo.Context) string {
	if sid, ok := c.Get(ctxKeySessionID).(string); ok && sid != "" {
		return sid
	}

	// on a decode error the store still hands back a fresh session, so an
	// undecodable cookie falls through to minting a new id rather than
	// sharing the empty key across every such client
	sess, err := session.Get(sessionCookie, c)
	if sess == nil {
		return ""
	}
	if err == nil {
		if sid, ok := sess.Values[sessionIDKey].(string); ok && sid != "" {
			return sid
		}
	}

	sid := random.String(24)
	sess.Values[sessionIDKey] = sid
	sess.Options.HttpOnly = true
	sess.Options.Path = "/"
	sess.Options.MaxAge = 60 * 60 * 24 * 30
	_ = sess.Save(c.Request(), c.Response())
	return sid
}

// SetSessionID injects a fixed session id (used in tests)
func SetSessionID(c echo.Context, sid string) {
	c.Set(ctxKeySessionID, sid)
}
