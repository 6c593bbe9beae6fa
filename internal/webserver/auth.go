package webserver

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const adminTokenTTL = 24 * time.Hour

// IssueAdminToken signs a short-lived admin session token
func IssueAdminToken(c echo.Context, username string) (string, error) {
	cfg := GetApp(c).Config()
	claims := jwt.MapClaims{
		"sub":   username,
		"level": "super",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(adminTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Web.JwtSecret))
}

// AdminUsername extracts the operator name from the verified JWT
func AdminUsername(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
