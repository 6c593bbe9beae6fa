package adminapi

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lahorisamosa/lahorisamosa/internal/domain"
	"github.com/lahorisamosa/lahorisamosa/internal/webserver"
	"github.com/lahorisamosa/lahorisamosa/pkg/common"
)

func registerLoginRoutes() {
	webserver.ApiPOST("/login", adminLogin)
}

type loginPayload struct {
	Pin string `json:"pin"`
}

// adminLogin verifies the PIN against the stored hash and issues a session
// token. The PIN never reaches any client-side storage.
func adminLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login request", err.Error())
	}
	pin := strings.TrimSpace(payload.Pin)
	if pin == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "PIN is required", nil)
	}

	var operator domain.SysOpr
	if err := webserver.GetDB(c).Where("username = ?", "admin").First(&operator).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "PIN_NOT_CONFIGURED", "System Error: Admin PIN not configured", nil)
	}
	if operator.Status != common.ENABLED {
		return fail(c, http.StatusForbidden, "DISABLED", "Admin account disabled", nil)
	}

	hashed := common.Pbkdf2Hash(pin, common.GetSecretSalt())
	if subtle.ConstantTimeCompare([]byte(hashed), []byte(operator.Password)) != 1 {
		zap.L().Warn("admin login rejected", zap.String("ip", c.RealIP()))
		return fail(c, http.StatusUnauthorized, "INVALID_PIN", "Incorrect PIN", nil)
	}

	token, err := webserver.IssueAdminToken(c, operator.Username)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue session token", err.Error())
	}

	db := webserver.GetDB(c)
	db.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Update("last_login", time.Now())
	db.Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   operator.Username,
		OprIp:     c.RealIP(),
		OptAction: "login",
		OptDesc:   "admin dashboard login",
		OptTime:   time.Now(),
	})

	return ok(c, map[string]interface{}{"token": token})
}
