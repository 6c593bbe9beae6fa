package storeapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/lahorisamosa/lahorisamosa/internal/domain"
	"github.com/lahorisamosa/lahorisamosa/internal/realtime"
	"github.com/lahorisamosa/lahorisamosa/internal/webserver"
	"github.com/lahorisamosa/lahorisamosa/pkg/common"
)

func registerContactRoutes() {
	webserver.PubPOST("/contact", createMessage)
	webserver.PubPOST("/subscribe", subscribe)
}

type contactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func createMessage(c echo.Context) error {
	var payload contactPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse message", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Message = strings.TrimSpace(payload.Message)
	if payload.Name == "" || payload.Email == "" || payload.Message == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name, email and message are required", nil)
	}

	msg := domain.Message{
		ID:      common.UUIDint64(),
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   strings.TrimSpace(payload.Phone),
		Subject: strings.TrimSpace(payload.Subject),
		Message: payload.Message,
	}
	if err := webserver.GetDB(c).Create(&msg).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save message", err.Error())
	}

	webserver.GetBus(c).Publish(realtime.TableMessages, realtime.EventInsert, msg)
	return ok(c, msg)
}

type subscribePayload struct {
	Email string `json:"email"`
}

func subscribe(c echo.Context) error {
	var payload subscribePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse email", err.Error())
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Email == "" || !strings.Contains(payload.Email, "@") {
		return fail(c, http.StatusBadRequest, "INVALID_EMAIL", "A valid email is required", nil)
	}

	sub := domain.Subscriber{ID: common.UUIDint64(), Email: payload.Email}
	err := webserver.GetDB(c).Create(&sub).Error
	if err != nil {
		// a repeated subscribe is success, not an error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ok(c, map[string]interface{}{"email": payload.Email, "subscribed": true})
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to subscribe", err.Error())
	}

	webserver.GetBus(c).Publish(realtime.TableSubscribers, realtime.EventInsert, sub)
	return ok(c, map[string]interface{}{"email": payload.Email, "subscribed": true})
}
