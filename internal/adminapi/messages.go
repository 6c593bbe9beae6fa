package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lahorisamosa/lahorisamosa/internal/domain"
	"github.com/lahorisamosa/lahorisamosa/internal/webserver"
)

func registerMessageRoutes() {
	webserver.ApiGET("/messages", listMessages)
	webserver.ApiPUT("/messages/:id/read", markMessageRead)
	webserver.ApiDELETE("/messages/:id", deleteMessage)
}

func listMessages(c echo.Context) error {
	page, pageSize := webserver.ParsePagination(c)

	db := webserver.GetDB(c).Model(&domain.Message{})

	switch strings.TrimSpace(c.QueryParam("read")) {
	case "true":
		db = db.Where("read = ?", true)
	case "false":
		db = db.Where("read = ?", false)
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + q + "%"
		db = db.Where("name ILIKE ? OR email ILIKE ? OR message ILIKE ?", like, like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query messages", err.Error())
	}

	var rows []domain.Message
	if err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query messages", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func markMessageRead(c echo.Context) error {
	db := webserver.GetDB(c)
	var msg domain.Message
	if err := db.Where("id = ?", c.Param("id")).First(&msg).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Message not found", nil)
	}
	if !msg.Read {
		if err := db.Model(&domain.Message{}).Where("id = ?", msg.ID).
			Update("read", true).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update message", err.Error())
		}
		msg.Read = true
	}
	return ok(c, msg)
}

func deleteMessage(c echo.Context) error {
	if err := webserver.GetDB(c).Where("id = ?", c.Param("id")).
		Delete(&domain.Message{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete message", err.Error())
	}
	return ok(c, nil)
}
