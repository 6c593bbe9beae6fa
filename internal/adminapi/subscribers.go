package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lahorisamosa/lahorisamosa/internal/domain"
	"github.com/lahorisamosa/lahorisamosa/internal/webserver"
)

func registerSubscriberRoutes() {
	webserver.ApiGET("/subscribers", listSubscribers)
	webserver.ApiDELETE("/subscribers/:id", deleteSubscriber)
}

func listSubscribers(c echo.Context) error {
	page, pageSize := webserver.ParsePagination(c)

	db := webserver.GetDB(c).Model(&domain.Subscriber{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("email ILIKE ?", "%"+q+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query subscribers", err.Error())
	}

	var rows []domain.Subscriber
	if err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query subscribers", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func deleteSubscriber(c echo.Context) error {
	if err := webserver.GetDB(c).Where("id = ?", c.Param("id")).
		Delete(&domain.Subscriber{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete subscriber", err.Error())
	}
	return ok(c, nil)
}
