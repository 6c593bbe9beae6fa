package storeapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lahorisamosa/lahorisamosa/internal/domain"
	"github.com/lahorisamosa/lahorisamosa/internal/webserver"
)

func registerProductRoutes() {
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/:id", getProduct)
}

func listProducts(c echo.Context) error {
	var rows []domain.Product
	if err := webserver.GetDB(c).Order("sort ASC, id ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, rows)
}

func getProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := webserver.GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		// degrade to a not-found view rather than a hard failure
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}
