package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lahorisamosa/lahorisamosa/internal/domain"
	"github.com/lahorisamosa/lahorisamosa/internal/mailer"
	"github.com/lahorisamosa/lahorisamosa/internal/realtime"
	"github.com/lahorisamosa/lahorisamosa/internal/webserver"
)

func registerOrderRoutes() {
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiGET("/orders/export", exportOrders)
	webserver.ApiGET("/orders/:id", getOrder)
	webserver.ApiPUT("/orders/:id/status", updateOrderStatus)
}

func listOrders(c echo.Context) error {
	page, pageSize := webserver.ParsePagination(c)

	// Sorting: whitelist allowed sort columns
	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	allowed := map[string]string{
		"id":         "id",
		"total":      "total",
		"status":     "status",
		"created_at": "created_at",
	}
	sortCol, okCol := allowed[sortField]
	if !okCol || sortCol == "" {
		sortCol = "created_at"
	}

	db := webserver.GetDB(c).Model(&domain.Order{})

	if status := strings.TrimSpace(c.QueryParam("status")); status != "" && status != "all" {
		if !domain.OrderStatus(status).Valid() {
			return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown order status", nil)
		}
		db = db.Where("status = ?", status)
	}

	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + q + "%"
		db = db.Where("id ILIKE ? OR customer_info->>'name' ILIKE ? OR customer_info->>'phone' ILIKE ?",
			like, like, like)
	}

	// created_at range; dateparse accepts most human formats
	if from := strings.TrimSpace(c.QueryParam("from")); from != "" {
		t, err := dateparse.ParseAny(from)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse 'from' date", err.Error())
		}
		db = db.Where("created_at >= ?", t)
	}
	if to := strings.TrimSpace(c.QueryParam("to")); to != "" {
		t, err := dateparse.ParseAny(to)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse 'to' date", err.Error())
		}
		db = db.Where("created_at <= ?", t)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}

	var rows []domain.Order
	if err := db.Order(sortCol + " " + order).
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getOrder(c echo.Context) error {
	var o domain.Order
	if err := webserver.GetDB(c).Where("id = ?", c.Param("id")).First(&o).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}
	return ok(c, o)
}

type statusPayload struct {
	Status string `json:"status"`
}

// updateOrderStatus moves an order along the pending -> confirmed ->
// delivered chain (or to cancelled while not terminal), then notifies the
// customer. The email is dispatched off the request path; its failure never
// rolls the update back.
func updateOrderStatus(c echo.Context) error {
	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", err.Error())
	}
	next := domain.OrderStatus(payload.Status)
	if !next.Valid() {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown order status", nil)
	}

	db := webserver.GetDB(c)
	var order domain.Order
	if err := db.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}

	if !order.Status.CanTransition(next) {
		return fail(c, http.StatusForbidden, "INVALID_TRANSITION",
			fmt.Sprintf("Order cannot move from %s to %s", order.Status, next), nil)
	}

	if err := db.Model(&domain.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":     next,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order", err.Error())
	}
	order.Status = next

	webserver.GetBus(c).Publish(realtime.TableOrders, realtime.EventUpdate, order)

	if order.CustomerInfo.Email != "" {
		currency := webserver.GetApp(c).Currency()
		msg, err := mailer.RenderStatusEmail(&order, next, currency)
		if err != nil {
			zap.L().Warn("failed to render status email", zap.String("order_id", order.ID), zap.Error(err))
		} else if msg != nil {
			webserver.GetDispatcher(c).Dispatch(msg)
		}
	}

	return ok(c, order)
}

// orderCSV is the export row shape
type orderCSV struct {
	ID            string `csv:"order_id"`
	CustomerName  string `csv:"customer_name"`
	CustomerPhone string `csv:"customer_phone"`
	CustomerEmail string `csv:"customer_email"`
	Address       string `csv:"address"`
	Items         string `csv:"items"`
	Total         int    `csv:"total"`
	PaymentMethod string `csv:"payment_method"`
	Status        string `csv:"status"`
	CreatedAt     string `csv:"created_at"`
}

func exportOrders(c echo.Context) error {
	var rows []domain.Order
	if err := webserver.GetDB(c).Order("created_at DESC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}

	out := make([]orderCSV, 0, len(rows))
	for _, o := range rows {
		var parts []string
		for _, it := range o.Items {
			parts = append(parts, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
		}
		out = append(out, orderCSV{
			ID:            o.ID,
			CustomerName:  o.CustomerInfo.Name,
			CustomerPhone: o.CustomerInfo.Phone,
			CustomerEmail: o.CustomerInfo.Email,
			Address:       o.CustomerInfo.Address,
			Items:         strings.Join(parts, "; "),
			Total:         o.Total,
			PaymentMethod: o.PaymentMethod,
			Status:        string(o.Status),
			CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="orders-%s.csv"`, time.Now().Format("2006-01-02")))
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(&out, c.Response())
}
