package adminapi

import (
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"

	"github.com/lahorisamosa/lahorisamosa/internal/domain"
	"github.com/lahorisamosa/lahorisamosa/internal/realtime"
	"github.com/lahorisamosa/lahorisamosa/internal/webserver"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard", getDashboard)
	webserver.ApiGET("/stream", streamEvents)
}

type dashboardData struct {
	Orders struct {
		Total     int64 `json:"total"`
		Pending   int64 `json:"pending"`
		Confirmed int64 `json:"confirmed"`
		Delivered int64 `json:"delivered"`
		Cancelled int64 `json:"cancelled"`
	} `json:"orders"`
	Revenue        int64            `json:"revenue"`
	AvgOrderValue  float64          `json:"avg_order_value"`
	Messages       int64            `json:"messages"`
	UnreadMessages int64            `json:"unread_messages"`
	Subscribers    int64            `json:"subscribers"`
	System         interface{}      `json:"system"`
	RecentOrders   []domain.Order   `json:"recent_orders"`
	RecentMessages []domain.Message `json:"recent_messages"`
}

func getDashboard(c echo.Context) error {
	db := webserver.GetDB(c)
	var data dashboardData

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := db.Model(&domain.Order{}).
		Select("status, count(*) as count").Group("status").Scan(&counts).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	for _, sc := range counts {
		data.Orders.Total += sc.Count
		switch domain.OrderStatus(sc.Status) {
		case domain.OrderStatusPending:
			data.Orders.Pending = sc.Count
		case domain.OrderStatusConfirmed:
			data.Orders.Confirmed = sc.Count
		case domain.OrderStatusDelivered:
			data.Orders.Delivered = sc.Count
		case domain.OrderStatusCancelled:
			data.Orders.Cancelled = sc.Count
		}
	}

	// Revenue counts everything the store expects to collect; cancelled
	// orders are excluded.
	var totals []float64
	if err := db.Model(&domain.Order{}).
		Where("status <> ?", domain.OrderStatusCancelled).
		Pluck("total", &totals).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query revenue", err.Error())
	}
	for _, t := range totals {
		data.Revenue += int64(t)
	}
	if len(totals) > 0 {
		if mean, err := stats.Mean(totals); err == nil {
			data.AvgOrderValue = mean
		}
	}

	db.Model(&domain.Message{}).Count(&data.Messages)
	db.Model(&domain.Message{}).Where("read = ?", false).Count(&data.UnreadMessages)
	db.Model(&domain.Subscriber{}).Count(&data.Subscribers)

	db.Model(&domain.Order{}).Order("created_at DESC").Limit(5).Find(&data.RecentOrders)
	db.Model(&domain.Message{}).Order("created_at DESC").Limit(5).Find(&data.RecentMessages)

	data.System = webserver.GetApp(c).Monitor().Last()

	return ok(c, data)
}

// streamEvents pushes catalog-table change notifications to the dashboard as
// server-sent events. One subscription per table; events for a single table
// arrive in publish order.
func streamEvents(c echo.Context) error {
	bus := webserver.GetBus(c)
	events := make(chan realtime.Event, 64)
	handler := func(evt realtime.Event) {
		select {
		case events <- evt:
		default:
			// slow client; it will recover on the next reconcile broadcast
		}
	}

	var cancels []func()
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()
	for _, table := range []string{realtime.TableOrders, realtime.TableMessages, realtime.TableSubscribers} {
		cancel, err := bus.Subscribe(table, handler)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "STREAM_ERROR", "Failed to subscribe", err.Error())
		}
		cancels = append(cancels, cancel)
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	keepalive := time.NewTicker(15 * time.Second)
	defer keepalive.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-keepalive.C:
			if _, err := fmt.Fprint(resp, ": ping\n\n"); err != nil {
				return nil
			}
			resp.Flush()
		case evt := <-events:
			body, err := jsoniter.MarshalToString(evt)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(resp, "event: %s\ndata: %s\n\n", evt.Table, body); err != nil {
				return nil
			}
			resp.Flush()
		}
	}
}
