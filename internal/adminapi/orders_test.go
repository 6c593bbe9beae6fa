package adminapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lahorisamosa/lahorisamosa/internal/realtime"
)

func TestUpdateOrderStatusUnknownStatus(t *testing.T) {
	c, _, rec, _ := newTestContext(t, http.MethodPut, "/admin/api/orders/LAHORI1/status", `{"status":"shipped"}`)
	c.SetParamNames("id")
	c.SetParamValues("LAHORI1")

	require.NoError(t, updateOrderStatus(c))
	requireFailCode(t, rec, http.StatusBadRequest, "INVALID_STATUS")
}

func TestUpdateOrderStatusForbiddenTransition(t *testing.T) {
	c, mock, rec, _ := newTestContext(t, http.MethodPut, "/admin/api/orders/LAHORI1/status", `{"status":"confirmed"}`)
	c.SetParamNames("id")
	c.SetParamValues("LAHORI1")

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(orderRows().AddRow(
			"LAHORI1",
			[]byte(`{"name":"Ayesha","phone":"03001234567","email":"","address":"Lahore"}`),
			[]byte(`[]`),
			750, "cod", "delivered", now, now,
		))

	require.NoError(t, updateOrderStatus(c))
	requireFailCode(t, rec, http.StatusForbidden, "INVALID_TRANSITION")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusConfirmsAndPublishes(t *testing.T) {
	c, mock, rec, bus := newTestContext(t, http.MethodPut, "/admin/api/orders/LAHORI1/status", `{"status":"confirmed"}`)
	c.SetParamNames("id")
	c.SetParamValues("LAHORI1")

	var seen []realtime.Event
	_, err := bus.Subscribe(realtime.TableOrders, func(evt realtime.Event) {
		seen = append(seen, evt)
	})
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(orderRows().AddRow(
			"LAHORI1",
			[]byte(`{"name":"Ayesha","phone":"03001234567","email":"","address":"Lahore"}`),
			[]byte(`[{"id":"1","name":"Chicken Samosa","price":650,"quantity":1}]`),
			750, "cod", "pending", now, now,
		))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, updateOrderStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"confirmed"`)

	require.Len(t, seen, 1)
	assert.Equal(t, realtime.EventUpdate, seen[0].Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderNotFound(t *testing.T) {
	c, mock, rec, _ := newTestContext(t, http.MethodGet, "/admin/api/orders/NOPE", "")
	c.SetParamNames("id")
	c.SetParamValues("NOPE")

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(orderRows())

	require.NoError(t, getOrder(c))
	requireFailCode(t, rec, http.StatusNotFound, "NOT_FOUND")
}
