package adminapi

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lahorisamosa/lahorisamosa/internal/realtime"
)

// newTestContext builds an echo context backed by a sqlmock database and a
// fresh event bus, the same handles injectApp would have set.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, sqlmock.Sqlmock, *httptest.ResponseRecorder, *realtime.Bus) {
	t.Helper()

	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqldb}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	bus := realtime.NewBus()
	c.Set("lahori.db", gdb)
	c.Set("lahori.bus", bus)
	return c, mock, rec, bus
}

func requireFailCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rec.Code)
	require.Contains(t, rec.Body.String(), code)
}

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "customer_info", "items", "total", "payment_method", "status", "created_at", "updated_at",
	})
}
