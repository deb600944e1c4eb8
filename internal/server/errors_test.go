package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/category"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/checkout"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/order"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/product"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/user"
	"github.com/IgnacioLauriano/vive-salud/internal/service"
)

// failApp mounts fail behind a route so tests can exercise the full
// error-to-response path.
func failApp(t *testing.T, pick func(idx int) error) http.Handler {
	t.Helper()
	app := iris.New()
	app.Get("/boom/{idx:int}", func(ctx iris.Context) {
		idx, _ := ctx.Params().GetInt("idx")
		fail(ctx, pick(idx))
	})
	require.NoError(t, app.Build())
	return app
}

func TestFailStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"empty cart", checkout.ErrEmptyCart, http.StatusBadRequest},
		{"invalid item", checkout.ErrInvalidItem, http.StatusBadRequest},
		{"bad status filter", service.ErrBadStatusFilter, http.StatusBadRequest},
		{"unauthenticated", checkout.ErrUnauthenticated, http.StatusUnauthorized},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"checkout product missing", checkout.ErrProductNotFound, http.StatusNotFound},
		{"order missing", order.ErrNotFound, http.StatusNotFound},
		{"user missing", user.ErrNotFound, http.StatusNotFound},
		{"product missing", product.ErrNotFound, http.StatusNotFound},
		{"category missing", category.ErrNotFound, http.StatusNotFound},
		{"insufficient stock", &checkout.InsufficientStockError{ProductName: "Zinc", Available: 2}, http.StatusConflict},
		{"status final", order.ErrStatusFinal, http.StatusConflict},
		{"persistence", &checkout.PersistenceError{Err: errors.New("connection reset")}, http.StatusInternalServerError},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError},
	}

	app := failApp(t, func(idx int) error { return cases[idx].err })

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom/"+strconv.Itoa(i), nil))

			assert.Equal(t, tc.status, w.Code)
			var body struct {
				OK bool `json:"ok"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.OK)
		})
	}
}

func TestFailNeverLeaksStorageErrorText(t *testing.T) {
	raw := errors.New("Error 1205: Lock wait timeout exceeded")
	app := failApp(t, func(int) error { return &checkout.PersistenceError{Err: raw} })

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom/0", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := w.Body.String()
	assert.False(t, strings.Contains(body, "1205"), "raw storage error leaked: %s", body)
	assert.False(t, strings.Contains(body, "Lock wait"), "raw storage error leaked: %s", body)
}
