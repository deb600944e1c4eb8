package server

import (
	"errors"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/category"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/checkout"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/order"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/product"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/user"
	"github.com/IgnacioLauriano/vive-salud/internal/service"
)

// fail maps a service error to a stable status code and a sanitized
// message. Raw storage error text goes to the log only.
func fail(ctx iris.Context, err error) {
	var (
		stockErr *checkout.InsufficientStockError
		persErr  *checkout.PersistenceError
	)
	switch {
	case errors.Is(err, checkout.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidCredentials):
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"ok": false, "error": err.Error()})

	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidItem),
		errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrBadStatusFilter):
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"ok": false, "error": err.Error()})

	case errors.Is(err, checkout.ErrProductNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, category.ErrNotFound):
		ctx.StopWithJSON(iris.StatusNotFound, iris.Map{"ok": false, "error": err.Error()})

	case errors.As(err, &stockErr):
		ctx.StopWithJSON(iris.StatusConflict, iris.Map{
			"ok":        false,
			"error":     stockErr.Error(),
			"product":   stockErr.ProductName,
			"available": stockErr.Available,
		})

	case errors.Is(err, order.ErrStatusFinal):
		ctx.StopWithJSON(iris.StatusConflict, iris.Map{"ok": false, "error": err.Error()})

	case errors.As(err, &persErr):
		zap.L().Error("persistence failure",
			zap.String("path", ctx.Path()),
			zap.Error(persErr.Err),
		)
		ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{
			"ok":    false,
			"error": "temporary storage failure, please retry",
		})

	default:
		zap.L().Error("unhandled error",
			zap.String("path", ctx.Path()),
			zap.Error(err),
		)
		ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{
			"ok":    false,
			"error": "internal error",
		})
	}
}
