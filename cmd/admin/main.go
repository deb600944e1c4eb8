package main

import (
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/IgnacioLauriano/vive-salud/internal/config"
	"github.com/IgnacioLauriano/vive-salud/internal/logging"
	"github.com/IgnacioLauriano/vive-salud/internal/server"
)

func main() {
	cfg, err := config.Load("./config")
	if err != nil {
		panic(err)
	}

	logging.Init(false)
	defer logging.Sync()

	app := iris.New()
	server.RegisterAdminRoutes(app, cfg)

	addr := cfg.AdminServer.Addr()
	zap.L().Info("admin server listening", zap.String("addr", addr))
	if err := app.Run(
		iris.Addr(addr),
		iris.WithOptimizations,
		iris.WithoutServerError(iris.ErrServerClosed),
	); err != nil {
		zap.L().Fatal("app run failed", zap.Error(err))
	}
}
