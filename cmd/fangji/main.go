package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"fangji/internal/config"
	"fangji/internal/http/handlers"
	applog "fangji/internal/log"
	"fangji/internal/metrics"
	"fangji/internal/repos"
)

func main() {
	cfg := config.Load()

	zl, err := applog.Init(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		panic(err)
	}
	defer func() { _ = zl.Sync() }()
	zl.Info("starting", cfg.Fields()...)

	db, err := repos.OpenDB(cfg.DBDSN, cfg.SeedSampleData)
	if err != nil {
		zl.Fatal("open database", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Templates & app
	engine := html.New(cfg.TemplatesDir, ".html")

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ErrorHandler:          handlers.ErrorHandler,
		BodyLimit:             1 << 20, // 1 MiB
		DisableStartupMessage: true,
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(m.Middleware())

	deps := handlers.NewDeps(db, m)
	handlers.Register(app, deps, cfg, reg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit
		applog.L().Info("shutting down", zap.String("signal", sig.String()))
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			applog.L().Error("shutdown", zap.Error(err))
		}
	}()

	applog.L().Info("listening", zap.String("addr", ":"+cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		applog.L().Error("listen", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		applog.L().Error("close database", zap.Error(err))
	}
	applog.L().Info("stopped")
}
