package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"

	"fangji/internal/config"
	"fangji/internal/log"
	"fangji/internal/metrics"
)

// Register mounts every route. gatherer may be nil, in which case /metrics is not served.
func Register(app *fiber.App, d *Deps, cfg config.Config, gatherer prometheus.Gatherer) {
	app.Static("/static", cfg.StaticDir)

	// Pages
	app.Get("/", d.PageHandler.Home)
	app.Get("/detail/:id", d.PageHandler.Detail)

	// Ops
	app.Get("/healthz", d.HealthHandler.Check)
	if gatherer != nil {
		app.Get("/metrics", metrics.Handler(gatherer))
	}

	// API
	api := app.Group("/api")
	api.Get("/prescriptions", d.PrescriptionHandler.List)
	api.Post("/prescriptions", d.PrescriptionHandler.Create)
	// before /:id so "search" is not taken for an id
	api.Get("/prescriptions/search", searchLimiter(cfg.SearchRateLimit), d.SearchHandler.Search)
	api.Get("/prescriptions/:id", d.PrescriptionHandler.Get)
	api.Put("/prescriptions/:id", d.PrescriptionHandler.Update)
	api.Delete("/prescriptions/:id", d.PrescriptionHandler.Delete)
	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/stats", d.CategoryHandler.Stats)

	api.Use(func(c *fiber.Ctx) error {
		return jsonError(c, fiber.StatusNotFound, "not found")
	})
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "页面不存在"})
	})
}

// searchLimiter throttles search per client IP. perMinute <= 0 disables it.
func searchLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|search"
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Security(c, "rate.search.hit", map[string]any{"max": strconv.Itoa(perMinute)})
			return jsonError(c, fiber.StatusTooManyRequests, "请求过于频繁，请稍后再试")
		},
	})
}
