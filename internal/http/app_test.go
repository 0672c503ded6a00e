package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"fangji/internal/config"
	"fangji/internal/http/handlers"
	"fangji/internal/metrics"
	"fangji/internal/repos"
)

type testApp struct {
	app   *fiber.App
	deps  *handlers.Deps
	clock *repos.FakeClock
}

// newApp wires the real routes over an in-memory database, the way main does.
func newApp(t *testing.T, seed bool, searchRate int) testApp {
	t.Helper()
	cfg := config.Config{
		DBDSN:           ":memory:",
		TemplatesDir:    "../../web/templates",
		StaticDir:       "../../web/static",
		SearchRateLimit: searchRate,
	}
	db, err := repos.OpenDB(cfg.DBDSN, seed)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	engine := html.New(cfg.TemplatesDir, ".html")
	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    1 << 20,
	})
	app.Use(requestid.New())
	app.Use(m.Middleware())

	deps := handlers.NewDeps(db, m)
	clock := repos.NewFakeClock(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	deps.Repo.WithClock(clock)
	handlers.Register(app, deps, cfg, reg)

	return testApp{app: app, deps: deps, clock: clock}
}

// do sends a request with an optional JSON body and returns status and raw body.
func (a testApp) do(t *testing.T, method, url string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			rd = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, url, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func (a testApp) doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	status, raw := a.do(t, method, url, body)
	require.NoError(t, json.Unmarshal(raw, out), "body=%s", raw)
	return status
}

type errBody struct {
	Error string `json:"error"`
}
