// Package api serves the rendered dashboard over HTTP for interactive
// viewing. Each request owns a full data snapshot; the figure is re-rendered
// when the cached copy expires.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/beeport/incentiviz/cache"
	"github.com/beeport/incentiviz/config"
	"github.com/beeport/incentiviz/orm"
	"github.com/beeport/incentiviz/plot"
	"github.com/beeport/incentiviz/store"
	"github.com/beeport/incentiviz/types"
)

const chartCacheKey = "dashboard"

type Api struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *orm.Database
	charts *cache.TTLCache[string, []byte]
}

func New(cfg *config.Config, logger *slog.Logger, db *orm.Database) *Api {
	return &Api{
		cfg:    cfg,
		logger: logger,
		db:     db,
		charts: cache.NewTTL[string, []byte](cfg.GetCacheSize(), cfg.GetCacheTTL()),
	}
}

func (a *Api) Start() error {
	app := fiber.New(fiber.Config{
		AppName:               "Incentiviz",
		DisableStartupMessage: true,
	})

	app.Get("/health", health)
	app.Get("/", a.index)
	app.Get("/chart.png", a.chart)

	port := a.cfg.GetListenPort()
	a.logger.Info("starting dashboard server", slog.String("addr", fmt.Sprintf("http://localhost:%s", port)))

	return app.Listen(":" + port)
}

// health handles GET /health
func health(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// index handles GET / with a minimal page embedding the figure.
func (a *Api) index(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!doctype html>
<html>
<head><title>Storage Incentives Metrics</title>
<style>body{margin:0;background:#0B0B0B}img{width:100vw}</style></head>
<body><img src="/chart.png" alt="storage incentives dashboard"></body>
</html>`)
}

// chart handles GET /chart.png, rendering the dashboard on demand.
func (a *Api) chart(c *fiber.Ctx) error {
	if png, ok := a.charts.Get(chartCacheKey); ok {
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(png)
	}

	ctx, cancel := context.WithTimeout(c.Context(), a.cfg.GetQueryTimeout())
	defer cancel()

	png, err := a.render(ctx)
	if err != nil {
		a.logger.Error("chart render failed", slog.Any("error", err))
		var serr *types.StandardError
		if errors.As(err, &serr) && serr.Type == types.ErrTypeNoData {
			return fiber.NewError(fiber.StatusNotFound, serr.Message)
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	a.charts.Set(chartCacheKey, png)
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func (a *Api) render(ctx context.Context) ([]byte, error) {
	st := store.New(a.db, a.logger)
	dash, err := plot.BuildDashboard(ctx, st, plot.DefaultCatalog(a.cfg.GetFreezeBuckets()), a.logger)
	if err != nil {
		return nil, err
	}
	dash.Title = "Storage Incentives Metrics"
	dash.Subtitle = fmt.Sprintf("Database: %s", a.cfg.GetDBName())

	cc := a.cfg.GetChartConfig()
	var buf bytes.Buffer
	if err := dash.Render(&buf, plot.RenderOptions{
		Width:  cc.Width,
		Height: cc.Height,
		Scale:  1,
	}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
