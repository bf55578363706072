// Package app wires the logger, metrics registry, menu session and HTTP server
// into the radiald daemon.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mchmarny/radial-menu/pkg/config"
	"github.com/mchmarny/radial-menu/pkg/logger"
	"github.com/mchmarny/radial-menu/pkg/menu"
	"github.com/mchmarny/radial-menu/pkg/metric"
	"github.com/mchmarny/radial-menu/pkg/server"
	"github.com/mchmarny/radial-menu/pkg/session"
)

// Name is the daemon's module name in logs.
const Name = "radiald"

// Runner holds what the daemon serves.
type Runner struct {
	Version string
	Commit  string
	Date    string

	// LogLevel overrides the LOG_LEVEL environment variable when set.
	LogLevel string

	Menu   *menu.Menu
	Config config.LayoutConfig

	// OnSelect is called for every selected leaf item, on the session loop.
	OnSelect func(item menu.Item)
}

// Run starts the menu session and the server, and blocks until the context is
// canceled or either of them fails.
func (r *Runner) Run(ctx context.Context, opt ...server.Option) error {
	if r.LogLevel != "" {
		logger.SetDefaultLoggerWithLevel(Name, r.Version, r.LogLevel)
	} else {
		logger.SetDefaultLogger(Name, r.Version)
	}
	slog.Info("starting "+Name, "commit", r.Commit, "date", r.Date)

	if r.Menu == nil {
		return errors.New("no menu to serve")
	}

	reg := prometheus.NewRegistry()
	counter := metric.NewEventCounter(reg)

	sess, err := session.New(r.Menu.Items, r.Config,
		session.WithLogger(slog.Default()),
		session.WithCounter(counter),
		session.WithOnSelect(r.selected),
	)
	if err != nil {
		return fmt.Errorf("failed to create menu session: %w", err)
	}

	slog.Info("menu loaded",
		"menu", sess.ID(),
		"title", r.Menu.Title,
		"items", len(r.Menu.Items),
		"depth", r.Menu.Depth())

	opt = append(opt,
		server.WithRegistry(reg),
		server.WithPrometheusMetrics(),
		server.WithSimpleHealth(),
		server.WithHandler("/", sess.Handler()),
		server.WithBackground(sess.Run),
	)

	return server.New(opt...).Serve(ctx)
}

func (r *Runner) selected(item menu.Item) {
	slog.Info("menu item selected", "item", item.ID, "title", item.Title)
	if r.OnSelect != nil {
		r.OnSelect(item)
	}
}
