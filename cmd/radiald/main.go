package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mchmarny/radial-menu/pkg/app"
	"github.com/mchmarny/radial-menu/pkg/config"
	"github.com/mchmarny/radial-menu/pkg/menu"
	"github.com/mchmarny/radial-menu/pkg/server"
)

var (
	version = "dev"     // Set at build time via -ldflags "-X main.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X main.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X main.date=date"

	port       = flag.Int("port", server.DefaultPort, "Port to run the server on")
	itemsFile  = flag.String("items", "", "YAML file with the menu items (default: built-in demo menu)")
	configFile = flag.String("config", "", "YAML file with menu options merged over the defaults")
	logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error (default: $LOG_LEVEL)")
)

func main() {
	flag.Parse()

	m, cfg, err := load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "radiald: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &app.Runner{
		Version:  version,
		Commit:   commit,
		Date:     date,
		LogLevel: *logLevel,
		Menu:     m,
		Config:   cfg,
	}

	if err := r.Run(ctx, server.WithPort(*port)); err != nil {
		slog.Error("server error", "error", err)
		stop()
		os.Exit(1)
	}
}

// load reads the menu and options named by the flags.
func load() (*menu.Menu, config.LayoutConfig, error) {
	m := app.DemoMenu()
	if *itemsFile != "" {
		var err error
		if m, err = menu.LoadFile(*itemsFile); err != nil {
			return nil, config.LayoutConfig{}, err
		}
	}

	var user config.Values
	if *configFile != "" {
		var err error
		if user, err = config.LoadFile(*configFile); err != nil {
			return nil, config.LayoutConfig{}, err
		}
	}

	cfg, err := config.Resolve(user)
	if err != nil {
		return nil, config.LayoutConfig{}, fmt.Errorf("failed to resolve options: %w", err)
	}

	return m, cfg, nil
}
