package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mchmarny/radial-menu/pkg/app"
	"github.com/mchmarny/radial-menu/pkg/config"
)

// Serves the demo menu with default options; see cmd/radiald for flags.
func main() {
	r := &app.Runner{Version: "dev", Menu: app.DemoMenu(), Config: config.Default()}
	if err := r.Run(context.Background()); err != nil {
		fmt.Printf("server error: %v", err)
		os.Exit(1)
	}
}
