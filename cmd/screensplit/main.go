package main

import (
	"fmt"
	"log"
	"os"

	"screensplit/internal/capture"
	"screensplit/internal/config"
	"screensplit/internal/display"
	"screensplit/internal/x11win"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		// Diagnostic already printed; nothing has been created yet.
		return
	}

	if cfg.List {
		monitors, err := capture.Monitors()
		if err != nil {
			log.Fatalf("list monitors: %v", err)
		}
		for i, g := range monitors {
			fmt.Printf("%d: %dx%d at (%d,%d)\n", i, g.Width, g.Height, g.X, g.Y)
		}
		return
	}

	cap, err := capture.Open(cfg.Monitor)
	if err != nil {
		log.Fatalf("capture init: %v", err)
	}
	defer cap.Close()
	geo := cap.Geometry()

	log.Printf("screensplit starting")
	log.Printf("  Monitor:   %d (%dx%d at %d,%d)", cfg.Monitor, geo.Width, geo.Height, geo.X, geo.Y)
	log.Printf("  FPS:       %d", cfg.FPS)
	log.Printf("  Offscreen: %v", cfg.Offscreen)

	var concealer display.Concealer
	if cfg.Offscreen {
		presenter, err := x11win.Connect()
		if err != nil {
			log.Fatalf("window presentation: %v", err)
		}
		defer presenter.Close()
		concealer = presenter
	}

	mirror, err := display.NewMirror(cfg, cap, geo, concealer)
	if err != nil {
		log.Fatalf("renderer init: %v", err)
	}
	if err := mirror.Run(); err != nil {
		log.Fatalf("mirror: %v", err)
	}
}
