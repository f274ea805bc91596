// Command demo opens a desktop window and renders the showcase scene.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"scenegl/app"
	"scenegl/core"
	"scenegl/desktop"
	"scenegl/gpu"
	"scenegl/input"
	"scenegl/internal/demo"
	"scenegl/internal/opengl"
	"scenegl/renderer"
)

func main() {
	configPath := flag.String("config", "", "TOML or YAML config file")
	verbose := flag.Bool("v", false, "log at debug level")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := core.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = core.LoadConfig(configPath); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := input.NewManager()
	window, err := desktop.NewWindow(cfg.Window, events)
	if err != nil {
		return err
	}
	defer window.Destroy()

	glctx, err := opengl.New()
	if err != nil {
		return err
	}
	defer glctx.Destroy()

	r, err := renderer.New(gpu.NewDevice(glctx), renderer.WithConfig(cfg.Renderer))
	if err != nil {
		return err
	}
	defer r.Destroy()

	s, err := demo.Build(ctx, cfg, r, events)
	if err != nil {
		return err
	}

	application := app.New(window, r, events)
	if err := application.Scenes.AddScene(demo.SceneName, s, true); err != nil {
		return err
	}
	return application.Run(ctx)
}
