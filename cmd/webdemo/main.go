//go:build js && wasm

// Command webdemo renders the showcase scene into a page canvas through
// WebGL. An optional <script id="scenegl-config" type="application/toml">
// element overrides the default config.
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"syscall/js"

	"scenegl/app"
	"scenegl/core"
	"scenegl/gpu"
	"scenegl/input"
	"scenegl/internal/demo"
	"scenegl/internal/webgl"
	"scenegl/renderer"
)

const (
	canvasID = "scenegl"
	configID = "scenegl-config"
)

func main() {
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if err := run(); err != nil {
		core.Logger().Error("webdemo stopped", "error", err)
		os.Exit(1)
	}
}

func pageConfig() (core.Config, error) {
	el := js.Global().Get("document").Call("getElementById", configID)
	if el.IsNull() {
		return core.DefaultConfig(), nil
	}
	return core.DecodeConfig(strings.NewReader(el.Get("textContent").String()), "toml")
}

func run() error {
	cfg, err := pageConfig()
	if err != nil {
		return err
	}

	events := input.NewManager()
	canvas, err := webgl.NewCanvas(canvasID, events)
	if err != nil {
		return err
	}
	defer canvas.Close()

	glctx, err := webgl.New(canvas.Element())
	if err != nil {
		return err
	}

	r, err := renderer.New(gpu.NewDevice(glctx), renderer.WithConfig(cfg.Renderer))
	if err != nil {
		return err
	}
	defer r.Destroy()

	ctx := context.Background()
	s, err := demo.Build(ctx, cfg, r, events)
	if err != nil {
		return err
	}

	application := app.New(canvas, r, events)
	if err := application.Scenes.AddScene(demo.SceneName, s, true); err != nil {
		return err
	}
	return application.Run(ctx)
}
