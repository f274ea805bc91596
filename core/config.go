package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config gathers everything a host needs to bring up a window, a renderer
// and a default camera.
type Config struct {
	Window   WindowConfig   `toml:"window" yaml:"window"`
	Renderer RendererConfig `toml:"renderer" yaml:"renderer"`
	Camera   CameraConfig   `toml:"camera" yaml:"camera"`
	Assets   AssetsConfig   `toml:"assets" yaml:"assets"`
}

type WindowConfig struct {
	Width      int    `toml:"width" yaml:"width"`
	Height     int    `toml:"height" yaml:"height"`
	Title      string `toml:"title" yaml:"title"`
	Resizable  bool   `toml:"resizable" yaml:"resizable"`
	VSync      bool   `toml:"vsync" yaml:"vsync"`
	Fullscreen bool   `toml:"fullscreen" yaml:"fullscreen"`
}

type RendererConfig struct {
	Background      Color `toml:"background" yaml:"background"`
	DepthTest       bool  `toml:"depth_test" yaml:"depth_test"`
	BackfaceCulling bool  `toml:"backface_culling" yaml:"backface_culling"`
}

// Camera kinds understood by CameraConfig.Kind.
const (
	CameraStatic    = "static"
	CameraFreeFly   = "freefly"
	CameraTrackball = "trackball"
)

type CameraConfig struct {
	Kind     string     `toml:"kind" yaml:"kind"`
	Position [3]float32 `toml:"position" yaml:"position"`
	Target   [3]float32 `toml:"target" yaml:"target"`
	Up       [3]float32 `toml:"up" yaml:"up"`
	Angle    float32    `toml:"angle" yaml:"angle"`
	Near     float32    `toml:"near" yaml:"near"`
	Far      float32    `toml:"far" yaml:"far"`
	// Free-fly only.
	Speed       float32 `toml:"speed" yaml:"speed"`
	Sensitivity float32 `toml:"sensitivity" yaml:"sensitivity"`
	// Trackball only.
	Distance float32 `toml:"distance" yaml:"distance"`
	// LockPointer requests pointer lock on the first click.
	LockPointer bool `toml:"lock_pointer" yaml:"lock_pointer"`
}

type AssetsConfig struct {
	// Skybox is a path or http(s) URL to a cross-layout skybox image.
	Skybox string `toml:"skybox" yaml:"skybox"`
	// CubeTexture is applied to the demo cube when set.
	CubeTexture string `toml:"cube_texture" yaml:"cube_texture"`
}

var ErrUnknownConfigFormat = errors.New("unknown config format")

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:      1280,
		Height:     720,
		Title:      "scenegl",
		Resizable:  true,
		VSync:      true,
		Fullscreen: false,
	}
}

func DefaultConfig() Config {
	return Config{
		Window: DefaultWindowConfig(),
		Renderer: RendererConfig{
			Background:      ColorBlack,
			DepthTest:       true,
			BackfaceCulling: true,
		},
		Camera: CameraConfig{
			Kind:        CameraFreeFly,
			Position:    [3]float32{-10, 0, 0},
			Up:          [3]float32{0, 0, 1},
			Angle:       60,
			Near:        0.1,
			Far:         100,
			Speed:       0.01,
			Sensitivity: 0.005,
			Distance:    10,
		},
	}
}

// LoadConfig reads a TOML or YAML file, chosen by extension, on top of
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := DecodeConfig(f, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes r in the given format (".toml", ".yaml" or ".yml",
// leading dot optional) and validates the result.
func DecodeConfig(r io.Reader, format string) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownConfigFormat, format)
	}
	if err != nil {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Camera.Kind {
	case CameraStatic, CameraFreeFly, CameraTrackball:
	default:
		return fmt.Errorf("unknown camera kind %q", c.Camera.Kind)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("invalid camera range [%g, %g]", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Angle <= 0 || c.Camera.Angle >= 180 {
		return fmt.Errorf("invalid camera angle %g", c.Camera.Angle)
	}
	up := mgl32.Vec3(c.Camera.Up)
	if up.Len() < 1e-6 {
		return fmt.Errorf("camera up vector %v has no length", c.Camera.Up)
	}
	facing := mgl32.Vec3(c.Camera.Position).Sub(mgl32.Vec3(c.Camera.Target))
	if facing.Len() > 1e-6 && facing.Normalize().Cross(up.Normalize()).Len() < 1e-6 {
		return fmt.Errorf("camera up vector %v is parallel to the view direction", c.Camera.Up)
	}
	return nil
}
