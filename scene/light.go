package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"scenegl/core"
	"scenegl/gpu"
)

// Default uniform struct names used by the built-in shader.
const (
	AmbientLightName     = "aLight"
	DirectionalLightName = "dLight"
	SpotLightName        = "sLight"
)

// Light is a payload that writes its parameters into a shader program's
// uniform struct called Name.
type Light interface {
	Payload
	AsLightBase() *LightBase
	Upload(bp *gpu.BoundProgram) error
}

// LightBase is embedded by every light.
type LightBase struct {
	Name  string
	Color core.Color
}

func (l *LightBase) AsLightBase() *LightBase { return l }
func (l *LightBase) Update(time.Duration)    {}
func (l *LightBase) payload()                {}

func (l *LightBase) field(f string) string { return l.Name + "." + f }

type AmbientLight struct {
	LightBase
}

func NewAmbientLight(color core.Color) *AmbientLight {
	return &AmbientLight{LightBase{Name: AmbientLightName, Color: color}}
}

func (l *AmbientLight) Upload(bp *gpu.BoundProgram) error {
	return bp.SetVec3(l.field("color"), l.Color.RGB())
}

// DirectionalLight shines along Direction from infinitely far away.
type DirectionalLight struct {
	LightBase
	Direction mgl32.Vec3
}

func NewDirectionalLight(color core.Color, direction mgl32.Vec3) *DirectionalLight {
	return &DirectionalLight{
		LightBase: LightBase{Name: DirectionalLightName, Color: color},
		Direction: direction,
	}
}

func (l *DirectionalLight) Upload(bp *gpu.BoundProgram) error {
	if err := bp.SetVec3(l.field("color"), l.Color.RGB()); err != nil {
		return err
	}
	return bp.SetVec3(l.field("direction"), l.Direction)
}

// SpotLight emits from Position in every direction, attenuated by distance
// and scaled by Power.
type SpotLight struct {
	LightBase
	Position mgl32.Vec3
	Power    float32
}

func NewSpotLight(color core.Color, position mgl32.Vec3) *SpotLight {
	return &SpotLight{
		LightBase: LightBase{Name: SpotLightName, Color: color},
		Position:  position,
		Power:     1,
	}
}

func (l *SpotLight) Upload(bp *gpu.BoundProgram) error {
	if err := bp.SetFloat(l.field("power"), l.Power); err != nil {
		return err
	}
	if err := bp.SetVec3(l.field("color"), l.Color.RGB()); err != nil {
		return err
	}
	return bp.SetVec3(l.field("position"), l.Position)
}
