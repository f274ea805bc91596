package scene

import (
	"context"
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegl/core"
	"scenegl/gpu"
	"scenegl/gpu/gputest"
)

func newTestDevice(t *testing.T) (*gputest.Recorder, *gpu.Device, *gpu.Program) {
	t.Helper()
	rec := gputest.NewRecorder()
	dev := gpu.NewDevice(rec)
	p, err := dev.NewProgramFromSource("basic", "void main() {}", "void main() {}")
	require.NoError(t, err)
	return rec, dev, p
}

func triangle(t *testing.T, dev *gpu.Device) *Mesh {
	t.Helper()
	m := NewMesh(dev, RenderTriangles)
	require.NoError(t, m.AddPositions([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}))
	return m
}

func TestMeshDrawArrays(t *testing.T) {
	rec, dev, p := newTestDevice(t)
	m := triangle(t, dev)
	require.NoError(t, m.AddColors([]float32{1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1}))
	assert.Equal(t, 3, m.ItemCount())

	require.NoError(t, m.Draw(p.Bind()))
	require.Len(t, rec.Draws, 1)
	assert.Equal(t, gputest.DrawCall{Program: rec.Draws[0].Program, Mode: gpu.Triangles, Count: 3}, rec.Draws[0])

	useColor, _ := rec.LastUniform("uUseColor")
	useTexture, _ := rec.LastUniform("uUseTexture")
	assert.Equal(t, []float32{1}, useColor)
	assert.Equal(t, []float32{0}, useTexture)
	assert.Zero(t, rec.UniformCount("uTexture"))

	// Attributes are released after the draw.
	for loc, enabled := range rec.EnabledAttributes {
		assert.False(t, enabled, "attribute %d left enabled", loc)
	}
}

func TestMeshDrawElements(t *testing.T) {
	rec, dev, p := newTestDevice(t)
	m := triangle(t, dev)
	require.NoError(t, m.AddIndices([]uint16{0, 1, 2, 2, 1, 0}))
	assert.Equal(t, 6, m.ItemCount())

	require.NoError(t, m.Draw(p.Bind()))
	require.Len(t, rec.Draws, 1)
	assert.True(t, rec.Draws[0].Indexed)
	assert.Equal(t, int32(6), rec.Draws[0].Count)
	assert.Zero(t, rec.BoundElementBuffer)
}

func TestMeshDrawRequiresPositions(t *testing.T) {
	_, dev, p := newTestDevice(t)
	m := NewMesh(dev, RenderPoints)
	assert.ErrorIs(t, m.Draw(p.Bind()), ErrEmptyMesh)
}

func TestMeshShader(t *testing.T) {
	_, dev, p := newTestDevice(t)
	m := triangle(t, dev)
	_, err := m.Shader()
	assert.ErrorIs(t, err, ErrMissingShader)

	m.SetShader(p)
	got, err := m.Shader()
	require.NoError(t, err)
	assert.Same(t, p, got)
}

func TestMeshMissingUniformFails(t *testing.T) {
	rec, dev, p := newTestDevice(t)
	rec.Missing["uUseNormal"] = true
	m := triangle(t, dev)

	err := m.Draw(p.Bind())
	var rerr *gpu.ResourceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, gpu.KindUniform, rerr.Kind)
	assert.Equal(t, "uUseNormal", rerr.Name)
	assert.Empty(t, rec.Draws)
}

func TestMeshDrawReportsGLErrors(t *testing.T) {
	rec, dev, p := newTestDevice(t)
	m := triangle(t, dev)

	rec.Errors = []gpu.Enum{gpu.InvalidOperation, gpu.InvalidValue}
	err := m.Draw(p.Bind())
	var glErr *gpu.GLError
	require.True(t, errors.As(err, &glErr))
	assert.Equal(t, "drawArrays before", glErr.Call)
	assert.Equal(t, gpu.InvalidOperation, glErr.Code)
	assert.Empty(t, rec.Draws)
	assert.Empty(t, rec.Errors, "queued errors are drained")

	require.NoError(t, m.Draw(p.Bind()))
}

func TestTexturedMeshWithoutTexture(t *testing.T) {
	_, dev, p := newTestDevice(t)
	m := triangle(t, dev)
	require.NoError(t, m.AddTextureCoords([]float32{0, 0, 1, 0, 0, 1}))
	assert.ErrorIs(t, m.Draw(p.Bind()), ErrTextureMissing)

	m.SetTexture(dev.NewTexture("never"))
	assert.ErrorIs(t, m.Draw(p.Bind()), ErrTextureUnloaded)
}

func TestTexturedMeshUploadsOnce(t *testing.T) {
	rec, dev, p := newTestDevice(t)
	m := triangle(t, dev)
	require.NoError(t, m.AddTextureCoords([]float32{0, 0, 1, 0, 0, 1}))
	m.SetTexture(dev.NewTextureFromImage("white", image.NewRGBA(image.Rect(0, 0, 2, 2))))

	require.NoError(t, m.Draw(p.Bind()))
	require.NoError(t, m.Draw(p.Bind()))
	assert.Len(t, rec.Draws, 2)
	assert.Equal(t, 1, rec.Uploads)
	assert.Equal(t, gpu.Texture0, rec.ActiveUnit)

	unit, ok := rec.LastUniform("uTexture")
	require.True(t, ok)
	assert.Equal(t, []float32{0}, unit)
}

func TestTexturedMeshSkippedWhileLoading(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	rec, dev, p := newTestDevice(t)
	m := triangle(t, dev)
	require.NoError(t, m.AddTextureCoords([]float32{0, 0, 1, 0, 0, 1}))
	tex := dev.NewTexture("slow")
	m.SetTexture(tex)
	require.NoError(t, tex.Load(context.Background(), srv.URL+"/slow.png"))

	assert.NoError(t, m.Draw(p.Bind()))
	assert.Empty(t, rec.Draws)

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.Error(t, tex.Wait(ctx))

	err := m.Draw(p.Bind())
	var rerr *gpu.ResourceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, gpu.KindTexture, rerr.Kind)
	assert.Empty(t, rec.Draws)
}

func TestTexturedMeshFailedLoad(t *testing.T) {
	_, dev, p := newTestDevice(t)
	m := triangle(t, dev)
	require.NoError(t, m.AddTextureCoords([]float32{0, 0, 1, 0, 0, 1}))
	tex := dev.NewTexture("missing")
	m.SetTexture(tex)

	require.NoError(t, tex.Load(context.Background(), filepath.Join(t.TempDir(), "missing.png")))
	require.Error(t, tex.Wait(context.Background()))
	assert.Equal(t, tex.Err(), m.Draw(p.Bind()))
}

func TestMeshDelete(t *testing.T) {
	rec, dev, p := newTestDevice(t)
	m := triangle(t, dev)
	require.NoError(t, m.AddIndices([]uint16{0, 1, 2}))
	m.Delete()
	assert.Zero(t, m.ItemCount())
	assert.ErrorIs(t, m.Draw(p.Bind()), ErrEmptyMesh)
	assert.Empty(t, rec.Draws)
}

func TestPrimitives(t *testing.T) {
	_, dev, p := newTestDevice(t)
	tex := dev.NewTextureFromImage("checker", image.NewRGBA(image.Rect(0, 0, 1, 1)))

	axis, err := NewAxis(dev, 2)
	require.NoError(t, err)
	assert.Equal(t, RenderLines, axis.Mode())
	assert.Equal(t, 6, axis.ItemCount())
	assert.True(t, axis.UseColor())

	cube, err := NewCube(dev, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 36, cube.ItemCount())
	assert.True(t, cube.UseNormal())
	assert.False(t, cube.UseTextureCoord())
	require.NoError(t, cube.Draw(p.Bind()))

	texturedCube, err := NewCube(dev, 1, tex)
	require.NoError(t, err)
	assert.True(t, texturedCube.UseTextureCoord())
	assert.Same(t, tex, texturedCube.Texture())

	sphere, err := NewSphere(dev, 1, 8, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 8*4*6, sphere.ItemCount())

	plane, err := NewPlane(dev, 4, 4, 2, tex)
	require.NoError(t, err)
	assert.Equal(t, 2*2*6, plane.ItemCount())
	require.NoError(t, plane.Draw(p.Bind()))
}

func TestLinePrimitives(t *testing.T) {
	rec, dev, p := newTestDevice(t)

	grid, err := NewGrid(dev, 10, 4)
	require.NoError(t, err)
	assert.Equal(t, RenderLines, grid.Mode())
	assert.Equal(t, 2*5*2, grid.ItemCount())
	assert.True(t, grid.UseColor())
	assert.False(t, grid.UseNormal())

	box, err := NewWireBox(dev, core.ColorGreen)
	require.NoError(t, err)
	assert.Equal(t, 12*2, box.ItemCount())

	box.SetShader(p)
	require.NoError(t, box.Draw(p.Bind()))
	require.Len(t, rec.Draws, 1)
	assert.True(t, rec.Draws[0].Indexed)
	assert.Equal(t, gpu.Lines, rec.Draws[0].Mode)
}

func TestSphereTooDetailed(t *testing.T) {
	_, dev, _ := newTestDevice(t)
	_, err := NewSphere(dev, 1, 300, 300, nil)
	assert.Error(t, err)
}

func TestSkybox(t *testing.T) {
	rec, dev, p := newTestDevice(t)
	tex := dev.NewTextureFromImage("sky", image.NewRGBA(image.Rect(0, 0, 4, 3)))
	sb, err := NewSkybox(dev, tex, p)
	require.NoError(t, err)
	assert.Equal(t, 36, sb.Mesh().ItemCount())

	shader, err := sb.Shader()
	require.NoError(t, err)
	assert.Same(t, p, shader)

	c := NewCamera()
	sb.CenterToCamera(c)
	assert.True(t, sb.ModelMatrix().ApproxEqual(mgl32.Translate3D(-10, 0, 0)))

	require.NoError(t, sb.Draw(p.Bind()))
	require.Len(t, rec.Draws, 1)
	assert.True(t, rec.Draws[0].Indexed)
}

func TestLightsUpload(t *testing.T) {
	rec, _, p := newTestDevice(t)
	bp := p.Bind()

	require.NoError(t, NewAmbientLight(core.NewColor(0.1, 0.2, 0.3, 1)).Upload(bp))
	color, _ := rec.LastUniform("aLight.color")
	assert.InDeltaSlice(t, []float32{0.1, 0.2, 0.3}, color, 1e-6)

	require.NoError(t, NewDirectionalLight(core.ColorWhite, mgl32.Vec3{0, 0, -1}).Upload(bp))
	dir, _ := rec.LastUniform("dLight.direction")
	assert.Equal(t, []float32{0, 0, -1}, dir)

	spot := NewSpotLight(core.ColorRed, mgl32.Vec3{1, 2, 3})
	spot.Power = 4
	require.NoError(t, spot.Upload(bp))
	power, _ := rec.LastUniform("sLight.power")
	pos, _ := rec.LastUniform("sLight.position")
	assert.Equal(t, []float32{4}, power)
	assert.Equal(t, []float32{1, 2, 3}, pos)
	assert.Equal(t, SpotLightName, spot.AsLightBase().Name)
}

func TestLightUploadMissingField(t *testing.T) {
	rec, _, p := newTestDevice(t)
	rec.Missing["dLight.direction"] = true

	err := NewDirectionalLight(core.ColorWhite, mgl32.Vec3{1, 0, 0}).Upload(p.Bind())
	assert.ErrorIs(t, err, gpu.ErrNotFound)
}

func TestLightUploadNeedsBoundProgram(t *testing.T) {
	_, dev, p := newTestDevice(t)
	bp := p.Bind()
	other, err := dev.NewProgramFromSource("other", "void main() {}", "void main() {}")
	require.NoError(t, err)
	other.Bind()

	assert.ErrorIs(t, NewAmbientLight(core.ColorWhite).Upload(bp), gpu.ErrProgramNotBound)
}
