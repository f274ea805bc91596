package gpu_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenegl/gpu"
	"scenegl/gpu/gputest"
)

func newProgram(t *testing.T, dev *gpu.Device, name string) *gpu.Program {
	t.Helper()
	p, err := dev.NewProgramFromSource(name, "void main() {}", "void main() {}")
	require.NoError(t, err)
	return p
}

func TestShaderCompileFailure(t *testing.T) {
	rec := gputest.NewRecorder()
	rec.FailCompile = true
	dev := gpu.NewDevice(rec)

	_, err := dev.NewProgramFromSource("broken", "x", "y")
	require.Error(t, err)

	var rerr *gpu.ResourceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, gpu.KindShader, rerr.Kind)
	assert.ErrorIs(t, err, gpu.ErrCompile)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestProgramLinkFailure(t *testing.T) {
	rec := gputest.NewRecorder()
	rec.FailLink = true
	dev := gpu.NewDevice(rec)

	_, err := dev.NewProgramFromSource("broken", "x", "y")
	assert.ErrorIs(t, err, gpu.ErrLink)

	var rerr *gpu.ResourceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, gpu.KindProgram, rerr.Kind)
}

func TestBoundProgramGoesStale(t *testing.T) {
	rec := gputest.NewRecorder()
	dev := gpu.NewDevice(rec)
	a := newProgram(t, dev, "a")
	b := newProgram(t, dev, "b")

	bpA := a.Bind()
	require.NoError(t, bpA.SetFloat("uValue", 1))
	assert.Same(t, a, dev.CurrentProgram())

	bpB := b.Bind()
	assert.False(t, bpA.Valid())
	assert.ErrorIs(t, bpA.SetFloat("uValue", 2), gpu.ErrProgramNotBound)
	assert.NoError(t, bpB.SetFloat("uValue", 3))

	// Rebinding a hands out a new token; the old one stays stale.
	bpA2 := a.Bind()
	assert.True(t, bpA2.Valid())
	assert.False(t, bpA.Valid())

	a.Unbind()
	assert.Nil(t, dev.CurrentProgram())
	assert.ErrorIs(t, bpA2.SetInt("uValue", 1), gpu.ErrProgramNotBound)
}

func TestUniformsAreUploaded(t *testing.T) {
	rec := gputest.NewRecorder()
	dev := gpu.NewDevice(rec)
	bp := newProgram(t, dev, "p").Bind()

	require.NoError(t, bp.SetBool("uFlag", true))
	require.NoError(t, bp.SetVec3("uVec", mgl32.Vec3{1, 2, 3}))
	require.NoError(t, bp.SetVec4("uVec4", mgl32.Vec4{1, 2, 3, 4}))
	require.NoError(t, bp.SetMatrix3("uM3", mgl32.Ident3()))
	require.NoError(t, bp.SetMatrix4("uM4", mgl32.Translate3D(1, 2, 3)))

	v, ok := rec.LastUniform("uFlag")
	require.True(t, ok)
	assert.Equal(t, []float32{1}, v)

	v, _ = rec.LastUniform("uVec")
	assert.Equal(t, []float32{1, 2, 3}, v)

	v, _ = rec.LastUniform("uM4")
	require.Len(t, v, 16)
	assert.Equal(t, float32(1), v[12], "column-major translation")

	v, _ = rec.LastUniform("uM3")
	assert.Len(t, v, 9)
}

func TestMissingUniformFailsFast(t *testing.T) {
	rec := gputest.NewRecorder()
	rec.Missing["uGone"] = true
	dev := gpu.NewDevice(rec)
	bp := newProgram(t, dev, "p").Bind()

	err := bp.SetInt("uGone", 1)
	assert.ErrorIs(t, err, gpu.ErrNotFound)

	var rerr *gpu.ResourceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, gpu.KindUniform, rerr.Kind)
	assert.Equal(t, "uGone", rerr.Name)
	assert.Zero(t, rec.UniformCount("uGone"))
}

func TestUniformLocationCached(t *testing.T) {
	rec := gputest.NewRecorder()
	dev := gpu.NewDevice(rec)
	bp := newProgram(t, dev, "p").Bind()

	require.NoError(t, bp.SetFloat("uValue", 1))
	rec.Missing["uValue"] = true
	assert.NoError(t, bp.SetFloat("uValue", 2), "location resolved once and cached")
}

func TestArrayBufferBindsAttribute(t *testing.T) {
	rec := gputest.NewRecorder()
	dev := gpu.NewDevice(rec)
	bp := newProgram(t, dev, "p").Bind()

	buf, err := dev.NewArrayBuffer([]float32{0, 0, 0, 1, 1, 1}, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, buf.Len())
	assert.Equal(t, 2, buf.Count())
	assert.Equal(t, uint32(0), rec.BoundArrayBuffer, "upload leaves no buffer bound")

	buf.LinkToAttribute("aPosition")
	require.NoError(t, buf.Bind(bp))
	assert.NotZero(t, rec.BoundArrayBuffer)
	assert.True(t, rec.EnabledAttributes[0])
	assert.Equal(t, int32(3), rec.AttributeSizes[0])

	require.NoError(t, buf.Unbind(bp))
	assert.False(t, rec.EnabledAttributes[0])
	assert.Zero(t, rec.BoundArrayBuffer)

	buf.Delete()
	assert.Error(t, buf.Bind(bp))
}

func TestBufferValidation(t *testing.T) {
	dev := gpu.NewDevice(gputest.NewRecorder())

	_, err := dev.NewArrayBuffer(nil, 3)
	assert.ErrorIs(t, err, gpu.ErrInvalidData)
	_, err = dev.NewArrayBuffer([]float32{1, 2}, 3)
	assert.ErrorIs(t, err, gpu.ErrInvalidData)
	_, err = dev.NewArrayBuffer([]float32{1, 2}, 0)
	assert.ErrorIs(t, err, gpu.ErrInvalidData)
	_, err = dev.NewElementBuffer(nil)
	assert.ErrorIs(t, err, gpu.ErrInvalidData)

	idx, err := dev.NewElementBuffer([]uint16{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Count())
}

func TestCheckError(t *testing.T) {
	rec := gputest.NewRecorder()
	dev := gpu.NewDevice(rec)
	assert.NoError(t, dev.CheckError("noop"))

	rec.Errors = []gpu.Enum{gpu.InvalidOperation, gpu.InvalidValue}
	err := dev.CheckError("drawArrays")

	var glErr *gpu.GLError
	require.True(t, errors.As(err, &glErr))
	assert.Equal(t, gpu.InvalidOperation, glErr.Code)
	assert.Equal(t, "gl error at drawArrays: INVALID_OPERATION", err.Error())
	assert.NoError(t, dev.CheckError("after"), "queued flags are drained")
}

func TestErrorName(t *testing.T) {
	assert.Equal(t, "OUT_OF_MEMORY", gpu.ErrorName(gpu.OutOfMemory))
	assert.Equal(t, "CONTEXT_LOST_WEBGL", gpu.ErrorName(gpu.ContextLost))
	assert.Equal(t, "0x1234", gpu.ErrorName(0x1234))
}

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(0, h-1, color.NRGBA{0, 0, 255, 255})
	return img
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func waitTexture(t *testing.T, tex *gpu.Texture) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return tex.Wait(ctx)
}

func TestTextureLoadFromFile(t *testing.T) {
	rec := gputest.NewRecorder()
	dev := gpu.NewDevice(rec)
	tex := dev.NewTexture("checker")
	assert.Equal(t, gpu.TextureUnloaded, tex.State())

	ok, err := tex.Activate(0)
	assert.False(t, ok)
	assert.NoError(t, err)

	require.NoError(t, tex.Load(context.Background(), writePNG(t, checker(4, 2))))
	assert.ErrorIs(t, tex.Load(context.Background(), "again.png"), gpu.ErrTextureBusy)

	require.NoError(t, waitTexture(t, tex))
	assert.Equal(t, gpu.TextureReady, tex.State())
	w, h := tex.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)

	ok, err = tex.Activate(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, gpu.Texture0, rec.ActiveUnit)
	assert.NotZero(t, rec.BoundTexture)

	_, err = tex.Activate(0)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Uploads, "pixels upload once")
}

func TestTextureLoadFailure(t *testing.T) {
	dev := gpu.NewDevice(gputest.NewRecorder())
	tex := dev.NewTexture("missing")

	require.NoError(t, tex.Load(context.Background(), filepath.Join(t.TempDir(), "nope.png")))
	err := waitTexture(t, tex)
	require.Error(t, err)
	assert.Equal(t, gpu.TextureFailed, tex.State())

	ok, err := tex.Activate(0)
	assert.False(t, ok)
	var rerr *gpu.ResourceError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, gpu.KindTexture, rerr.Kind)
}

func TestTextureLoadOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sky.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_ = png.Encode(w, checker(2, 2))
	}))
	defer srv.Close()

	dev := gpu.NewDevice(gputest.NewRecorder())

	ok := dev.NewTexture("sky")
	require.NoError(t, ok.Load(context.Background(), srv.URL+"/sky.png"))
	require.NoError(t, waitTexture(t, ok))
	assert.True(t, ok.IsReady())

	missing := dev.NewTexture("missing")
	require.NoError(t, missing.Load(context.Background(), srv.URL+"/other.png"))
	assert.Error(t, waitTexture(t, missing))
	assert.Equal(t, gpu.TextureFailed, missing.State())
}

func TestTextureFromImage(t *testing.T) {
	rec := gputest.NewRecorder()
	dev := gpu.NewDevice(rec)

	tex := dev.NewTextureFromImage("mem", checker(1, 2))
	assert.True(t, tex.IsReady())

	ok, err := tex.Activate(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, gpu.Texture0+1, rec.ActiveUnit)
}

func TestTextureStateString(t *testing.T) {
	assert.Equal(t, "loading", gpu.TextureLoading.String())
	assert.Equal(t, "failed", gpu.TextureFailed.String())
}
