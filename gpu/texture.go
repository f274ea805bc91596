package gpu

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"scenegl/core"
)

type TextureState int32

const (
	TextureUnloaded TextureState = iota
	TextureLoading
	TextureReady
	TextureFailed
)

func (s TextureState) String() string {
	switch s {
	case TextureUnloaded:
		return "unloaded"
	case TextureLoading:
		return "loading"
	case TextureReady:
		return "ready"
	case TextureFailed:
		return "failed"
	}
	return fmt.Sprintf("TextureState(%d)", int32(s))
}

var ErrTextureBusy = errors.New("texture already loading or loaded")

// Texture is a 2D RGBA texture whose pixels arrive asynchronously.
//
// Load fetches and decodes on a background goroutine; the GPU upload is
// deferred to the first Activate on the render goroutine. State may be
// polled from any goroutine.
type Texture struct {
	dev  *Device
	name string

	state atomic.Int32
	done  chan struct{}

	mu     sync.Mutex
	pixels *image.RGBA
	err    error

	handle uint32
}

func (d *Device) NewTexture(name string) *Texture {
	return &Texture{dev: d, name: name, done: make(chan struct{})}
}

// NewTextureFromImage wraps an already decoded image. The texture is ready
// immediately and uploads on first activation.
func (d *Device) NewTextureFromImage(name string, img image.Image) *Texture {
	t := d.NewTexture(name)
	t.pixels = toRGBA(img)
	t.state.Store(int32(TextureReady))
	close(t.done)
	return t
}

func (t *Texture) Name() string        { return t.name }
func (t *Texture) State() TextureState { return TextureState(t.state.Load()) }
func (t *Texture) IsReady() bool       { return t.State() == TextureReady }

// Err returns the load failure, if any.
func (t *Texture) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Size returns the pixel dimensions once decoded.
func (t *Texture) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pixels == nil {
		return 0, 0
	}
	b := t.pixels.Bounds()
	return b.Dx(), b.Dy()
}

// Load starts fetching src, an http(s) URL or a file path. It returns at
// once; poll State or call Wait.
func (t *Texture) Load(ctx context.Context, src string) error {
	if !t.state.CompareAndSwap(int32(TextureUnloaded), int32(TextureLoading)) {
		return fmt.Errorf("texture %q: %w", t.name, ErrTextureBusy)
	}
	go t.load(ctx, src)
	return nil
}

// Wait blocks until the load finished or ctx is done.
func (t *Texture) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Texture) load(ctx context.Context, src string) {
	defer close(t.done)

	img, err := fetchImage(ctx, src)
	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.err = &ResourceError{Kind: KindTexture, Name: t.name, Err: err}
		t.state.Store(int32(TextureFailed))
		core.Logger().Warn("texture load failed", "name", t.name, "src", src, "err", err)
		return
	}
	t.pixels = toRGBA(img)
	t.state.Store(int32(TextureReady))
	b := t.pixels.Bounds()
	core.Logger().Info("texture loaded", "name", t.name, "width", b.Dx(), "height", b.Dy())
}

func fetchImage(ctx context.Context, src string) (image.Image, error) {
	r, err := open(ctx, src)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return img, nil
}

func open(ctx context.Context, src string) (io.ReadCloser, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		f, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("get %s: %s", src, resp.Status)
	}
	return resp.Body, nil
}

// toRGBA converts img to a zero-origin RGBA image with rows flipped so the
// first row is the bottom of the picture, as GL expects.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	stride := dst.Stride
	row := make([]byte, stride)
	for top, bottom := 0, b.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := dst.Pix[top*stride : (top+1)*stride]
		bo := dst.Pix[bottom*stride : (bottom+1)*stride]
		copy(row, t)
		copy(t, bo)
		copy(bo, row)
	}
	return dst
}

// Activate binds the texture to the given unit. It reports false without
// error while pixels are still loading, and the load error once failed.
func (t *Texture) Activate(unit int) (bool, error) {
	switch t.State() {
	case TextureUnloaded, TextureLoading:
		return false, nil
	case TextureFailed:
		return false, t.Err()
	}

	ctx := t.dev.ctx
	if t.handle == 0 {
		if err := t.upload(); err != nil {
			return false, err
		}
	}
	ctx.ActiveTexture(Texture0 + Enum(unit))
	ctx.BindTexture(Texture2D, t.handle)
	return true, nil
}

func (t *Texture) upload() error {
	t.mu.Lock()
	pixels := t.pixels
	t.mu.Unlock()

	ctx := t.dev.ctx
	handle := ctx.CreateTexture()
	if handle == 0 {
		return &ResourceError{Kind: KindTexture, Name: t.name, Err: fmt.Errorf("could not create texture object")}
	}
	ctx.BindTexture(Texture2D, handle)
	ctx.TexImage2D(Texture2D, pixels)
	ctx.TexParameteri(Texture2D, TextureMagFilter, int32(Nearest))
	ctx.TexParameteri(Texture2D, TextureMinFilter, int32(Nearest))
	ctx.TexParameteri(Texture2D, TextureWrapS, int32(ClampToEdge))
	ctx.TexParameteri(Texture2D, TextureWrapT, int32(ClampToEdge))
	ctx.BindTexture(Texture2D, 0)
	if err := t.dev.CheckError("texImage2D"); err != nil {
		ctx.DeleteTexture(handle)
		return &ResourceError{Kind: KindTexture, Name: t.name, Err: err}
	}
	t.handle = handle
	core.Logger().Debug("texture uploaded", "name", t.name)
	return nil
}

func (t *Texture) Delete() {
	if t.handle == 0 {
		return
	}
	t.dev.ctx.DeleteTexture(t.handle)
	t.handle = 0
}
