package renderer

import (
	"image"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// WrapMode controls how texture coordinates outside [0, 1] are resolved.
type WrapMode int

const (
	ClampToEdgeWrapping WrapMode = iota
	RepeatWrapping
	MirroredRepeatWrapping
)

func (w WrapMode) glEnum() int32 {
	switch w {
	case RepeatWrapping:
		return gl.REPEAT
	case MirroredRepeatWrapping:
		return gl.MIRRORED_REPEAT
	default:
		return gl.CLAMP_TO_EDGE
	}
}

func (w WrapMode) String() string {
	switch w {
	case RepeatWrapping:
		return "repeat"
	case MirroredRepeatWrapping:
		return "mirrored-repeat"
	default:
		return "clamp-to-edge"
	}
}

// FilterMode selects texel filtering.
type FilterMode int

const (
	LinearFilter FilterMode = iota
	NearestFilter
)

func (f FilterMode) glEnum() int32 {
	if f == NearestFilter {
		return gl.NEAREST
	}
	return gl.LINEAR
}

// Texture is a sampled image plus its sampler state. Offset and Repeat form
// the UV transform applied at sample time: uv' = uv*Repeat + Offset.
type Texture struct {
	// HOT DATA - read every frame
	Offset mgl32.Vec2
	Repeat mgl32.Vec2
	ID     uint32 // OpenGL texture name, 0 until uploaded

	// COLD DATA - sampler configuration, read at upload
	Name      string
	Image     *image.RGBA
	WrapS     WrapMode
	WrapT     WrapMode
	MinFilter FilterMode
	MagFilter FilterMode
	FlipY     bool

	// samplerDirty is set when wrap or filter modes change after upload.
	samplerDirty bool
}

// NewTexture wraps img with clamp-to-edge wrapping, linear filtering, unit
// repeat and zero offset.
func NewTexture(name string, img image.Image) *Texture {
	return &Texture{
		Name:   name,
		Image:  toRGBA(img),
		Repeat: mgl32.Vec2{1, 1},
		FlipY:  true,
	}
}

// Clone returns a texture sharing the pixel data but owning its own sampler
// state, transform and GPU object.
func (t *Texture) Clone() *Texture {
	c := *t
	c.ID = 0
	c.samplerDirty = false
	return &c
}

func (t *Texture) SetWrap(s, tt WrapMode) {
	t.WrapS, t.WrapT = s, tt
	t.samplerDirty = true
}

func (t *Texture) SetFilter(min, mag FilterMode) {
	t.MinFilter, t.MagFilter = min, mag
	t.samplerDirty = true
}

func (t *Texture) SetOffset(x, y float32) {
	t.Offset = mgl32.Vec2{x, y}
}

func (t *Texture) SetRepeat(x, y float32) {
	t.Repeat = mgl32.Vec2{x, y}
}

// UVTransform returns the column-major 3x3 matrix mapping mesh UVs to
// sampling UVs.
func (t *Texture) UVTransform() mgl32.Mat3 {
	return mgl32.Mat3{
		t.Repeat.X(), 0, 0,
		0, t.Repeat.Y(), 0,
		t.Offset.X(), t.Offset.Y(), 1,
	}
}

func (t *Texture) Uploaded() bool {
	return t.ID != 0
}

// Size returns the pixel dimensions, or zero when there is no image.
func (t *Texture) Size() (int, int) {
	if t.Image == nil {
		return 0, 0
	}
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

// applySampler pushes wrap and filter state to the currently bound texture.
func (t *Texture) applySampler() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, t.WrapS.glEnum())
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, t.WrapT.glEnum())
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, t.MinFilter.glEnum())
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, t.MagFilter.glEnum())
	t.samplerDirty = false
}

func toRGBA(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// flipRows returns a vertically mirrored copy of img.
func flipRows(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	rowLen := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		dstRow := b.Dy() - 1 - y
		copy(out.Pix[dstRow*out.Stride:dstRow*out.Stride+rowLen], src)
	}
	return out
}
