package loader

import (
	"image"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
)

const (
	paperAlpha  = 2.0
	paperBeta   = 2.0
	paperOctave = 3
	// Warm off-white base, close to cold-press watercolor paper.
	paperBaseR = 243
	paperBaseG = 239
	paperBaseB = 232
)

// GeneratePaper renders a procedural paper grain. The same seed always
// yields the same image.
func GeneratePaper(width, height int, seed int64) *image.RGBA {
	grain := perlin.NewPerlin(paperAlpha, paperBeta, paperOctave, seed)
	fibre := perlin.NewPerlin(paperAlpha, paperBeta, paperOctave, seed+1)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fx, fy := float64(x), float64(y)
			// Fine tooth plus long horizontal fibres.
			n := 0.7*grain.Noise2D(fx/6, fy/6) + 0.3*fibre.Noise2D(fx/48, fy/4)
			shade := clamp(n*28, -40, 40)
			img.SetRGBA(x, y, color.RGBA{
				R: channel(paperBaseR, shade),
				G: channel(paperBaseG, shade),
				B: channel(paperBaseB, shade*1.1),
				A: 255,
			})
		}
	}
	return img
}

func channel(base, shade float64) uint8 {
	return uint8(clamp(math.Round(base+shade), 0, 255))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
