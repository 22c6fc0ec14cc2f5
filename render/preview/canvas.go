// Package preview rasterizes the effect shaders on the CPU into images.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/gekko3d/solarfx/render/shade"
	xdraw "golang.org/x/image/draw"
)

// Canvas is an HDR accumulation target with black background.
type Canvas struct {
	w, h int
	rgb  []float32
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	return &Canvas{w: w, h: h, rgb: make([]float32, w*h*3)}
}

func (c *Canvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.w, c.h) }

// Add blends src additively, weighted by its alpha.
func (c *Canvas) Add(x, y int, src shade.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	i := (y*c.w + x) * 3
	c.rgb[i] += src.R * src.A
	c.rgb[i+1] += src.G * src.A
	c.rgb[i+2] += src.B * src.A
}

func (c *Canvas) At(x, y int) (r, g, b float32) {
	i := (y*c.w + x) * 3
	return c.rgb[i], c.rgb[i+1], c.rgb[i+2]
}

func toByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

// Image clamps the accumulated colour to 8 bits.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(c.Bounds())
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			r, g, b := c.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: toByte(r), G: toByte(g), B: toByte(b), A: 255})
		}
	}
	return img
}

// Upscale resizes by an integer factor with Catmull-Rom filtering.
func Upscale(src image.Image, factor int) *image.RGBA {
	factor = max(factor, 1)
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
