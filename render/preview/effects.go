package preview

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/solarfx/render/core"
	"github.com/gekko3d/solarfx/render/shade"
	"github.com/go-gl/mathgl/mgl32"
)

// Options frames a preview: Scale is pixels per world unit around the image centre,
// PointScale multiplies sprite sizes so tiny sprites stay visible.
type Options struct {
	Width, Height int
	Scale         float32
	PointScale    float32
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 256
	}
	if o.Height <= 0 {
		o.Height = 256
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.PointScale <= 0 {
		o.PointScale = 1
	}
	return o
}

func (o Options) project(x, y float32) (float32, float32) {
	return float32(o.Width)/2 + x*o.Scale, float32(o.Height)/2 - y*o.Scale
}

// sprite runs frag over the size×size pixel square centred at (cx, cy). Sprites are
// at least one pixel, like GL point sprites.
func sprite(c *Canvas, cx, cy, size float32, frag func(pc mgl32.Vec2) (shade.Color, bool)) {
	size = max(size, 1)
	half := size / 2
	x0, x1 := int(math32.Floor(cx-half)), int(math32.Ceil(cx+half))
	y0, y1 := int(math32.Floor(cy-half)), int(math32.Ceil(cy+half))
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			pc := mgl32.Vec2{
				(float32(px) + 0.5 - (cx - half)) / size,
				(float32(py) + 0.5 - (cy - half)) / size,
			}
			if pc.X() < 0 || pc.X() > 1 || pc.Y() < 0 || pc.Y() > 1 {
				continue
			}
			if col, ok := frag(pc); ok {
				c.Add(px, py, col)
			}
		}
	}
}

// RenderFlares draws the flare field seen along -Z at params.Time.
func RenderFlares(field *core.FlareBuffer, params shade.FlareParams, opts Options) *Canvas {
	opts = opts.withDefaults()
	c := NewCanvas(opts.Width, opts.Height)
	for i := 0; i < field.Len(); i++ {
		p := field.At(i)
		// back hemisphere is hidden by the sun
		if p.Position.Z() < 0 {
			continue
		}
		cx, cy := opts.project(p.Position.X(), p.Position.Y())
		sprite(c, cx, cy, shade.FlarePointSize(p.Size)*opts.PointScale, func(pc mgl32.Vec2) (shade.Color, bool) {
			return shade.FlareFragment(pc, p.Activation, p.Size, params)
		})
	}
	return c
}

// RenderTail draws the tail from the side: the tail axis (-Z) runs to the right.
func RenderTail(field *core.TailBuffer, params shade.TailParams, opts Options) *Canvas {
	opts = opts.withDefaults()
	c := NewCanvas(opts.Width, opts.Height)
	// nucleus sits at the left third
	shift := -float32(opts.Width) / 3 / opts.Scale
	for i := 0; i < field.Len(); i++ {
		p := field.At(i)
		pos, size := shade.TailVertex(p, params.CoreSize)
		cx, cy := opts.project(-pos.Z()+shift, pos.Y())
		sprite(c, cx, cy, size*opts.PointScale, func(pc mgl32.Vec2) (shade.Color, bool) {
			return shade.TailFragment(pc, p.Alpha, p.Progress, params)
		})
	}
	return c
}

// RenderAtmosphere draws the front faces of a glow shell of the given radius.
func RenderAtmosphere(radius float32, params shade.AtmosphereParams, opts Options) *Canvas {
	opts = opts.withDefaults()
	c := NewCanvas(opts.Width, opts.Height)
	view := mgl32.Vec3{0, 0, 1}
	for py := 0; py < opts.Height; py++ {
		for px := 0; px < opts.Width; px++ {
			x := (float32(px) + 0.5 - float32(opts.Width)/2) / opts.Scale / radius
			y := (float32(opts.Height)/2 - float32(py) - 0.5) / opts.Scale / radius
			d2 := x*x + y*y
			if d2 > 1 {
				continue
			}
			n := mgl32.Vec3{x, y, math32.Sqrt(1 - d2)}
			c.Add(px, py, shade.AtmosphereFragment(n, view, params))
		}
	}
	return c
}
