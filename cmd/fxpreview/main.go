// Command fxpreview renders the effect shaders on the CPU and writes PNG frames,
// for checking the effects without a GPU.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gekko3d/solarfx"
	"github.com/gekko3d/solarfx/render/preview"
	"github.com/gekko3d/solarfx/render/procgen"
	"github.com/gekko3d/solarfx/render/shade"
	"github.com/gekko3d/solarfx/render/shaders"
)

func main() {
	var (
		outDir   = flag.String("out", "preview", "Output directory.")
		seed     = flag.Uint64("seed", 1, "Particle seed.")
		size     = flag.Int("size", 256, "Frame width and height in pixels.")
		frames   = flag.Int("frames", 4, "Frames per effect.")
		step     = flag.Float64("step", 0.5, "Seconds between frames.")
		distance = flag.Float64("distance", 10, "Comet distance to the sun.")
		upscale  = flag.Int("upscale", 1, "Integer upscale factor of the written images.")
		debug    = flag.Bool("debug", false, "Enable debug logging.")
	)
	flag.Parse()

	log := solarfx.NewDefaultLogger("fxpreview", *debug)
	if err := run(log, options{
		outDir:   *outDir,
		seed:     *seed,
		size:     *size,
		frames:   *frames,
		step:     float32(*step),
		distance: float32(*distance),
		upscale:  *upscale,
	}); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

type options struct {
	outDir   string
	seed     uint64
	size     int
	frames   int
	step     float32
	distance float32
	upscale  int
}

func run(log solarfx.Logger, o options) error {
	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return err
	}
	rng := procgen.NewSource(o.seed)

	const sunRadius = 5
	flares, err := solarfx.CreateSolarFlares(rng, sunRadius)
	if err != nil {
		return err
	}
	comet, err := solarfx.CreateComet(rng)
	if err != nil {
		return err
	}
	atmo, err := solarfx.CreateAtmosphereMaterial(1, nil)
	if err != nil {
		return err
	}

	flareOpts := preview.Options{Width: o.size, Height: o.size, Scale: float32(o.size) / (sunRadius * 2.4)}
	tailOpts := preview.Options{Width: o.size, Height: o.size, Scale: float32(o.size) / 2, PointScale: 0.5}
	atmoOpts := preview.Options{Width: o.size, Height: o.size, Scale: float32(o.size) / 2.4}

	vis := solarfx.DefaultTailVisibility().At(o.distance)
	if err := comet.ShaderUniforms.SetFloat(shaders.UniformDistanceToSun, o.distance); err != nil {
		return err
	}
	if err := comet.ShaderUniforms.SetFloat(shaders.UniformTailVisibility, vis); err != nil {
		return err
	}

	write := func(name string, c *preview.Canvas) error {
		path := filepath.Join(o.outDir, name)
		if err := preview.SavePNG(path, preview.Upscale(c.Image(), o.upscale)); err != nil {
			return err
		}
		log.Debugf("wrote %s", path)
		return nil
	}

	for i := 0; i < max(o.frames, 1); i++ {
		t := float32(i) * o.step
		for _, u := range []*solarfx.ShadedObject{flares, comet.Tail} {
			if err := u.Uniforms.SetFloat(shaders.UniformTime, t); err != nil {
				return err
			}
		}

		if err := write(fmt.Sprintf("flares_%03d.png", i),
			preview.RenderFlares(flares.Flares, shade.FlareParamsFrom(flares.Uniforms), flareOpts)); err != nil {
			return err
		}
		if err := write(fmt.Sprintf("tail_%03d.png", i),
			preview.RenderTail(comet.Tail.Tail, shade.TailParamsFrom(comet.ShaderUniforms), tailOpts)); err != nil {
			return err
		}
	}
	if err := write("atmosphere.png", preview.RenderAtmosphere(1, shade.AtmosphereParamsFrom(atmo.Uniforms), atmoOpts)); err != nil {
		return err
	}

	log.Infof("wrote %d frames to %s (tail visibility %.2f at distance %.1f)", max(o.frames, 1), o.outDir, vis, o.distance)
	return nil
}
