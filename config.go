package solarfx

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidConfig = errors.New("invalid scene config")

// SceneConfig describes the demo scene. Unset fields keep DefaultSceneConfig values.
type SceneConfig struct {
	// Seed feeds the particle generators; 0 picks a random seed.
	Seed   uint64         `toml:"seed"`
	Debug  bool           `toml:"debug"`
	Window WindowConfig   `toml:"window"`
	Sun    SunConfig      `toml:"sun"`
	Planet []PlanetConfig `toml:"planet"`
	Comet  CometConfig    `toml:"comet"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// SunConfig describes the sun, which always sits at the world origin.
type SunConfig struct {
	Radius     float32     `toml:"radius"`
	Color      [3]float32  `toml:"color"`
	FlareColor *[3]float32 `toml:"flare_color"`
}

type PlanetConfig struct {
	Name        string     `toml:"name"`
	Radius      float32    `toml:"radius"`
	OrbitRadius float32    `toml:"orbit_radius"`
	OrbitSpeed  float32    `toml:"orbit_speed"`
	Color       [3]float32 `toml:"color"`
	Atmosphere  bool       `toml:"atmosphere"`
	// GlowColor overrides the atmosphere shader's default glow.
	GlowColor *[3]float32 `toml:"glow_color"`
}

// CometConfig overrides the comet's orbit. Zero values keep the defaults.
type CometConfig struct {
	Enabled       bool    `toml:"enabled"`
	SemiMajorAxis float32 `toml:"semi_major_axis"`
	Eccentricity  float32 `toml:"eccentricity"`
	// InclinationDeg is in degrees.
	InclinationDeg float32 `toml:"inclination_deg"`
	Speed          float32 `toml:"speed"`
}

func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "solarfx"},
		Sun: SunConfig{
			Radius: 5,
			Color:  [3]float32{1.0, 0.85, 0.4},
		},
		Planet: []PlanetConfig{
			{Name: "mercury", Radius: 0.4, OrbitRadius: 9, OrbitSpeed: 0.02, Color: [3]float32{0.6, 0.55, 0.5}},
			{Name: "venus", Radius: 0.9, OrbitRadius: 14, OrbitSpeed: 0.015, Color: [3]float32{0.9, 0.75, 0.5}, Atmosphere: true,
				GlowColor: &[3]float32{1.0, 0.8, 0.5}},
			{Name: "earth", Radius: 1.0, OrbitRadius: 20, OrbitSpeed: 0.01, Color: [3]float32{0.2, 0.4, 0.9}, Atmosphere: true},
			{Name: "mars", Radius: 0.6, OrbitRadius: 27, OrbitSpeed: 0.008, Color: [3]float32{0.8, 0.35, 0.2}, Atmosphere: true,
				GlowColor: &[3]float32{1.0, 0.5, 0.3}},
		},
		Comet: CometConfig{Enabled: true},
	}
}

// LoadSceneConfig reads a TOML scene file on top of the defaults.
func LoadSceneConfig(path string) (SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("failed to read scene config: %w", err)
	}
	cfg, err := ParseSceneConfig(data)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseSceneConfig decodes TOML on top of the defaults and validates the result.
// Unknown keys are rejected. A [[planet]] table replaces the default planet list.
func ParseSceneConfig(data []byte) (SceneConfig, error) {
	cfg := DefaultSceneConfig()
	cfg.Planet = nil

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return SceneConfig{}, fmt.Errorf("%w: line %d column %d: %s", ErrInvalidConfig, row, col, derr.Error())
		}
		return SceneConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.Planet == nil {
		cfg.Planet = DefaultSceneConfig().Planet
	}
	if err := cfg.Validate(); err != nil {
		return SceneConfig{}, err
	}
	return cfg, nil
}

func (c SceneConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Sun.Radius < 0 {
		return fmt.Errorf("%w: negative sun radius %v", ErrInvalidConfig, c.Sun.Radius)
	}
	names := make(set[string], len(c.Planet))
	for i, p := range c.Planet {
		if p.Radius < 0 || p.OrbitRadius < 0 {
			return fmt.Errorf("%w: planet %d (%s) has a negative radius", ErrInvalidConfig, i, p.Name)
		}
		if p.Name != "" {
			if _, dup := names[p.Name]; dup {
				return fmt.Errorf("%w: duplicate planet name %q", ErrInvalidConfig, p.Name)
			}
			names[p.Name] = struct{}{}
		}
	}
	if c.Comet.SemiMajorAxis < 0 {
		return fmt.Errorf("%w: negative comet semi-major axis", ErrInvalidConfig)
	}
	if c.Comet.Eccentricity < 0 || c.Comet.Eccentricity >= 1 {
		return fmt.Errorf("%w: comet eccentricity %v outside [0,1)", ErrInvalidConfig, c.Comet.Eccentricity)
	}
	return nil
}

// Marshal renders the config as TOML.
func (c SceneConfig) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

func vec3(v [3]float32) mgl32.Vec3 { return mgl32.Vec3(v) }

func optionalVec3(v *[3]float32) *mgl32.Vec3 {
	if v == nil {
		return nil
	}
	out := vec3(*v)
	return &out
}
