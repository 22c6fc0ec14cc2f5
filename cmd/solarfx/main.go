package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gekko3d/solarfx"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Scene TOML file. Defaults are used when empty.")
		debug       = flag.Bool("debug", false, "Enable debug logging.")
		seed        = flag.Uint64("seed", 0, "Particle seed; overrides the config when non-zero.")
		printConfig = flag.Bool("print-config", false, "Print the effective scene config and exit.")
	)
	flag.Parse()

	cfg := solarfx.DefaultSceneConfig()
	if *configPath != "" {
		var err error
		if cfg, err = solarfx.LoadSceneConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	cfg.Debug = cfg.Debug || *debug

	if *printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	app := solarfx.NewAppBuilder().
		UseModule(
			solarfx.LoggingModule{Prefix: "solarfx", Debug: cfg.Debug},
			solarfx.TimeModule{},
			solarfx.NewPlatformWindow(cfg.Window),
			solarfx.CameraControlModule{},
			solarfx.ShaderSyncModule{},
			solarfx.HierarchyModule{},
			solarfx.OrbitModule{},
			solarfx.SceneModule{Config: cfg},
			solarfx.ClientModule{Window: cfg.Window},
		).
		Build()

	app.Run()
}
