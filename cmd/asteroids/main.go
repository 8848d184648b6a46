package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/asteroids/internal/config"
	"github.com/plus3/asteroids/internal/logging"
	"github.com/plus3/asteroids/internal/present"
	"github.com/plus3/asteroids/internal/present/term"
	"github.com/plus3/asteroids/internal/present/window"
	"github.com/plus3/asteroids/internal/scenario"
	"github.com/plus3/asteroids/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "TOML config file (defaults are used when empty)")
	scenarioPath := flag.String("scenario", "", "YAML scenario file (built-in scenario when empty)")
	view := flag.String("view", "headless", "headless, term or window")
	frames := flag.Int("frames", 600, "frames to run in headless mode")
	dt := flag.Float64("dt", 0, "fixed frame time in seconds for headless mode (0 = frame.tick_rate)")
	profileMode := flag.String("profile", "off", "cpu, mem or off")
	flag.Parse()

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	sc := scenario.Default()
	if *scenarioPath != "" {
		if sc, err = scenario.Load(*scenarioPath); err != nil {
			return fmt.Errorf("load scenario: %w", err)
		}
	}

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "off", "":
	default:
		return fmt.Errorf("unknown -profile %q", *profileMode)
	}

	w := world.Build(cfg, sc, log)

	switch *view {
	case "headless":
		step := *dt
		if step <= 0 {
			step = cfg.Frame.TickRate.Seconds()
		}
		log.Info("running headless", zap.Int("frames", *frames), zap.Float64("dt", step))
		return w.RunHeadless(*frames, step).Generate(os.Stdout)

	case "term":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		viewer := &term.Viewer{
			Scheduler: w.Scheduler,
			List:      w.DrawList,
			Width:     sc.Field.Width,
			Height:    sc.Field.Height,
			BaseScale: w.Config.BaseScale,
			HUD:       present.NewHUD(60),
			Storage:   w.Storage,
		}
		return viewer.Run(ctx, cfg.Frame.TickRate)

	case "window":
		game := &window.Game{
			Scheduler: w.Scheduler,
			List:      w.DrawList,
			Width:     int(sc.Field.Width),
			Height:    int(sc.Field.Height),
			HUD:       present.NewHUD(60),
			Storage:   w.Storage,
		}
		return window.Run(game, "Asteroids", cfg.Frame.TickRate)

	default:
		return fmt.Errorf("unknown -view %q", *view)
	}
}
