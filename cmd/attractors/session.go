package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/export"
	"github.com/san-kum/attractors/internal/gesture"
	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/viz"
)

// Session flags shared by every command that builds an engine.
var (
	configFile    string
	presetName    string
	attractorList []string
	startName     string
	particleCount int
	trailLength   int
	seed          uint64
	integrator    string
	gestureSource string
	replayPath    string
	theme         string
	fps           int
	verbose       bool
	logFile       string
)

func bindSessionFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.PersistentFlags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&presetName, "preset", "", "use preset configuration")
	f.StringSliceVar(&attractorList, "attractors", nil, "active attractors in cycle order (default all)")
	f.StringVar(&startName, "attractor", "", "attractor to start on")
	f.IntVar(&particleCount, "particles", def.Particles, "particle count")
	f.IntVar(&trailLength, "trail", def.TrailLength, "trail length per particle")
	f.Uint64Var(&seed, "seed", def.Seed, "random seed")
	f.StringVar(&integrator, "integrator", def.Integrator, "integrator (euler, rk4)")
	f.StringVar(&gestureSource, "gesture", def.Gesture.Source, "gesture source (none, pointer, replay)")
	f.StringVar(&replayPath, "replay", "", "hand landmark recording for the replay source")
	f.StringVar(&theme, "theme", def.Theme, "colour theme: "+strings.Join(viz.ThemeNames(), ", "))
	f.IntVar(&fps, "fps", def.FPS, "frame rate")
	f.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	f.StringVar(&logFile, "log-file", "", "write logs to this file")
}

// resolveConfig layers defaults, the preset, the config file and finally any
// flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if presetName != "" {
		cfg = config.GetPreset(presetName)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadInto(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("attractors") {
		cfg.Attractors = attractorList
	}
	if flags.Changed("attractor") {
		cfg.Start = startName
	}
	if flags.Changed("particles") {
		cfg.Particles = particleCount
	}
	if flags.Changed("trail") {
		cfg.TrailLength = trailLength
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("gesture") {
		cfg.Gesture.Source = gestureSource
	}
	if flags.Changed("replay") {
		cfg.Gesture.ReplayPath = replayPath
		if !flags.Changed("gesture") {
			cfg.Gesture.Source = config.SourceReplay
		}
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to --log-file when given. Terminal UIs otherwise discard
// logs so they do not tear the screen.
func newLogger(tui bool) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case tui:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "attractors",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

func buildEngine(cfg *config.Config, logger *log.Logger) (*sim.Engine, error) {
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	integ, err := cfg.GetIntegrator()
	if err != nil {
		return nil, err
	}
	engine, err := sim.New(catalog, integ, cfg.EngineOptions(), logger)
	if err != nil {
		return nil, err
	}
	if cfg.Start != "" {
		if err := engine.SelectName(cfg.Start); err != nil {
			return nil, err
		}
	}
	return engine, nil
}

// startGesture wires the configured hand source into the view options. A
// replay tracker runs in g until ctx is cancelled.
func startGesture(ctx context.Context, g *errgroup.Group, cfg *config.Config, engine *sim.Engine, logger *log.Logger) viz.Options {
	opts := viz.Options{
		FPS:     cfg.FPS,
		Theme:   cfg.Theme,
		SaveSVG: export.CanvasSaver(".", time.Now),
		Logger:  logger,
	}

	switch cfg.Gesture.Source {
	case config.SourcePointer:
		cell := &gesture.Cell{}
		opts.Hands = cell
		opts.Pointer = gesture.NewPointer(cell)
		opts.Status = func() string {
			if cell.Load().Present {
				return "pointer"
			}
			return gesture.StatusNoHand
		}
	case config.SourceReplay:
		cell := &gesture.Cell{}
		tracker := gesture.NewTracker(gesture.NewReplayFile(cfg.Gesture.ReplayPath), cell, cfg.TrackerOptions(), logger)
		engine.SetCycleSource(tracker.Cycles())
		opts.Hands = cell
		opts.Status = tracker.Status
		g.Go(func() error {
			// The view keeps running without hands.
			err := tracker.Run(ctx)
			switch {
			case errors.Is(err, dynamo.ErrGestureUnavailable):
				logger.Warn("continuing without gestures", "err", err)
			case err != nil && !errors.Is(err, context.Canceled):
				logger.Error("gesture tracking stopped", "err", err)
			}
			return nil
		})
	default:
		opts.Status = func() string { return "gesture off" }
	}
	return opts
}

// runFrontend builds the engine and runs ui on the calling goroutine, which
// raylib requires to be the main thread. Returning from ui stops the tracker.
func runFrontend(cmd *cobra.Command, tui bool, ui func(context.Context, *sim.Engine, viz.Options) error) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(tui)
	if err != nil {
		return err
	}
	defer closeLog()

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	opts := startGesture(gctx, g, cfg, engine, logger)
	uiErr := ui(gctx, engine, opts)
	cancel()
	if err := g.Wait(); err != nil {
		logger.Error("background task failed", "err", err)
	}
	return uiErr
}
