package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/raykin/internal/application/game"
	"github.com/younwookim/raykin/internal/application/replay"
	"github.com/younwookim/raykin/internal/application/scene/playing"
	"github.com/younwookim/raykin/internal/infrastructure/config"
	"github.com/younwookim/raykin/internal/logger"
	"go.uber.org/zap"
)

type options struct {
	configDir  string
	stage      string
	record     string
	replayFile string
	headless   bool
	logLevel   string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fset := flag.NewFlagSet("game", flag.ContinueOnError)
	fset.StringVar(&opts.configDir, "config", "", "Config directory to load and watch (default: embedded configs)")
	fset.StringVar(&opts.stage, "stage", "demo", "Stage name under stages/")
	fset.StringVar(&opts.record, "record", "", "Record input to file (e.g., -record replay.json)")
	fset.StringVar(&opts.replayFile, "replay", "", "Play back a recorded input file")
	fset.BoolVar(&opts.headless, "headless", false, "With -replay, simulate without a window and print the result")
	fset.StringVar(&opts.logLevel, "log-level", "", "Override logging.level")
	if err := fset.Parse(args); err != nil {
		return opts, err
	}
	if opts.headless && opts.replayFile == "" {
		return opts, errors.New("-headless requires -replay")
	}
	if opts.record != "" && opts.replayFile != "" {
		return opts, errors.New("-record and -replay are exclusive")
	}
	return opts, nil
}

func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	loader, err := newLoader(opts.configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := loader.LoadAll(opts.stage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Physics.Logging.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger.Init(level, cfg.Physics.Logging.File)
	defer logger.Sync()

	if opts.headless {
		if err := runHeadless(os.Stdout, cfg, opts.replayFile); err != nil {
			logger.Fatal("headless replay failed", zap.Error(err))
		}
		return
	}

	if err := runWindow(loader, cfg, opts); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}

func runWindow(loader *config.Loader, cfg *config.GameConfig, opts options) error {
	var (
		scene *playing.Playing
		err   error
	)
	if opts.replayFile != "" {
		data, lerr := replay.LoadReplay(opts.replayFile)
		if lerr != nil {
			return lerr
		}
		scene, err = playing.NewReplay(cfg.Physics, opts.stage, cfg.Stage, replay.NewReplayer(*data))
	} else {
		scene, err = playing.New(cfg.Physics, opts.stage, cfg.Stage, opts.record)
	}
	if err != nil {
		return err
	}

	if opts.configDir != "" {
		watcher, werr := config.NewWatcher(opts.configDir, filepath.Join(opts.configDir, "stages"))
		if werr != nil {
			logger.Warn("config hot reload disabled", zap.Error(werr))
		} else {
			scene.WatchConfig(loader, watcher)
			logger.Info("watching config", zap.String("dir", opts.configDir))
		}
	}

	display := cfg.Physics.Display
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight, cfg.Physics.Simulation.TickRate)
	defer g.Close()

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("raykin - " + cfg.Stage.Name)
	ebiten.SetTPS(cfg.Physics.Simulation.TickRate)

	logger.Info("starting", zap.String("stage", opts.stage), zap.String("backend", cfg.Physics.World.Backend))
	return ebiten.RunGame(g)
}
