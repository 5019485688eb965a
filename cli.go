package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to config file",
			Sources: cli.EnvVars("STICKYWALL_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "source",
			Aliases: []string{"s"},
			Usage:   "Feed URL or local JSON file",
			Sources: cli.EnvVars("STICKYWALL_SOURCE"),
		},
		&cli.IntFlag{
			Name:  "columns",
			Usage: "Notes per row",
		},
	}
}

// setup loads the config, applies flag overrides and opens the logger.
func setup(cmd *cli.Command) (*Config, *slog.Logger, func(), error) {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return nil, nil, nil, err
	}
	if s := cmd.String("source"); s != "" {
		cfg.Source = s
	}
	if n := cmd.Int("columns"); n > 0 {
		cfg.Columns = int(n)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("config validation failed: %w", err)
	}
	logger, closer, err := cfg.newLogger()
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, func() { closer.Close() }, nil
}

func runWall(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	mode, ok := parseMode(cmd.String("mode"))
	if !ok {
		return fmt.Errorf("unknown mode %q", cmd.String("mode"))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	src := newSource(cfg.Source)
	var changed chan struct{}
	if path := localPath(src); path != "" {
		changed = make(chan struct{}, 1)
		go func() {
			if err := watchFeedFile(ctx, path, logger, changed); err != nil {
				logger.Warn("watcher unavailable", slog.String("error", err.Error()))
			}
		}()
	}

	var stats StatsBridge
	if cfg.StatsSource != "" {
		stats = &activityLogBridge{path: cfg.StatsSource}
	}

	m, err := newModel(modelOptions{
		config:      cfg,
		source:      src,
		stats:       stats,
		mode:        mode,
		feedChanged: changed,
		logger:      logger,
	})
	if err != nil {
		return err
	}

	logger.Info("starting", slog.String("source", cfg.Source), slog.String("mode", mode.String()))
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// runRender draws the wall through the raster renderer to a PNG file.
// With --watch it keeps polling and redraws whenever the notes change.
func runRender(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	out := cmd.String("out")
	width, height := int(cmd.Int("width")), int(cmd.Int("height"))
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}

	fonts, err := loadFonts()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	board := newBoard(boardOptions{
		columns:  cfg.Columns,
		ts:       fonts.typesetter(),
		location: loc,
		logger:   logger,
	})
	src := newSource(cfg.Source)

	if !cmd.Bool("watch") {
		fctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		body, err := src.Fetch(fctx)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", cfg.Source, err)
		}
		if !board.Apply(DataArrived{Body: body}) {
			return fmt.Errorf("%s: no usable notes", cfg.Source)
		}
		return saveWallPNG(out, board, fonts, width, height)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	changed := make(chan struct{}, 1)
	g, gctx := errgroup.WithContext(ctx)
	if path := localPath(src); path != "" {
		g.Go(func() error {
			return watchFeedFile(gctx, path, logger, changed)
		})
	}
	g.Go(func() error {
		p := &poller{src: src, interval: cfg.PollInterval, logger: logger}
		return p.run(gctx, changed, func(ev DataArrived) {
			if !board.Apply(ev) {
				return
			}
			settle(board)
			if err := saveWallPNG(out, board, fonts, width, height); err != nil {
				logger.Error("render failed", slog.String("error", err.Error()))
				return
			}
			logger.Info("rendered", slog.String("out", out), slog.Int("notes", len(board.Notes())))
		})
	})
	return g.Wait()
}

// settle runs the resting animation to completion so a still image shows
// final sizes.
func settle(b *Board) {
	b.Apply(Frame{DT: 120})
}

func runAdd(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	path := localPath(newSource(cfg.Source))
	if path == "" {
		return fmt.Errorf("cannot add to remote feed %s", cfg.Source)
	}
	if err := appendAnswer(path, cmd.Args().First(), time.Now()); err != nil {
		return err
	}
	logger.Info("answer added", slog.String("path", path))
	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "stickywall",
		Usage: "Pannable, zoomable wall of sticky notes fed by a JSON list",
		Flags: append(configFlags(),
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "Start page: wall, grid or demo",
				Value:   ModeWall.String(),
			},
		),
		Action: runWall,
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "Render the wall to a PNG file",
				Flags: append(configFlags(),
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output PNG path",
						Value:   "wall.png",
					},
					&cli.IntFlag{Name: "width", Usage: "Image width in pixels", Value: 1280},
					&cli.IntFlag{Name: "height", Usage: "Image height in pixels", Value: 800},
					&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "Re-render when the feed changes"},
				),
				Action: runRender,
			},
			{
				Name:      "add",
				Usage:     "Append an answer to the local feed file",
				ArgsUsage: "<answer>",
				Flags:     configFlags(),
				Action:    runAdd,
			},
		},
	}
}
