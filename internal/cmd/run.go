package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Alia5/keygrab/internal/capture"
	"github.com/Alia5/keygrab/internal/keymap"
	"github.com/Alia5/keygrab/internal/log"
	"github.com/Alia5/keygrab/internal/remap"
	"github.com/Alia5/keygrab/internal/util"
	"github.com/Alia5/keygrab/output"
)

// ConfigFile is the configuration file kong loaded, if any. main binds it
// so run can watch it.
type ConfigFile struct {
	Path string
}

// Tap is the platform interception hook. *capture.EventTap implements it.
type Tap interface {
	Run(ctx context.Context, cb capture.Callback) error
}

type Run struct {
	Mapped       []string      `help:"Keys withheld from the OS and handed to the remapper (e.g. caps,lctl)" env:"KEYGRAB_MAPPED" sep:","`
	Remap        []string      `help:"One-to-one remaps as from:to pairs (e.g. caps:esc); sources are mapped implicitly" env:"KEYGRAB_REMAP" sep:","`
	SettleDelay  time.Duration `help:"Pause after each injected event" default:"20ms" env:"KEYGRAB_SETTLE_DELAY"`
	Watch        bool          `help:"Reload mapped keys and remaps when the config file changes" env:"KEYGRAB_WATCH"`
	HighPriority bool          `help:"Raise process scheduling priority" env:"KEYGRAB_HIGH_PRIORITY"`
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, events log.EventLogger, cfg ConfigFile) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if r.HighPriority {
		if err := util.RaisePriority(logger); err != nil {
			logger.Warn("could not raise priority", "error", err)
		}
	}

	inj, err := output.NewInjector()
	if err != nil {
		return fmt.Errorf("create injector: %w", err)
	}
	defer inj.Close()

	return r.Serve(ctx, logger, events, cfg, capture.NewEventTap(logger), inj)
}

// Serve wires capture, remapper and output around tap and inj and blocks
// until ctx is done or a component fails.
func (r *Run) Serve(ctx context.Context, logger *slog.Logger, events log.EventLogger, cfg ConfigFile, tap Tap, inj output.Injector) error {
	codes, table, err := keymap.Keymap{Mapped: r.Mapped, Remap: r.Remap}.Resolve()
	if err != nil {
		return err
	}
	if len(codes) == 0 {
		logger.Warn("no mapped keys; every event passes through")
	}

	mapped := capture.NewMappedKeys(codes...)
	stream := capture.NewStream()
	pipeline := capture.New(capture.Options{
		Mapped: mapped,
		Logger: logger,
		Events: events,
	})
	writer := output.NewWriter(inj, output.WriterConfig{SettleDelay: r.SettleDelay, Events: events}, logger)
	engine := remap.New(table, stream, writer, logger)

	logger.Info("starting keygrab",
		"mapped", len(codes),
		"remaps", len(table),
		"settleDelay", writer.SettleDelay(),
	)

	g, ctx := errgroup.WithContext(ctx)
	pipeline.Start(stream)
	g.Go(func() error { return engine.Run(ctx) })
	g.Go(func() error { return tap.Run(ctx, pipeline.Callback()) })

	if r.Watch {
		if cfg.Path == "" {
			logger.Warn("--watch given but no config file was loaded")
		} else {
			w := keymap.NewWatcher(cfg.Path, func(km keymap.Keymap) {
				codes, table, err := km.Resolve()
				if err != nil {
					logger.Warn("ignoring invalid keymap", "error", err)
					return
				}
				mapped.Replace(codes)
				engine.Replace(table)
				logger.Info("keymap applied", "mapped", len(codes), "remaps", len(table))
			}, logger)
			g.Go(func() error { return w.Run(ctx) })
		}
	}

	// The stream stays open after shutdown. Events the tap queued while
	// stopping are still forwarded into it.
	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		logger.Info("keygrab stopped")
		return nil
	}
	return err
}
