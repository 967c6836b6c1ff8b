// Package app wires configuration, logging, scripting and recording output
// for the bitshadow commands.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/bitshadow/config"
	"github.com/plus3/bitshadow/demo"
	"github.com/plus3/bitshadow/recordio"
	"github.com/plus3/bitshadow/recordstore"
	"github.com/plus3/bitshadow/script"
	"github.com/plus3/bitshadow/shadow"
	"go.uber.org/zap"
)

type App struct {
	Config  *config.Config
	Log     *zap.Logger
	Scripts *script.Engine
	Session string

	records []shadow.FrameRecord
}

// Load reads the configuration at path, or the defaults when path is empty,
// and builds the logger.
func Load(path string) (*App, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	return New(cfg)
}

func New(cfg *config.Config) (*App, error) {
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	session := cfg.Record.Session
	if session == "" {
		session = "session-" + time.Now().UTC().Format("20060102-150405")
	}
	return &App{
		Config:  cfg,
		Log:     log,
		Scripts: script.NewEngine(log.Named("script")),
		Session: session,
	}, nil
}

func (a *App) Close() {
	a.Scripts.Close()
	_ = a.Log.Sync()
}

// Options returns the scheduler options for host. A nil viewport keeps the
// configured fixed size.
func (a *App) Options(host shadow.FrameHost, viewport shadow.Viewport, extra ...shadow.Option) []shadow.Option {
	opts := append(a.Config.SystemOptions(),
		shadow.WithLogger(a.Log.Named("shadow")),
		shadow.WithHost(host),
	)
	if viewport != nil {
		opts = append(opts, shadow.WithViewport(viewport))
	}
	if a.Config.Record.Enabled && a.Config.System.TotalFrames > -1 {
		opts = append(opts, shadow.WithFrameComplete(a.collect))
	}
	return append(opts, extra...)
}

func (a *App) collect(frame int64, rec *shadow.FrameRecord) {
	if rec == nil {
		return
	}
	a.records = append(a.records, *rec)
}

// Prepare registers the demo and scripted kinds and applies the recorder
// settings.
func (a *App) Prepare(sys *shadow.System) error {
	demo.Register(sys.Factories())

	for _, file := range a.Config.Script.Files {
		if err := a.Scripts.LoadFile(file); err != nil {
			return err
		}
	}
	if dir := a.Config.Script.Dir; dir != "" {
		if err := a.Scripts.LoadDir(dir); err != nil {
			return fmt.Errorf("load scripts: %w", err)
		}
	}
	a.Scripts.Install(sys.Factories())
	a.Config.ApplyRecorder(sys.Recorder())

	a.Log.Info("kinds registered", zap.Strings("kinds", sys.Factories().Names()))
	return nil
}

// Setup populates the first world from the demo and spawn settings.
func (a *App) Setup() shadow.SetupFunc {
	cfg := a.Config
	return func(s *shadow.System) error {
		if cfg.Demo.Enabled {
			if err := demo.Setup(cfg.Demo.Walkers, cfg.Demo.Oscillators)(s); err != nil {
				return err
			}
		}
		for _, sp := range cfg.Spawn {
			for i := 0; i < sp.Count; i++ {
				if _, err := s.Add(sp.Kind, shadow.Options{Location: shadow.Vec(sp.X, sp.Y)}); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// Records returns the frames collected so far, including those still held by
// the recorder.
func (a *App) Records(sys *shadow.System) []shadow.FrameRecord {
	a.records = append(a.records, sys.Recorder().Drain()...)
	return a.records
}

// Finish writes the recorded frames to the configured yaml file and store.
func (a *App) Finish(ctx context.Context, sys *shadow.System) error {
	records := a.Records(sys)
	if len(records) == 0 {
		return nil
	}

	if out := a.Config.Record.Output; out != "" {
		if err := recordio.Write(out, a.Session, records); err != nil {
			return err
		}
		a.Log.Info("recording written", zap.String("file", out), zap.Int("frames", len(records)))
	}

	if a.Config.Store.DSN == "" {
		return nil
	}
	store, err := recordstore.Open(ctx, a.Config.Store, a.Log.Named("store"))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}
	if err := store.Save(ctx, a.Session, records); err != nil {
		return err
	}
	a.Log.Info("recording saved", zap.String("session", a.Session), zap.Int("frames", len(records)))
	return nil
}
