package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/bitshadow/host/termhost"
	"github.com/plus3/bitshadow/internal/app"
	"github.com/plus3/bitshadow/shadow"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML configuration file.")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	a, err := app.Load(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.Clear()

	host := termhost.New(screen, a.Config.Loop.Interval, a.Log.Named("term"))
	sys := shadow.NewSystem(a.Options(host, host.Viewport(), shadow.WithOverlay(host.Stats()))...)
	for _, opts := range a.Config.WorldOptions() {
		host.AddWorld(sys, opts)
	}
	if err := a.Prepare(sys); err != nil {
		screen.Fini()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := sys.Init(a.Setup()); err != nil {
		screen.Fini()
		return err
	}
	if sys.State() == shadow.StateIdle {
		if err := sys.Start(); err != nil {
			screen.Fini()
			return err
		}
	}
	runErr := host.Run(ctx, sys)
	screen.Fini()

	a.Log.Info("terminal host stopped", zap.Int64("frames", sys.Clock()), zap.Stringer("state", sys.State()))
	if err := a.Finish(context.Background(), sys); err != nil {
		return err
	}
	return runErr
}
