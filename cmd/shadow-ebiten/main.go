package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/plus3/bitshadow/host/ebitenhost"
	"github.com/plus3/bitshadow/internal/app"
	"github.com/plus3/bitshadow/shadow"
	"github.com/plus3/bitshadow/shadow/debugui"
	debugui_ebiten "github.com/plus3/bitshadow/shadow/debugui/ebiten"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML configuration file.")
	title := flag.String("title", "bitshadow", "Window title.")
	flag.Parse()

	if err := run(*configPath, *title); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, title string) error {
	a, err := app.Load(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	width, height := int(a.Config.Viewport.Width), int(a.Config.Viewport.Height)
	backend := debugui_ebiten.NewImguiBackend(title, width, height)

	game := ebitenhost.New(width, height, a.Log.Named("ebiten"))
	sys := shadow.NewSystem(a.Options(game, game.Viewport())...)
	game.Attach(sys)
	for _, opts := range a.Config.WorldOptions() {
		game.AddWorld(sys, opts)
	}

	overlay := debugui_ebiten.NewOverlay(backend, debugui.New(sys))
	sys.SetOverlay(overlay)
	game.SetOverlay(overlay)

	if err := a.Prepare(sys); err != nil {
		return err
	}
	if err := sys.Init(a.Setup()); err != nil {
		return err
	}
	if sys.State() == shadow.StateIdle {
		if err := sys.Start(); err != nil {
			return err
		}
	}
	runErr := game.Run(title)

	a.Log.Info("ebiten host stopped", zap.Int64("frames", sys.Clock()), zap.Stringer("state", sys.State()))
	if err := a.Finish(context.Background(), sys); err != nil {
		return err
	}
	return runErr
}
