package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/plus3/bitshadow/internal/app"
	"github.com/plus3/bitshadow/shadow"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML configuration file.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	walkers := flag.Int("walkers", 2000, "The initial number of walkers to create.")
	oscillators := flag.Int("oscillators", 2000, "The initial number of oscillators to create.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	a, err := app.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.Close()
	log := a.Log.Named("stress")

	a.Config.Demo.Enabled = true
	a.Config.Demo.Walkers = *walkers
	a.Config.Demo.Oscillators = *oscillators

	host := &shadow.ManualHost{}
	sys := shadow.NewSystem(a.Options(host, nil, shadow.WithNoStartLoop())...)
	for _, opts := range a.Config.WorldOptions() {
		sys.AddWorld(nil, opts)
	}
	if err := a.Prepare(sys); err != nil {
		log.Fatal("prepare", zap.Error(err))
	}

	log.Info("populating worlds", zap.Int("walkers", *walkers), zap.Int("oscillators", *oscillators))
	if err := sys.Init(a.Setup()); err != nil {
		log.Fatal("setup", zap.Error(err))
	}
	log.Info("population complete", zap.Int("entities", sys.Count()))

	report := &Report{
		Duration:       *duration,
		Walkers:        *walkers,
		Oscillators:    *oscillators,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	if err := sys.Start(); err != nil {
		log.Fatal("start", zap.Error(err))
	}

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			frameStart := time.Now()
			fired, err := host.Fire()
			if err != nil {
				log.Error("frame", zap.Error(err))
				break Loop
			}
			if !fired {
				break Loop
			}
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Stats = sys.Stats()
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	log.Info("simulation finished", zap.Int64("frames", report.Stats.Frames))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")

	if err := a.Finish(context.Background(), sys); err != nil {
		log.Error("finish", zap.Error(err))
	}
}
