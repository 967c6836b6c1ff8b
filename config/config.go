// Package config loads the TOML configuration shared by the commands.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/plus3/bitshadow/shadow"
)

type Config struct {
	System   SystemConfig   `toml:"system"`
	Record   RecordConfig   `toml:"record"`
	Features FeaturesConfig `toml:"features"`
	Loop     LoopConfig     `toml:"loop"`
	Viewport ViewportConfig `toml:"viewport"`
	Worlds   []WorldConfig  `toml:"worlds"`
	Logging  LoggingConfig  `toml:"logging"`
	Store    StoreConfig    `toml:"store"`
	Script   ScriptConfig   `toml:"script"`
	Demo     DemoConfig     `toml:"demo"`
	Spawn    []SpawnConfig  `toml:"spawn"`
}

type SystemConfig struct {
	TotalFrames  int64         `toml:"total_frames"` // -1 runs forever
	Trace        bool          `toml:"trace"`
	NoStartLoop  bool          `toml:"no_start_loop"`
	ResizeSettle time.Duration `toml:"resize_settle"`
}

type RecordConfig struct {
	Enabled    bool     `toml:"enabled"`
	StartFrame int64    `toml:"start_frame"` // -1 = unset
	EndFrame   int64    `toml:"end_frame"`   // -1 = unset
	Items      []string `toml:"items"`
	Worlds     []string `toml:"worlds"`
	Output     string   `toml:"output"` // yaml file written on exit, empty to skip
	Session    string   `toml:"session"`
}

type FeaturesConfig struct {
	BoxShadow bool `toml:"box_shadow"`
	RGBA      bool `toml:"rgba"`
	HSLA      bool `toml:"hsla"`
}

type LoopConfig struct {
	Interval time.Duration `toml:"interval"`
}

type ViewportConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type WorldConfig struct {
	Width         float64  `toml:"width"`
	Height        float64  `toml:"height"`
	Resolution    float64  `toml:"resolution"`
	BorderRadius  float64  `toml:"border_radius"`
	ColorMode     string   `toml:"color_mode"` // "rgba" or "hsla"
	GravityX      float64  `toml:"gravity_x"`
	GravityY      float64  `toml:"gravity_y"`
	C             float64  `toml:"c"`
	Background    []int    `toml:"background"`
	Opacity       *float64 `toml:"opacity"`
	BoundToWindow bool     `toml:"bound_to_window"`
	NoMenu        bool     `toml:"no_menu"`
	MenuText      string   `toml:"menu_text"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type StoreConfig struct {
	DSN      string `toml:"dsn"` // empty disables persistence
	MaxConns int32  `toml:"max_conns"`
}

type ScriptConfig struct {
	Files []string `toml:"files"`
	Dir   string   `toml:"dir"`
}

type DemoConfig struct {
	Enabled     bool `toml:"enabled"`
	Walkers     int  `toml:"walkers"`
	Oscillators int  `toml:"oscillators"`
}

// SpawnConfig adds Count items of Kind at (X, Y) world units during setup.
type SpawnConfig struct {
	Kind  string  `toml:"kind"`
	Count int     `toml:"count"`
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		System: SystemConfig{
			TotalFrames:  -1,
			ResizeSettle: 100 * time.Millisecond,
		},
		Record: RecordConfig{
			StartFrame: -1,
			EndFrame:   -1,
			Items:      shadow.DefaultItemProperties,
			Worlds:     shadow.DefaultWorldProperties,
		},
		Features: FeaturesConfig{
			BoxShadow: true,
			RGBA:      true,
			HSLA:      true,
		},
		Loop: LoopConfig{
			Interval: time.Second / 60,
		},
		Viewport: ViewportConfig{
			Width:  800,
			Height: 600,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Store: StoreConfig{
			MaxConns: 4,
		},
		Demo: DemoConfig{
			Enabled:     true,
			Walkers:     4,
			Oscillators: 6,
		},
	}
}

// SystemOptions translates the configuration into scheduler options.
func (c *Config) SystemOptions() []shadow.Option {
	opts := []shadow.Option{
		shadow.WithFeatures(shadow.Features{
			BoxShadow: c.Features.BoxShadow,
			RGBA:      c.Features.RGBA,
			HSLA:      c.Features.HSLA,
		}),
		shadow.WithViewport(shadow.FixedViewport{W: c.Viewport.Width, H: c.Viewport.Height}),
		shadow.WithTotalFrames(c.System.TotalFrames),
		shadow.WithTrace(c.System.Trace),
	}
	if c.System.ResizeSettle > 0 {
		opts = append(opts, shadow.WithResizeSettle(c.System.ResizeSettle))
	}
	if c.System.NoStartLoop {
		opts = append(opts, shadow.WithNoStartLoop())
	}
	if c.Record.Enabled {
		opts = append(opts, shadow.WithRecording(c.Record.StartFrame, c.Record.EndFrame))
	}
	return opts
}

// ApplyRecorder copies the recording allow-lists onto r.
func (c *Config) ApplyRecorder(r *shadow.Recorder) {
	if len(c.Record.Items) > 0 {
		r.ItemProperties = c.Record.Items
	}
	if len(c.Record.Worlds) > 0 {
		r.WorldProperties = c.Record.Worlds
	}
}

// WorldOptions returns the configured worlds, or one default world.
func (c *Config) WorldOptions() []shadow.WorldOptions {
	if len(c.Worlds) == 0 {
		return []shadow.WorldOptions{{}}
	}
	out := make([]shadow.WorldOptions, 0, len(c.Worlds))
	for _, w := range c.Worlds {
		opts := shadow.WorldOptions{
			Width:         w.Width,
			Height:        w.Height,
			Resolution:    w.Resolution,
			BorderRadius:  w.BorderRadius,
			ColorMode:     shadow.ColorMode(w.ColorMode),
			C:             w.C,
			Opacity:       w.Opacity,
			BoundToWindow: w.BoundToWindow,
			NoMenu:        w.NoMenu,
			MenuText:      w.MenuText,
		}
		if w.GravityX != 0 || w.GravityY != 0 {
			opts.Gravity = &shadow.Vector{X: w.GravityX, Y: w.GravityY}
		}
		if len(w.Background) == 3 {
			opts.BackgroundColor = &shadow.RGB{uint8(w.Background[0]), uint8(w.Background[1]), uint8(w.Background[2])}
		}
		out = append(out, opts)
	}
	return out
}
