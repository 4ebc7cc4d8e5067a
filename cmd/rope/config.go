package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/PrincetonUniversity/verletrope"
)

// Config holds the various parameters required for running a simulation.
type Config struct {
	// Output is either a filename (path) for the HDF5 output file,
	// or the empty string for an interactive simulation.
	Output string

	Frontend string // possible values: opengl, terminal
	Steps    int    // number of steps of a non-interactive simulation
	Snapshot string // PNG file written at the end of a run or on request
	Log      string // log file, stderr if empty
	Sound    bool   // beep when an obstacle is placed (terminal only)

	// Rope parameters
	Segments        int        // number of nodes
	RopeLength      float64    // unit: pixel
	Origin          [2]float64 // position of the first node
	Spacing         [2]float64 // initial offset between nodes
	Anchor          [2]float64 // fixed anchor
	AnchorToPointer bool       // follow the pointer from the start?
	Obstacles       [][2]float64

	// Solver parameters
	Gravity        float64 // unit: pixel/time²
	Dt             float64 // unit: time
	Damping        float64 // unit: 1
	MaxSpeed       float64 // unit: pixel/step
	Iterations     int     // relaxation passes per step
	ObstacleRadius float64 // unit: pixel
	NodeRadius     float64 // unit: pixel

	// Display parameters
	Width        int     // unit: pixel
	Height       int     // unit: pixel
	FrameDelayMs int     // unit: ms
	CellW        float64 // terminal cell width, unit: pixel
	CellH        float64 // terminal cell height, unit: pixel
}

// DefaultConf are the default parameters.
var DefaultConf = defaultConf()

func defaultConf() *Config {
	sc := verletrope.DefaultScene()
	return &Config{
		Frontend:        "opengl",
		Steps:           1000,
		Sound:           true,
		Segments:        sc.Segments,
		RopeLength:      sc.RopeLength,
		Origin:          [2]float64{sc.Layout.Origin.X, sc.Layout.Origin.Y},
		Spacing:         [2]float64{sc.Layout.Spacing.X, sc.Layout.Spacing.Y},
		AnchorToPointer: sc.Anchor.ToPointer,
		Gravity:         sc.Params.Gravity,
		Dt:              sc.Params.Dt,
		Damping:         sc.Params.Damping,
		MaxSpeed:        sc.Params.MaxSpeed,
		Iterations:      sc.Params.Iterations,
		ObstacleRadius:  sc.Params.ObstacleRadius,
		NodeRadius:      sc.Params.NodeRadius,
		Width:           800,
		Height:          600,
		FrameDelayMs:    16,
		CellW:           8,
		CellH:           16,
	}
}

// ParseConfig parses the TOML config file whose path is provided.
func ParseConfig(path string) (*Config, error) {
	// config file overwrites default parameters
	conf := *DefaultConf
	conf.Obstacles = append([][2]float64(nil), DefaultConf.Obstacles...)
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("parse %s: unknown keys %v", path, keys)
	}
	return &conf, nil
}

// applyEnv overrides output related parameters with environment variables.
func applyEnv(conf *Config, getenv func(string) string) {
	if v := getenv("ROPE_OUTPUT"); v != "" {
		conf.Output = v
	}
	if v := getenv("ROPE_FRONTEND"); v != "" {
		conf.Frontend = strings.ToLower(v)
	}
	if v := getenv("ROPE_SNAPSHOT"); v != "" {
		conf.Snapshot = v
	}
	if v := getenv("ROPE_LOG"); v != "" {
		conf.Log = v
	}
}

// Validate reports every invalid parameter.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.Frontend == "opengl" || c.Frontend == "terminal", "bad frontend %q", c.Frontend)
	check(c.Steps >= 0, "negative step count %d", c.Steps)
	check(c.Segments >= 1, "rope needs at least one node, got %d", c.Segments)
	check(c.RopeLength >= 0, "negative rope length %g", c.RopeLength)
	check(c.Iterations >= 0, "negative iteration count %d", c.Iterations)
	check(c.Dt > 0, "time step must be positive, got %g", c.Dt)
	check(c.MaxSpeed > 0, "max speed must be positive, got %g", c.MaxSpeed)
	check(c.ObstacleRadius >= 0, "negative obstacle radius %g", c.ObstacleRadius)
	check(c.NodeRadius >= 0, "negative node radius %g", c.NodeRadius)
	check(c.Width > 0 && c.Height > 0, "bad window size %dx%d", c.Width, c.Height)
	check(c.FrameDelayMs >= 0, "negative frame delay %d", c.FrameDelayMs)
	check(c.CellW > 0 && c.CellH > 0, "bad cell size %gx%g", c.CellW, c.CellH)
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Scene converts the parameters into an initial simulation state.
func (c *Config) Scene() verletrope.Scene {
	sc := verletrope.Scene{
		Segments:   c.Segments,
		RopeLength: c.RopeLength,
		Layout: verletrope.Layout{
			Origin:  vec(c.Origin),
			Spacing: vec(c.Spacing),
		},
		Params: verletrope.Params{
			Gravity:        c.Gravity,
			Dt:             c.Dt,
			Damping:        c.Damping,
			MaxSpeed:       c.MaxSpeed,
			Iterations:     c.Iterations,
			ObstacleRadius: c.ObstacleRadius,
			NodeRadius:     c.NodeRadius,
		},
		Anchor: verletrope.Anchor{
			ToPointer: c.AnchorToPointer,
			Point:     vec(c.Anchor),
			Pointer:   vec(c.Anchor),
		},
	}
	for _, p := range c.Obstacles {
		sc.Obstacles = append(sc.Obstacles, vec(p))
	}
	return sc
}

// FrameDelay returns the pause between two interactive frames.
func (c *Config) FrameDelay() time.Duration {
	return time.Duration(c.FrameDelayMs) * time.Millisecond
}

func vec(p [2]float64) verletrope.Vec2 {
	return verletrope.Vec2{X: p[0], Y: p[1]}
}
