// Package game binds the particle engine to the raylib viewer: stepping,
// input, rendering and telemetry plumbing.
package game

import (
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/liamegan/playground/camera"
	"github.com/liamegan/playground/config"
	"github.com/liamegan/playground/particles"
	"github.com/liamegan/playground/scene"
	"github.com/liamegan/playground/telemetry"
	"github.com/liamegan/playground/ui"
)

// Options configures game construction.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete viewer state around one particle system.
type Game struct {
	sys *particles.System
	rng *rand.Rand
	cam *camera.Camera
	hud *ui.HUD

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	paused         bool
	stepsPerUpdate int
	logStats       bool
	logInterval    int
}

// NewGame builds the system, populates the configured scene and wires
// telemetry. Config must be initialized first.
func NewGame(opts Options) *Game {
	cfg := config.Cfg()

	sys := particles.NewSystem(particles.Config{
		Width:        cfg.World.Width,
		Height:       cfg.World.Height,
		CellSize:     cfg.Physics.GridCellSize,
		MaxParticles: cfg.Population.MaxParticles,
		MaxDensity:   cfg.Population.MaxDensity,
		MaxForce:     cfg.Physics.MaxForce,
	})

	g := &Game{
		sys:            sys,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
		logStats:       opts.LogStats,
		logInterval:    cfg.Telemetry.StatsWindow,
	}
	sys.SetPhaseHook(g.perf.StartPhase)

	if !opts.Headless {
		g.cam = camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, cfg.Derived.WorldW32, cfg.Derived.WorldH32)
		g.hud = ui.NewHUD(16, 16)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		Logf("telemetry output disabled: %v", err)
	} else {
		g.output = output
		if err := g.output.WriteConfig(cfg); err != nil {
			Logf("writing config snapshot: %v", err)
		}
	}

	scene.Populate(sys, g.rng, cfg)

	return g
}

// System exposes the underlying particle system.
func (g *Game) System() *particles.System {
	return g.sys
}

// Tick returns the completed tick count.
func (g *Game) Tick() int {
	return g.sys.Tick()
}

// Step advances the engine one tick and feeds telemetry.
func (g *Game) Step() {
	g.perf.StartTick()
	g.sys.Update()
	g.perf.EndTick()

	g.collector.Record(g.sys.LastStats())
	if g.collector.WindowReady() {
		stats := g.collector.Flush()
		if g.logStats {
			slog.Info("window", "stats", stats)
		}
		if err := g.output.WriteTelemetry(stats); err != nil {
			Logf("writing telemetry: %v", err)
		}
		if err := g.output.WritePerf(g.perf.Stats(), stats.WindowEndTick); err != nil {
			Logf("writing perf: %v", err)
		}
	}
}

// Update runs one graphical frame: input, then the configured number of
// simulation steps.
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// UpdateHeadless runs the configured number of steps with no input or
// rendering, logging state at window boundaries.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
		if g.logInterval > 0 && g.sys.Tick()%g.logInterval == 0 {
			g.logWorldState()
			g.logPerfStats()
		}
	}
}

// Unload flushes and closes telemetry output.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		Logf("closing telemetry output: %v", err)
	}
}

// spawnBlob drops a small soft body at the given world position.
func (g *Game) spawnBlob(at r2.Vec) {
	cfg := config.Cfg()
	scene.Blob(g.sys, g.sys.Grid().Clamp(at),
		cfg.Scene.BlobParticles, cfg.Scene.BlobRadius, cfg.Scene.BlobStiffness, scene.TagBlob)
}
