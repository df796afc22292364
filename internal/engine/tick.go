package engine

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Engine drives the world forward on a wall clock. One step is one
// simulated day.
type Engine struct {
	World    *World
	Interval time.Duration // wall-clock length of one day at 1x

	speed   atomic.Int64 // speed ×100; 0 = paused
	running atomic.Bool

	// OnDay fires after each advanced day, outside the world lock.
	OnDay func(day int)
}

// NewEngine wires an engine at 1x speed.
func NewEngine(w *World, interval time.Duration) *Engine {
	e := &Engine{World: w, Interval: interval}
	e.speed.Store(100)
	return e
}

// Speed returns the current multiplier (0 = paused).
func (e *Engine) Speed() float64 {
	return float64(e.speed.Load()) / 100
}

// SetSpeed changes the multiplier. Zero or negative pauses.
func (e *Engine) SetSpeed(mult float64) {
	if mult < 0 {
		mult = 0
	}
	e.speed.Store(int64(mult * 100))
	slog.Info("speed changed", "multiplier", mult)
}

// Pause is SetSpeed(0).
func (e *Engine) Pause() { e.SetSpeed(0) }

// Running reports whether the loop is live.
func (e *Engine) Running() bool { return e.running.Load() }

// Run starts the loop. Blocks until Stop is called.
func (e *Engine) Run() {
	e.running.Store(true)
	slog.Info("engine started", "interval", e.Interval, "speed", e.Speed())

	for e.running.Load() {
		speed := e.Speed()
		if speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		if e.World.AdvanceDay() && e.OnDay != nil {
			e.OnDay(e.World.Day)
		}

		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}
	slog.Info("engine stopped", "day", e.World.Day)
}

// Stop halts the loop after the current step.
func (e *Engine) Stop() {
	e.running.Store(false)
}
