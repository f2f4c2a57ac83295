package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"logo-scene/assets"
	"logo-scene/interact"
	"logo-scene/renderer"
	"logo-scene/scene"
)

// TorusSpin is the torus rotation rate about Y in radians per second.
const TorusSpin = 0.5

// Clock reports the seconds elapsed since the scene started.
type Clock interface {
	Elapsed() float64
}

type wallClock struct {
	start time.Time
}

// NewClock starts a clock at zero now.
func NewClock() Clock {
	return wallClock{start: time.Now()}
}

func (c wallClock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}

// Host is the window the driver presents to.
type Host interface {
	ShouldClose() bool
	PollEvents()
	SwapBuffers()
	GetFramebufferSize() (int, int)
}

// Overlay draws on top of the rendered scene, e.g. the debug panel.
type Overlay interface {
	Draw(dt float32, fbW, fbH int)
}

// Driver runs the per-frame tick.
type Driver struct {
	Scene   *scene.Scene
	Torus   *scene.Node
	Orbit   *interact.OrbitControls
	Engine  *renderer.RenderEngine
	Queue   *assets.Queue
	Clock   Clock
	Host    Host
	Overlay Overlay

	log    *slog.Logger
	last   float64
	frames uint64
}

func NewDriver(log *slog.Logger, h *Handles, orbit *interact.OrbitControls, engine *renderer.RenderEngine, queue *assets.Queue, clock Clock, host Host) *Driver {
	if log == nil {
		log = slog.Default()
	}
	if clock == nil {
		clock = NewClock()
	}
	return &Driver{
		Scene:  h.Scene,
		Torus:  h.Torus,
		Orbit:  orbit,
		Engine: engine,
		Queue:  queue,
		Clock:  clock,
		Host:   host,
		log:    log,
	}
}

// Tick advances one frame: apply finished loads, spin the torus, update the
// orbit camera, render, draw the overlay and present.
func (d *Driver) Tick() error {
	if d.Queue != nil {
		if n := d.Queue.Drain(); n > 0 {
			d.log.Debug("applied completions", "count", n, "frame", d.frames)
		}
	}

	t := d.Clock.Elapsed()
	dt := float32(t - d.last)
	d.last = t
	d.Torus.Transform.Rotation[1] = float32(TorusSpin * t)

	if d.Orbit != nil {
		d.Orbit.Update()
	}

	if err := d.Engine.Render(d.Scene); err != nil {
		return fmt.Errorf("frame %d: %w", d.frames, err)
	}

	if d.Host != nil {
		if d.Overlay != nil {
			fbW, fbH := d.Host.GetFramebufferSize()
			d.Overlay.Draw(dt, fbW, fbH)
		}
		d.Host.SwapBuffers()
		d.Host.PollEvents()
	}
	d.frames++
	return nil
}

// Run ticks until the host asks to close or ctx is cancelled. A render
// error stops the loop.
func (d *Driver) Run(ctx context.Context) error {
	d.log.Info("frame loop started")
	for {
		if err := ctx.Err(); err != nil {
			d.log.Info("frame loop cancelled", "frames", d.frames)
			return nil
		}
		if d.Host != nil && d.Host.ShouldClose() {
			d.log.Info("window closed", "frames", d.frames)
			return nil
		}
		if err := d.Tick(); err != nil {
			return err
		}
	}
}

// Frames is the number of completed ticks.
func (d *Driver) Frames() uint64 {
	return d.frames
}
