// Package app wires the scene, drag controller, telemetry and orientation
// stream together. The graphical, terminal and headless front ends all
// drive the same App through its Surface.
package app

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/spin/components"
	"github.com/pthm-cable/spin/config"
	"github.com/pthm-cable/spin/rotate"
	"github.com/pthm-cable/spin/scene"
	"github.com/pthm-cable/spin/stream"
	"github.com/pthm-cable/spin/telemetry"
)

// Options configures an App.
type Options struct {
	OutputDir string // directory for CSV logs and config snapshot (empty = disabled)
	Stream    bool   // serve the orientation stream on cfg.Stream.Addr
}

// App owns one rotatable model and everything observing it.
type App struct {
	cfg *config.Config

	Scene      *scene.Scene
	Entity     ecs.Entity
	Controller *rotate.Controller
	Surface    *rotate.Surface
	Collector  *telemetry.Collector
	Out        *telemetry.OutputManager
	Hub        *stream.Hub // nil when streaming is off

	subs     []*rotate.Subscription
	cancel   context.CancelFunc
	serveErr chan error
	closed   bool
	final    quat.Number // orientation at Close
}

// New builds an App from cfg. The returned App must be closed.
func New(cfg *config.Config, opts Options) (*App, error) {
	out, err := telemetry.NewOutputManager(opts.OutputDir, cfg.Telemetry.Trace)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := out.WriteConfig(cfg); err != nil {
		out.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	a := &App{
		cfg:       cfg,
		Scene:     scene.New(),
		Surface:   rotate.NewSurface(),
		Collector: telemetry.NewCollector(out),
		Out:       out,
	}
	a.Entity = a.Scene.Spawn(ModelFromConfig(cfg.Model), r3.Vec{})

	a.Controller, err = rotate.NewController(a.Scene.Target(a.Entity), cfg.Derived.RotateOptions)
	if err != nil {
		out.Close()
		return nil, err
	}

	observers := []func(rotate.Step){a.recordStep, a.Collector.ObserveStep}
	if opts.Stream {
		a.Hub = stream.NewHub()
		observers = append(observers, a.Hub.ObserveStep)
	}

	// Collector begin/end handlers run after the controller's, so a
	// session's final orientation includes every applied step.
	bound := rotate.Bind(a.Surface, a.Controller, observers...)
	bound.Add(a.Surface.OnDragEnd(func(r2.Vec) { a.Scene.RecordDragEnd(a.Entity) }))
	a.subs = append(a.subs, bound, a.Collector.Attach(a.Surface))

	if a.Hub != nil {
		ctx, cancel := context.WithCancel(context.Background())
		a.cancel = cancel
		a.serveErr = make(chan error, 1)
		go func() {
			err := a.Hub.Serve(ctx, cfg.Stream.Addr)
			if err != nil {
				slog.Error("orientation stream stopped", "error", err)
			}
			a.serveErr <- err
		}()
	}

	slog.Debug("app ready",
		"shape", cfg.Model.Shape,
		"sensitivity", a.Controller.Sensitivity(),
		"threshold", a.Controller.Threshold(),
		"stream", opts.Stream,
	)
	return a, nil
}

// ModelFromConfig converts the model section into a component.
func ModelFromConfig(mc config.ModelConfig) components.Model {
	return components.Model{
		Shape: components.Shape(mc.Shape),
		Path:  mc.Path,
		Size:  float32(mc.Size),
		Color: color.RGBA{R: mc.Color[0], G: mc.Color[1], B: mc.Color[2], A: mc.Color[3]},
	}
}

func (a *App) recordStep(step rotate.Step) {
	a.Scene.RecordStep(a.Entity, step)
}

// Config returns the configuration the App was built from.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Orientation returns the model's current orientation, or the one it
// had when the App was closed.
func (a *App) Orientation() quat.Number {
	if a.closed {
		return a.final
	}
	return a.Scene.Transform(a.Entity).Orientation
}

// Dragging reports whether a drag is in progress.
func (a *App) Dragging() bool {
	return a.Controller.State() == rotate.Dragging
}

// Reset restores the identity orientation and publishes it. It does
// nothing once the App is closed.
func (a *App) Reset() {
	if a.closed {
		return
	}
	a.Scene.Reset(a.Entity)
	if a.Hub != nil {
		a.Hub.Publish(rotate.Identity)
	}
	slog.Info("orientation reset")
}

// SetSensitivity changes the controller sensitivity between drags.
func (a *App) SetSensitivity(s float64) error {
	if err := a.Controller.SetSensitivity(s); err != nil {
		return err
	}
	slog.Debug("sensitivity changed", "sensitivity", s)
	return nil
}

// Close releases subscriptions, ends any open session, stops the stream
// server and flushes output files.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	for _, s := range a.subs {
		s.Close()
	}
	a.subs = nil
	a.Collector.Flush()

	var errs []error
	if a.cancel != nil {
		a.cancel()
		if err := <-a.serveErr; err != nil {
			errs = append(errs, fmt.Errorf("stream server: %w", err))
		}
	}
	if err := a.Out.Close(); err != nil {
		errs = append(errs, err)
	}
	a.final = a.Scene.Transform(a.Entity).Orientation
	a.closed = true
	a.Scene.Remove(a.Entity)
	return errors.Join(errs...)
}
