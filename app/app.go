// Package app assembles the logo scene: it builds the fixed scene content,
// binds the debug panel, starts the asset loads and runs the frame loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"logo-scene/assets"
	"logo-scene/config"
	"logo-scene/core"
	"logo-scene/interact"
	"logo-scene/internal/gui"
	"logo-scene/internal/opengl"
	"logo-scene/panel"
	"logo-scene/renderer"
)

// SavePresetFunc returns a callback that writes the panel's current values
// to path. Failures are logged.
func SavePresetFunc(log *slog.Logger, p *panel.Panel, path string) func() {
	if log == nil {
		log = slog.Default()
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return func() {
		if err := panel.SavePreset(path, p.Snapshot(name)); err != nil {
			log.Error("preset save failed", "path", path, "err", err)
			return
		}
		log.Info("preset saved", "path", path, "controls", p.Len())
	}
}

// Run opens the window and runs the scene until the window closes or ctx is
// cancelled. It must be called from the main goroutine.
func Run(ctx context.Context, log *slog.Logger, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	win, err := core.NewWindow(core.WindowConfig{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		Resizable: true,
		VSync:     cfg.Window.VSync,
		Samples:   cfg.Window.Samples,
	})
	if err != nil {
		return err
	}
	defer win.Destroy()

	backend, err := opengl.NewRenderer(log, win)
	if err != nil {
		return err
	}
	engine := renderer.NewRenderEngine(backend, log, renderer.Options{
		ClearColor:    core.ColorHex(cfg.Render.ClearColor),
		ShadowMapSize: cfg.Render.ShadowMapSize,
		Shadows:       cfg.Render.Shadows,
	})
	defer engine.Destroy()

	h := BuildScene()
	orbit := interact.NewOrbitControls(h.Camera, cfg.Controls.FPS, cfg.Controls.Frequency)
	orbit.EnableDamping = cfg.Controls.Damping

	ctrl := interact.NewController(h.Scene, engine, orbit)
	ctrl.MaxPixelRatio = cfg.Render.MaxPixelRatio
	ctrl.ClickSlop = cfg.Controls.ClickSlop
	ctrl.OnPick = func(hits []interact.Hit) {
		for _, hit := range hits {
			log.Debug("wireframe toggled", "node", hit.Node.Name, "on", hit.Node.Wireframe, "distance", hit.Distance)
		}
	}

	p := BuildPanel(h, engine)
	applyPreset := func(pr panel.Preset) {
		if err := p.Apply(pr); err != nil {
			log.Warn("preset partially applied", "name", pr.Name, "err", err)
		}
	}
	if cfg.Preset.Path != "" {
		pr, err := panel.LoadPreset(cfg.Preset.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Info("no preset yet", "path", cfg.Preset.Path)
		case err != nil:
			log.Warn("preset ignored", "err", err)
		default:
			applyPreset(pr)
		}
	}

	overlay, err := gui.New(log, p)
	if err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	defer overlay.Destroy()
	if cfg.Preset.Path != "" {
		overlay.OnSave = SavePresetFunc(log, p, cfg.Preset.Path)
	}
	ctrl.CaptureMouse = overlay.WantCaptureMouse

	win.SetResizeCallback(func(width, height int, ratio float32) {
		ctrl.Resize(width, height, ratio)
		overlay.Resize(width, height)
	})
	win.SetMouseButtonCallback(func(button int, pressed bool, x, y float64) {
		overlay.MouseButton(button, pressed)
		ctrl.MouseButton(button, pressed, x, y)
	})
	win.SetCursorCallback(func(x, y float64) {
		overlay.CursorPos(x, y)
		ctrl.MouseMove(x, y)
	})
	win.SetScrollCallback(func(xoff, yoff float64) {
		overlay.Scroll(xoff, yoff)
		if !overlay.WantCaptureMouse() {
			ctrl.Scroll(xoff, yoff)
		}
	})
	ctrl.Resize(win.Width, win.Height, win.PixelRatio())
	overlay.Resize(win.Width, win.Height)

	queue := assets.NewQueue()
	loader := NewSceneLoader(log, queue, h)
	loader.OnAttach = func(m *assets.Model) {
		win.SetTitle(ModelTitle(cfg.Window.Title, m.Path))
	}
	loader.Start(ctx, cfg.Assets)
	defer loader.Wait()

	if cfg.Preset.Watch && cfg.Preset.Path != "" {
		if _, err := WatchPreset(ctx, log, cfg.Preset.Path, queue, applyPreset); err != nil {
			log.Warn("preset watch disabled", "err", err)
		}
	}

	log.Info("scene ready", "nodes", h.Scene.NodeCount(), "controls", p.Len(), "shadows", engine.ShadowsEnabled)

	driver := NewDriver(log, h, orbit, engine, queue, NewClock(), win)
	driver.Overlay = overlay
	err = driver.Run(ctx)
	cancel()
	return err
}
