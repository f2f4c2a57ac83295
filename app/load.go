package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"logo-scene/assets"
	"logo-scene/config"
	"logo-scene/scene"
)

// SceneLoader starts the model and environment map loads for a built scene.
// Completions are applied by the driver when it drains the queue.
type SceneLoader struct {
	log    *slog.Logger
	loader *assets.Loader
	h      *Handles

	Model  *assets.Pending[*assets.Model]
	EnvMap *assets.Pending[*scene.CubeTexture]

	// OnAttach runs on the driver goroutine after the model joins the scene.
	OnAttach func(m *assets.Model)
}

func NewSceneLoader(log *slog.Logger, queue *assets.Queue, h *Handles) *SceneLoader {
	if log == nil {
		log = slog.Default()
	}
	return &SceneLoader{log: log, loader: assets.NewLoader(log, queue), h: h}
}

// Start kicks off both loads. Failures are logged by the loader and leave the
// scene without the model or without reflections.
func (l *SceneLoader) Start(ctx context.Context, a config.Assets) {
	l.Model = l.loader.LoadModel(ctx, a.Model, func(m *assets.Model, err error) {
		if err != nil {
			return
		}
		attached := assets.AttachModel(l.h.Scene, m, l.h.MetalMaterial)
		l.log.Info("model attached", "path", m.Path, "nodes", len(attached), "pickables", l.h.Scene.Pickables.Len())
		if l.OnAttach != nil {
			l.OnAttach(m)
		}
	})
	l.EnvMap = l.loader.LoadCubeMap(ctx, a.EnvMap, a.Faces, l.h.EnvMap)
}

// ModelTitle is the window title shown once the model at path is attached.
func ModelTitle(base, path string) string {
	return fmt.Sprintf("%s | %s", base, filepath.Base(path))
}

// Wait blocks until both loads have posted their completions.
func (l *SceneLoader) Wait() {
	l.loader.Wait()
}
