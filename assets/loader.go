package assets

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"logo-scene/scene"
)

// Pending is the handle of an in-flight load. The result becomes readable
// once Done is closed; the frame thread sees it through the Queue instead.
type Pending[T any] struct {
	done   chan struct{}
	result T
	err    error
}

func newPending[T any]() *Pending[T] {
	return &Pending[T]{done: make(chan struct{})}
}

func (p *Pending[T]) resolve(result T, err error) {
	p.result = result
	p.err = err
	close(p.done)
}

func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the load finishes or ctx is cancelled.
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.result, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Model is a parsed glTF file, not yet attached to any scene.
type Model struct {
	Path  string
	Roots []*scene.Node
}

// Loader runs model and texture loads on background goroutines and posts
// their completions to a Queue.
type Loader struct {
	log   *slog.Logger
	queue *Queue
	wg    sync.WaitGroup
}

func NewLoader(log *slog.Logger, queue *Queue) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{log: log, queue: queue}
}

// LoadModel parses the glTF file at path in the background. apply runs on the
// frame thread during the next Queue.Drain after parsing finishes, with
// either the model or the error.
func (l *Loader) LoadModel(ctx context.Context, path string, apply func(*Model, error)) *Pending[*Model] {
	p := newPending[*Model]()
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		start := time.Now()

		model, err := parseModel(ctx, l.log, path)
		if err != nil {
			l.log.Error("model load failed", "path", path, "err", err)
		} else {
			l.log.Info("model loaded", "path", path, "roots", len(model.Roots), "took", time.Since(start))
		}
		l.queue.Post(func() { apply(model, err) })
		p.resolve(model, err)
	}()
	return p
}

// LoadCubeMap decodes the six faces found in dir and installs them into
// target on the frame thread. target may already be bound to materials.
func (l *Loader) LoadCubeMap(ctx context.Context, dir string, faces []string, target *scene.CubeTexture) *Pending[*scene.CubeTexture] {
	p := newPending[*scene.CubeTexture]()
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		start := time.Now()

		decoded, err := decodeCubeFaces(ctx, dir, faces)
		if err != nil {
			// The material keeps rendering without reflection.
			l.log.Error("environment map load failed", "dir", dir, "err", err)
			p.resolve(nil, err)
			return
		}
		l.log.Info("environment map loaded", "dir", dir, "size", decoded[0].Width, "took", time.Since(start))
		l.queue.Post(func() { target.SetFaces(decoded) })
		p.resolve(target, nil)
	}()
	return p
}

// Wait blocks until every started load has finished and posted.
func (l *Loader) Wait() {
	l.wg.Wait()
}
