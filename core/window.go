package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and the GL context must stay on the main OS thread.
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	onResize      ResizeCallback
	onMouseButton MouseButtonCallback
	onCursor      CursorCallback
	onScroll      ScrollCallback
}

type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
	Samples   int
}

// ResizeCallback receives the new window size in screen coordinates and the
// monitor content scale (device pixel ratio).
type ResizeCallback func(width, height int, pixelRatio float32)

// MouseButtonCallback receives button 0 (left), 1 (right) or 2 (middle).
type MouseButtonCallback func(button int, pressed bool, x, y float64)

type CursorCallback func(x, y float64)

type ScrollCallback func(xoff, yoff float64)

func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)
	if config.Samples > 0 {
		glfw.WindowHint(glfw.Samples, config.Samples)
	}

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w, h := handle.GetSize()
	window := &Window{
		Handle: handle,
		Width:  w,
		Height: h,
		Title:  config.Title,
	}

	handle.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
		if window.onResize != nil {
			window.onResize(width, height, window.PixelRatio())
		}
	})
	handle.SetContentScaleCallback(func(_ *glfw.Window, _, _ float32) {
		if window.onResize != nil {
			window.onResize(window.Width, window.Height, window.PixelRatio())
		}
	})
	handle.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if window.onMouseButton == nil || action == glfw.Repeat {
			return
		}
		x, y := win.GetCursorPos()
		window.onMouseButton(int(button), action == glfw.Press, x, y)
	})
	handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if window.onCursor != nil {
			window.onCursor(x, y)
		}
	})
	handle.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if window.onScroll != nil {
			window.onScroll(xoff, yoff)
		}
	})

	return window, nil
}

func (w *Window) SetResizeCallback(cb ResizeCallback)           { w.onResize = cb }
func (w *Window) SetMouseButtonCallback(cb MouseButtonCallback) { w.onMouseButton = cb }
func (w *Window) SetCursorCallback(cb CursorCallback)           { w.onCursor = cb }
func (w *Window) SetScrollCallback(cb ScrollCallback)           { w.onScroll = cb }

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

// PixelRatio is the monitor content scale, the equivalent of a browser's
// devicePixelRatio.
func (w *Window) PixelRatio() float32 {
	sx, sy := w.Handle.GetContentScale()
	if sy > sx {
		return sy
	}
	return sx
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
