package gui

import (
	"log/slog"

	"github.com/inkyblackness/imgui-go/v4"

	"logo-scene/panel"
)

// Panel window placement on first use, in screen coordinates from the top
// right corner.
const (
	panelMargin = 10
	panelWidth  = 300
)

// GUI owns the ImGui context, feeds it window input and draws a panel each
// frame.
type GUI struct {
	log      *slog.Logger
	ctx      *imgui.Context
	io       imgui.IO
	renderer *glRenderer
	panel    *panel.Panel

	// OnSave is called when the save button is pressed. The button is
	// hidden while it is nil.
	OnSave func()

	displayW, displayH float32
	mouseX, mouseY     float32
	mouseDown          [3]bool
	mousePressed       [3]bool
}

// New creates the ImGui context and its GL resources. The GL context must be
// current.
func New(log *slog.Logger, p *panel.Panel) (*GUI, error) {
	if log == nil {
		log = slog.Default()
	}
	ctx := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")

	r, err := newGLRenderer(io)
	if err != nil {
		ctx.Destroy()
		return nil, err
	}
	log.Debug("gui ready", "controls", p.Len())
	return &GUI{log: log, ctx: ctx, io: io, renderer: r, panel: p}, nil
}

// WantCaptureMouse reports whether the pointer is over a GUI window, in
// which case the 3D view should ignore it.
func (g *GUI) WantCaptureMouse() bool {
	return g.io.WantCaptureMouse()
}

func (g *GUI) MouseButton(button int, pressed bool) {
	if button < 0 || button >= len(g.mouseDown) {
		return
	}
	g.mouseDown[button] = pressed
	if pressed {
		// survive a press and release within one frame
		g.mousePressed[button] = true
	}
}

func (g *GUI) CursorPos(x, y float64) {
	g.mouseX, g.mouseY = float32(x), float32(y)
}

func (g *GUI) Scroll(xoff, yoff float64) {
	g.io.AddMouseWheelDelta(float32(xoff), float32(yoff))
}

// Resize records the window size in screen coordinates.
func (g *GUI) Resize(width, height int) {
	g.displayW, g.displayH = float32(width), float32(height)
}

// Draw builds and renders the panel for one frame over the current
// framebuffer of fbW×fbH pixels.
func (g *GUI) Draw(dt float32, fbW, fbH int) {
	if g.displayW <= 0 || g.displayH <= 0 {
		return
	}
	g.io.SetDisplaySize(imgui.Vec2{X: g.displayW, Y: g.displayH})
	if dt > 0 {
		g.io.SetDeltaTime(dt)
	}
	g.io.SetMousePosition(imgui.Vec2{X: g.mouseX, Y: g.mouseY})
	for i := range g.mouseDown {
		g.io.SetMouseButtonDown(i, g.mouseDown[i] || g.mousePressed[i])
		g.mousePressed[i] = false
	}

	imgui.NewFrame()
	imgui.SetNextWindowPosV(
		imgui.Vec2{X: g.displayW - panelWidth - panelMargin, Y: panelMargin},
		imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.SetNextWindowSizeV(imgui.Vec2{X: panelWidth, Y: 0}, imgui.ConditionFirstUseEver)
	DrawPanel(imguiWidgets{}, g.panel, g.OnSave)
	imgui.Render()

	g.renderer.render(
		[2]float32{g.displayW, g.displayH},
		[2]float32{float32(fbW), float32(fbH)},
		imgui.RenderedDrawData())
}

func (g *GUI) Destroy() {
	g.renderer.destroy()
	g.ctx.Destroy()
}

// imguiWidgets implements Widgets with the global ImGui context.
type imguiWidgets struct{}

func (imguiWidgets) Begin(title string) bool { return imgui.BeginV(title, nil, 0) }
func (imguiWidgets) End()                    { imgui.End() }
func (imguiWidgets) TreePop()                { imgui.TreePop() }
func (imguiWidgets) PushID(id string)        { imgui.PushID(id) }
func (imguiWidgets) PopID()                  { imgui.PopID() }

func (imguiWidgets) CollapsingHeader(label string, open bool) bool {
	return imgui.CollapsingHeaderV(label, openFlags(open))
}

func (imguiWidgets) TreeNode(label string, open bool) bool {
	return imgui.TreeNodeV(label, openFlags(open))
}

func (imguiWidgets) SliderFloat(label string, value *float32, min, max float32, format string) bool {
	return imgui.SliderFloatV(label, value, min, max, format, imgui.SliderFlagsNone)
}

func (imguiWidgets) Checkbox(label string, value *bool) bool {
	return imgui.Checkbox(label, value)
}

func (imguiWidgets) Button(label string) bool {
	return imgui.Button(label)
}

func openFlags(open bool) imgui.TreeNodeFlags {
	if open {
		return imgui.TreeNodeFlagsDefaultOpen
	}
	return imgui.TreeNodeFlagsNone
}
