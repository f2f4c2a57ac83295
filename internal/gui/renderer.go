package gui

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/inkyblackness/imgui-go/v4"
)

const guiVertSrc = `
#version 410 core
uniform mat4 projMtx;
layout(location = 0) in vec2 inPosition;
layout(location = 1) in vec2 inUV;
layout(location = 2) in vec4 inColor;
out vec2 fragUV;
out vec4 fragColor;
void main() {
    fragUV      = inUV;
    fragColor   = inColor;
    gl_Position = projMtx * vec4(inPosition, 0.0, 1.0);
}
` + "\x00"

const guiFragSrc = `
#version 410 core
uniform sampler2D tex;
in vec2 fragUV;
in vec4 fragColor;
out vec4 outColor;
void main() {
    outColor = vec4(fragColor.rgb, fragColor.a * texture(tex, fragUV).r);
}
` + "\x00"

// glRenderer draws ImGui draw lists with OpenGL 4.1.
type glRenderer struct {
	program uint32
	projLoc int32
	texLoc  int32
	vao     uint32
	vbo     uint32
	ebo     uint32
	fontTex uint32
}

func newGLRenderer(io imgui.IO) (*glRenderer, error) {
	prog, err := linkProgram(guiVertSrc, guiFragSrc)
	if err != nil {
		return nil, fmt.Errorf("gui shader: %w", err)
	}
	r := &glRenderer{
		program: prog,
		projLoc: gl.GetUniformLocation(prog, gl.Str("projMtx\x00")),
		texLoc:  gl.GetUniformLocation(prog, gl.Str("tex\x00")),
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	vertexSize, posOff, uvOff, colOff := imgui.VertexBufferLayout()
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(posOff))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(uvOff))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), gl.PtrOffset(colOff))
	gl.BindVertexArray(0)

	// font atlas as a single channel texture
	image := io.Fonts().TextureDataAlpha8()
	gl.GenTextures(1, &r.fontTex)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(image.Width), int32(image.Height),
		0, gl.RED, gl.UNSIGNED_BYTE, image.Pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	io.Fonts().SetTextureID(imgui.TextureID(r.fontTex))

	return r, nil
}

// render draws data over the bound framebuffer. Clip rectangles arrive in
// display coordinates and are scaled to framebuffer pixels.
func (r *glRenderer) render(displaySize, fbSize [2]float32, data imgui.DrawData) {
	fbW, fbH := fbSize[0], fbSize[1]
	if fbW <= 0 || fbH <= 0 || !data.Valid() {
		return
	}
	data.ScaleClipRects(imgui.Vec2{X: fbW / displaySize[0], Y: fbH / displaySize[1]})

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Viewport(0, 0, int32(fbW), int32(fbH))

	ortho := [4][4]float32{
		{2 / displaySize[0], 0, 0, 0},
		{0, 2 / -displaySize[1], 0, 0},
		{0, 0, -1, 0},
		{-1, 1, 0, 1},
	}
	gl.UseProgram(r.program)
	gl.Uniform1i(r.texLoc, 0)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &ortho[0][0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range data.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)
		indexBuffer, indexBufferSize := list.IndexBuffer()
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		var offset uintptr
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				clip := cmd.ClipRect()
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				gl.Scissor(int32(clip.X), int32(fbH)-int32(clip.W), int32(clip.Z-clip.X), int32(clip.W-clip.Y))
				gl.DrawElements(gl.TRIANGLES, int32(cmd.ElementCount()), drawType, unsafe.Pointer(offset))
			}
			offset += uintptr(cmd.ElementCount() * indexSize)
		}
	}

	gl.BindVertexArray(0)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (r *glRenderer) destroy() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	*r = glRenderer{}
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compile(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	frag, err := compile(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
		info := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(prog, n, nil, gl.Str(info))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", info)
	}
	return prog, nil
}

func compile(src string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
		info := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(shader, n, nil, gl.Str(info))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", info)
	}
	return shader, nil
}
