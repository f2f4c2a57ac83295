package opengl

import (
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"logo-scene/core"
	"logo-scene/renderer"
	"logo-scene/scene"
)

const (
	maxPointLights = 4
	maxRectLights  = 4
)

// FramebufferSizer reports the window framebuffer size in pixels.
type FramebufferSizer interface {
	GetFramebufferSize() (int, int)
}

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	HasIndices bool
}

type pointLightLocs struct {
	pos, color, intensity, distance, decay int32
}

type rectLightLocs struct {
	pos, dir, halfW, halfH, color, intensity int32
}

// Renderer is the OpenGL implementation of renderer.Backend.
type Renderer struct {
	log    *slog.Logger
	window FramebufferSizer

	program uint32

	viewProjLoc      int32
	modelLoc         int32
	normalMatrixLoc  int32
	lightViewProjLoc int32
	cameraPosLoc     int32
	ambientColorLoc  int32

	pointLightCountLoc int32
	pointLights        [maxPointLights]pointLightLocs
	shadowLightLoc     int32

	rectLightCountLoc int32
	rectLights        [maxRectLights]rectLightLocs

	matColorLoc     int32
	matMetalnessLoc int32
	matRoughnessLoc int32
	unlitLoc        int32

	envMapLoc       int32
	hasEnvMapLoc    int32
	envIntensityLoc int32
	envMaxLodLoc    int32

	shadowMapLoc   int32
	hasShadowsLoc  int32
	shadowTexelLoc int32

	shadowProg        uint32
	shadowLightMVPLoc int32
	shadowMap         *ShadowMap

	target *renderTarget

	gpuMeshes map[*scene.Mesh]*GPUMesh
	cubes     map[*scene.CubeTexture]cubeUpload
}

// NewRenderer loads OpenGL and compiles the shaders. The window's GL context
// must be current on the calling thread.
func NewRenderer(log *slog.Logger, window FramebufferSizer) (*Renderer, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initialize OpenGL: %w", err)
	}
	log.Info("opengl ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("main shader: %w", err)
	}
	shadowProg, err := newProgram(depthVertSrc, depthFragSrc)
	if err != nil {
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("depth shader: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)

	loc := func(name string) int32 { return uniform(prog, name) }
	r := &Renderer{
		log:     log,
		window:  window,
		program: prog,

		viewProjLoc:      loc("viewProj"),
		modelLoc:         loc("model"),
		normalMatrixLoc:  loc("normalMatrix"),
		lightViewProjLoc: loc("lightViewProj"),
		cameraPosLoc:     loc("cameraPos"),
		ambientColorLoc:  loc("ambientColor"),

		pointLightCountLoc: loc("pointLightCount"),
		shadowLightLoc:     loc("shadowLight"),
		rectLightCountLoc:  loc("rectLightCount"),

		matColorLoc:     loc("matColor"),
		matMetalnessLoc: loc("matMetalness"),
		matRoughnessLoc: loc("matRoughness"),
		unlitLoc:        loc("unlit"),

		envMapLoc:       loc("envMap"),
		hasEnvMapLoc:    loc("hasEnvMap"),
		envIntensityLoc: loc("envIntensity"),
		envMaxLodLoc:    loc("envMaxLod"),

		shadowMapLoc:   loc("shadowMap"),
		hasShadowsLoc:  loc("hasShadows"),
		shadowTexelLoc: loc("shadowTexel"),

		shadowProg:        shadowProg,
		shadowLightMVPLoc: uniform(shadowProg, "lightMVP"),

		gpuMeshes: make(map[*scene.Mesh]*GPUMesh),
		cubes:     make(map[*scene.CubeTexture]cubeUpload),
	}
	for i := range r.pointLights {
		r.pointLights[i] = pointLightLocs{
			pos:       loc(fmt.Sprintf("pointLightPos[%d]", i)),
			color:     loc(fmt.Sprintf("pointLightColor[%d]", i)),
			intensity: loc(fmt.Sprintf("pointLightIntensity[%d]", i)),
			distance:  loc(fmt.Sprintf("pointLightDistance[%d]", i)),
			decay:     loc(fmt.Sprintf("pointLightDecay[%d]", i)),
		}
	}
	for i := range r.rectLights {
		r.rectLights[i] = rectLightLocs{
			pos:       loc(fmt.Sprintf("rectLightPos[%d]", i)),
			dir:       loc(fmt.Sprintf("rectLightDir[%d]", i)),
			halfW:     loc(fmt.Sprintf("rectLightHalfW[%d]", i)),
			halfH:     loc(fmt.Sprintf("rectLightHalfH[%d]", i)),
			color:     loc(fmt.Sprintf("rectLightColor[%d]", i)),
			intensity: loc(fmt.Sprintf("rectLightIntensity[%d]", i)),
		}
	}

	// texture units: shadowMap=1, envMap=2
	gl.UseProgram(prog)
	gl.Uniform1i(r.shadowMapLoc, 1)
	gl.Uniform1i(r.envMapLoc, 2)
	ident := mgl32.Ident4()
	gl.UniformMatrix4fv(r.lightViewProjLoc, 1, false, &ident[0])

	return r, nil
}

// DrawFrame renders f into the window framebuffer. When the frame's drawing
// buffer size differs from the framebuffer, the frame is drawn offscreen and
// scaled into place.
func (r *Renderer) DrawFrame(f *renderer.Frame) error {
	fbW, fbH := f.Width, f.Height
	if r.window != nil {
		fbW, fbH = r.window.GetFramebufferSize()
	}

	hasShadows := false
	if f.Shadow.Enabled {
		if err := r.ensureShadowMap(f.Shadow.Size); err != nil {
			return err
		}
		r.shadowPass(f)
		hasShadows = true
	}

	offscreen := fbW != f.Width || fbH != f.Height
	if offscreen {
		if err := r.ensureTarget(f.Width, f.Height); err != nil {
			return err
		}
		gl.BindFramebuffer(gl.FRAMEBUFFER, r.target.FBO)
	} else {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	}
	gl.Viewport(0, 0, int32(f.Width), int32(f.Height))
	gl.ClearColor(f.Clear.R, f.Clear.G, f.Clear.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.beginMainPass(f, hasShadows)
	for i := range f.Draws {
		r.drawMesh(&f.Draws[i], hasShadows)
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.BindVertexArray(0)

	if offscreen {
		r.target.blit(fbW, fbH)
		gl.Viewport(0, 0, int32(fbW), int32(fbH))
	}
	return nil
}

func (r *Renderer) ensureShadowMap(size int) error {
	if r.shadowMap != nil && r.shadowMap.Size == int32(size) {
		return nil
	}
	if r.shadowMap != nil {
		r.shadowMap.destroy()
		r.shadowMap = nil
	}
	sm, err := newShadowMap(size)
	if err != nil {
		return err
	}
	r.log.Debug("shadow map allocated", "size", size)
	r.shadowMap = sm
	return nil
}

func (r *Renderer) ensureTarget(width, height int) error {
	if r.target != nil && r.target.matches(width, height) {
		return nil
	}
	if r.target != nil {
		r.target.destroy()
		r.target = nil
	}
	rt, err := newRenderTarget(width, height)
	if err != nil {
		return err
	}
	r.log.Debug("offscreen target allocated", "width", width, "height", height)
	r.target = rt
	return nil
}

// shadowPass renders shadow casters into the depth map. It always draws
// filled triangles, whatever the per-draw wireframe state.
func (r *Renderer) shadowPass(f *renderer.Frame) {
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.shadowMap.FBO)
	gl.Viewport(0, 0, r.shadowMap.Size, r.shadowMap.Size)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.shadowProg)

	for i := range f.Draws {
		d := &f.Draws[i]
		if !d.CastShadow || d.Mesh.DrawMode != scene.DrawTriangles {
			continue
		}
		gpu := r.ensureUploaded(d.Mesh)
		if gpu == nil {
			continue
		}
		mvp := f.Shadow.ViewProj.Mul4(d.Model)
		gl.UniformMatrix4fv(r.shadowLightMVPLoc, 1, false, &mvp[0])
		r.drawElements(gpu, d.Mesh, gl.TRIANGLES)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// beginMainPass sets the per-frame camera, light and shadow uniforms.
func (r *Renderer) beginMainPass(f *renderer.Frame, hasShadows bool) {
	gl.UseProgram(r.program)

	viewProj := f.Projection.Mul4(f.View)
	gl.UniformMatrix4fv(r.viewProjLoc, 1, false, &viewProj[0])
	gl.Uniform3f(r.cameraPosLoc, f.CameraPos.X(), f.CameraPos.Y(), f.CameraPos.Z())
	gl.Uniform3f(r.ambientColorLoc, f.Ambient.R, f.Ambient.G, f.Ambient.B)

	shadowLight := int32(-1)
	points, rects := 0, 0
	for _, l := range f.Lights {
		c := l.Color
		switch l.Kind {
		case scene.LightPoint:
			if points >= maxPointLights {
				continue
			}
			locs := r.pointLights[points]
			gl.Uniform3f(locs.pos, l.Position.X(), l.Position.Y(), l.Position.Z())
			gl.Uniform3f(locs.color, c.R, c.G, c.B)
			gl.Uniform1f(locs.intensity, l.Intensity)
			gl.Uniform1f(locs.distance, l.Distance)
			gl.Uniform1f(locs.decay, l.Decay)
			if hasShadows && l.CastShadow && shadowLight < 0 {
				shadowLight = int32(points)
			}
			points++
		case scene.LightRectArea:
			if rects >= maxRectLights {
				continue
			}
			locs := r.rectLights[rects]
			gl.Uniform3f(locs.pos, l.Position.X(), l.Position.Y(), l.Position.Z())
			gl.Uniform3f(locs.dir, l.Direction.X(), l.Direction.Y(), l.Direction.Z())
			gl.Uniform3f(locs.halfW, l.HalfWidth.X(), l.HalfWidth.Y(), l.HalfWidth.Z())
			gl.Uniform3f(locs.halfH, l.HalfHeight.X(), l.HalfHeight.Y(), l.HalfHeight.Z())
			gl.Uniform3f(locs.color, c.R, c.G, c.B)
			gl.Uniform1f(locs.intensity, l.Intensity)
			rects++
		}
	}
	gl.Uniform1i(r.pointLightCountLoc, int32(points))
	gl.Uniform1i(r.rectLightCountLoc, int32(rects))
	gl.Uniform1i(r.shadowLightLoc, shadowLight)

	if hasShadows {
		gl.UniformMatrix4fv(r.lightViewProjLoc, 1, false, &f.Shadow.ViewProj[0])
		gl.Uniform1f(r.shadowTexelLoc, 1/float32(r.shadowMap.Size))
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, r.shadowMap.DepthTex)
	}
}

func (r *Renderer) drawMesh(d *renderer.Draw, hasShadows bool) {
	gpu := r.ensureUploaded(d.Mesh)
	if gpu == nil {
		return
	}

	gl.UniformMatrix4fv(r.modelLoc, 1, false, &d.Model[0])
	normalMatrix := d.Model.Mat3().Inv().Transpose()
	gl.UniformMatrix3fv(r.normalMatrixLoc, 1, false, &normalMatrix[0])

	r.applyMaterial(d.Material, d.Unlit)
	gl.Uniform1i(r.hasShadowsLoc, boolToInt(hasShadows && d.ReceiveShadow))

	if d.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	primitive := uint32(gl.TRIANGLES)
	if d.Mesh.DrawMode == scene.DrawLines {
		primitive = gl.LINES
	}
	r.drawElements(gpu, d.Mesh, primitive)
}

func (r *Renderer) applyMaterial(mat *scene.Material, unlit bool) {
	c := mat.Color
	gl.Uniform3f(r.matColorLoc, c.R, c.G, c.B)
	gl.Uniform1i(r.unlitLoc, boolToInt(unlit))
	if unlit {
		return
	}
	gl.Uniform1f(r.matMetalnessLoc, mat.Metalness)
	gl.Uniform1f(r.matRoughnessLoc, mat.Roughness)

	// Materials bound to an env map that has not arrived yet shade without
	// reflections until it does.
	up, ok := r.envMap(mat.EnvMap)
	gl.Uniform1i(r.hasEnvMapLoc, boolToInt(ok))
	if !ok {
		return
	}
	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, up.id)
	gl.Uniform1f(r.envIntensityLoc, mat.EnvMapIntensity)
	gl.Uniform1f(r.envMaxLodLoc, up.maxLod)
}

// envMap returns the GPU copy of cube, uploading it on first use and again
// whenever its faces are replaced.
func (r *Renderer) envMap(cube *scene.CubeTexture) (cubeUpload, bool) {
	if cube == nil || !cube.Ready() {
		return cubeUpload{}, false
	}
	up, ok := r.cubes[cube]
	if ok && up.revision == cube.Revision() {
		return up, true
	}
	fresh, err := uploadCube(cube, up.id)
	if err != nil {
		r.log.Warn("env map upload failed", "name", cube.Name, "err", err)
		// stop retrying this revision
		r.cubes[cube] = cubeUpload{id: up.id, revision: cube.Revision()}
		return cubeUpload{}, false
	}
	r.log.Debug("env map uploaded", "name", cube.Name, "size", cube.Size(), "revision", fresh.revision)
	r.cubes[cube] = fresh
	return fresh, true
}

func (r *Renderer) drawElements(gpu *GPUMesh, mesh *scene.Mesh, primitive uint32) {
	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(primitive, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(primitive, 0, int32(len(mesh.Vertices)))
	}
}

// ReleaseMesh frees the GPU buffers of mesh, if any.
func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	gpu, ok := r.gpuMeshes[mesh]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &gpu.VAO)
	gl.DeleteBuffers(1, &gpu.VBO)
	if gpu.EBO != 0 {
		gl.DeleteBuffers(1, &gpu.EBO)
	}
	delete(r.gpuMeshes, mesh)
	mesh.GPUData = nil
}

// Destroy frees every GPU resource the renderer owns.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	for cube, up := range r.cubes {
		deleteCube(cube, up)
	}
	clear(r.cubes)
	if r.shadowMap != nil {
		r.shadowMap.destroy()
		r.shadowMap = nil
	}
	if r.target != nil {
		r.target.destroy()
		r.target = nil
	}
	if r.shadowProg != 0 {
		gl.DeleteProgram(r.shadowProg)
		r.shadowProg = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// ensureUploaded uploads vertex and index data on first use.
func (r *Renderer) ensureUploaded(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	gpu := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
		HasIndices: len(mesh.Indices) > 0,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	var v core.Vertex
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Position))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Normal))))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.UV))))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

func uniform(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
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
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		info := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(info))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", info)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		info := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(info))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", info)
	}
	return shader, nil
}
