package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// ShadowMap is a square depth-only framebuffer sampled with hardware depth
// comparison.
type ShadowMap struct {
	FBO      uint32
	DepthTex uint32
	Size     int32
}

func newShadowMap(size int) (*ShadowMap, error) {
	sm := &ShadowMap{Size: int32(size)}

	gl.GenTextures(1, &sm.DepthTex)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT32F,
		sm.Size, sm.Size, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	// outside the map counts as lit
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)

	gl.GenFramebuffers(1, &sm.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.DepthTex, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		sm.destroy()
		return nil, fmt.Errorf("shadow framebuffer incomplete: status=0x%X", status)
	}
	return sm, nil
}

func (sm *ShadowMap) destroy() {
	if sm.FBO != 0 {
		gl.DeleteFramebuffers(1, &sm.FBO)
		sm.FBO = 0
	}
	if sm.DepthTex != 0 {
		gl.DeleteTextures(1, &sm.DepthTex)
		sm.DepthTex = 0
	}
}

// renderTarget is an offscreen color+depth framebuffer at the drawing buffer
// size. Frames are drawn into it and blitted to the window whenever the
// drawing buffer and the window framebuffer disagree in size.
type renderTarget struct {
	FBO     uint32
	ColorRB uint32
	DepthRB uint32
	Width   int32
	Height  int32
}

func newRenderTarget(width, height int) (*renderTarget, error) {
	rt := &renderTarget{Width: int32(width), Height: int32(height)}

	gl.GenRenderbuffers(1, &rt.ColorRB)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.ColorRB)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, rt.Width, rt.Height)

	gl.GenRenderbuffers(1, &rt.DepthRB)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.DepthRB)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, rt.Width, rt.Height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.GenFramebuffers(1, &rt.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.FBO)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, rt.ColorRB)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rt.DepthRB)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		rt.destroy()
		return nil, fmt.Errorf("offscreen framebuffer incomplete: status=0x%X", status)
	}
	return rt, nil
}

func (rt *renderTarget) matches(width, height int) bool {
	return rt.Width == int32(width) && rt.Height == int32(height)
}

// blit copies the target to the default framebuffer, scaling to dstW×dstH.
func (rt *renderTarget) blit(dstW, dstH int) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, rt.FBO)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, rt.Width, rt.Height,
		0, 0, int32(dstW), int32(dstH), gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (rt *renderTarget) destroy() {
	if rt.FBO != 0 {
		gl.DeleteFramebuffers(1, &rt.FBO)
		rt.FBO = 0
	}
	if rt.ColorRB != 0 {
		gl.DeleteRenderbuffers(1, &rt.ColorRB)
		rt.ColorRB = 0
	}
	if rt.DepthRB != 0 {
		gl.DeleteRenderbuffers(1, &rt.DepthRB)
		rt.DepthRB = 0
	}
}
