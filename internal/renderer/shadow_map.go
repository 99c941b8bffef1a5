package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ShadowMap is a depth-only framebuffer rendered from a directional light.
type ShadowMap struct {
	FBO          uint32
	DepthTexture uint32
	Width        int32
	Height       int32
}

func NewShadowMap(width, height int32) (*ShadowMap, error) {
	sm := &ShadowMap{Width: width, Height: height}

	var undo Unwind
	gl.GenTextures(1, &sm.DepthTexture)
	undo.Add(func() { gl.DeleteTextures(1, &sm.DepthTexture) })
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, width, height, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := []float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])

	gl.GenFramebuffers(1, &sm.FBO)
	undo.Add(func() { gl.DeleteFramebuffers(1, &sm.FBO) })
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.DepthTexture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		undo.Unwind()
		return nil, fmt.Errorf("shadow map %dx%d: framebuffer incomplete (0x%x)", width, height, status)
	}

	undo.Discard()
	return sm, nil
}

// Bind redirects drawing into the shadow map and sets the viewport to its size.
func (sm *ShadowMap) Bind() {
	gl.Viewport(0, 0, sm.Width, sm.Height)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

func (sm *ShadowMap) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (sm *ShadowMap) Delete() {
	gl.DeleteFramebuffers(1, &sm.FBO)
	gl.DeleteTextures(1, &sm.DepthTexture)
}
