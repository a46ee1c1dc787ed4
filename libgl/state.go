package libgl

import (
	"github.com/go-gl/gl/v4.5-core/gl"
)

type Capability uint32

const (
	DepthTest   Capability = gl.DEPTH_TEST
	Blend       Capability = gl.BLEND
	ScissorTest Capability = gl.SCISSOR_TEST
	Multisample Capability = gl.MULTISAMPLE
)

type BlendFactor uint32

const (
	BlendZero             BlendFactor = gl.ZERO
	BlendOne              BlendFactor = gl.ONE
	BlendSrcAlpha         BlendFactor = gl.SRC_ALPHA
	BlendOneMinusSrcAlpha BlendFactor = gl.ONE_MINUS_SRC_ALPHA
)

type BlendEquation uint32

const (
	BlendFuncAdd BlendEquation = gl.FUNC_ADD
)

type DepthFunc uint32

const (
	DepthFuncLess   DepthFunc = gl.LESS
	DepthFuncLEqual DepthFunc = gl.LEQUAL
)

// StateManager shadows the GL state it touches so redundant calls are skipped.
// It assumes nothing else changes that state behind its back.
type StateManager struct {
	Caps                              map[Capability]bool
	TextureUnits, SamplerUnits        []uint32
	ArrayBuffer, ElementArrayBuffer   uint32
	ProgramPipeline, VertexArray      uint32
	ViewportRect, ScissorRect         [4]int
	BlendFactorSrc, BlendFactorDst    BlendFactor
	BlendEquationMode                 BlendEquation
	DepthFuncFn                       DepthFunc
	DepthWriteMask                    bool
	ClearColorRGBA                    [4]float32
	PolygonModeFront, PolygonModeBack uint32
}

var State *StateManager

// NewStateManager starts from the GL defaults of a fresh context.
func NewStateManager() *StateManager {
	return &StateManager{
		Caps:              map[Capability]bool{Multisample: true},
		TextureUnits:      make([]uint32, 32),
		SamplerUnits:      make([]uint32, 32),
		BlendFactorSrc:    BlendOne,
		BlendFactorDst:    BlendZero,
		BlendEquationMode: BlendFuncAdd,
		DepthFuncFn:       DepthFuncLess,
		DepthWriteMask:    true,
		PolygonModeFront:  gl.FILL,
		PolygonModeBack:   gl.FILL,
	}
}

func (s *StateManager) Enable(cap Capability) {
	if s.Caps[cap] {
		return
	}
	gl.Enable(uint32(cap))
	s.Caps[cap] = true
}

func (s *StateManager) Disable(cap Capability) {
	if !s.Caps[cap] {
		return
	}
	gl.Disable(uint32(cap))
	s.Caps[cap] = false
}

// SetEnabled enables exactly the given capabilities and disables every other one
// the manager knows to be enabled.
func (s *StateManager) SetEnabled(caps ...Capability) {
	want := map[Capability]bool{}
	for _, c := range caps {
		want[c] = true
	}
	for c, on := range s.Caps {
		if on && !want[c] {
			s.Disable(c)
		}
	}
	for c := range want {
		s.Enable(c)
	}
}

func (s *StateManager) BlendFunc(sfactor, dfactor BlendFactor) {
	if s.BlendFactorSrc == sfactor && s.BlendFactorDst == dfactor {
		return
	}
	gl.BlendFunc(uint32(sfactor), uint32(dfactor))
	s.BlendFactorSrc = sfactor
	s.BlendFactorDst = dfactor
}

func (s *StateManager) BlendEquation(mode BlendEquation) {
	if s.BlendEquationMode == mode {
		return
	}
	gl.BlendEquation(uint32(mode))
	s.BlendEquationMode = mode
}

func (s *StateManager) DepthFunc(fn DepthFunc) {
	if s.DepthFuncFn == fn {
		return
	}
	gl.DepthFunc(uint32(fn))
	s.DepthFuncFn = fn
}

func (s *StateManager) DepthMask(flag bool) {
	if s.DepthWriteMask == flag {
		return
	}
	gl.DepthMask(flag)
	s.DepthWriteMask = flag
}

func (s *StateManager) PolygonMode(face, mode uint32) {
	if face == gl.FRONT_AND_BACK && (s.PolygonModeFront != mode || s.PolygonModeBack != mode) {
		gl.PolygonMode(face, mode)
		s.PolygonModeBack = mode
		s.PolygonModeFront = mode
	} else if face == gl.FRONT && s.PolygonModeFront != mode {
		gl.PolygonMode(face, mode)
		s.PolygonModeFront = mode
	} else if face == gl.BACK && s.PolygonModeBack != mode {
		gl.PolygonMode(face, mode)
		s.PolygonModeBack = mode
	}
}

func (s *StateManager) BindTextureUnit(unit int, texture uint32) {
	if s.TextureUnits[unit] == texture {
		return
	}
	gl.BindTextureUnit(uint32(unit), texture)
	s.TextureUnits[unit] = texture
}

func (s *StateManager) BindSampler(unit int, sampler uint32) {
	if s.SamplerUnits[unit] == sampler {
		return
	}
	gl.BindSampler(uint32(unit), sampler)
	s.SamplerUnits[unit] = sampler
}

func (s *StateManager) BindBuffer(target uint32, buffer uint32) {
	switch target {
	case gl.ARRAY_BUFFER:
		if s.ArrayBuffer == buffer {
			return
		}
		s.ArrayBuffer = buffer
	case gl.ELEMENT_ARRAY_BUFFER:
		// element buffer binding is part of the vertex array state
		s.ElementArrayBuffer = buffer
	}
	gl.BindBuffer(target, buffer)
}

func (s *StateManager) BindProgramPipeline(pipeline uint32) {
	if s.ProgramPipeline == pipeline {
		return
	}
	gl.BindProgramPipeline(pipeline)
	s.ProgramPipeline = pipeline
}

func (s *StateManager) BindVertexArray(array uint32) {
	if s.VertexArray == array {
		return
	}
	gl.BindVertexArray(array)
	s.VertexArray = array
}

func (s *StateManager) Viewport(x, y, w, h int) {
	if s.ViewportRect == ([4]int{x, y, w, h}) {
		return
	}
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
	s.ViewportRect = [4]int{x, y, w, h}
}

func (s *StateManager) Scissor(x, y, w, h int) {
	if s.ScissorRect == ([4]int{x, y, w, h}) {
		return
	}
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
	s.ScissorRect = [4]int{x, y, w, h}
}

func (s *StateManager) ClearColor(r, g, b, a float32) {
	if s.ClearColorRGBA == ([4]float32{r, g, b, a}) {
		return
	}
	gl.ClearColor(r, g, b, a)
	s.ClearColorRGBA = [4]float32{r, g, b, a}
}
