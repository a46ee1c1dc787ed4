package assets

import (
	_ "embed"
)

//go:embed shaders/mesh.vert
var MeshVshSrc string

//go:embed shaders/mesh.frag
var MeshFshSrc string

//go:embed shaders/direct.vert
var DirectVshSrc string

//go:embed shaders/direct.frag
var DirectFshSrc string

//go:embed shaders/imgui.vert
var ImguiVshSrc string

//go:embed shaders/imgui.frag
var ImguiFshSrc string
