package glsl_test

import (
	"gl-animation/assets"
	"gl-animation/libgl/glsl"
	"strings"
	"testing"
)

const source = `#version 450 core
//meta:name test_fsh

#define AMBIENT 0.25
// #define SHOW_NORMALS
#define SMOOTH

void main() {}
`

func TestParseName(t *testing.T) {
	if name := glsl.Parse(source).Name; name != "test_fsh" {
		t.Errorf("name should be test_fsh but was %q", name)
	}
	if name := glsl.Parse("void main() {}").Name; name != "untitled" {
		t.Errorf("name should default to untitled but was %q", name)
	}
}

func TestExpandDefaults(t *testing.T) {
	got := glsl.Parse(source).Expand(nil)
	for _, line := range []string{"#define AMBIENT 0.25", "// #define SHOW_NORMALS", "#define SMOOTH"} {
		if !strings.Contains(got, line) {
			t.Errorf("expanded source should contain %q:\n%s", line, got)
		}
	}
	if strings.Contains(got, "$def_") {
		t.Errorf("expanded source has leftover markers:\n%s", got)
	}
}

func TestExpandOverrides(t *testing.T) {
	got := glsl.Parse(source).Expand(map[string]string{
		"ambient":      "0.5",
		"SHOW_NORMALS": "true",
		"Smooth":       "false",
	})
	for _, line := range []string{"#define AMBIENT 0.5", "#define SMOOTH"} {
		if !strings.Contains(got, line) {
			t.Errorf("expanded source should contain %q:\n%s", line, got)
		}
	}
	if strings.Contains(got, "// #define SHOW_NORMALS") {
		t.Errorf("SHOW_NORMALS should be switched on:\n%s", got)
	}
	if !strings.Contains(got, "// #define SMOOTH") {
		t.Errorf("SMOOTH should be switched off:\n%s", got)
	}
}

func TestExpandInsertsUnknownAfterVersion(t *testing.T) {
	got := glsl.Parse(source).Expand(map[string]string{"B_EXTRA": "2", "A_EXTRA": "1"})
	want := "#version 450 core\n#define A_EXTRA 1\n#define B_EXTRA 2\n"
	if !strings.HasPrefix(got, want) {
		t.Errorf("source should start with %q but was:\n%s", want, got)
	}
}

func TestSwitches(t *testing.T) {
	defs := glsl.Switches(map[string]bool{"FLAT_SHADING": true, "SHOW_NORMALS": false})
	if defs["FLAT_SHADING"] != "true" || defs["SHOW_NORMALS"] != "false" {
		t.Errorf("unexpected switches %v", defs)
	}
}

func TestMeshShaderSwitches(t *testing.T) {
	tmpl := glsl.Parse(assets.MeshFshSrc)

	off := tmpl.Expand(nil)
	for _, line := range []string{"// #define FLAT_SHADING", "// #define SHOW_NORMALS"} {
		if !strings.Contains(off, line) {
			t.Errorf("mesh shader should contain %q by default", line)
		}
	}

	on := tmpl.Expand(glsl.Switches(map[string]bool{"FLAT_SHADING": true, "SHOW_NORMALS": false}))
	if strings.Contains(on, "// #define FLAT_SHADING") || !strings.Contains(on, "#define FLAT_SHADING") {
		t.Errorf("FLAT_SHADING should be switched on:\n%s", on)
	}
	if !strings.Contains(on, "// #define SHOW_NORMALS") {
		t.Errorf("SHOW_NORMALS should stay off:\n%s", on)
	}
}
