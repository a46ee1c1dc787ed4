package libcfg_test

import (
	"bytes"
	"gl-animation/libcam"
	"gl-animation/libcfg"
	"gl-animation/libcurve"
	"gl-animation/libxform"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(1e-6, 0)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestDefaultsMatchOptions(t *testing.T) {
	cfg := libcfg.Default()
	if diff := cmp.Diff(libcam.DefaultOptions(), cfg.Camera.Options(), approx); diff != "" {
		t.Errorf("camera defaults (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(libxform.DefaultOptions(), cfg.Model.Options(), approx); diff != "" {
		t.Errorf("model defaults (-want +got):\n%s", diff)
	}
	if cfg.Window.Width != 1024 || cfg.Window.Height != 768 {
		t.Errorf("window should be 1024x768 but was %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	name := writeConfig(t, `
[camera]
duration = 0.5
path = [[1.0, 2.0, 3.0], [4.0, 5.0, 6.0]]

[window]
background = [0.2, 0.2, 0.2]
`)
	cfg, err := libcfg.Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Camera.Duration != 0.5 {
		t.Errorf("duration should be 0.5 but was %v", cfg.Camera.Duration)
	}
	if diff := cmp.Diff([]mgl32.Vec3{{1, 2, 3}, {4, 5, 6}}, cfg.Camera.Path); diff != "" {
		t.Errorf("path should be replaced (-want +got):\n%s", diff)
	}
	if cfg.Camera.Zoom != 45 {
		t.Errorf("unset zoom should keep its default 45 but was %v", cfg.Camera.Zoom)
	}
	if cfg.Window.Background != (mgl32.Vec3{0.2, 0.2, 0.2}) {
		t.Errorf("background should be overridden but was %v", cfg.Window.Background)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"unknown field":      "[camera]\nfov = 90.0\n",
		"bad syntax":         "[camera\n",
		"zero duration":      "[camera]\nduration = 0.0\n",
		"inverted clip":      "[camera]\nnear = 10.0\nfar = 1.0\n",
		"negative width":     "[window]\nwidth = -1\n",
		"unknown preview":    "[camera]\npreviews = [\"hermite\"]\n",
		"zero curve step":    "[model]\ncurve_step = 0.0\n",
		"negative max ticks": "[model]\nmax_ticks = -1\n",
		"negative period":    "[model]\nperiod = -1.0\n",
	}
	for name, content := range cases {
		if _, err := libcfg.Load(writeConfig(t, content)); err == nil {
			t.Errorf("%s: should fail", name)
		}
	}

	_, err := libcfg.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "missing.toml") {
		t.Errorf("missing file error should name the file but was %v", err)
	}
}

func TestPreviewKinds(t *testing.T) {
	want := []libcurve.Kind{libcurve.KindCatmullRom, libcurve.KindBSpline, libcurve.KindBezier}
	if diff := cmp.Diff(want, libcfg.Default().Camera.PreviewKinds()); diff != "" {
		t.Errorf("default previews (-want +got):\n%s", diff)
	}

	cfg, err := libcfg.Load(writeConfig(t, "[camera]\npreviews = [\"b-spline\"]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]libcurve.Kind{libcurve.KindBSpline}, cfg.Camera.PreviewKinds()); diff != "" {
		t.Errorf("previews should be replaced (-want +got):\n%s", diff)
	}
}

func TestEncodeCanBeLoaded(t *testing.T) {
	cfg := libcfg.Default()
	cfg.Model.Period = 7
	buf := &bytes.Buffer{}
	if err := cfg.Encode(buf); err != nil {
		t.Fatal(err)
	}
	loaded, err := libcfg.Load(writeConfig(t, buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
