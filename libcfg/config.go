package libcfg

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gl-animation/libcam"
	"gl-animation/libcurve"
	"gl-animation/libutil"
	"gl-animation/libxform"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultConfig []byte

type Config struct {
	Window WindowConfig `toml:"window"`
	Assets AssetsConfig `toml:"assets"`
	Camera CameraConfig `toml:"camera"`
	Model  ModelConfig  `toml:"model"`
}

type WindowConfig struct {
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	Samples    int        `toml:"samples"`
	VSync      bool       `toml:"vsync"`
	Background mgl32.Vec3 `toml:"background"`
}

type AssetsConfig struct {
	MeshDir string `toml:"mesh_dir"`
}

type CameraConfig struct {
	Yaw              float32      `toml:"yaw"`
	Pitch            float32      `toml:"pitch"`
	MovementSpeed    float32      `toml:"movement_speed"`
	MouseSensitivity float32      `toml:"mouse_sensitivity"`
	Zoom             float32      `toml:"zoom"`
	Near             float32      `toml:"near"`
	Far              float32      `toml:"far"`
	RotationSpeed    float32      `toml:"rotation_speed"`
	Step             float32      `toml:"step"`
	Duration         float32      `toml:"duration"`
	Pivot            mgl32.Vec3   `toml:"pivot"`
	Path             []mgl32.Vec3 `toml:"path"`
	Previews         []string     `toml:"previews"`
}

type ModelConfig struct {
	Tick      float64 `toml:"tick"`
	Step      float32 `toml:"step"`
	Angle     float32 `toml:"angle"`
	Grow      float32 `toml:"grow"`
	Shrink    float32 `toml:"shrink"`
	Shear     float32 `toml:"shear"`
	Period    float64 `toml:"period"`
	CurveStep float32 `toml:"curve_step"`
	MaxTicks  int     `toml:"max_ticks"`
}

func Default() *Config {
	cfg := &Config{}
	if err := decode(bytes.NewReader(defaultConfig), cfg); err != nil {
		panic(fmt.Errorf("embedded config is invalid: %w", err))
	}
	return cfg
}

// Load reads filename on top of the defaults. An empty filename returns
// the defaults.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open config file %q: %w", filename, err)
	}
	defer file.Close()

	if err := decode(file, cfg); err != nil {
		return nil, fmt.Errorf("could not read config file %q: %w", filename, err)
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func (cfg *Config) Validate() error {
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d is invalid", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Camera.Duration <= 0 {
		return fmt.Errorf("camera duration must be positive but was %v", cfg.Camera.Duration)
	}
	if cfg.Camera.Near <= 0 || cfg.Camera.Far <= cfg.Camera.Near {
		return fmt.Errorf("camera clip range [%v, %v] is invalid", cfg.Camera.Near, cfg.Camera.Far)
	}
	for _, name := range cfg.Camera.Previews {
		if _, err := libcurve.ParseKind(name); err != nil {
			return fmt.Errorf("camera previews: %w", err)
		}
	}
	if cfg.Model.Tick <= 0 {
		return fmt.Errorf("model tick must be positive but was %v", cfg.Model.Tick)
	}
	if cfg.Model.CurveStep <= 0 {
		return fmt.Errorf("model curve step must be positive but was %v", cfg.Model.CurveStep)
	}
	if cfg.Model.Period < 0 {
		return fmt.Errorf("model period must not be negative but was %v", cfg.Model.Period)
	}
	if cfg.Model.MaxTicks < 0 {
		return fmt.Errorf("model max ticks must not be negative but was %v", cfg.Model.MaxTicks)
	}
	return nil
}

func (cfg *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(cfg)
}

func (c CameraConfig) Options() libcam.Options {
	return libcam.Options{
		Yaw:              c.Yaw,
		Pitch:            c.Pitch,
		MovementSpeed:    c.MovementSpeed,
		MouseSensitivity: c.MouseSensitivity,
		Zoom:             c.Zoom,
		RotationSpeed:    c.RotationSpeed * libutil.Deg2Rad,
		Step:             c.Step,
		Duration:         c.Duration,
		Pivot:            c.Pivot,
		Path:             append([]mgl32.Vec3(nil), c.Path...),
	}
}

// PreviewKinds returns the curve kinds drawn for the camera paths, in order.
// Unknown names are skipped, Validate rejects them on load.
func (c CameraConfig) PreviewKinds() []libcurve.Kind {
	kinds := make([]libcurve.Kind, 0, len(c.Previews))
	for _, name := range c.Previews {
		if k, err := libcurve.ParseKind(name); err == nil {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (c ModelConfig) Options() libxform.Options {
	return libxform.Options{
		Tick:      c.Tick,
		Step:      c.Step,
		Angle:     c.Angle * libutil.Deg2Rad,
		Grow:      c.Grow,
		Shrink:    c.Shrink,
		Shear:     c.Shear,
		Period:    c.Period,
		CurveStep: c.CurveStep,
		MaxTicks:  c.MaxTicks,
	}
}
