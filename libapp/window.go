package libapp

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"strings"
	"unsafe"

	"gl-animation/libcfg"
	"gl-animation/libgl"
	"gl-animation/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Arguments struct {
	Config                     string
	DisableShaderCache         bool
	EnableCompatibilityProfile bool
}

// ParseFlags registers the flags shared by all demos and parses the command line.
func ParseFlags() Arguments {
	args := Arguments{}
	flag.StringVar(&args.Config, "config", "", "TOML file overriding the default settings")
	flag.BoolVar(&args.DisableShaderCache, "disable-shader-cache", false, "always compile shaders from source")
	flag.BoolVar(&args.EnableCompatibilityProfile, "enable-compatibility-profile", false, "request a compatibility profile context")
	flag.Parse()
	return args
}

func Check(err error) {
	if err != nil {
		log.Panic(err)
	}
}

// Window is a GLFW window with a current GL 4.5 context. Creating one also
// sets up libgl.State and the shader cache.
type Window struct {
	*glfw.Window
	Width, Height int
}

func NewWindow(title string, cfg libcfg.WindowConfig, args Arguments) (*Window, error) {
	ctx, err := initGLFW(title, cfg, args)
	if err != nil {
		return nil, err
	}
	if err := initGL(); err != nil {
		ctx.Destroy()
		glfw.Terminate()
		return nil, err
	}

	libgl.State = libgl.NewStateManager()
	libgl.ShaderCache.Disabled = args.DisableShaderCache
	libgl.ShaderCache.Driver = libgl.DriverString()

	win := &Window{Window: ctx}
	win.Width, win.Height = ctx.GetFramebufferSize()
	ctx.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		win.Width, win.Height = width, height
	})
	return win, nil
}

// Aspect of the framebuffer, 1 while minimized.
func (win *Window) Aspect() float32 {
	if win.Width <= 0 || win.Height <= 0 {
		return 1
	}
	return float32(win.Width) / float32(win.Height)
}

func (win *Window) Destroy() {
	win.Window.Destroy()
	glfw.Terminate()
}

func initGLFW(title string, cfg libcfg.WindowConfig, args Arguments) (*glfw.Window, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	if args.EnableCompatibilityProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	} else {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	glfw.WindowHint(glfw.Samples, cfg.Samples)
	glfw.WindowHint(glfw.Visible, glfw.False)

	ctx, err := glfw.CreateWindow(cfg.Width, cfg.Height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create window: %w", err)
	}
	ctx.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return ctx, nil
}

var vendorSuffixes = []string{"3DFX", "PGI", "SGIX", "SGIS", "SGI", "IBM", "HP", "NV", "NVX", "INGR", "ARB", "EXT", "AMD", "ATI", "MESA", "KHR", "INTEL", "GREMEDY", "APPLE", "OES", "SUN", "SUNX"}

func initGL() error {
	err := gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		addr := glfw.GetProcAddress(name)
		if addr != nil {
			return addr
		}
		vendorSuffix := false
		for _, suffix := range vendorSuffixes {
			if strings.HasSuffix(name, suffix) {
				vendorSuffix = true
				break
			}
		}
		if !vendorSuffix {
			log.Printf("Proc missing: %v\n", name)
		}
		// nil fails gl.Init, missing vendor extensions are not fatal
		return unsafe.Pointer(libutil.InvalidAddress)
	})
	if err != nil {
		return err
	}
	log.Printf("OpenGL %v on %v\n", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
	enableDebugOutput()
	return nil
}
