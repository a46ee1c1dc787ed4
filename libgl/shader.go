package libgl

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"gl-animation/libgl/glsl"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type program struct {
	uniformLocations map[string]int32
	template         *glsl.Template
	glId             uint32
	stage            int
}

type ShaderProgram interface {
	Id() uint32
	Name() string
	Compile() error
	CompileWith(defs map[string]string) error
	Destroy()
	GetUniformLocation(name string) int32
	SetUniform(name string, value any)
}

// NewShader parses the source of a separable program for the given stage.
// A `//meta:name` line names the program in logs, `#define` lines can be
// overridden per compilation. Nothing is sent to GL until Compile.
func NewShader(source string, stage int) ShaderProgram {
	return &program{
		template: glsl.Parse(source),
		stage:    stage,
	}
}

func (prog *program) Name() string {
	return prog.template.Name
}

func (prog *program) Compile() error {
	return prog.CompileWith(nil)
}

// CompileWith compiles the source with its #define lines overridden by defs.
// On success the previous GL program is replaced and has to be attached again.
func (prog *program) CompileWith(defs map[string]string) error {
	source := prog.template.Expand(defs)

	cached := false
	var id uint32
	if ok, buf, format := ShaderCache.Get(source); ok {
		id = gl.CreateProgram()
		gl.ProgramParameteri(id, gl.PROGRAM_SEPARABLE, gl.TRUE)
		gl.ProgramBinary(id, format, Pointer(buf), int32(len(buf)))
		cached = true
	} else {
		cStrs, free := gl.Strs(source + "\x00")
		id = gl.CreateShaderProgramv(uint32(prog.stage), 1, cStrs)
		free()
	}

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE && cached {
		// stale binary, the driver changed
		gl.DeleteProgram(id)
		ShaderCache.Remove(source)
		return prog.CompileWith(defs)
	}
	if ok == gl.FALSE {
		err := fmt.Errorf("failed to link %v shader, log: %v", prog.Name(), readProgramInfoLog(id))
		gl.DeleteProgram(id)
		return err
	}
	gl.ValidateProgram(id)
	gl.GetProgramiv(id, gl.VALIDATE_STATUS, &ok)
	if ok == gl.FALSE {
		err := fmt.Errorf("failed to validate %v shader, log: %v", prog.Name(), readProgramInfoLog(id))
		gl.DeleteProgram(id)
		return err
	}

	if prog.glId != 0 {
		gl.DeleteProgram(prog.glId)
	}
	prog.glId = id
	prog.uniformLocations = map[string]int32{}
	setObjectLabel(gl.PROGRAM, id, prog.Name())

	if !cached {
		ShaderCache.Put(source, prog)
	}

	return nil
}

func (prog *program) Id() uint32 {
	return prog.glId
}

func (prog *program) Destroy() {
	gl.DeleteProgram(prog.Id())
	prog.glId = 0
}

func readProgramInfoLog(id uint32) string {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (prog *program) GetUniformLocation(name string) int32 {
	if location, ok := prog.uniformLocations[name]; ok {
		return location
	}

	location := gl.GetUniformLocation(prog.glId, gl.Str(name+"\x00"))
	prog.uniformLocations[name] = location

	if location == -1 {
		log.Printf("%v shader: could not get location of %q\n", prog.Name(), name)
	}

	return location
}

func (prog *program) SetUniform(name string, value any) {
	location := prog.GetUniformLocation(name)
	if location == -1 {
		return
	}
	setProgramUniformAny(prog.glId, location, value)
}

func setProgramUniformAny(prog uint32, location int32, value any) {
	for refVal := reflect.ValueOf(value); refVal.Kind() == reflect.Ptr; refVal = reflect.ValueOf(value) {
		value = refVal.Elem().Interface()
	}

	switch v := value.(type) {
	case float32:
		gl.ProgramUniform1f(prog, location, v)
	case float64:
		gl.ProgramUniform1f(prog, location, float32(v))
	case bool:
		var i int32
		if v {
			i = 1
		}
		gl.ProgramUniform1i(prog, location, i)
	case int:
		gl.ProgramUniform1i(prog, location, int32(v))
	case int32:
		gl.ProgramUniform1i(prog, location, v)
	case uint32:
		gl.ProgramUniform1ui(prog, location, v)
	case mgl32.Vec2:
		gl.ProgramUniform2f(prog, location, v.X(), v.Y())
	case mgl32.Vec3:
		gl.ProgramUniform3f(prog, location, v.X(), v.Y(), v.Z())
	case mgl32.Vec4:
		gl.ProgramUniform4f(prog, location, v.X(), v.Y(), v.Z(), v.W())
	case mgl32.Mat3:
		gl.ProgramUniformMatrix3fv(prog, location, 1, false, &v[0])
	case mgl32.Mat4:
		gl.ProgramUniformMatrix4fv(prog, location, 1, false, &v[0])
	default:
		log.Panicf("Unsupported uniform type %T", value)
	}
}
