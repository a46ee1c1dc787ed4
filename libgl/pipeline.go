package libgl

import (
	"log"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type shaderPipeline struct {
	glId      uint32
	vertStage ShaderProgram
	fragStage ShaderProgram
}

type UnboundShaderPipeline interface {
	LabeledGlObject
	Bind() BoundShaderPipeline
	Attach(program ShaderProgram, stages int)
	Get(stage int) ShaderProgram
	Id() uint32
	Delete()
}

type BoundShaderPipeline interface {
	UnboundShaderPipeline
}

func NewPipeline() UnboundShaderPipeline {
	var id uint32
	gl.CreateProgramPipelines(1, &id)
	return &shaderPipeline{
		glId: id,
	}
}

// NewPipelineFromSource compiles a vertex and a fragment program and attaches
// them to a new pipeline.
func NewPipelineFromSource(vsh, fsh string) (UnboundShaderPipeline, error) {
	vert := NewShader(vsh, gl.VERTEX_SHADER)
	if err := vert.Compile(); err != nil {
		return nil, err
	}
	frag := NewShader(fsh, gl.FRAGMENT_SHADER)
	if err := frag.Compile(); err != nil {
		vert.Destroy()
		return nil, err
	}
	pipeline := NewPipeline()
	pipeline.Attach(vert, gl.VERTEX_SHADER_BIT)
	pipeline.Attach(frag, gl.FRAGMENT_SHADER_BIT)
	pipeline.SetDebugLabel(vert.Name() + "+" + frag.Name())
	return pipeline, nil
}

func (p *shaderPipeline) Attach(program ShaderProgram, stages int) {
	gl.UseProgramStages(p.glId, uint32(stages), program.Id())
	if stages&gl.VERTEX_SHADER_BIT != 0 {
		p.vertStage = program
	}
	if stages&gl.FRAGMENT_SHADER_BIT != 0 {
		p.fragStage = program
	}
}

func (p *shaderPipeline) Get(stage int) ShaderProgram {
	switch stage {
	case gl.VERTEX_SHADER:
		return p.vertStage
	case gl.FRAGMENT_SHADER:
		return p.fragStage
	}
	log.Panicf("%d is not a supported shader stage\n", stage)
	return nil
}

func (p *shaderPipeline) Bind() BoundShaderPipeline {
	State.BindProgramPipeline(p.glId)
	return BoundShaderPipeline(p)
}

func (p *shaderPipeline) Id() uint32 {
	return p.glId
}

func (p *shaderPipeline) SetDebugLabel(label string) {
	setObjectLabel(gl.PROGRAM_PIPELINE, p.glId, label)
}

func (p *shaderPipeline) Delete() {
	for _, stage := range []ShaderProgram{p.vertStage, p.fragStage} {
		if stage != nil {
			stage.Destroy()
		}
	}
	gl.DeleteProgramPipelines(1, &p.glId)
	p.glId = 0
}
