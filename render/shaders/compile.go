package shaders

import (
	"fmt"

	"github.com/gekko3d/solarfx/render/core"
	"github.com/gogpu/naga"
)

const spirvMagic = 0x07230203

// CompileSPIRV compiles WGSL source to SPIR-V words.
func CompileSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("spir-v output is %d bytes, not word aligned", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	if len(words) == 0 || words[0] != spirvMagic {
		return nil, fmt.Errorf("invalid spir-v header")
	}
	return words, nil
}

// CompiledProgram holds both stages of a program as SPIR-V.
type CompiledProgram struct {
	Program  *core.ShaderProgram
	Vertex   []uint32
	Fragment []uint32
}

// CompileProgram compiles both stages; the error names the failing stage.
func CompileProgram(p *core.ShaderProgram) (*CompiledProgram, error) {
	vs, err := CompileSPIRV(p.VertexSource)
	if err != nil {
		return nil, fmt.Errorf("%s vertex stage: %w", p.Name, err)
	}
	fs := vs
	if p.FragmentSource != p.VertexSource {
		fs, err = CompileSPIRV(p.FragmentSource)
		if err != nil {
			return nil, fmt.Errorf("%s fragment stage: %w", p.Name, err)
		}
	}
	return &CompiledProgram{Program: p, Vertex: vs, Fragment: fs}, nil
}
