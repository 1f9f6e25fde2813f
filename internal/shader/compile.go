package shader

import (
	"fmt"

	"conjam/internal/core"
	"conjam/internal/rules"

	"github.com/gogpu/naga"
)

// Module is a generated program and its SPIR-V translation.
type Module struct {
	Label string
	WGSL  string
	SPIRV []uint32
}

// CompileToSPIRV compiles WGSL source to SPIR-V words.
func CompileToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// Build generates and compiles both programs for cfg.
func Build(cfg core.Config) (compute, cell Module, err error) {
	rule, err := core.LookupRule(cfg.Rule, cfg.Size())
	if err != nil {
		return compute, cell, err
	}
	p, ok := rule.(*rules.Program)
	if !ok {
		return compute, cell, fmt.Errorf("shader: rule %q has no program description", cfg.Rule)
	}

	compute.Label = "Simulation shader (" + p.Name() + ")"
	if compute.WGSL, err = Compute(p, cfg.TileSize); err != nil {
		return compute, cell, err
	}
	if compute.SPIRV, err = CompileToSPIRV(compute.WGSL); err != nil {
		return compute, cell, fmt.Errorf("%s: %w", compute.Label, err)
	}

	cell.Label = "Cell shader"
	cell.WGSL = Cell(cfg.CellHalfExtent, cfg.Color, cfg.FixedColor)
	if cell.SPIRV, err = CompileToSPIRV(cell.WGSL); err != nil {
		return compute, cell, fmt.Errorf("%s: %w", cell.Label, err)
	}
	core.Logger().Debug("shaders compiled",
		"rule", p.Name(), "compute_words", len(compute.SPIRV), "cell_words", len(cell.SPIRV))
	return compute, cell, nil
}
