// Package shader generates the device programs for a rule: a compute
// program that advances the grid and the instanced cell program that draws
// it. Both are derived from rules.Program, the same description the
// in-process evaluator runs.
package shader

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"conjam/internal/core"
	"conjam/internal/rules"
)

// Bindings shared by both programs.
const (
	BindingGrid   = 0
	BindingInput  = 1
	BindingOutput = 2
)

// Entry points.
const (
	ComputeEntry  = "computeMain"
	VertexEntry   = "vertexMain"
	FragmentEntry = "fragmentMain"
)

const computePrelude = `@group(0) @binding(0) var<uniform> grid: vec2<f32>;
@group(0) @binding(1) var<storage, read> cellStateIn: array<u32>;
@group(0) @binding(2) var<storage, read_write> cellStateOut: array<u32>;

fn wrap(v: i32, n: i32) -> i32 {
    return ((v % n) + n) % n;
}

fn cellIndex(x: i32, y: i32) -> u32 {
    let w = i32(grid.x);
    let h = i32(grid.y);
    return u32(wrap(y, h) * w + wrap(x, w));
}

fn cellValue(x: i32, y: i32) -> u32 {
    return cellStateIn[cellIndex(x, y)];
}

fn cellActive(x: i32, y: i32) -> bool {
    return cellValue(x, y) != 0u;
}
`

const computeMainTmpl = `
@compute @workgroup_size(%d, %d)
fn computeMain(@builtin(global_invocation_id) id: vec3<u32>) {
    if (id.x >= u32(grid.x) || id.y >= u32(grid.y)) {
        return;
    }
    let x = i32(id.x);
    let y = i32(id.y);
    let i = cellIndex(x, y);
    cellStateOut[i] = nextState(x, y, cellStateIn[i]);
}
`

// Compute generates the WGSL compute program for p with a tile*tile
// workgroup.
func Compute(p *rules.Program, tile int) (string, error) {
	if tile <= 0 {
		return "", &core.ConfigError{Field: "tile", Reason: "must be positive"}
	}
	var b strings.Builder
	b.WriteString(computePrelude)
	b.WriteString("\n")
	switch p.Kind {
	case rules.Totalistic:
		writeTotalistic(&b, p)
	case rules.Clauses:
		writeClauses(&b, p)
	default:
		return "", fmt.Errorf("shader: unknown program kind %d", p.Kind)
	}
	fmt.Fprintf(&b, computeMainTmpl, tile, tile)
	return b.String(), nil
}

func writeTotalistic(b *strings.Builder, p *rules.Program) {
	b.WriteString("fn nextState(x: i32, y: i32, cur: u32) -> u32 {\n")
	b.WriteString("    let n = ")
	first := true
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if !first {
				b.WriteString(" +\n        ")
			}
			first = false
			fmt.Fprintf(b, "cellValue(%s, %s)", offset("x", dx), offset("y", dy))
		}
	}
	b.WriteString(";\n")
	for n, outcome := range p.Counts {
		switch outcome {
		case rules.Keep:
			fmt.Fprintf(b, "    if (n == %du) {\n        return cur;\n    }\n", n)
		case rules.One:
			fmt.Fprintf(b, "    if (n == %du) {\n        return 1u;\n    }\n", n)
		}
	}
	b.WriteString("    return 0u;\n}\n")
}

func writeClauses(b *strings.Builder, p *rules.Program) {
	b.WriteString("fn nextState(x: i32, y: i32, cur: u32) -> u32 {\n")
	b.WriteString("    let h = i32(grid.y);\n")
	b.WriteString("    if (cur == 0u) {\n")
	writeClauseList(b, p.Inactive, p.InactiveFallback)
	b.WriteString("    }\n")
	writeClauseList(b, p.Active, p.ActiveFallback)
	b.WriteString("}\n")
}

func writeClauseList(b *strings.Builder, clauses []rules.Clause, fallback uint32) {
	for _, c := range clauses {
		conds := make([]string, 0, len(c.Probes)+1)
		switch c.Boundary {
		case rules.AtFloor:
			conds = append(conds, "y == 0")
		case rules.AtCeiling:
			conds = append(conds, "y == h - 1")
		}
		for _, pr := range c.Probes {
			conds = append(conds, probeCall(pr))
		}
		if len(conds) == 0 {
			fmt.Fprintf(b, "    return %du;\n", c.Result)
			return
		}
		fmt.Fprintf(b, "    if (%s) {\n        return %du;\n    }\n", strings.Join(conds, " && "), c.Result)
	}
	fmt.Fprintf(b, "    return %du;\n", fallback)
}

// probeCall renders a neighbor probe as a cellActive test.
func probeCall(pr rules.Probe) string {
	call := fmt.Sprintf("cellActive(%s, %s)", offset("x", pr.DX), offset("y", pr.DY))
	if !pr.Active {
		call = "!" + call
	}
	return call
}

func offset(name string, d int) string {
	switch {
	case d > 0:
		return name + " + " + strconv.Itoa(d)
	case d < 0:
		return name + " - " + strconv.Itoa(-d)
	}
	return name
}

const cellProgramTmpl = `struct VertexOutput {
    @builtin(position) pos: vec4<f32>,
    @location(0) cell: vec2<f32>,
};

@group(0) @binding(0) var<uniform> grid: vec2<f32>;
@group(0) @binding(1) var<storage, read> cellState: array<u32>;

@vertex
fn vertexMain(@location(0) pos: vec2<f32>, @builtin(instance_index) instance: u32) -> VertexOutput {
    let i = f32(instance);
    let cell = vec2<f32>(i %% grid.x, floor(i / grid.x));
    let state = f32(cellState[instance]);
    let cellOffset = cell / grid * 2.0;
    let gridPos = (pos * %s * state + 1.0) / grid - 1.0 + cellOffset;
    var output: VertexOutput;
    output.pos = vec4<f32>(gridPos, 0.0, 1.0);
    output.cell = cell;
    return output;
}

@fragment
fn fragmentMain(input: VertexOutput) -> @location(0) vec4<f32> {
%s}
`

// Cell generates the instanced vertex and fragment program drawing one
// quad per cell.
func Cell(halfExtent float64, mode core.ColorMode, fixed color.RGBA) string {
	var frag string
	if mode == core.ColorFixed {
		frag = fmt.Sprintf("    return vec4<f32>(%s, %s, %s, %s);\n",
			float(float64(fixed.R)/255), float(float64(fixed.G)/255),
			float(float64(fixed.B)/255), float(float64(fixed.A)/255))
	} else {
		frag = "    let c = input.cell / grid;\n    return vec4<f32>(c, 1.0 - c.x, 1.0);\n"
	}
	return fmt.Sprintf(cellProgramTmpl, float(halfExtent), frag)
}

// float formats v as a WGSL f32 literal; WGSL needs the decimal point.
func float(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
