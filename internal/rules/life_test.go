package rules

import (
	"testing"

	"conjam/internal/core"
)

// step applies rule to every cell of a w*h grid and returns the next state.
func step(rule core.Rule, w, h int, cells []uint32) []uint32 {
	r := core.NewReader(w, h, cells)
	out := make([]uint32, len(cells))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			out[i] = rule.Next(x, y, cells[i], r)
		}
	}
	return out
}

func grid(w, h int, active ...[2]int) []uint32 {
	cells := make([]uint32, w*h)
	for _, c := range active {
		cells[core.WrapCoord(c[1], h)*w+core.WrapCoord(c[0], w)] = 1
	}
	return cells
}

func expectCells(t *testing.T, label string, w, h int, cells []uint32, active ...[2]int) {
	t.Helper()
	want := grid(w, h, active...)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if cells[i] != want[i] {
				t.Fatalf("%s: cell (%d,%d) = %d, expected %d", label, x, y, cells[i], want[i])
			}
		}
	}
}

func TestLifeBlockIsStill(t *testing.T) {
	block := [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}}
	cells := grid(6, 6, block...)
	for i := 0; i < 3; i++ {
		cells = step(Life(), 6, 6, cells)
	}
	expectCells(t, "block", 6, 6, cells, block...)
}

func TestBlinkerOscillation(t *testing.T) {
	vertical := [][2]int{{2, 1}, {2, 2}, {2, 3}}
	horizontal := [][2]int{{1, 2}, {2, 2}, {3, 2}}

	cells := step(Life(), 5, 5, grid(5, 5, vertical...))
	expectCells(t, "first step", 5, 5, cells, horizontal...)

	cells = step(Life(), 5, 5, cells)
	expectCells(t, "second step", 5, 5, cells, vertical...)
}

func TestBlinkerAcrossSeam(t *testing.T) {
	// horizontal blinker straddling x == width-1 and x == 0
	cells := step(Life(), 5, 5, grid(5, 5, [2]int{4, 2}, [2]int{0, 2}, [2]int{1, 2}))
	expectCells(t, "wrapped blinker", 5, 5, cells, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3})
}

func TestGliderTranslatesWithWrap(t *testing.T) {
	const w, h = 8, 8
	shape := [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	at := func(ox, oy int) [][2]int {
		out := make([][2]int, len(shape))
		for i, c := range shape {
			out[i] = [2]int{c[0] + ox, c[1] + oy}
		}
		return out
	}

	// start close to the corner so the glider crosses both seams
	cells := grid(w, h, at(6, 6)...)
	for i := 0; i < 4; i++ {
		cells = step(Life(), w, h, cells)
	}
	expectCells(t, "after 4 steps", w, h, cells, at(7, 7)...)

	for i := 0; i < 28; i++ {
		cells = step(Life(), w, h, cells)
	}
	expectCells(t, "after a full lap", w, h, cells, at(6, 6)...)
}

func TestLifeOvercrowdedCellDies(t *testing.T) {
	cells := make([]uint32, 9)
	for i := range cells {
		cells[i] = 1
	}
	// on a 3x3 torus every cell sees the other eight
	next := step(Life(), 3, 3, cells)
	for i, v := range next {
		if v != 0 {
			t.Fatalf("cell %d survived with 8 neighbors", i)
		}
	}
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{"life", "sand", "sand-reference"} {
		r, err := core.LookupRule(name, core.Size{W: 4, H: 4})
		if err != nil {
			t.Fatalf("LookupRule(%q): %v", name, err)
		}
		if r.Name() != name {
			t.Fatalf("rule %q reports name %q", name, r.Name())
		}
	}
	if Life().Radius() != 1 || Sand().Radius() != 2 {
		t.Fatalf("radius life=%d sand=%d", Life().Radius(), Sand().Radius())
	}
}
