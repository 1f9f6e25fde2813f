package rules

import (
	"testing"

	"conjam/internal/core"
	pkgcore "conjam/pkg/core"
)

func population(cells []uint32) int {
	n := 0
	for _, v := range cells {
		if v != 0 {
			n++
		}
	}
	return n
}

func TestSandFloorIsStable(t *testing.T) {
	const w, h = 6, 5
	floor := [][2]int{{0, 0}, {1, 0}, {3, 0}, {5, 0}}
	cells := grid(w, h, floor...)
	for i := 0; i < 3; i++ {
		cells = step(Sand(), w, h, cells)
	}
	expectCells(t, "floor", w, h, cells, floor...)
}

func TestSandFreeFall(t *testing.T) {
	const w, h = 5, 6
	cells := grid(w, h, [2]int{2, 4})
	for y := 3; y >= 0; y-- {
		cells = step(Sand(), w, h, cells)
		expectCells(t, "falling", w, h, cells, [2]int{2, y})
	}
	for i := 0; i < 3; i++ {
		cells = step(Sand(), w, h, cells)
	}
	expectCells(t, "landed", w, h, cells, [2]int{2, 0})
}

func TestSandSlidesAcrossSeam(t *testing.T) {
	const w, h = 5, 4
	cells := grid(w, h, [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2})
	cells = step(Sand(), w, h, cells)
	// the top grain's down-left neighbor is x == width-1
	expectCells(t, "slide", w, h, cells, [2]int{0, 0}, [2]int{0, 1}, [2]int{4, 1})
}

func TestSandSlidesRightWhenLeftBlocked(t *testing.T) {
	const w, h = 7, 4
	cells := grid(w, h, [2]int{3, 0}, [2]int{3, 1}, [2]int{2, 1})
	cells = step(Sand(), w, h, cells)
	// (3,1) has a grain to its left, so it slides down-right
	expectCells(t, "right slide", w, h, cells, [2]int{3, 0}, [2]int{2, 0}, [2]int{4, 0})
}

func TestSandReferenceDuplicatesSlidingGrain(t *testing.T) {
	const w, h = 6, 5
	start := grid(w, h, [2]int{2, 2}, [2]int{2, 1})

	ref := step(SandReference(), w, h, start)
	if got := population(ref); got != 3 {
		t.Fatalf("reference rule population = %d, expected the duplicated 3", got)
	}

	fixed := step(Sand(), w, h, start)
	expectCells(t, "sand", w, h, fixed, [2]int{2, 0}, [2]int{1, 1})
}

func TestSandKeepsGrainWhoseSlideTargetIsTaken(t *testing.T) {
	const w, h = 9, 5
	start := grid(w, h, [2]int{1, 0}, [2]int{2, 0}, [2]int{4, 0}, [2]int{2, 1}, [2]int{4, 1})

	// (4,1) slides down-left into (3,0), so (2,1) must not slide down-right
	next := step(Sand(), w, h, start)
	expectCells(t, "sand", w, h, next,
		[2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}, [2]int{4, 0}, [2]int{2, 1})

	ref := step(SandReference(), w, h, start)
	if got := population(ref); got != 4 {
		t.Fatalf("reference rule population = %d, expected the lost grain to leave 4", got)
	}
}

func TestSandConservesMass(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 2}, {3, 5}, {16, 12}, {33, 17}}
	for _, sz := range sizes {
		w, h := sz[0], sz[1]
		for seed := int64(1); seed <= 6; seed++ {
			cells := make([]uint32, w*h)
			pkgcore.FillThreshold(pkgcore.NewRNG(seed), cells, 0.5)
			want := population(cells)
			for i := 0; i < 60; i++ {
				cells = step(Sand(), w, h, cells)
				if got := population(cells); got != want {
					t.Fatalf("%dx%d seed %d step %d: population %d -> %d", w, h, seed, i+1, want, got)
				}
			}
		}
	}
}

func TestSandReferenceFreeFall(t *testing.T) {
	const w, h = 8, 6
	cells := grid(w, h, [2]int{1, 3}, [2]int{5, 4}, [2]int{6, 0})
	for i := 0; i < 10; i++ {
		cells = step(SandReference(), w, h, cells)
	}
	expectCells(t, "reference", w, h, cells, [2]int{1, 0}, [2]int{5, 0}, [2]int{6, 0})
}

func TestSandCeilingCellsStayEmpty(t *testing.T) {
	const w, h = 4, 4
	// a grain on the floor wraps to become the "above" neighbor of the top row
	cells := grid(w, h, [2]int{1, 0})
	next := step(Sand(), w, h, cells)
	r := core.NewReader(w, h, next)
	for x := 0; x < w; x++ {
		if r.At(x, h-1) != 0 {
			t.Fatalf("ceiling cell (%d,%d) received a grain", x, h-1)
		}
	}
}
