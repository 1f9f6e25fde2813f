package core

// BufferID names one of the two state buffers.
type BufferID uint8

const (
	// BufferA is the "ping" buffer, current on even steps.
	BufferA BufferID = 0
	// BufferB is the "pong" buffer, current on odd steps.
	BufferB BufferID = 1
)

// Other returns the opposite buffer.
func (id BufferID) Other() BufferID { return id ^ 1 }

func (id BufferID) String() string {
	if id == BufferA {
		return "A"
	}
	return "B"
}

// Store holds the two row-major state buffers of a simulation grid.
// Both buffers are allocated once and mutated in place.
type Store struct {
	W, H int
	bufs [2][]uint32
}

// NewStore allocates a zeroed store for a w*h grid.
func NewStore(w, h int) (*Store, error) {
	if err := checkExtent(w, h); err != nil {
		return nil, err
	}
	n := w * h
	return &Store{W: w, H: h, bufs: [2][]uint32{make([]uint32, n), make([]uint32, n)}}, nil
}

// NewStoreFrom wraps existing buffers. Both must hold exactly w*h values.
func NewStoreFrom(w, h int, a, b []uint32) (*Store, error) {
	if err := checkExtent(w, h); err != nil {
		return nil, err
	}
	if err := CheckLayout(Size{W: w, H: h}, len(a)); err != nil {
		return nil, err
	}
	if err := CheckLayout(Size{W: w, H: h}, len(b)); err != nil {
		return nil, err
	}
	return &Store{W: w, H: h, bufs: [2][]uint32{a, b}}, nil
}

// Size returns the grid dimensions.
func (s *Store) Size() Size { return Size{W: s.W, H: s.H} }

// Current returns the buffer read during the given step.
func (s *Store) Current(step uint64) BufferID { return BufferID(step % 2) }

// Next returns the buffer written during the given step.
func (s *Store) Next(step uint64) BufferID { return s.Current(step).Other() }

// Buffer exposes the backing slice of a buffer.
func (s *Store) Buffer(id BufferID) []uint32 { return s.bufs[id&1] }

// Index returns the linear slice index for in-range coordinates (x, y).
func (s *Store) Index(x, y int) int { return y*s.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (s *Store) Wrap(x, y int) (int, int) {
	return WrapCoord(x, s.W), WrapCoord(y, s.H)
}

// Read returns the value at (x, y) in buffer id, wrapping out-of-range
// coordinates.
func (s *Store) Read(id BufferID, x, y int) uint32 {
	x, y = s.Wrap(x, y)
	return s.bufs[id&1][s.Index(x, y)]
}

// Write stores v at (x, y) in buffer id. Out-of-range coordinates are
// ignored.
func (s *Store) Write(id BufferID, x, y int, v uint32) {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return
	}
	s.bufs[id&1][s.Index(x, y)] = v
}

// Reader returns a wrapped read-only view of one buffer.
func (s *Store) Reader(id BufferID) Reader {
	return Reader{w: s.W, h: s.H, cells: s.bufs[id&1]}
}

// Seed fills both buffers identically from fn.
func (s *Store) Seed(fn func(x, y int) uint32) {
	a, b := s.bufs[0], s.bufs[1]
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			i := s.Index(x, y)
			v := fn(x, y)
			a[i] = v
			b[i] = v
		}
	}
}

// Clear fills both buffers with zeros.
func (s *Store) Clear() {
	clear(s.bufs[0])
	clear(s.bufs[1])
}

// Population counts the non-zero cells of a buffer.
func (s *Store) Population(id BufferID) int {
	n := 0
	for _, v := range s.bufs[id&1] {
		if v != 0 {
			n++
		}
	}
	return n
}

// Snapshot returns a copy of a buffer.
func (s *Store) Snapshot(id BufferID) []uint32 {
	return append([]uint32(nil), s.bufs[id&1]...)
}

// Reader is a read-only, toroidally wrapped view of one state buffer.
type Reader struct {
	w, h  int
	cells []uint32
}

// NewReader wraps cells as a w*h grid.
func NewReader(w, h int, cells []uint32) Reader {
	return Reader{w: w, h: h, cells: cells}
}

// At returns the value at (x, y) after wrapping both coordinates.
func (r Reader) At(x, y int) uint32 {
	return r.cells[WrapCoord(y, r.h)*r.w+WrapCoord(x, r.w)]
}

// Width returns the grid width.
func (r Reader) Width() int { return r.w }

// Height returns the grid height.
func (r Reader) Height() int { return r.h }

// WrapCoord maps v into [0, n) with Euclidean modulo, so -1 becomes n-1 and
// n becomes 0.
func WrapCoord(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
