package trajectory

// Trajectory is an append-only, zero-indexed sequence of fixes. It owns
// its storage exclusively: a windowed parse never shares a Trajectory
// with another parse, so no synchronization is needed even when many
// windows are ingested concurrently (see ParallelIngest).
type Trajectory struct {
	points []Point
}

// New returns an empty Trajectory with cap preallocated, a hint for
// callers that already know the window's approximate record count.
func New(cap int) *Trajectory {
	if cap < 0 {
		cap = 0
	}
	return &Trajectory{points: make([]Point, 0, cap)}
}

// Append adds a fix to the end of the sequence.
func (t *Trajectory) Append(p Point) {
	t.points = append(t.points, p)
}

// Len returns the number of fixes.
func (t *Trajectory) Len() int { return len(t.points) }

// At returns the fix at index i. It panics on an out-of-range index,
// matching slice semantics — callers are expected to range [0, Len()).
func (t *Trajectory) At(i int) Point { return t.points[i] }

// Points returns the underlying fix slice. Callers must not retain it
// past a subsequent Append, which may reallocate.
func (t *Trajectory) Points() []Point { return t.points }
