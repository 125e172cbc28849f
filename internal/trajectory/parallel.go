package trajectory

import (
	"io"
	"runtime"
	"sync"

	"github.com/alitto/pond"
)

// ParallelOptions configures ParallelIngest's worker pool.
type ParallelOptions struct {
	// Workers is the fixed pool size. Zero selects runtime.NumCPU().
	Workers int
}

func (o ParallelOptions) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// ParallelIngest dispatches each window to a pond worker pool, each
// worker opening its own read handle via open and ingesting its window
// independently into its own Trajectory. This is the concrete form of
// the dispatch spec §5 describes in prose: the splitter has already run
// serially to produce windows, and each window's ingest shares no
// mutable state with any other (cols is read-only after construction,
// per §5's invariant).
//
// Results and errs are parallel to windows: results[i] is nil wherever
// errs[i] is non-nil.
func ParallelIngest(windows []Window, open func() (io.ReadSeeker, error), cols *Columns, opts ParallelOptions) ([]*Trajectory, []error) {
	n := opts.workers()
	pool := pond.New(n, 0, pond.MinWorkers(n))
	defer pool.StopAndWait()

	results := make([]*Trajectory, len(windows))
	errs := make([]error, len(windows))

	var wg sync.WaitGroup
	wg.Add(len(windows))

	for i, w := range windows {
		i, w := i, w
		pool.Submit(func() {
			defer wg.Done()

			rs, err := open()
			if err != nil {
				errs[i] = err
				return
			}
			if closer, ok := rs.(io.Closer); ok {
				defer closer.Close()
			}

			traj := New(0)
			if err := IngestWindow(rs, w.Start, w.End, cols, traj); err != nil {
				errs[i] = err
				return
			}
			results[i] = traj
		})
	}

	wg.Wait()
	return results, errs
}
