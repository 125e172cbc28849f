// Package routesan is the public facade over the shape registry,
// trajectory codec, and configuration record: the three library
// components a batch tool or desktop shell builds on (spec §1).
package routesan

import (
	"fmt"

	"github.com/routesan/core/internal/geo"
	"github.com/routesan/core/internal/trajectory"
)

// Config holds the names and numeric thresholds consumed by the
// external de-identification passes (map-fit, turnaround, stop
// detection, privacy-interval windowing, graph-complexity windowing).
// Route Sanitizer's core does not run these passes; it only carries
// their configuration so a caller can load it once alongside the shape
// registry and trajectory data.
//
// Config is immutable after Build(): construct it via NewDefaultConfig()
// or a ConfigBuilder, never by mutating fields directly.
type Config struct {
	Fields    trajectory.FieldNames
	UIDFields []string

	QuadSW, QuadNE geo.Point

	PlotKML bool

	FitExt         float64
	ScaleMapFit    bool
	MapFitScale    float64
	NHeadingGroups int

	MinEdgeTripPoints int

	TaMaxQSize     int
	TaAreaWidth    float64
	TaMaxSpeed     float64
	TaHeadingDelta float64

	StopMaxTime     float64
	StopMinDistance float64
	StopMaxSpeed    float64

	MinDirectDistance float64
	MaxDirectDistance float64

	MinManhattanDistance float64
	MaxManhattanDistance float64

	MinOutDegree int
	MaxOutDegree int

	RandDirect    float64
	RandManhattan float64
	RandOutDegree float64
}

// NewDefaultConfig returns the frozen defaults enumerated in spec §6,
// including the Ann Arbor study-area bounding box.
func NewDefaultConfig() Config {
	return Config{
		Fields:    trajectory.DefaultFieldNames(),
		UIDFields: []string{"RxDevice", "FileId"},

		QuadSW: geo.NewPoint(42.22, -83.80),
		QuadNE: geo.NewPoint(42.35, -83.65),

		PlotKML: false,

		FitExt:         5,
		ScaleMapFit:    false,
		MapFitScale:    1.0,
		NHeadingGroups: 36,

		MinEdgeTripPoints: 50,

		TaMaxQSize:     20,
		TaAreaWidth:    30.0,
		TaMaxSpeed:     15.0,
		TaHeadingDelta: 90.0,

		StopMaxTime:     120.0,
		StopMinDistance: 15.0,
		StopMaxSpeed:    3.0,

		MinDirectDistance: 500,
		MaxDirectDistance: 2500,

		MinManhattanDistance: 650,
		MaxManhattanDistance: 3000,

		MinOutDegree: 8,
		MaxOutDegree: 16,

		RandDirect:    0,
		RandManhattan: 0,
		RandOutDegree: 0,
	}
}

// Validate checks the numeric thresholds are internally consistent.
func (c Config) Validate() error {
	if c.MinDirectDistance > c.MaxDirectDistance {
		return fmt.Errorf("min_direct_distance (%v) > max_direct_distance (%v)", c.MinDirectDistance, c.MaxDirectDistance)
	}
	if c.MinManhattanDistance > c.MaxManhattanDistance {
		return fmt.Errorf("min_manhattan_distance (%v) > max_manhattan_distance (%v)", c.MinManhattanDistance, c.MaxManhattanDistance)
	}
	if c.MinOutDegree > c.MaxOutDegree {
		return fmt.Errorf("min_out_degree (%v) > max_out_degree (%v)", c.MinOutDegree, c.MaxOutDegree)
	}
	if c.FitExt < 0 {
		return fmt.Errorf("fit_ext must be >= 0, got %v", c.FitExt)
	}
	if c.NHeadingGroups <= 0 {
		return fmt.Errorf("n_heading_groups must be > 0, got %v", c.NHeadingGroups)
	}
	return nil
}
