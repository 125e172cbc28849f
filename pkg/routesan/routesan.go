package routesan

import (
	"io"

	"github.com/routesan/core/internal/diag"
	"github.com/routesan/core/internal/geo"
	"github.com/routesan/core/internal/interval"
	"github.com/routesan/core/internal/shapegraph"
	"github.com/routesan/core/internal/trajectory"
)

// Re-exported types so callers depend only on this package, not on the
// internal packages that implement it.
type (
	Point    = geo.Point
	Bounds   = geo.Bounds
	Circle   = geo.Circle
	Grid     = geo.Grid
	Highway  = geo.Highway
	Interval = interval.Interval

	Vertex = shapegraph.Vertex
	Edge   = shapegraph.Edge

	TripPoint   = trajectory.Point
	Trajectory  = trajectory.Trajectory
	Window      = trajectory.Window
	FieldNames  = trajectory.FieldNames
	Diagnostics = diag.Sink
)

const (
	Other        = geo.Other
	Motorway     = geo.Motorway
	Trunk        = geo.Trunk
	Primary      = geo.Primary
	Secondary    = geo.Secondary
	Tertiary     = geo.Tertiary
	Residential  = geo.Residential
	Service      = geo.Service
	Unclassified = geo.Unclassified
	LivingStreet = geo.LivingStreet
	Track        = geo.Track
	Pedestrian   = geo.Pedestrian
	Footway      = geo.Footway
	Cycleway     = geo.Cycleway
	Path         = geo.Path
)

// NewDiagnostics returns the default stderr-backed diagnostics sink.
func NewDiagnostics() Diagnostics { return diag.NewStderrDiagnostics() }

// DiscardDiagnostics is a sink that drops every report.
var DiscardDiagnostics Diagnostics = diag.Discard

// LoadShapes parses a shape CSV stream into a ShapeRegistry, per spec
// §4.C. Opening the stream is the caller's responsibility; only the
// missing-header case is fatal here.
func LoadShapes(r io.Reader, diagnostics Diagnostics) (*shapegraph.ShapeRegistry, error) {
	return shapegraph.ParseShapes(r, shapegraph.ParseOptions{Diagnostics: diagnostics})
}

// LoadShapesFile opens path and parses it per LoadShapes.
func LoadShapesFile(path string, diagnostics Diagnostics) (*shapegraph.ShapeRegistry, error) {
	return shapegraph.ParseShapesFile(path, shapegraph.ParseOptions{Diagnostics: diagnostics})
}

// WriteShapes serializes a ShapeRegistry back to the shape CSV grammar.
func WriteShapes(w io.Writer, reg *shapegraph.ShapeRegistry) error {
	return shapegraph.WriteShapes(w, reg)
}

// IngestTrip parses a whole trip file into traj using cfg's field names.
func IngestTrip(r io.Reader, cfg Config, traj *Trajectory) error {
	return trajectory.IngestAll(r, cfg.Fields, traj)
}

// WriteTrip writes header then traj as a trip CSV file.
func WriteTrip(w io.Writer, header string, traj *Trajectory) error {
	return trajectory.WriteTrajectory(w, header, traj)
}

// NewTrajectory returns an empty Trajectory, optionally preallocated.
func NewTrajectory(capHint int) *Trajectory {
	return trajectory.New(capHint)
}

// NewSplitter constructs a trip splitter using cfg's configured UID
// fields as the default field set.
func NewSplitter(r io.Reader, cfg Config) (*trajectory.Splitter, error) {
	return trajectory.NewSplitter(r, trajectory.SplitterOptions{UIDFields: cfg.UIDFields})
}
