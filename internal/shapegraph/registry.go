package shapegraph

import (
	"github.com/routesan/core/internal/diag"
	"github.com/routesan/core/internal/geo"
	"github.com/routesan/core/internal/interval"
)

// ShapeRegistry owns the Vertex and Edge arenas produced by ParseShapes,
// plus the auxiliary circles, grids, and interval annotations from the
// same shape file. It is read-only after ParseShapes returns: the vertex
// dedup map is single-writer during ingest, and the graph is immutable
// afterward, so a *ShapeRegistry may be shared by reference across
// parallel workers (spec.md §5).
type ShapeRegistry struct {
	vertices    []*Vertex
	vertexByUID map[uint64]*Vertex

	// Implicit edges (trajectory-derived) dedup their endpoints in a
	// separate uid namespace from explicit road edges, matching the
	// original implementation's independent implicit_edge_map_: an
	// implicit edge's vertex uid 7 and an explicit edge's vertex uid 7
	// never refer to the same Vertex.
	implicitVertices    []*Vertex
	implicitVertexByUID map[uint64]*Vertex

	edges         []*Edge
	implicitEdges []*Edge

	circles []geo.Circle
	grids   []geo.Grid

	criticalIntervals []interval.Interval
	privacyIntervals  []interval.Interval

	index *spatialIndex
}

// NewShapeRegistry returns an empty registry, ready for ParseShapes (or
// direct population by a writer/builder in tests).
func NewShapeRegistry() *ShapeRegistry {
	return &ShapeRegistry{
		vertexByUID:         make(map[uint64]*Vertex),
		implicitVertexByUID: make(map[uint64]*Vertex),
	}
}

// Vertices returns every vertex in the registry, in first-seen order.
func (r *ShapeRegistry) Vertices() []*Vertex { return r.vertices }

// VertexByUID looks up an explicit-edge vertex by its uid, returning
// (nil, false) if it was never referenced by any explicit edge. Vertices
// of implicit edges live in a separate namespace and are not found here.
func (r *ShapeRegistry) VertexByUID(uid uint64) (*Vertex, bool) {
	v, ok := r.vertexByUID[uid]
	return v, ok
}

// ImplicitVertices returns every vertex referenced only by implicit edges.
func (r *ShapeRegistry) ImplicitVertices() []*Vertex { return r.implicitVertices }

// Edges returns the explicit (mapped road) edges.
func (r *ShapeRegistry) Edges() []*Edge { return r.edges }

// ImplicitEdges returns the implicit (trajectory-derived) edges.
func (r *ShapeRegistry) ImplicitEdges() []*Edge { return r.implicitEdges }

// Circles returns every parsed circle.
func (r *ShapeRegistry) Circles() []geo.Circle { return r.circles }

// Grids returns every parsed grid cell.
func (r *ShapeRegistry) Grids() []geo.Grid { return r.grids }

// CriticalIntervals returns the critical_interval annotations.
func (r *ShapeRegistry) CriticalIntervals() []interval.Interval { return r.criticalIntervals }

// PrivacyIntervals returns the privacy_interval annotations.
func (r *ShapeRegistry) PrivacyIntervals() []interval.Interval { return r.privacyIntervals }

// IncidentEdges resolves a vertex's recorded edge indices back to *Edge
// values. Indices refer to the explicit-edge arena, since only explicit
// edges call Vertex.AddEdge during ingest.
func (r *ShapeRegistry) IncidentEdges(v *Vertex) []*Edge {
	out := make([]*Edge, 0, len(v.edgeIdx))
	for _, idx := range v.edgeIdx {
		if idx >= 0 && idx < len(r.edges) {
			out = append(out, r.edges[idx])
		}
	}
	return out
}

// resolveVertex returns the existing vertex for uid if one was already
// ingested, instantiating and registering a new one otherwise. Returns
// false without mutating the registry if lat/lon fail coordinate
// validation. A second occurrence of uid reuses the stored vertex; if its
// coordinates differ from the ones just seen, sink reports a warning
// instead of overwriting the stored point.
func (r *ShapeRegistry) resolveVertex(uid uint64, lat, lon float64, lineNo int, sink diag.Sink) (*Vertex, bool) {
	if v, ok := r.vertexByUID[uid]; ok {
		if !v.Point.Equal(geo.NewPoint(lat, lon)) {
			sink.Report("edge", lineNo, "identical vertex id with different coordinates")
		}
		return v, true
	}

	if !geo.ValidateCoordinate(lat, lon) {
		return nil, false
	}

	v := &Vertex{Point: geo.NewPoint(lat, lon), UID: uid}
	r.vertices = append(r.vertices, v)
	r.vertexByUID[uid] = v
	return v, true
}

// resolveImplicitVertex is resolveVertex's counterpart for implicit_edge
// lines, backed by the separate implicit-vertex dedup map.
func (r *ShapeRegistry) resolveImplicitVertex(uid uint64, lat, lon float64, lineNo int, sink diag.Sink) (*Vertex, bool) {
	if v, ok := r.implicitVertexByUID[uid]; ok {
		if !v.Point.Equal(geo.NewPoint(lat, lon)) {
			sink.Report("implicit_edge", lineNo, "identical vertex id with different coordinates")
		}
		return v, true
	}

	if !geo.ValidateCoordinate(lat, lon) {
		return nil, false
	}

	v := &Vertex{Point: geo.NewPoint(lat, lon), UID: uid}
	r.implicitVertices = append(r.implicitVertices, v)
	r.implicitVertexByUID[uid] = v
	return v, true
}
