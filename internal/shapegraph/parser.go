package shapegraph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/routesan/core/internal/diag"
	"github.com/routesan/core/internal/geo"
	"github.com/routesan/core/internal/interval"
	"github.com/routesan/core/internal/rserr"
)

// shape file grammar: type,id,geography[,attributes]
const (
	fieldType = iota
	fieldID
	fieldGeography
	fieldAttributes
)

// ParseOptions configures shape ingest diagnostics.
type ParseOptions struct {
	// Diagnostics receives one-line reports for every skipped or
	// downgraded line. Defaults to diag.NewStderrDiagnostics() when nil.
	Diagnostics diag.Sink
}

// ParseShapesFile opens path and parses it per ParseShapes. Opening the
// file and missing the header are the only fatal errors (rserr.IOError);
// every other per-line problem is reported via opts.Diagnostics and the
// line is skipped — "garbled lines cost data, never the file."
func ParseShapesFile(path string, opts ParseOptions) (*ShapeRegistry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &rserr.IOError{Path: path, Reason: err.Error()}
	}
	defer f.Close()

	return ParseShapes(f, opts)
}

// ParseShapes reads a shape CSV stream and returns a populated
// ShapeRegistry. The stream must start with a header line (its contents
// are not otherwise inspected).
func ParseShapes(r io.Reader, opts ParseOptions) (*ShapeRegistry, error) {
	sink := opts.Diagnostics
	if sink == nil {
		sink = diag.NewStderrDiagnostics()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		return nil, &rserr.IOError{Reason: "shape file missing header"}
	}

	reg := NewShapeRegistry()
	lineNo := 1

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 3 || len(parts) > 4 {
			err := &rserr.FormatError{Line: lineNo, Reason: fmt.Sprintf("too few or too many elements in shape specification: %d fields", len(parts))}
			sink.Report("shape", lineNo, err.Error())
			continue
		}

		var err error
		switch parts[fieldType] {
		case "circle":
			err = reg.ingestCircle(parts, lineNo)
		case "edge":
			err = reg.ingestEdge(parts, lineNo, sink, true)
		case "implicit_edge":
			err = reg.ingestEdge(parts, lineNo, sink, false)
		case "grid":
			err = reg.ingestGrid(parts, lineNo)
		case "critical_interval":
			err = reg.ingestInterval(parts, lineNo, true)
		case "privacy_interval":
			err = reg.ingestInterval(parts, lineNo, false)
		default:
			// Unknown type values are silently skipped, per spec.md §4.C.
			continue
		}

		if err != nil {
			sink.Report(parts[fieldType], lineNo, err.Error())
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &rserr.IOError{Reason: err.Error()}
	}

	return reg, nil
}

func (r *ShapeRegistry) ingestCircle(parts []string, lineNo int) error {
	uid, err := strconv.ParseUint(parts[fieldID], 10, 64)
	if err != nil {
		return &rserr.ValueError{Line: lineNo, Field: "id", Token: parts[fieldID]}
	}

	fields := strings.Split(parts[fieldGeography], ":")
	if len(fields) != 3 {
		return &rserr.FormatError{Line: lineNo, Field: "geography", Reason: fmt.Sprintf("wrong number of elements for circle center: %d", len(fields))}
	}

	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return &rserr.ValueError{Line: lineNo, Field: "latitude", Token: fields[0]}
	}
	lon, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return &rserr.ValueError{Line: lineNo, Field: "longitude", Token: fields[1]}
	}
	radius, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return &rserr.ValueError{Line: lineNo, Field: "radius", Token: fields[2]}
	}

	if lat < geo.MinLat || lat > geo.MaxLat {
		return &rserr.RangeError{Line: lineNo, Reason: fmt.Sprintf("bad latitude: %v", lat)}
	}
	if lon <= geo.MinLon || lon >= geo.MaxLon {
		return &rserr.RangeError{Line: lineNo, Reason: fmt.Sprintf("bad longitude: %v", lon)}
	}
	if radius < 0 {
		return &rserr.RangeError{Line: lineNo, Reason: fmt.Sprintf("bad radius: %v", radius)}
	}

	r.circles = append(r.circles, geo.Circle{Center: geo.NewPoint(lat, lon), UID: uid, Radius: radius})
	return nil
}

// ingestEdge handles both "edge" (explicit=true) and "implicit_edge"
// (explicit=false) lines; only explicit edges carry attributes and only
// explicit edges register themselves on their endpoints' incident lists.
func (r *ShapeRegistry) ingestEdge(parts []string, lineNo int, sink diag.Sink, explicit bool) error {
	edgeID, err := strconv.ParseUint(parts[fieldID], 10, 64)
	if err != nil {
		return &rserr.ValueError{Line: lineNo, Field: "id", Token: parts[fieldID]}
	}

	geoParts := strings.Split(parts[fieldGeography], ":")
	if len(geoParts) != 2 {
		return &rserr.FormatError{Line: lineNo, Field: "geography", Reason: fmt.Sprintf("too many or too few points to define an edge: %d", len(geoParts))}
	}

	var endpoints [2]*Vertex
	for i, pointStr := range geoParts {
		pointParts := strings.Split(pointStr, ";")
		if len(pointParts) != 3 {
			return &rserr.FormatError{Line: lineNo, Field: "geography", Reason: fmt.Sprintf("too many or too few elements to define a point: %d", len(pointParts))}
		}

		vid, err := strconv.ParseUint(pointParts[0], 10, 64)
		if err != nil {
			return &rserr.ValueError{Line: lineNo, Field: "vertex id", Token: pointParts[0]}
		}
		lat, err := strconv.ParseFloat(pointParts[1], 64)
		if err != nil {
			return &rserr.ValueError{Line: lineNo, Field: "latitude", Token: pointParts[1]}
		}
		lon, err := strconv.ParseFloat(pointParts[2], 64)
		if err != nil {
			return &rserr.ValueError{Line: lineNo, Field: "longitude", Token: pointParts[2]}
		}

		if i == 1 && vid == endpoints[0].UID {
			return &rserr.RangeError{Line: lineNo, Reason: "the identifiers for the edges points are the same"}
		}

		var v *Vertex
		var ok bool
		if explicit {
			v, ok = r.resolveVertex(vid, lat, lon, lineNo, sink)
		} else {
			v, ok = r.resolveImplicitVertex(vid, lat, lon, lineNo, sink)
		}
		if !ok {
			if lat < geo.MinLat || lat > geo.MaxLat {
				return &rserr.RangeError{Line: lineNo, Reason: fmt.Sprintf("bad latitude: %v", lat)}
			}
			return &rserr.RangeError{Line: lineNo, Reason: fmt.Sprintf("bad longitude: %v", lon)}
		}
		endpoints[i] = v
	}

	attrs := EdgeAttrs{WayType: geo.Other}
	if explicit && len(parts) > fieldAttributes {
		attrs = parseEdgeAttrs(parts[fieldAttributes])
	}

	edge := &Edge{UID: edgeID, V1: endpoints[0], V2: endpoints[1], Attrs: attrs, Explicit: explicit}

	if explicit {
		idx := len(r.edges)
		r.edges = append(r.edges, edge)
		endpoints[0].AddEdge(idx)
		endpoints[1].AddEdge(idx)
	} else {
		r.implicitEdges = append(r.implicitEdges, edge)
	}

	return nil
}

// parseEdgeAttrs parses the colon-separated key=value attribute list.
// Whitespace is stripped around both sides of "="; empty key or value
// pairs are ignored. way_type is recognized and lowercased before
// lookup; every other key (e.g. way_id) is kept in Spill for round-trip.
func parseEdgeAttrs(raw string) EdgeAttrs {
	attrs := EdgeAttrs{WayType: geo.Other, Spill: make(map[string]string)}

	for _, pair := range strings.Split(raw, ":") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		val := strings.TrimSpace(kv[1])
		if key == "" || val == "" {
			continue
		}

		if key == "way_type" {
			attrs.WayType = geo.ParseHighway(val)
			continue
		}
		attrs.Spill[key] = val
	}

	return attrs
}

func (r *ShapeRegistry) ingestGrid(parts []string, lineNo int) error {
	idParts := strings.Split(parts[fieldID], "_")
	if len(idParts) != 2 {
		return &rserr.FormatError{Line: lineNo, Field: "id", Reason: "grid missing row/col fields"}
	}
	row, err := strconv.Atoi(idParts[0])
	if err != nil {
		return &rserr.ValueError{Line: lineNo, Field: "row", Token: idParts[0]}
	}
	col, err := strconv.Atoi(idParts[1])
	if err != nil {
		return &rserr.ValueError{Line: lineNo, Field: "col", Token: idParts[1]}
	}

	geoParts := strings.Split(parts[fieldGeography], ":")
	if len(geoParts) != 4 {
		return &rserr.FormatError{Line: lineNo, Field: "geography", Reason: "grid missing bounds data"}
	}

	coords := make([]float64, 4)
	for i, s := range geoParts {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return &rserr.ValueError{Line: lineNo, Field: "coordinate", Token: s}
		}
		coords[i] = v
	}
	swLat, swLon, neLat, neLon := coords[0], coords[1], coords[2], coords[3]

	for _, lat := range []float64{swLat, neLat} {
		if lat < geo.MinLat || lat > geo.MaxLat {
			return &rserr.RangeError{Line: lineNo, Reason: fmt.Sprintf("bad latitude: %v", lat)}
		}
	}
	for _, lon := range []float64{swLon, neLon} {
		if lon <= geo.MinLon || lon >= geo.MaxLon {
			return &rserr.RangeError{Line: lineNo, Reason: fmt.Sprintf("bad longitude: %v", lon)}
		}
	}

	r.grids = append(r.grids, geo.Grid{
		Bounds: geo.Bounds{SW: geo.NewPoint(swLat, swLon), NE: geo.NewPoint(neLat, neLon)},
		Row:    row,
		Col:    col,
	})
	return nil
}

func (r *ShapeRegistry) ingestInterval(parts []string, lineNo int, critical bool) error {
	id, err := strconv.ParseInt(parts[fieldID], 10, 64)
	if err != nil {
		return &rserr.ValueError{Line: lineNo, Field: "id", Token: parts[fieldID]}
	}

	bounds := strings.Split(parts[fieldGeography], ";")
	if len(bounds) < 2 {
		return &rserr.FormatError{Line: lineNo, Field: "geography", Reason: "interval missing right/left fields"}
	}
	left, err := strconv.Atoi(bounds[0])
	if err != nil {
		return &rserr.ValueError{Line: lineNo, Field: "left", Token: bounds[0]}
	}
	right, err := strconv.Atoi(bounds[1])
	if err != nil {
		return &rserr.ValueError{Line: lineNo, Field: "right", Token: bounds[1]}
	}
	if left < 0 || right < left {
		return &rserr.RangeError{Line: lineNo, Reason: fmt.Sprintf("invalid interval bounds [%d, %d)", left, right)}
	}

	var aux []string
	if len(parts) > fieldAttributes && parts[fieldAttributes] != "" {
		aux = strings.Split(parts[fieldAttributes], ";")
	}
	iv := interval.NewWithAux(id, left, right, aux)

	if critical {
		r.criticalIntervals = append(r.criticalIntervals, iv)
	} else {
		r.privacyIntervals = append(r.privacyIntervals, iv)
	}
	return nil
}
