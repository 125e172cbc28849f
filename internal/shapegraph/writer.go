package shapegraph

import (
	"fmt"
	"io"
	"strconv"

	"github.com/routesan/core/internal/interval"
)

// header is the fixed shape CSV header row.
var header = []string{"type", "id", "geography", "attributes"}

// floatPrec matches the original implementation's std::setprecision(16)
// output formatting; it is a significant-digit budget, not a fixed
// decimal count, so strconv's 'g' verb is the right match.
const floatPrec = 16

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', floatPrec, 64)
}

// WriteShapes serializes a ShapeRegistry back to the shape CSV grammar:
// header, then circles, edges, implicit edges, grids, critical intervals,
// and privacy intervals, each in ingest order.
func WriteShapes(w io.Writer, r *ShapeRegistry) error {
	bw := newLineWriter(w)
	bw.writeRow(header)

	for _, c := range r.Circles() {
		bw.writeRow([]string{
			"circle",
			strconv.FormatUint(c.UID, 10),
			fmt.Sprintf("%s:%s:%s", formatFloat(c.Center.Lat), formatFloat(c.Center.Lon), formatFloat(c.Radius)),
		})
	}

	for _, e := range r.Edges() {
		bw.writeRow(edgeRow("edge", e))
	}
	for _, e := range r.ImplicitEdges() {
		bw.writeRow(edgeRow("implicit_edge", e))
	}

	for _, g := range r.Grids() {
		bw.writeRow([]string{
			"grid",
			fmt.Sprintf("%d_%d", g.Row, g.Col),
			fmt.Sprintf("%s:%s:%s:%s",
				formatFloat(g.Bounds.SW.Lat), formatFloat(g.Bounds.SW.Lon),
				formatFloat(g.Bounds.NE.Lat), formatFloat(g.Bounds.NE.Lon)),
		})
	}

	for _, iv := range r.CriticalIntervals() {
		bw.writeRow(intervalRow("critical_interval", iv))
	}
	for _, iv := range r.PrivacyIntervals() {
		bw.writeRow(intervalRow("privacy_interval", iv))
	}

	return bw.err
}

// edgeRow builds the row for an edge or implicit_edge line. Only
// explicit edges carry an attributes field at all — an implicit_edge
// line has exactly 3 fields, matching the original writer, which never
// emits a fourth field for implicit edges.
func edgeRow(kind string, e *Edge) []string {
	geography := fmt.Sprintf("%d;%s;%s:%d;%s;%s",
		e.V1.UID, formatFloat(e.V1.Point.Lat), formatFloat(e.V1.Point.Lon),
		e.V2.UID, formatFloat(e.V2.Point.Lat), formatFloat(e.V2.Point.Lon))

	row := []string{kind, strconv.FormatUint(e.UID, 10), geography}
	if e.Explicit {
		row = append(row, formatEdgeAttrs(e.Attrs))
	}
	return row
}

// formatEdgeAttrs reverses parseEdgeAttrs: way_type is emitted first
// using the highway's canonical name (falling back to "unknown" for an
// out-of-range enumerator, per geo.Highway.String), followed by every
// spilled key. Go map iteration order is unspecified, so spill key
// order is not guaranteed to round-trip byte-for-byte.
func formatEdgeAttrs(attrs EdgeAttrs) string {
	out := "way_type=" + attrs.WayType.String()
	for k, v := range attrs.Spill {
		out += fmt.Sprintf(":%s=%s", k, v)
	}
	return out
}

// intervalRow emits 3 fields when the interval's aux set is empty, and 4
// when it is not — the writer omits the trailing field entirely rather
// than emitting it empty, matching the original's
// `if (!aux_str.empty()) os << "," << aux_str;` and
// internal/interval.Interval.AuxStr's own doc comment.
func intervalRow(kind string, iv interval.Interval) []string {
	row := []string{
		kind,
		strconv.FormatInt(iv.ID, 10),
		fmt.Sprintf("%d;%d", iv.Left, iv.Right),
	}
	if aux := iv.AuxStr(); aux != "" {
		row = append(row, aux)
	}
	return row
}

// lineWriter writes CSV rows without field-quoting: none of the values
// produced here can contain a comma, matching the compact grammar the
// shape format uses on both its read and write side.
type lineWriter struct {
	w   io.Writer
	err error
}

func newLineWriter(w io.Writer) *lineWriter {
	return &lineWriter{w: w}
}

func (lw *lineWriter) writeRow(fields []string) {
	if lw.err != nil {
		return
	}
	line := fields[0]
	for _, f := range fields[1:] {
		line += "," + f
	}
	_, lw.err = io.WriteString(lw.w, line+"\n")
}
