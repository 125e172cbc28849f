package trajectory

import (
	"io"
	"strconv"
)

// floatPrec matches the shape codec's 16-significant-digit convention
// (internal/shapegraph.floatPrec), carried here so both codecs that move
// floating-point coordinates through text agree on precision.
const floatPrec = 16

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', floatPrec, 64)
}

// columnWriter maps an output header's column names back to the Point
// field each one should pull from, the inverse of Columns.
type columnWriter struct {
	names []string
}

// NewColumnWriter parses an output header line into the ordered list of
// recognized column names it should emit per row. Unrecognized names in
// the output header are kept as positions that always emit an empty
// field, so the output column count always matches the header.
func NewColumnWriter(header string) *columnWriter {
	return &columnWriter{names: splitHeader(header)}
}

func splitHeader(header string) []string {
	var names []string
	start := 0
	for i := 0; i <= len(header); i++ {
		if i == len(header) || header[i] == ',' {
			names = append(names, header[start:i])
			start = i + 1
		}
	}
	return names
}

// WriteTrajectory writes header as line one, then one CSV row per fix in
// traj, using header's column names to decide what each column emits.
// Columns not present in the field list below are silently emitted as
// empty fields, per spec §4.D: "columns not present in the output
// header are silently omitted" from the writer's perspective — the
// inverse, a recognized field omitted from header, simply never appears.
func WriteTrajectory(w io.Writer, header string, traj *Trajectory) error {
	if _, err := io.WriteString(w, header+"\n"); err != nil {
		return err
	}

	cw := NewColumnWriter(header)
	for _, p := range traj.Points() {
		row := make([]string, len(cw.names))
		for i, name := range cw.names {
			row[i] = fieldValue(name, p)
		}
		line := ""
		for i, f := range row {
			if i > 0 {
				line += ","
			}
			line += f
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func fieldValue(name string, p Point) string {
	switch name {
	case "Latitude":
		return formatFloat(p.Lat)
	case "Longitude":
		return formatFloat(p.Lon)
	case "Heading":
		return formatFloat(p.Heading)
	case "Speed":
		return formatFloat(p.Speed)
	case "Gentime":
		return strconv.FormatUint(p.Gentime, 10)
	case "TxDevice":
		return strconv.FormatUint(p.TxDevice, 10)
	case "TxRandom":
		return strconv.FormatUint(p.TxRandom, 10)
	case "MsgCount":
		return strconv.FormatInt(p.MsgCount, 10)
	case "DSecond":
		return formatFloat(p.DSecond)
	case "Elevation":
		return formatFloat(p.Elevation)
	case "Ax":
		return formatFloat(p.Ax)
	case "Ay":
		return formatFloat(p.Ay)
	case "Az":
		return formatFloat(p.Az)
	case "Yawrate":
		return formatFloat(p.Yawrate)
	case "PathCount":
		return strconv.FormatInt(p.PathCount, 10)
	case "RadiusOfCurve":
		return formatFloat(p.RadiusOfCurve)
	case "Confidence":
		return formatFloat(p.Confidence)
	default:
		return ""
	}
}
