package trajectory

import (
	"strings"

	"github.com/routesan/core/internal/rserr"
)

// unset is the sentinel column index meaning "this optional field was
// not present in the header".
const unset = -1

// FieldNames names the five required logical fields by their header
// column names. DefaultFieldNames returns the documented defaults; the
// zero value names no columns.
type FieldNames struct {
	Latitude  string
	Longitude string
	Heading   string
	Speed     string
	Gentime   string
}

// DefaultFieldNames returns the trip file's default required-field
// header names.
func DefaultFieldNames() FieldNames {
	return FieldNames{
		Latitude:  "Latitude",
		Longitude: "Longitude",
		Heading:   "Heading",
		Speed:     "Speed",
		Gentime:   "Gentime",
	}
}

// optionalColumns lists every recognized optional telemetry column, by
// header name, in the order spec §6 enumerates them.
var optionalColumns = []string{
	"TxDevice", "TxRandom", "MsgCount", "DSecond", "Elevation",
	"Ax", "Ay", "Az", "Yawrate", "PathCount", "RadiusOfCurve", "Confidence",
}

// Columns resolves a trip file's header line into column indices for the
// five required fields and every optional telemetry column present.
type Columns struct {
	lat, lon, heading, speed, gentime int

	optional map[string]int
}

// NewColumns splits header on commas and records, for each of names'
// five required fields, the zero-based index where it appears, plus the
// index of every recognized optional column that is present. A required
// field absent from header is fatal (*rserr.FormatError naming the
// missing fields).
func NewColumns(header string, names FieldNames) (*Columns, error) {
	fields := strings.Split(header, ",")
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[strings.TrimSpace(f)] = i
	}

	c := &Columns{optional: make(map[string]int)}

	required := []struct {
		name string
		dst  *int
	}{
		{names.Latitude, &c.lat},
		{names.Longitude, &c.lon},
		{names.Heading, &c.heading},
		{names.Speed, &c.speed},
		{names.Gentime, &c.gentime},
	}

	var missing []string
	for _, r := range required {
		idx, ok := index[r.name]
		if !ok {
			missing = append(missing, r.name)
			continue
		}
		*r.dst = idx
	}
	if len(missing) > 0 {
		return nil, &rserr.FormatError{Line: 1, Field: strings.Join(missing, ","), Reason: "required field not found in header"}
	}

	for _, name := range optionalColumns {
		if idx, ok := index[name]; ok {
			c.optional[name] = idx
		}
	}

	return c, nil
}

// Has reports whether the named optional column was present in header.
func (c *Columns) Has(name string) bool {
	_, ok := c.optional[name]
	return ok
}

// index returns the column index for name, and unset if it was not
// present in the header that built c.
func (c *Columns) index(name string) int {
	if idx, ok := c.optional[name]; ok {
		return idx
	}
	return unset
}
