// Package trajectory implements the trip CSV codec, trip splitter, and
// the append-only Trajectory sequence that the shape registry's implicit
// edges (internal/shapegraph) are ultimately derived from.
package trajectory

// Point is a single trajectory fix. Gentime, Lat, Lon, Heading, and Speed
// are always populated by the record factory; every other field is
// optional telemetry that is only set when its column was present in the
// source header, and otherwise left at its type's zero value.
type Point struct {
	Gentime uint64
	Lat     float64
	Lon     float64
	Heading float64
	Speed   float64

	TxDevice      uint64
	TxRandom      uint64
	MsgCount      int64
	DSecond       float64
	Elevation     float64
	Ax            float64
	Ay            float64
	Az            float64
	Yawrate       float64
	PathCount     int64
	RadiusOfCurve float64
	Confidence    float64
}
