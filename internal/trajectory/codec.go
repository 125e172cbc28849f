package trajectory

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/routesan/core/internal/rserr"
)

// recordFromLine splits line on commas and populates a Point from the
// columns resolver's mapping. Missing or malformed tokens for the five
// required fields fail with *rserr.ParseError; missing tokens for
// optional fields leave the corresponding field at its zero value.
func recordFromLine(line string, cols *Columns, lineNo int) (Point, error) {
	tokens := strings.Split(line, ",")

	var p Point

	gentime, err := requiredUint(tokens, cols.gentime, "gentime", lineNo)
	if err != nil {
		return Point{}, err
	}
	p.Gentime = gentime

	if p.Lat, err = requiredFloat(tokens, cols.lat, "latitude", lineNo); err != nil {
		return Point{}, err
	}
	if p.Lon, err = requiredFloat(tokens, cols.lon, "longitude", lineNo); err != nil {
		return Point{}, err
	}
	if p.Heading, err = requiredFloat(tokens, cols.heading, "heading", lineNo); err != nil {
		return Point{}, err
	}
	if p.Speed, err = requiredFloat(tokens, cols.speed, "speed", lineNo); err != nil {
		return Point{}, err
	}

	p.TxDevice = optionalUint(tokens, cols.index("TxDevice"))
	p.TxRandom = optionalUint(tokens, cols.index("TxRandom"))
	p.MsgCount = optionalInt(tokens, cols.index("MsgCount"))
	p.DSecond = optionalFloat(tokens, cols.index("DSecond"))
	p.Elevation = optionalFloat(tokens, cols.index("Elevation"))
	p.Ax = optionalFloat(tokens, cols.index("Ax"))
	p.Ay = optionalFloat(tokens, cols.index("Ay"))
	p.Az = optionalFloat(tokens, cols.index("Az"))
	p.Yawrate = optionalFloat(tokens, cols.index("Yawrate"))
	p.PathCount = optionalInt(tokens, cols.index("PathCount"))
	p.RadiusOfCurve = optionalFloat(tokens, cols.index("RadiusOfCurve"))
	p.Confidence = optionalFloat(tokens, cols.index("Confidence"))

	return p, nil
}

func requiredFloat(tokens []string, idx int, field string, lineNo int) (float64, error) {
	if idx < 0 || idx >= len(tokens) {
		return 0, &rserr.ParseError{Line: lineNo, Field: field}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(tokens[idx]), 64)
	if err != nil {
		return 0, &rserr.ParseError{Line: lineNo, Field: field, Err: err}
	}
	return v, nil
}

func requiredUint(tokens []string, idx int, field string, lineNo int) (uint64, error) {
	if idx < 0 || idx >= len(tokens) {
		return 0, &rserr.ParseError{Line: lineNo, Field: field}
	}
	v, err := strconv.ParseUint(strings.TrimSpace(tokens[idx]), 10, 64)
	if err != nil {
		return 0, &rserr.ParseError{Line: lineNo, Field: field, Err: err}
	}
	return v, nil
}

func optionalFloat(tokens []string, idx int) float64 {
	if idx == unset || idx < 0 || idx >= len(tokens) {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(tokens[idx]), 64)
	if err != nil {
		return 0
	}
	return v
}

func optionalUint(tokens []string, idx int) uint64 {
	if idx == unset || idx < 0 || idx >= len(tokens) {
		return 0
	}
	v, err := strconv.ParseUint(strings.TrimSpace(tokens[idx]), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func optionalInt(tokens []string, idx int) int64 {
	if idx == unset || idx < 0 || idx >= len(tokens) {
		return 0
	}
	v, err := strconv.ParseInt(strings.TrimSpace(tokens[idx]), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// IngestAll reads header, then every remaining line in r, appending each
// parsed record to traj. Blank lines are skipped. A malformed line
// aborts the whole ingest with *rserr.ParseError.
func IngestAll(r io.Reader, names FieldNames, traj *Trajectory) error {
	br := bufio.NewReader(r)
	header, err := readLine(br)
	if err != nil && err != io.EOF {
		return &rserr.IOError{Reason: err.Error()}
	}
	if header == "" {
		return &rserr.IOError{Reason: "trip file missing header"}
	}

	cols, err := NewColumns(header, names)
	if err != nil {
		return err
	}

	lineNo := 1
	for {
		line, err := readLine(br)
		if err == io.EOF && line == "" {
			break
		}
		lineNo++
		if strings.TrimSpace(line) != "" {
			p, perr := recordFromLine(line, cols, lineNo)
			if perr != nil {
				return perr
			}
			traj.Append(p)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return &rserr.IOError{Reason: err.Error()}
		}
	}

	return nil
}

// readLine reads up to and including the next '\n', returning the line
// with its terminator stripped. On EOF with no trailing newline it
// returns the final partial line alongside io.EOF.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	return line, err
}

// IngestWindow seeks rs to start, then reads and appends records while
// the record's *starting* byte offset is <= end (see Window's doc
// comment for why this is the resolved inclusivity rule), then stops.
// header and cols must already be known to the caller (typically read
// once by the splitter) since windows never include the header line.
func IngestWindow(rs io.ReadSeeker, start, end int64, cols *Columns, traj *Trajectory) error {
	if _, err := rs.Seek(start, io.SeekStart); err != nil {
		return &rserr.IOError{Reason: err.Error()}
	}

	br := bufio.NewReader(rs)
	pos := start
	lineNo := 0

	for pos <= end {
		line, err := readLine(br)
		lineNo++
		consumed := int64(len(line)) + 1 // approximate: +1 for the newline
		if strings.TrimSpace(line) != "" {
			p, perr := recordFromLine(line, cols, lineNo)
			if perr != nil {
				return perr
			}
			traj.Append(p)
		}
		pos += consumed
		if err == io.EOF {
			break
		}
		if err != nil {
			return &rserr.IOError{Reason: err.Error()}
		}
	}

	return nil
}
