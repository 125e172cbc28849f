package trajectory

import (
	"bufio"
	"io"
	"strings"

	"github.com/routesan/core/internal/rserr"
)

// SplitterOptions configures a Splitter. Delimiter defaults to "," and
// UIDFields defaults to []string{"RxDevice", "FileId"} when left empty.
type SplitterOptions struct {
	Delimiter string
	// Header, if non-empty, is used instead of reading the stream's
	// first line — for callers that already know it (e.g. from a prior
	// whole-file read).
	Header    string
	UIDFields []string
}

func (o SplitterOptions) delimiter() string {
	if o.Delimiter == "" {
		return ","
	}
	return o.Delimiter
}

func (o SplitterOptions) uidFields() []string {
	if len(o.UIDFields) == 0 {
		return []string{"RxDevice", "FileId"}
	}
	return o.UIDFields
}

// Splitter scans a multi-trip CSV stream and yields (uid, start, end)
// extents, one per contiguous run of records sharing a UID. It resumes
// from the byte offset the previous Next left off at.
type Splitter struct {
	br    *bufio.Reader
	delim string
	uidIdx []int
	pos   int64

	peekValid bool
	peekLine  string
	peekUID   string
	peekStart int64
	eof       bool
}

// NewSplitter constructs a Splitter over r. If opts.Header is empty, the
// stream's first line is read and consumed as the header. Resolution
// failure for any UID field name is fatal (*rserr.InvalidFieldsError).
func NewSplitter(r io.Reader, opts SplitterOptions) (*Splitter, error) {
	br := bufio.NewReader(r)
	delim := opts.delimiter()

	header := opts.Header
	var pos int64
	if header == "" {
		line, consumed, err := readCountedLine(br)
		if err != nil && err != io.EOF {
			return nil, &rserr.IOError{Reason: err.Error()}
		}
		header = line
		pos = consumed
	}

	fields := strings.Split(header, delim)
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[strings.TrimSpace(f)] = i
	}

	var uidIdx []int
	var missing []string
	for _, name := range opts.uidFields() {
		idx, ok := index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		uidIdx = append(uidIdx, idx)
	}
	if len(missing) > 0 {
		return nil, &rserr.InvalidFieldsError{Fields: missing}
	}

	return &Splitter{br: br, delim: delim, uidIdx: uidIdx, pos: pos}, nil
}

// ComposeUID is the static ad-hoc UID helper: given a header, a
// delimited line, and a comma-joined list of header field names, it
// resolves those fields' indices against header and returns the
// underscore-join of the corresponding tokens from line.
func ComposeUID(header, line, delim, fieldList string) (string, error) {
	if delim == "" {
		delim = ","
	}
	fields := strings.Split(header, delim)
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[strings.TrimSpace(f)] = i
	}

	var missing []string
	var idx []int
	for _, name := range strings.Split(fieldList, ",") {
		name = strings.TrimSpace(name)
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx = append(idx, i)
	}
	if len(missing) > 0 {
		return "", &rserr.InvalidFieldsError{Fields: missing}
	}

	tokens := strings.Split(line, delim)
	return composeUID(tokens, idx), nil
}

// composeUID underscore-joins the tokens at idx, in order. The separator
// is resolved to "_" (spec §9 open question): safe for the numeric
// identifiers uid_fields ordinarily names (RxDevice, FileId), unlike ","
// which collides with the file's own field delimiter.
func composeUID(tokens []string, idx []int) string {
	parts := make([]string, 0, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(tokens) {
			parts = append(parts, strings.TrimSpace(tokens[i]))
		} else {
			parts = append(parts, "")
		}
	}
	return strings.Join(parts, "_")
}

// Next returns the next (uid, start, end) extent, or nil when the stream
// is exhausted. Blank lines are silently skipped. Every other line counts
// as a record, malformed or not: a line too short to hold every UID column
// gets an empty part in its UID, and so starts a new extent whenever that
// UID differs from the current one. Next never fails on a record's content.
func (s *Splitter) Next() (*Window, error) {
	if !s.peekValid {
		if !s.fill() {
			return nil, nil
		}
	}

	w := &Window{UID: s.peekUID, Start: s.peekStart, End: s.peekStart}
	s.peekValid = false

	for {
		if !s.fill() {
			return w, nil
		}
		if s.peekUID != w.UID {
			return w, nil
		}
		w.End = s.peekStart
		s.peekValid = false
	}
}

// fill advances the lookahead to the next non-empty record, skipping
// blank lines and updating s.pos as it goes. Returns false once
// the stream is exhausted with nothing left to offer.
func (s *Splitter) fill() bool {
	if s.peekValid {
		return true
	}
	if s.eof {
		return false
	}

	for {
		start := s.pos
		line, consumed, err := readCountedLine(s.br)
		s.pos += consumed

		if strings.TrimSpace(line) != "" {
			tokens := strings.Split(line, s.delim)
			s.peekLine = line
			s.peekUID = composeUID(tokens, s.uidIdx)
			s.peekStart = start
			s.peekValid = true
			if err == io.EOF {
				s.eof = true
			}
			return true
		}

		if err == io.EOF {
			s.eof = true
			return false
		}
	}
}

// readCountedLine reads one line and also returns the raw byte count
// consumed (including the line's terminator), needed for byte-accurate
// window offsets.
func readCountedLine(br *bufio.Reader) (string, int64, error) {
	raw, err := br.ReadString('\n')
	consumed := int64(len(raw))
	line := strings.TrimRight(raw, "\r\n")
	return line, consumed, err
}
