package trajectory

// Window is a byte extent within a trip file, identifying one trip's
// records: [Start, End]. Start is the byte offset of the trip's first
// record; End is the byte offset of the trip's last record.
//
// Inclusivity (spec §9 open question, resolved): a record belongs to the
// window iff its own *starting* byte offset is <= End — not whether the
// whole record, including its trailing newline, fits before End. A
// window's End therefore always equals some record's start offset, never
// a position strictly inside or after that record.
type Window struct {
	UID   string
	Start int64
	End   int64
}
