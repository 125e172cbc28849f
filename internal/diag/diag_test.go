package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriterReportFormatsConstructAndLine(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{W: &buf}
	w.Report("circle", 7, "bad latitude")

	got := buf.String()
	if !strings.Contains(got, "circle") || !strings.Contains(got, "7") || !strings.Contains(got, "bad latitude") {
		t.Errorf("Report output = %q, want it to mention construct, line, and message", got)
	}
}

func TestDiscardDropsReports(t *testing.T) {
	// Must not panic; there is nothing else observable about Discard.
	Discard.Report("edge", 1, "ignored")
}
