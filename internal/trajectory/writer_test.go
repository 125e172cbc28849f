package trajectory

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteTrajectoryRoundTrip(t *testing.T) {
	input := "Gentime,Latitude,Longitude,Heading,Speed\n" +
		"1000,42.3061,-83.6889,90.0,10.5\n" +
		"1001,42.3062,-83.6888,91.0,10.6\n"

	traj := New(0)
	if err := IngestAll(strings.NewReader(input), DefaultFieldNames(), traj); err != nil {
		t.Fatalf("IngestAll: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteTrajectory(&buf, "Gentime,Latitude,Longitude,Heading,Speed", traj); err != nil {
		t.Fatalf("WriteTrajectory: %v", err)
	}

	traj2 := New(0)
	if err := IngestAll(&buf, DefaultFieldNames(), traj2); err != nil {
		t.Fatalf("IngestAll (round trip): %v", err)
	}

	if traj2.Len() != traj.Len() {
		t.Fatalf("Len() after round trip = %d, want %d", traj2.Len(), traj.Len())
	}
	for i := 0; i < traj.Len(); i++ {
		if traj.At(i) != traj2.At(i) {
			t.Errorf("point %d mismatch: got %+v, want %+v", i, traj2.At(i), traj.At(i))
		}
	}
}

func TestWriteTrajectoryOmitsColumnsNotInOutputHeader(t *testing.T) {
	traj := New(1)
	traj.Append(Point{Gentime: 5, Lat: 1, Lon: 2, Heading: 3, Speed: 4, Elevation: 99})

	var buf bytes.Buffer
	if err := WriteTrajectory(&buf, "Gentime,Latitude,Longitude", traj); err != nil {
		t.Fatalf("WriteTrajectory: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if strings.Count(lines[1], ",") != 2 {
		t.Errorf("row = %q, want exactly 3 columns (Elevation must be omitted)", lines[1])
	}
}
