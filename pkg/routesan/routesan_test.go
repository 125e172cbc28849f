package routesan

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoadAndWriteShapesRoundTrip(t *testing.T) {
	input := "type,id,geography,attributes\n" +
		"circle,1,37.0:-122.0:50\n" +
		"edge,10,1;37.0;-122.0:2;37.1;-122.1,way_type=residential\n"

	reg, err := LoadShapes(strings.NewReader(input), DiscardDiagnostics)
	if err != nil {
		t.Fatalf("LoadShapes: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteShapes(&buf, reg); err != nil {
		t.Fatalf("WriteShapes: %v", err)
	}
	if !strings.Contains(buf.String(), "way_type=residential") {
		t.Errorf("round-tripped output missing way_type: %s", buf.String())
	}
}

func TestIngestTripUsesConfigFieldNames(t *testing.T) {
	cfg := NewDefaultConfig()
	input := "Gentime,Latitude,Longitude,Heading,Speed\n1000,42.0,-83.0,90.0,10.0\n"

	traj := NewTrajectory(0)
	if err := IngestTrip(strings.NewReader(input), cfg, traj); err != nil {
		t.Fatalf("IngestTrip: %v", err)
	}
	if traj.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", traj.Len())
	}
}
