package shapegraph

import (
	"strings"
	"testing"

	"github.com/routesan/core/internal/diag"
)

func TestParseShapesCircleEdgeGrid(t *testing.T) {
	input := strings.Join([]string{
		"type,id,geography,attributes",
		"circle,1,37.0:-122.0:50",
		"edge,10,1;37.0;-122.0:2;37.1;-122.1,way_type=residential:way_id=555",
		"grid,3_4,37.0:-122.0:37.1:-121.9",
	}, "\n") + "\n"

	reg, err := ParseShapes(strings.NewReader(input), ParseOptions{Diagnostics: diag.Discard})
	if err != nil {
		t.Fatalf("ParseShapes: %v", err)
	}

	if got := len(reg.Circles()); got != 1 {
		t.Fatalf("len(Circles()) = %d, want 1", got)
	}
	if reg.Circles()[0].UID != 1 {
		t.Errorf("circle uid = %d, want 1", reg.Circles()[0].UID)
	}

	edges := reg.Edges()
	if len(edges) != 1 {
		t.Fatalf("len(Edges()) = %d, want 1", len(edges))
	}
	if edges[0].Attrs.Spill["way_id"] != "555" {
		t.Errorf("spill way_id = %q, want 555", edges[0].Attrs.Spill["way_id"])
	}

	if got := len(reg.Vertices()); got != 2 {
		t.Fatalf("len(Vertices()) = %d, want 2", got)
	}

	v1, ok := reg.VertexByUID(1)
	if !ok || v1.IncidentEdgeCount() != 1 {
		t.Errorf("vertex 1 should have exactly one incident edge")
	}

	if got := len(reg.Grids()); got != 1 {
		t.Fatalf("len(Grids()) = %d, want 1", got)
	}
	if reg.Grids()[0].Row != 3 || reg.Grids()[0].Col != 4 {
		t.Errorf("grid row/col = %d/%d, want 3/4", reg.Grids()[0].Row, reg.Grids()[0].Col)
	}
}

func TestParseShapesGarbledLineContinues(t *testing.T) {
	input := strings.Join([]string{
		"type,id,geography,attributes",
		"edge,10,1;37.0;-122.0:2;37.1;-122.1,",
		"circle,2,not-a-number:-122.0:50",
		"circle,3,37.0:-122.0:50",
	}, "\n") + "\n"

	var reports []string
	sink := sinkFunc(func(construct string, line int, msg string) {
		reports = append(reports, msg)
	})

	reg, err := ParseShapes(strings.NewReader(input), ParseOptions{Diagnostics: sink})
	if err != nil {
		t.Fatalf("ParseShapes: %v", err)
	}

	if len(reports) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(reports), reports)
	}
	if len(reg.Circles()) != 1 {
		t.Fatalf("len(Circles()) = %d, want 1 (the garbled line should be skipped, not abort)", len(reg.Circles()))
	}
	if len(reg.Edges()) != 1 {
		t.Fatalf("len(Edges()) = %d, want 1", len(reg.Edges()))
	}
}

func TestParseShapesSameUIDEdgeRejected(t *testing.T) {
	input := "type,id,geography,attributes\n" +
		"edge,10,1;37.0;-122.0:1;37.1;-122.1,\n"

	var reports int
	sink := sinkFunc(func(construct string, line int, msg string) { reports++ })

	reg, err := ParseShapes(strings.NewReader(input), ParseOptions{Diagnostics: sink})
	if err != nil {
		t.Fatalf("ParseShapes: %v", err)
	}
	if reports != 1 {
		t.Fatalf("expected 1 diagnostic for same-uid edge, got %d", reports)
	}
	if len(reg.Edges()) != 0 {
		t.Fatalf("same-uid edge should not be registered")
	}
}

func TestParseShapesImplicitVertexNamespaceIsSeparate(t *testing.T) {
	input := strings.Join([]string{
		"type,id,geography,attributes",
		"edge,10,7;37.0;-122.0:8;37.1;-122.1,",
		"implicit_edge,11,7;40.0;-120.0:9;40.1;-120.1",
	}, "\n") + "\n"

	reg, err := ParseShapes(strings.NewReader(input), ParseOptions{Diagnostics: diag.Discard})
	if err != nil {
		t.Fatalf("ParseShapes: %v", err)
	}

	explicitV7, ok := reg.VertexByUID(7)
	if !ok {
		t.Fatalf("expected explicit vertex 7 to exist")
	}
	if explicitV7.Point.Lat != 37.0 {
		t.Fatalf("explicit vertex 7 lat = %v, want 37.0 (should not be clobbered by implicit namespace)", explicitV7.Point.Lat)
	}

	implicitVertices := reg.ImplicitVertices()
	if len(implicitVertices) != 2 {
		t.Fatalf("len(ImplicitVertices()) = %d, want 2", len(implicitVertices))
	}
	for _, v := range implicitVertices {
		if v.UID == 7 && v.Point.Lat != 40.0 {
			t.Fatalf("implicit vertex 7 lat = %v, want 40.0 (separate namespace from explicit)", v.Point.Lat)
		}
	}
}

func TestParseShapesVertexCoordinateMismatchWarns(t *testing.T) {
	input := strings.Join([]string{
		"type,id,geography,attributes",
		"edge,10,1;37.0;-122.0:2;37.1;-122.1,",
		"edge,11,1;38.0;-123.0:3;37.2;-122.2,",
	}, "\n") + "\n"

	var reports []string
	sink := sinkFunc(func(construct string, line int, msg string) {
		reports = append(reports, msg)
	})

	reg, err := ParseShapes(strings.NewReader(input), ParseOptions{Diagnostics: sink})
	if err != nil {
		t.Fatalf("ParseShapes: %v", err)
	}

	if len(reports) != 1 || !strings.Contains(reports[0], "different coordinates") {
		t.Fatalf("expected one coordinate-mismatch warning, got %v", reports)
	}

	v1, ok := reg.VertexByUID(1)
	if !ok {
		t.Fatalf("expected vertex 1 to exist")
	}
	if v1.Point.Lat != 37.0 {
		t.Errorf("vertex 1 lat = %v, want 37.0 (first occurrence wins, not overwritten)", v1.Point.Lat)
	}
}

func TestParseShapesUnknownTypeSkipped(t *testing.T) {
	input := "type,id,geography,attributes\n" +
		"waypoint,1,37.0;-122.0\n" +
		"circle,2,37.0:-122.0:50\n"

	reg, err := ParseShapes(strings.NewReader(input), ParseOptions{Diagnostics: diag.Discard})
	if err != nil {
		t.Fatalf("ParseShapes: %v", err)
	}
	if len(reg.Circles()) != 1 {
		t.Fatalf("len(Circles()) = %d, want 1", len(reg.Circles()))
	}
}

func TestParseShapesMissingHeaderIsFatal(t *testing.T) {
	_, err := ParseShapes(strings.NewReader(""), ParseOptions{Diagnostics: diag.Discard})
	if err == nil {
		t.Fatalf("expected a fatal error for an empty/headerless stream")
	}
}

type sinkFunc func(construct string, line int, msg string)

func (f sinkFunc) Report(construct string, line int, msg string) { f(construct, line, msg) }
