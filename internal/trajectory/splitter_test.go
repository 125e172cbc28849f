package trajectory

import (
	"bytes"
	"strings"
	"testing"
)

const twoTripFile = "RxDevice,FileId,Gentime,Latitude,Longitude,Heading,Speed\n" +
	"1,1,1000,42.3061,-83.6889,90.0,10.5\n" +
	"1,1,1001,42.3062,-83.6888,91.0,10.6\n" +
	"1,2,2000,42.4000,-83.7000,80.0,12.0\n" +
	"1,2,2001,42.4001,-83.7001,81.0,12.1\n" +
	"1,2,2002,42.4002,-83.7002,82.0,12.2\n"

func TestSplitterYieldsOneWindowPerTrip(t *testing.T) {
	s, err := NewSplitter(strings.NewReader(twoTripFile), SplitterOptions{})
	if err != nil {
		t.Fatalf("NewSplitter: %v", err)
	}

	var windows []Window
	for {
		w, err := s.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if w == nil {
			break
		}
		windows = append(windows, *w)
	}

	if len(windows) != 2 {
		t.Fatalf("len(windows) = %d, want 2", len(windows))
	}
	if windows[0].UID != "1_1" || windows[1].UID != "1_2" {
		t.Errorf("uids = %q, %q, want 1_1, 1_2", windows[0].UID, windows[1].UID)
	}
	if windows[0].End >= windows[1].Start {
		t.Errorf("windows should be non-overlapping and in order: %+v, %+v", windows[0], windows[1])
	}
}

// TestWindowedIngestMatchesWholeFileParse verifies property 4: parsing
// each splitter window yields the same per-trip Point sequence as a
// direct full-file parse filtered by UID (S5).
func TestWindowedIngestMatchesWholeFileParse(t *testing.T) {
	names := DefaultFieldNames()

	header := "RxDevice,FileId,Gentime,Latitude,Longitude,Heading,Speed"
	cols, err := NewColumns(header, names)
	if err != nil {
		t.Fatalf("NewColumns: %v", err)
	}

	s, err := NewSplitter(strings.NewReader(twoTripFile), SplitterOptions{})
	if err != nil {
		t.Fatalf("NewSplitter: %v", err)
	}

	var windows []Window
	for {
		w, err := s.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if w == nil {
			break
		}
		windows = append(windows, *w)
	}
	if len(windows) != 2 {
		t.Fatalf("len(windows) = %d, want 2", len(windows))
	}

	// The trips in twoTripFile are contiguous and in file order, so the
	// whole-file parse filtered by UID is a consecutive slice of it.
	whole := New(0)
	if err := IngestAll(strings.NewReader(twoTripFile), names, whole); err != nil {
		t.Fatalf("IngestAll: %v", err)
	}

	wantLens := map[string]int{"1_1": 2, "1_2": 3}
	offset := 0
	for _, w := range windows {
		rs := bytes.NewReader([]byte(twoTripFile))
		traj := New(0)
		if err := IngestWindow(rs, w.Start, w.End, cols, traj); err != nil {
			t.Fatalf("IngestWindow(%q): %v", w.UID, err)
		}
		if traj.Len() != wantLens[w.UID] {
			t.Fatalf("trip %s: Len() = %d, want %d", w.UID, traj.Len(), wantLens[w.UID])
		}
		for i := 0; i < traj.Len(); i++ {
			if traj.At(i) != whole.At(offset+i) {
				t.Errorf("trip %s point %d = %+v, want %+v", w.UID, i, traj.At(i), whole.At(offset+i))
			}
		}
		offset += traj.Len()
	}
}

func TestComposeUID(t *testing.T) {
	header := "RxDevice,FileId,Gentime"
	line := "7,9,1000"
	uid, err := ComposeUID(header, line, ",", "RxDevice,FileId")
	if err != nil {
		t.Fatalf("ComposeUID: %v", err)
	}
	if uid != "7_9" {
		t.Errorf("ComposeUID = %q, want 7_9", uid)
	}
}

func TestSplitterInvalidUIDFieldFails(t *testing.T) {
	_, err := NewSplitter(strings.NewReader(twoTripFile), SplitterOptions{UIDFields: []string{"NoSuchField"}})
	if err == nil {
		t.Fatal("expected an error for an unresolvable UID field")
	}
}

func TestSplitterSkipsBlankLinesWithinARun(t *testing.T) {
	input := "RxDevice,FileId,Gentime,Latitude,Longitude,Heading,Speed\n" +
		"1,1,1000,42.3061,-83.6889,90.0,10.5\n" +
		"\n" +
		"1,1,1001,42.3062,-83.6888,91.0,10.6\n"

	s, err := NewSplitter(strings.NewReader(input), SplitterOptions{})
	if err != nil {
		t.Fatalf("NewSplitter: %v", err)
	}
	w, err := s.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if w == nil || w.UID != "1_1" {
		t.Fatalf("expected a single window for uid 1_1, got %+v", w)
	}

	w2, err := s.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if w2 != nil {
		t.Fatalf("expected exactly one window, got a second: %+v", w2)
	}
}
