package schedule

import (
	"testing"
	"time"
)

func TestBlockWindow(t *testing.T) {
	ix := newTestIndex()
	ref := at(5, 0, 0)

	tests := []struct {
		name      string
		dayLabel  string
		blockText string
		wantStart time.Time
		wantEnd   time.Time
		wantOK    bool
	}{
		{
			"plain span",
			"05 Aralık", "COMP 100 (08:00-09:40)",
			at(5, 8, 0), at(5, 9, 40), true,
		},
		{
			"span embedded mid-text",
			"05 Aralık", "COMP 106 Tekrar (18:40-19:40)",
			at(5, 18, 40), at(5, 19, 40), true,
		},
		{
			"end of day normalizes to next midnight",
			"05 Aralık", "COMP 100 (20:00-24:00)",
			at(5, 20, 0), at(6, 0, 0), true,
		},
		{"no span", "05 Aralık", "Tatil / Serbest", time.Time{}, time.Time{}, false},
		{"bad day label", "Aralık", "COMP 100 (08:00-09:40)", time.Time{}, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := ix.BlockWindow(tt.dayLabel, tt.blockText, ref)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestBlockWindowUsesRefYearAndLocation(t *testing.T) {
	ix := newTestIndex()
	loc := time.FixedZone("TRT", 3*3600)
	ref := time.Date(2026, time.December, 1, 0, 0, 0, 0, loc)

	start, _, ok := ix.BlockWindow("05 Aralık", "COMP 100 (08:00-09:40)", ref)
	if !ok {
		t.Fatal("expected a window")
	}
	if start.Year() != 2026 {
		t.Errorf("year = %d, want ref year 2026", start.Year())
	}
	if start.Location() != loc {
		t.Errorf("location = %v, want ref location", start.Location())
	}
}

func TestResolveDay(t *testing.T) {
	ix := newTestIndex()

	if day := ix.ResolveDay(5); day == nil || day.DayName != "Cuma" {
		t.Errorf("ResolveDay(5) = %+v, want Cuma", day)
	}
	if day := ix.ResolveDay(25); day != nil {
		t.Errorf("ResolveDay(25) = %+v, want nil", day)
	}
}

func TestDayBlocksOrder(t *testing.T) {
	ix := newTestIndex()
	blocks := ix.ResolveDay(5).Blocks()

	want := []string{
		"05 Aralık-morning-0",
		"05 Aralık-morning-1",
		"05 Aralık-afternoon-0",
		"05 Aralık-evening-0",
	}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(blocks), len(want))
	}
	for i, id := range want {
		if blocks[i].ID != id {
			t.Errorf("blocks[%d].ID = %q, want %q", i, blocks[i].ID, id)
		}
	}
}
