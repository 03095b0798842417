package schedule

import (
	"testing"
	"time"
)

func TestLoadDefault(t *testing.T) {
	ix, err := LoadDefault()
	if err != nil {
		t.Fatalf("load default table: %v", err)
	}
	if ix.Month() != time.December {
		t.Errorf("month = %v, want December", ix.Month())
	}
	if got := len(ix.Days()); got != 14 {
		t.Errorf("days = %d, want 14", got)
	}
	if ix.ResolveDay(3) == nil {
		t.Error("expected the table to start on the 3rd")
	}
	if ix.ResolveDay(16) == nil {
		t.Error("expected the table to end on the 16th")
	}
}

func TestLoadMarksExams(t *testing.T) {
	const table = `
month: 12
days:
  - date: "12 Aralık"
    day_name: "Cuma"
    morning:
      - { text: "COMP 100 (09:00-10:00)", category: "COMP 100", is_exam: true }
      - { text: "MATH 106 SINAV (11:00-12:00)", category: "MATH 106" }
      - { text: "Fizik Sınavı Tekrarı", category: "PHYS 101" }
      - { text: "Final Provası", category: "SINAV" }
      - { text: "COMP 106 (13:00-14:00)", category: "COMP 106" }
`
	ix, err := Load([]byte(table))
	if err != nil {
		t.Fatalf("load table: %v", err)
	}

	blocks := ix.ResolveDay(12).Blocks()
	want := []bool{
		true,  // explicit is_exam flag
		true,  // "SINAV" in text
		true,  // "Sınav" in text
		true,  // SINAV category
		false, // plain course block
	}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(blocks), len(want))
	}
	for i, w := range want {
		if blocks[i].IsExam != w {
			t.Errorf("blocks[%d] (%q) IsExam = %v, want %v", i, blocks[i].Text, blocks[i].IsExam, w)
		}
	}
}

func TestLoadDeterministicIDs(t *testing.T) {
	first, err := LoadDefault()
	if err != nil {
		t.Fatalf("load default table: %v", err)
	}
	second, err := LoadDefault()
	if err != nil {
		t.Fatalf("load default table: %v", err)
	}

	a := first.Days()
	b := second.Days()
	for i := range a {
		ab, bb := a[i].Blocks(), b[i].Blocks()
		for j := range ab {
			if ab[j].ID != bb[j].ID {
				t.Fatalf("block ID changed between loads: %q vs %q", ab[j].ID, bb[j].ID)
			}
		}
	}
}

func TestLoadRejectsBadTables(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad month", "month: 13\ndays:\n  - date: \"03 Aralık\"\n"},
		{"no days", "month: 12\ndays: []\n"},
		{"bad date label", "month: 12\ndays:\n  - date: \"Aralık\"\n"},
		{"not yaml", ":\n:::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.yaml)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
