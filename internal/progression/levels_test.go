package progression

import (
	"math"
	"testing"

	"github.com/oguzkaplan/studyterm/internal/store"
)

func entriesOf(minutes ...int) []store.LogEntry {
	out := make([]store.LogEntry, len(minutes))
	for i, m := range minutes {
		out[i] = store.LogEntry{Minutes: m}
	}
	return out
}

func TestComputeTiers(t *testing.T) {
	tests := []struct {
		name     string
		minutes  []int
		wantTier string
		wantNext string
	}{
		{"empty log", nil, "Çaylak Öğrenci", "Azimli Çalışan"},
		{"below first threshold", []int{25, 34}, "Çaylak Öğrenci", "Azimli Çalışan"},
		{"exact threshold", []int{60}, "Azimli Çalışan", "Ders Kurdu"},
		{"mid ladder", []int{200, 200, 200}, "Akademik Yıldız", "Kampüs Efsanesi"},
		{"top tier", []int{3000}, "Bilge", ""},
		{"beyond top tier", []int{2000, 2000}, "Bilge", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Compute(entriesOf(tt.minutes...))
			if st.Current.Name != tt.wantTier {
				t.Errorf("tier = %q, want %q", st.Current.Name, tt.wantTier)
			}
			if tt.wantNext == "" {
				if st.Next != nil {
					t.Errorf("next = %q, want none", st.Next.Name)
				}
				if st.PercentToNext != 100 {
					t.Errorf("top tier percent = %.1f, want 100", st.PercentToNext)
				}
				return
			}
			if st.Next == nil || st.Next.Name != tt.wantNext {
				t.Errorf("next = %v, want %q", st.Next, tt.wantNext)
			}
		})
	}
}

func TestComputePercentToNext(t *testing.T) {
	// 180 of the 60..300 span: (180-60)/240 = 50%.
	st := Compute(entriesOf(180))
	if math.Abs(st.PercentToNext-50) > 0.01 {
		t.Errorf("percent = %.2f, want 50", st.PercentToNext)
	}
	if st.TotalMinutes != 180 {
		t.Errorf("total = %d, want 180", st.TotalMinutes)
	}
}

func TestLaddersStrictlyIncreasing(t *testing.T) {
	for i := 1; i < len(Levels); i++ {
		if Levels[i].MinMinutes <= Levels[i-1].MinMinutes {
			t.Fatalf("ladder not strictly increasing at %q", Levels[i].Name)
		}
	}
	if Levels[0].MinMinutes != 0 {
		t.Error("first tier must be satisfied from zero")
	}
}
