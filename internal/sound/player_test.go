package sound

import "testing"

func TestByID(t *testing.T) {
	for _, want := range Catalog {
		got, ok := ByID(want.ID)
		if !ok {
			t.Errorf("ByID(%q) not found", want.ID)
			continue
		}
		if got.Name != want.Name {
			t.Errorf("ByID(%q).Name = %q, want %q", want.ID, got.Name, want.Name)
		}
	}

	if _, ok := ByID("whale-song"); ok {
		t.Error("unknown ID should not resolve")
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.6, 0.6},
		{1, 1},
		{1.7, 1},
	}
	for _, tt := range tests {
		if got := ClampVolume(tt.in); got != tt.want {
			t.Errorf("ClampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
