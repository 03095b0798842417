// Package progression folds the study log into a leveling tier.
package progression

import "github.com/oguzkaplan/studyterm/internal/store"

// Level is one named progression tier, reached by crossing a
// cumulative-minutes threshold.
type Level struct {
	Name       string
	MinMinutes int
}

// Levels is the fixed tier ladder, strictly increasing, first entry
// always satisfied.
var Levels = []Level{
	{Name: "Çaylak Öğrenci", MinMinutes: 0},
	{Name: "Azimli Çalışan", MinMinutes: 60},
	{Name: "Ders Kurdu", MinMinutes: 300},
	{Name: "Akademik Yıldız", MinMinutes: 600},
	{Name: "Kampüs Efsanesi", MinMinutes: 1200},
	{Name: "Bilge", MinMinutes: 3000},
}

// State is the derived progression for a given log.
type State struct {
	Current       Level
	Next          *Level // nil at the top tier
	PercentToNext float64
	TotalMinutes  int
}

// Compute derives the progression state from the full study log. Pure:
// no tier state is kept anywhere else, so it can be re-derived at any
// time. The current tier is the highest whose threshold the total
// meets; at the top tier the fraction pins to 100.
func Compute(entries []store.LogEntry) State {
	total := 0
	for _, e := range entries {
		total += e.Minutes
	}

	idx := 0
	for i, lvl := range Levels {
		if total >= lvl.MinMinutes {
			idx = i
		} else {
			break
		}
	}

	st := State{Current: Levels[idx], PercentToNext: 100, TotalMinutes: total}
	if idx+1 < len(Levels) {
		next := Levels[idx+1]
		st.Next = &next
		span := next.MinMinutes - st.Current.MinMinutes
		st.PercentToNext = float64(total-st.Current.MinMinutes) / float64(span) * 100
	}
	return st
}
