package theme

import (
	"fmt"
	"testing"

	"github.com/oguzkaplan/studyterm/internal/schedule"
)

func TestCourseColorCoversEveryCategory(t *testing.T) {
	categories := []schedule.Category{
		schedule.Comp100,
		schedule.Comp106,
		schedule.Phys101,
		schedule.Math106,
		schedule.Exam,
		schedule.Free,
		schedule.Busy,
		schedule.Other,
	}

	for _, c := range categories {
		if CourseColor(c) == nil {
			t.Errorf("CourseColor(%q) = nil", c)
		}
	}
}

func TestCourseColorDistinguishesCourses(t *testing.T) {
	seen := make(map[string]schedule.Category)
	for _, c := range schedule.Courses {
		r, g, b, a := CourseColor(c).RGBA()
		key := fmt.Sprintf("%d-%d-%d-%d", r, g, b, a)
		if prev, ok := seen[key]; ok {
			t.Errorf("%q and %q share a color", prev, c)
		}
		seen[key] = c
	}
}
