package schedule

import (
	"strconv"
	"strings"
)

// Category identifies the course (or status marker) a block belongs to.
type Category string

const (
	Comp100 Category = "COMP 100"
	Comp106 Category = "COMP 106"
	Phys101 Category = "PHYS 101"
	Math106 Category = "MATH 106"
	Exam    Category = "SINAV"
	Free    Category = "Tatil / Serbest"
	Busy    Category = "DOLU"
	Other   Category = "OTHER"
)

// Courses lists the categories a study session can be logged against.
var Courses = []Category{Comp100, Comp106, Phys101, Math106}

// Block is a single entry in a day's schedule. It is immutable once the
// table is built. A block whose text carries no HH:MM-HH:MM span is a
// label-only entry: it never becomes active and never triggers reminders.
type Block struct {
	ID       string
	Text     string
	Category Category
	IsExam   bool
}

// Slot names the three sections of a day.
type Slot string

const (
	SlotMorning   Slot = "morning"
	SlotAfternoon Slot = "afternoon"
	SlotEvening   Slot = "evening"
)

// DayRecord is one calendar day of the fixed schedule.
type DayRecord struct {
	Date      string // day-of-month label, e.g. "05 Aralık"
	DayName   string // weekday name, e.g. "Cuma"
	Morning   []Block
	Afternoon []Block
	Evening   []Block
}

// Blocks returns the day's blocks in resolution order:
// morning, then afternoon, then evening, each in declared order.
func (d *DayRecord) Blocks() []Block {
	out := make([]Block, 0, len(d.Morning)+len(d.Afternoon)+len(d.Evening))
	out = append(out, d.Morning...)
	out = append(out, d.Afternoon...)
	out = append(out, d.Evening...)
	return out
}

// DayOfMonth parses the numeric day out of the date label.
// Returns 0 when the label is malformed.
func (d *DayRecord) DayOfMonth() int {
	fields := strings.Fields(d.Date)
	if len(fields) == 0 {
		return 0
	}
	n, _ := strconv.Atoi(fields[0])
	return n
}

// markExam reports whether block text marks an exam regardless of
// the declared category.
func markExam(text string) bool {
	return strings.Contains(text, "SINAV") || strings.Contains(text, "Sınav")
}
