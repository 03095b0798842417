package schedule

import (
	"regexp"
	"time"
)

var timeRangePattern = regexp.MustCompile(`(\d{2}):(\d{2})-(\d{2}):(\d{2})`)

// Index is a read-only view over the schedule table for one bounded
// calendar month. It resolves day-of-month numbers to day records and
// block text to absolute time windows.
type Index struct {
	month time.Month
	days  []DayRecord
	byDay map[int]*DayRecord
}

// NewIndex builds an Index over the given days, all interpreted as
// falling inside the given month.
func NewIndex(month time.Month, days []DayRecord) *Index {
	ix := &Index{
		month: month,
		days:  days,
		byDay: make(map[int]*DayRecord, len(days)),
	}
	for i := range ix.days {
		ix.byDay[ix.days[i].DayOfMonth()] = &ix.days[i]
	}
	return ix
}

// Month returns the calendar month the index was built for.
func (ix *Index) Month() time.Month {
	return ix.month
}

// Days returns the full ordered day list.
func (ix *Index) Days() []DayRecord {
	return ix.days
}

// ResolveDay returns the record for the given day of the month,
// or nil when the day is outside the table.
func (ix *Index) ResolveDay(dayOfMonth int) *DayRecord {
	return ix.byDay[dayOfMonth]
}

// BlockWindow resolves a block's absolute start and end instants by
// parsing an HH:MM-HH:MM span out of its text. The day comes from the
// day label, the month from the index, the year and location from ref.
// ok is false when the text has no parseable span.
//
// An end clock of 24:00 normalizes to midnight of the next day, which
// matches how the table expresses blocks running to end of day.
func (ix *Index) BlockWindow(dayLabel, blockText string, ref time.Time) (start, end time.Time, ok bool) {
	day := (&DayRecord{Date: dayLabel}).DayOfMonth()
	if day == 0 {
		return time.Time{}, time.Time{}, false
	}

	m := timeRangePattern.FindStringSubmatch(blockText)
	if m == nil {
		return time.Time{}, time.Time{}, false
	}

	startH, startM := atoi2(m[1]), atoi2(m[2])
	endH, endM := atoi2(m[3]), atoi2(m[4])

	year := ref.Year()
	loc := ref.Location()
	start = time.Date(year, ix.month, day, startH, startM, 0, 0, loc)
	end = time.Date(year, ix.month, day, endH, endM, 0, 0, loc)
	return start, end, true
}

// atoi2 converts a two-digit numeric capture. The regexp guarantees
// digits, so no error path.
func atoi2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}
