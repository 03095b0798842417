package schedule

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultTable []byte

type rawBlock struct {
	Text     string `yaml:"text"`
	Category string `yaml:"category"`
	IsExam   bool   `yaml:"is_exam"`
}

type rawDay struct {
	Date      string     `yaml:"date"`
	DayName   string     `yaml:"day_name"`
	Morning   []rawBlock `yaml:"morning"`
	Afternoon []rawBlock `yaml:"afternoon"`
	Evening   []rawBlock `yaml:"evening"`
}

type rawTable struct {
	Month int      `yaml:"month"`
	Days  []rawDay `yaml:"days"`
}

// Load parses a schedule table from YAML and builds the Index over it.
// Block IDs are deterministic (day, slot, position) so that reminder
// dedup keys and course session keys survive restarts.
func Load(data []byte) (*Index, error) {
	var raw rawTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse schedule table: %w", err)
	}
	if raw.Month < 1 || raw.Month > 12 {
		return nil, fmt.Errorf("schedule table: invalid month %d", raw.Month)
	}
	if len(raw.Days) == 0 {
		return nil, fmt.Errorf("schedule table: no days")
	}

	days := make([]DayRecord, 0, len(raw.Days))
	for _, rd := range raw.Days {
		day := DayRecord{Date: rd.Date, DayName: rd.DayName}
		day.Morning = buildBlocks(rd.Date, SlotMorning, rd.Morning)
		day.Afternoon = buildBlocks(rd.Date, SlotAfternoon, rd.Afternoon)
		day.Evening = buildBlocks(rd.Date, SlotEvening, rd.Evening)
		if day.DayOfMonth() == 0 {
			return nil, fmt.Errorf("schedule table: bad date label %q", rd.Date)
		}
		days = append(days, day)
	}

	return NewIndex(time.Month(raw.Month), days), nil
}

// LoadDefault builds the Index from the embedded schedule table.
func LoadDefault() (*Index, error) {
	return Load(defaultTable)
}

func buildBlocks(dateLabel string, slot Slot, raws []rawBlock) []Block {
	blocks := make([]Block, 0, len(raws))
	for i, rb := range raws {
		cat := Category(rb.Category)
		if cat == "" {
			cat = Other
		}
		blocks = append(blocks, Block{
			ID:       fmt.Sprintf("%s-%s-%d", dateLabel, slot, i),
			Text:     rb.Text,
			Category: cat,
			IsExam:   rb.IsExam || cat == Exam || markExam(rb.Text),
		})
	}
	return blocks
}
