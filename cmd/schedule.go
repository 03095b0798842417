package cmd

import (
	"fmt"
	"strings"

	"github.com/oguzkaplan/studyterm/internal/schedule"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the study schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := schedule.LoadDefault()
		if err != nil {
			return fmt.Errorf("load schedule: %w", err)
		}

		fmt.Printf("%s Programı\n\n", index.Month())
		for _, day := range index.Days() {
			fmt.Printf("%s (%s)\n", day.Date, day.DayName)
			printSlot("  Sabah ", day.Morning)
			printSlot("  Öğlen ", day.Afternoon)
			printSlot("  Akşam ", day.Evening)
			fmt.Println()
		}
		return nil
	},
}

func printSlot(label string, blocks []schedule.Block) {
	if len(blocks) == 0 {
		fmt.Printf("%s —\n", label)
		return
	}
	var parts []string
	for _, b := range blocks {
		text := b.Text
		if b.IsExam {
			text = "⚠ " + text
		}
		parts = append(parts, text)
	}
	fmt.Printf("%s %s\n", label, strings.Join(parts, " | "))
}
