package cmd

import (
	"fmt"

	"github.com/oguzkaplan/studyterm/internal/progression"
	"github.com/oguzkaplan/studyterm/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		entries, err := st.Logs().All(cmd.Context())
		if err != nil {
			return fmt.Errorf("load logs: %w", err)
		}
		level := progression.Compute(entries)

		fmt.Printf("Seviye:   %s\n", level.Current.Name)
		fmt.Printf("Toplam:   %d dakika (%d oturum)\n", level.TotalMinutes, len(entries))
		if level.Next != nil {
			fmt.Printf("Sıradaki: %s — %%%.0f tamamlandı (%d dk gerekli)\n",
				level.Next.Name, level.PercentToNext, level.Next.MinMinutes)
		} else {
			fmt.Println("Sıradaki: en üst seviyedesin")
		}
		return nil
	},
}
