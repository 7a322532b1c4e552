package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clarifycoder/internal/record"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs from the history database",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := record.OpenHistory(cfg.Records.HistoryPath)
		if err != nil {
			return err
		}
		defer h.Close()

		runs, err := h.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println(subtleStyle.Render("No runs recorded yet."))
			return nil
		}

		fmt.Println(headerStyle.Render("Recent runs"))
		for _, run := range runs {
			status := statusStyle(run.Status).Render(fmt.Sprintf("%-11s", run.Status))
			repaired := " "
			if run.Repaired {
				repaired = "R"
			}
			prompt := run.Prompt
			if len(prompt) > 60 {
				prompt = prompt[:57] + "..."
			}
			fmt.Printf("  %4d  %s %s  %s\n", run.ID, status, repaired, prompt)
		}

		counts, err := h.CountByStatus(cmd.Context())
		if err != nil {
			return err
		}
		var parts []string
		for _, status := range []string{"pass", "fail", "error", "unsupported", "invalid"} {
			if n := counts[status]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s=%d", status, n))
			}
		}
		if len(parts) > 0 {
			fmt.Println(subtleStyle.Render("Totals: " + strings.Join(parts, " ")))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to show")
}
