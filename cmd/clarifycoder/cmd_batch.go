package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"clarifycoder/internal/pipeline"
	"clarifycoder/internal/promptset"
)

var (
	batchCount   int
	batchSeed    int64
	batchWorkers int
	batchCorpus  string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a sampled batch of prompts and report metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, store, err := buildPipeline(false)
		if err != nil {
			return err
		}

		corpus := promptset.Default()
		if batchCorpus != "" {
			corpus, err = promptset.LoadFile(batchCorpus)
			if err != nil {
				return err
			}
		}
		prompts := promptset.Sample(corpus, batchCount, batchSeed)

		b := pipeline.NewBatch(p,
			pipeline.WithWorkers(batchWorkers),
			pipeline.WithBatchRecorder(store),
			pipeline.WithBatchLogger(logger),
			pipeline.WithSeed(batchSeed))

		res, err := b.Run(cmd.Context(), prompts)
		if err != nil {
			return err
		}

		for _, out := range res.Outcomes {
			if out.State == pipeline.StateDone {
				appendHistory(out)
			}
		}

		printMetrics(res.Metrics)
		fmt.Println(subtleStyle.Render("Records written to " + store.Dir()))
		return nil
	},
}

const barWidth = 30

// printMetrics renders the six rates as labeled colored bars.
func printMetrics(m pipeline.Metrics) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("Batch metrics (%d prompts)", m.Total)))

	rows := []struct {
		label string
		value float64
		style lipgloss.Style
	}{
		{"CRR      ", m.CRR, warnStyle},
		{"CSR      ", m.CSR, passStyle},
		{"ARSR     ", m.ARSR, passStyle},
		{"RFR      ", m.RFR, passStyle},
		{"USR      ", m.USR, failStyle},
		{"Coverage ", m.Coverage, passStyle},
	}
	for _, row := range rows {
		filled := int(row.value / 100 * barWidth)
		if filled > barWidth {
			filled = barWidth
		}
		bar := row.style.Render(strings.Repeat("█", filled)) +
			subtleStyle.Render(strings.Repeat("░", barWidth-filled))
		fmt.Printf("  %s %s %5.1f%%\n", sectionStyle.Render(row.label), bar, row.value)
	}

	fmt.Println(sectionStyle.Render("Breakdown"))
	for _, part := range []string{"ambiguous", "clear", "global"} {
		counts := m.Breakdown[part]
		var parts []string
		for _, status := range []string{"pass", "fail", "error", "unsupported", "invalid"} {
			if n := counts[status]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s=%d", status, n))
			}
		}
		if len(parts) == 0 {
			parts = append(parts, "none")
		}
		fmt.Printf("  %-10s %s\n", part, strings.Join(parts, " "))
	}
}

func init() {
	batchCmd.Flags().IntVarP(&batchCount, "count", "n", 0, "number of prompts to sample (0 picks a seeded random size)")
	batchCmd.Flags().Int64Var(&batchSeed, "seed", 42, "sampling seed")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 1, "concurrent prompt runners")
	batchCmd.Flags().StringVar(&batchCorpus, "corpus", "", "path to a JSONL prompt corpus (default: embedded)")
}
