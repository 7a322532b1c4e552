package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"clarifycoder/internal/pipeline"
)

var (
	runAnswers     []string
	runInteractive bool
)

var runCmd = &cobra.Command{
	Use:   "run <prompt>",
	Short: "Process a single prompt through the pipeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := buildPipeline(runInteractive)
		if err != nil {
			return err
		}

		out, err := p.RunPrompt(cmd.Context(), args[0], runAnswers)
		if err != nil {
			return err
		}

		if out.State == pipeline.StateAwaitingAnswers {
			printAwaiting(out)
			return nil
		}

		printOutcome(out)
		appendHistory(out)
		return nil
	},
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	passStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "pass":
		return passStyle
	case "fail", "error", "invalid":
		return failStyle
	default:
		return warnStyle
	}
}

func printAwaiting(out pipeline.Outcome) {
	fmt.Println(headerStyle.Render("Clarification needed"))
	for i, q := range out.Questions {
		fmt.Printf("  %d. %s\n", i+1, q)
	}
	fmt.Println(subtleStyle.Render("Re-run with --answer per question, in order."))
}

func printOutcome(out pipeline.Outcome) {
	fmt.Println(headerStyle.Render("clarifycoder result"))
	fmt.Printf("%s %s\n", sectionStyle.Render("Prompt:"), out.Prompt)
	fmt.Printf("%s %s\n", sectionStyle.Render("Clarification:"), out.Clarification.Status)
	for _, qa := range out.Bundle.QAPairs {
		fmt.Printf("  %s %s\n", subtleStyle.Render("Q:"), qa.Question)
		fmt.Printf("  %s %s\n", subtleStyle.Render("A:"), qa.Answer)
	}

	fmt.Println(sectionStyle.Render("Code:"))
	for _, line := range strings.Split(strings.TrimRight(out.Code, "\n"), "\n") {
		fmt.Printf("  %s\n", line)
	}

	status := string(out.Verdict.Status)
	fmt.Printf("%s %s", sectionStyle.Render("Verdict:"), statusStyle(status).Render(status))
	if out.Verdict.Function != "" {
		fmt.Printf(" %s", subtleStyle.Render("("+out.Verdict.Function+")"))
	}
	fmt.Println()
	fmt.Printf("%s %s\n", sectionStyle.Render("Details:"), out.Verdict.Details)
	if out.RepairAttempted {
		fmt.Printf("%s %s\n", sectionStyle.Render("Repair:"), out.RepairReason)
	}
}

func init() {
	runCmd.Flags().StringArrayVar(&runAnswers, "answer", nil, "pre-supplied answer to a clarifying question (repeatable, in question order)")
	runCmd.Flags().BoolVarP(&runInteractive, "interactive", "i", false, "solicit answers on stdin when questions arise")
}
