package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/daylog/internal/report"
	"github.com/papapumpkin/daylog/internal/ui"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <path>",
	Short: "Summarize log files directly, without the database",
	Long: `Parses log files and prints a period report straight from them.

Without --days or --month the report covers every day found.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	addPeriodFlags(summarizeCmd)
	summarizeCmd.Flags().String("month", "", "summarize one calendar month (YYYYMM)")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	a := current
	printer := ui.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := a.discover(args[0])
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	records, _ := a.parseAll(files, nil)

	var p report.Period
	month, _ := cmd.Flags().GetString("month")
	switch {
	case month != "":
		p, err = report.Month(month)
	case cmd.Flags().Changed("days") || cmd.Flags().Changed("end"):
		p, err = periodFromFlags(cmd)
	default:
		p = report.Span(records)
	}
	if err != nil {
		return err
	}

	printer.Lines(report.Summarize(p, records, a.newHierarchy()).Lines())
	return nil
}
