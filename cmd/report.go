package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/daylog/internal/report"
	"github.com/papapumpkin/daylog/internal/store"
	"github.com/papapumpkin/daylog/internal/ui"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize imported days from the database",
}

var reportDayCmd = &cobra.Command{
	Use:   "day <YYYYMMDD>",
	Short: "Show one day's totals and category tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportDay,
}

var reportPeriodCmd = &cobra.Command{
	Use:   "period",
	Short: "Summarize the last N days",
	Args:  cobra.NoArgs,
	RunE:  runReportPeriod,
}

var reportMonthCmd = &cobra.Command{
	Use:   "month <YYYYMM>",
	Short: "Summarize one calendar month",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportMonth,
}

func init() {
	addPeriodFlags(reportPeriodCmd)
	reportCmd.AddCommand(reportDayCmd, reportPeriodCmd, reportMonthCmd)
	rootCmd.AddCommand(reportCmd)
}

func addPeriodFlags(cmd *cobra.Command) {
	cmd.Flags().Int("days", 7, "number of days to cover")
	cmd.Flags().String("end", "", "last day of the period as YYYYMMDD (default today)")
}

// periodFromFlags resolves --days and --end.
func periodFromFlags(cmd *cobra.Command) (report.Period, error) {
	days, _ := cmd.Flags().GetInt("days")
	endStr, _ := cmd.Flags().GetString("end")
	end := time.Now()
	if endStr != "" {
		t, err := report.ParseDate(endStr)
		if err != nil {
			return report.Period{}, err
		}
		end = t
	}
	return report.LastDays(days, end)
}

func runReportDay(cmd *cobra.Command, args []string) error {
	a := current
	ctx := cmd.Context()
	printer := ui.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())

	if _, err := report.ParseDate(args[0]); err != nil {
		return err
	}
	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.Day(ctx, args[0])
	if errors.Is(err, store.ErrNotFound) {
		printer.Warn(fmt.Sprintf("no records found for %s", args[0]))
		return nil
	}
	if err != nil {
		return err
	}
	h, err := a.storedHierarchy(ctx, st)
	if err != nil {
		return err
	}
	printer.Lines(report.DayLines(rec, h))
	return nil
}

func runReportPeriod(cmd *cobra.Command, args []string) error {
	p, err := periodFromFlags(cmd)
	if err != nil {
		return err
	}
	return printStoredPeriod(cmd, p)
}

func runReportMonth(cmd *cobra.Command, args []string) error {
	p, err := report.Month(args[0])
	if err != nil {
		return err
	}
	return printStoredPeriod(cmd, p)
}

func printStoredPeriod(cmd *cobra.Command, p report.Period) error {
	a := current
	ctx := cmd.Context()

	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.Range(ctx, p.From, p.To)
	if err != nil {
		return err
	}
	h, err := a.storedHierarchy(ctx, st)
	if err != nil {
		return err
	}
	ui.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr()).Lines(report.Summarize(p, records, h).Lines())
	return nil
}
