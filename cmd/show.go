package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/daylog/internal/report"
	"github.com/papapumpkin/daylog/internal/store"
	"github.com/papapumpkin/daylog/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <YYYYMMDD>",
	Short: "Print a stored day in log format",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
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
	printer.Lines(rec.Lines())
	return nil
}
