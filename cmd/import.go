package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/daylog/internal/telemetry"
	"github.com/papapumpkin/daylog/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Parse log files and store their days in the database",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	a := current
	ctx := cmd.Context()
	printer := ui.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := a.discover(args[0])
	if err != nil {
		printer.Error(err.Error())
		return err
	}

	em := a.openEvents()
	defer em.Close()
	a.record(em, telemetry.KindRunStart, "", map[string]any{"command": "import", "files": len(files)})

	records, parsed := a.parseAll(files, em)

	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	h, err := a.storedHierarchy(ctx, st)
	if err != nil {
		return err
	}
	replaced := 0
	for _, r := range records {
		for _, iv := range r.Activities {
			h.Register(iv.Label)
		}
		exists, err := st.Exists(ctx, r.Date)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		if exists {
			replaced++
		}
	}
	if replaced > 0 {
		a.logger.Info("updating previously imported days", zap.Int("days", replaced))
	}
	if err := st.SaveDays(ctx, records, h.Entries()); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	a.logger.Debug("import saved", zap.Int("days", len(records)), zap.Int("edges", h.Len()))

	a.record(em, telemetry.KindRunDone, "", map[string]int{"files": parsed, "days": len(records)})
	printer.ImportDone(parsed, len(records))
	return nil
}
