package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/daylog/internal/telemetry"
	"github.com/papapumpkin/daylog/internal/ui"
	"github.com/papapumpkin/daylog/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check log files for format and category problems",
	Long: `Validates a log file, or every log file under a directory, block by block.

Problems are reported per file. The command succeeds even when problems are
found unless --strict is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("strict", false, "exit non-zero when any file has problems or cannot be read")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	a := current
	printer := ui.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := a.discover(args[0])
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	if len(files) == 0 {
		printer.Warn(fmt.Sprintf("no %s files under %s", a.cfg.Extension, args[0]))
		return nil
	}

	em := a.openEvents()
	defer em.Close()
	a.record(em, telemetry.KindRunStart, "", map[string]any{"command": "validate", "files": len(files)})

	start := time.Now()
	v := validate.New(a.loadTaxonomy(), a.logger)
	results := v.Run(cmd.Context(), files)

	var withProblems, unreadable int
	for i, r := range results {
		printer.FileResult(i+1, len(files), r)
		switch {
		case r.Err != nil:
			unreadable++
			a.record(em, telemetry.KindFileFailed, r.Path, map[string]string{"error": r.Err.Error()})
		default:
			if len(r.Diagnostics) > 0 {
				withProblems++
			}
			a.record(em, telemetry.KindFileChecked, r.Path, map[string]int{"diagnostics": len(r.Diagnostics)})
		}
	}
	elapsed := time.Since(start)
	printer.BatchSummary(len(results), withProblems, unreadable, elapsed)
	a.record(em, telemetry.KindRunDone, "", map[string]any{
		"files":         len(results),
		"with_problems": withProblems,
		"unreadable":    unreadable,
		"elapsed_ms":    elapsed.Milliseconds(),
	})

	if strict && withProblems+unreadable > 0 {
		return fmt.Errorf("%w: %d file(s) with problems, %d unreadable", errProblemsFound, withProblems, unreadable)
	}
	return nil
}
