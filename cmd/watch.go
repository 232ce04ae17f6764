package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/daylog/internal/telemetry"
	"github.com/papapumpkin/daylog/internal/ui"
	"github.com/papapumpkin/daylog/internal/validate"
	"github.com/papapumpkin/daylog/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Re-validate log files as they change",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a := current
	printer := ui.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())

	info, err := os.Stat(args[0])
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("watch: %s is not a directory", args[0])
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(args[0], a.cfg.Extension, a.logger)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Stop()

	em := a.openEvents()
	defer em.Close()
	a.record(em, telemetry.KindRunStart, "", map[string]string{"command": "watch", "dir": args[0]})

	v := validate.New(a.loadTaxonomy(), a.logger)
	printer.Info(fmt.Sprintf("watching %s for %s changes (ctrl-c to stop)", args[0], a.cfg.Extension))
	checked := watchLoop(ctx, w.Changes, v, printer, a, em)
	a.record(em, telemetry.KindRunDone, "", map[string]int{"files": checked})
	return nil
}

// watchLoop validates each modified file until ctx is done or changes closes.
// It returns the number of files validated.
func watchLoop(ctx context.Context, changes <-chan watch.Change, v *validate.Validator, printer *ui.Printer, a *app, em *telemetry.Emitter) int {
	checked := 0
	for {
		select {
		case <-ctx.Done():
			return checked
		case c, ok := <-changes:
			if !ok {
				return checked
			}
			printer.Change(c)
			if c.Kind == watch.ChangeRemoved {
				continue
			}
			checked++
			diags, err := v.File(c.File)
			r := validate.Result{Path: c.File, Diagnostics: diags, Err: err}
			printer.FileResult(checked, checked, r)
			if err != nil {
				a.record(em, telemetry.KindFileFailed, c.File, map[string]string{"error": err.Error()})
				continue
			}
			a.record(em, telemetry.KindFileChecked, c.File, map[string]int{"diagnostics": len(diags)})
		}
	}
}
