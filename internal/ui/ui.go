// Package ui renders daylog results for the terminal. Reports go to the
// output writer; progress and problems go to the status writer.
package ui

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/papapumpkin/daylog/internal/validate"
	"github.com/papapumpkin/daylog/internal/watch"
)

// Printer writes styled output.
type Printer struct {
	out    io.Writer
	status io.Writer
}

// NewWithWriters returns a Printer over the given writers.
func NewWithWriters(out, status io.Writer) *Printer {
	return &Printer{out: out, status: status}
}

// Info prints a de-emphasized status line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.status, styleMuted.Render(msg))
}

// Warn prints a warning status line.
func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.status, styleWarn.Render(iconWarn+" "+msg))
}

// Error prints an error status line.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.status, styleDanger.Render("error: ")+msg)
}

// Lines prints report lines verbatim to the output writer.
func (p *Printer) Lines(lines []string) {
	for _, l := range lines {
		fmt.Fprintln(p.out, l)
	}
}

// FileResult prints the outcome of validating one file of a batch.
func (p *Printer) FileResult(index, total int, r validate.Result) {
	fmt.Fprintf(p.status, "%s %s\n", styleMuted.Render(fmt.Sprintf("[%d/%d]", index, total)), r.Path)
	switch {
	case r.Err != nil:
		fmt.Fprintf(p.status, "  %s %v\n", styleDanger.Render(iconFailed+" cannot read:"), r.Err)
	case len(r.Diagnostics) == 0:
		fmt.Fprintf(p.status, "  %s\n", styleSuccess.Render(iconClean+" no problems"))
	default:
		diags := Tidy(r.Diagnostics)
		fmt.Fprintf(p.status, "  %s\n", styleDanger.Render(fmt.Sprintf("%s %d problem(s):", iconFailed, len(diags))))
		for _, d := range diags {
			loc := "file"
			if d.Line > 0 {
				loc = fmt.Sprintf("line %d", d.Line)
			}
			fmt.Fprintf(p.status, "    %s %s %s\n", styleDanger.Render(iconBullet), styleLine.Render(loc+":"), d.Message)
		}
	}
}

// BatchSummary prints totals for a validation batch.
func (p *Printer) BatchSummary(checked, withProblems, unreadable int, elapsed time.Duration) {
	msg := fmt.Sprintf("%d file(s) checked, %d with problems, %d unreadable (%.2fs)",
		checked, withProblems, unreadable, elapsed.Seconds())
	if withProblems == 0 && unreadable == 0 {
		fmt.Fprintln(p.status, styleSuccess.Render(iconClean+" "+msg))
		return
	}
	fmt.Fprintln(p.status, styleWarn.Render(iconWarn+" "+msg))
}

// ImportDone prints totals for an import.
func (p *Printer) ImportDone(files, days int) {
	fmt.Fprintln(p.status, styleSuccess.Render(fmt.Sprintf("%s imported %d day(s) from %d file(s)", iconClean, days, files)))
}

// Change prints a watched file change.
func (p *Printer) Change(c watch.Change) {
	fmt.Fprintf(p.status, "%s %s %s\n", styleHeading.Render("◆"), c.Kind, c.File)
}

// Tidy returns diags without exact duplicates, ordered by line. Diagnostics
// on the same line keep their original order.
func Tidy(diags []validate.Diagnostic) []validate.Diagnostic {
	type key struct {
		line int
		msg  string
	}
	seen := make(map[key]struct{}, len(diags))
	out := make([]validate.Diagnostic, 0, len(diags))
	for _, d := range diags {
		k := key{d.Line, d.Message}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}
