// Package validate checks daily activity logs block by block and reports
// problems as diagnostics. Diagnostics are data: a malformed block never stops
// the rest of the file from being checked, and only I/O failures surface as
// errors.
package validate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/papapumpkin/daylog/internal/logline"
	"github.com/papapumpkin/daylog/internal/taxonomy"
)

// Diagnostic is one problem found in a log file. Line is 1-based; 0 refers to
// the file as a whole.
type Diagnostic struct {
	Line     int
	Category Category
	Message  string
}

// String formats the diagnostic as "line N: message".
func (d Diagnostic) String() string {
	if d.Line == 0 {
		return d.Message
	}
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// Result is the outcome of validating one file. Err is non-nil (wrapping
// ErrRead) when the file could not be read; an empty Diagnostics with a nil
// Err means the file is clean.
type Result struct {
	Path        string
	Diagnostics []Diagnostic
	Err         error
}

// Clean reports whether the file was read and produced no diagnostics.
func (r Result) Clean() bool {
	return r.Err == nil && len(r.Diagnostics) == 0
}

// Validator checks log files against a shared read-only taxonomy.
type Validator struct {
	tax    *taxonomy.Taxonomy
	logger *zap.Logger
}

// New returns a Validator. A nil taxonomy behaves as an empty one and a nil
// logger discards output.
func New(tax *taxonomy.Taxonomy, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{tax: tax, logger: logger}
}

// File reads and validates the log at path.
func (v *Validator) File(path string) ([]Diagnostic, error) {
	lines, err := logline.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	diags := v.Lines(lines)
	v.logger.Debug("validated file",
		zap.String("path", path),
		zap.Int("lines", len(lines)),
		zap.Int("diagnostics", len(diags)),
	)
	return diags, nil
}

// Run validates each path in order. A read failure is recorded on that
// file's Result and the batch continues. Cancelling ctx stops before the
// next file; results gathered so far are returned.
func (v *Validator) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		if ctx.Err() != nil {
			break
		}
		diags, err := v.File(p)
		if err != nil {
			v.logger.Warn("skipping unreadable file", zap.String("path", p), zap.Error(err))
		}
		results = append(results, Result{Path: p, Diagnostics: diags, Err: err})
	}
	return results
}

// Lines validates an already-split file. lines[i] is file line i+1.
func (v *Validator) Lines(lines []string) []Diagnostic {
	s := &scan{v: v, lines: lines}
	s.run()
	return s.diags
}
