package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/papapumpkin/daylog/internal/config"
	"github.com/papapumpkin/daylog/internal/report"
	"github.com/papapumpkin/daylog/internal/ui"
	"github.com/papapumpkin/daylog/internal/validate"
	"github.com/papapumpkin/daylog/internal/watch"
)

const testTaxonomy = `{"PARENT_CATEGORIES": {
  "routine": ["routine_bath"],
  "study": ["study_math_calculus"]
}}`

const cleanLog = `Date:20250101
Status:True
Getup:07:30
Remark:test
07:30~08:00routine_bath
08:00~10:00study_math_calculus
`

const brokenLog = `Date:20250102
Status:True
Getup:07:30
Remark:
07:30~08:00bogus
`

// useApp points the shared app at a temp workspace and restores it after t.
func useApp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	taxPath := filepath.Join(dir, "taxonomy.json")
	if err := os.WriteFile(taxPath, []byte(testTaxonomy), 0o644); err != nil {
		t.Fatal(err)
	}
	prev := current
	current = &app{
		cfg: config.Config{
			TaxonomyPath: taxPath,
			DBPath:       filepath.Join(dir, "daylog.db"),
			Extension:    ".txt",
			EventsPath:   filepath.Join(dir, "events.jsonl"),
			Aliases:      map[string]string{"stduy": "study"},
		},
		logger: zap.NewNop(),
	}
	t.Cleanup(func() { current = prev })
	return dir
}

func writeLog(t *testing.T, dir, name, text string) {
	t.Helper()
	logs := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logs, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(logs, name), []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, c *cobra.Command, fn func(*cobra.Command, []string) error, args ...string) (string, string, error) {
	t.Helper()
	var out, status bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&status)
	c.SetContext(context.Background())
	err := fn(c, args)
	return out.String(), status.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	t.Parallel()

	want := map[string]bool{"validate": false, "import": false, "report": false, "summarize": false, "show": false, "watch": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %q subcommand to be registered on rootCmd", name)
		}
	}
}

func TestValidateCmd(t *testing.T) {
	// Not parallel: modifies the shared app and validateCmd flag state.
	dir := useApp(t)
	writeLog(t, dir, "a.txt", cleanLog)
	writeLog(t, dir, "b.txt", brokenLog)
	writeLog(t, dir, "notes.md", "ignored")

	_, status, err := run(t, validateCmd, runValidate, filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("validate without --strict: %v", err)
	}
	for _, s := range []string{"a.txt", "no problems", "b.txt", "bogus", "2 file(s) checked, 1 with problems"} {
		if !strings.Contains(status, s) {
			t.Errorf("expected output to contain %q, got:\n%s", s, status)
		}
	}
	if strings.Contains(status, "notes.md") {
		t.Errorf("non-log file was validated:\n%s", status)
	}

	if err := validateCmd.Flags().Set("strict", "true"); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = validateCmd.Flags().Set("strict", "false") }()

	_, _, err = run(t, validateCmd, runValidate, filepath.Join(dir, "logs"))
	if !errors.Is(err, errProblemsFound) {
		t.Fatalf("strict validate error = %v, want errProblemsFound", err)
	}

	events, err := os.ReadFile(current.cfg.EventsPath)
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	for _, kind := range []string{`"run_start"`, `"file_checked"`, `"run_done"`} {
		if !bytes.Contains(events, []byte(kind)) {
			t.Errorf("events missing %s:\n%s", kind, events)
		}
	}
}

func TestValidateCmdMissingPath(t *testing.T) {
	dir := useApp(t)
	if _, _, err := run(t, validateCmd, runValidate, filepath.Join(dir, "nope")); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestImportThenReport(t *testing.T) {
	// Not parallel: modifies the shared app.
	dir := useApp(t)
	writeLog(t, dir, "a.txt", cleanLog)
	logs := filepath.Join(dir, "logs")

	_, status, err := run(t, importCmd, runImport, logs)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(status, "imported 1 day(s) from 1 file(s)") {
		t.Errorf("import output = %q", status)
	}

	out, _, err := run(t, reportDayCmd, runReportDay, "20250101")
	if err != nil {
		t.Fatalf("report day: %v", err)
	}
	for _, s := range []string{"Date: 20250101", "Total Time: 2h30m (150 minutes)", "STUDY: 2h00m (80.00%)", "ROUTINE: 30m (20.00%)", "  - math: 2h00m"} {
		if !strings.Contains(out, s) {
			t.Errorf("report day missing %q:\n%s", s, out)
		}
	}

	_, status, err = run(t, reportDayCmd, runReportDay, "20250105")
	if err != nil {
		t.Fatalf("report day for empty date: %v", err)
	}
	if !strings.Contains(status, "no records found for 20250105") {
		t.Errorf("status = %q", status)
	}

	if _, _, err := run(t, reportDayCmd, runReportDay, "2025-01-01"); !errors.Is(err, report.ErrBadPeriod) {
		t.Errorf("bad date error = %v, want ErrBadPeriod", err)
	}

	out, _, err = run(t, reportMonthCmd, runReportMonth, "202501")
	if err != nil {
		t.Fatalf("report month: %v", err)
	}
	for _, s := range []string{"[202501 Monthly] (20250101 - 20250131)", "Days with time records: 1 day(s)", "STUDY: 2h00m"} {
		if !strings.Contains(out, s) {
			t.Errorf("report month missing %q:\n%s", s, out)
		}
	}

	if err := reportPeriodCmd.Flags().Set("end", "20250103"); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = reportPeriodCmd.Flags().Set("end", "") }()
	out, _, err = run(t, reportPeriodCmd, runReportPeriod)
	if err != nil {
		t.Fatalf("report period: %v", err)
	}
	if !strings.Contains(out, "[Last 7 Days] (20241228 - 20250103)") {
		t.Errorf("report period header wrong:\n%s", out)
	}

	out, _, err = run(t, showCmd, runShow, "20250101")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, s := range []string{"Date:20250101", "Status:True", "07:30~08:00routine_bath", "08:00~10:00study_math_calculus"} {
		if !strings.Contains(out, s) {
			t.Errorf("show missing %q:\n%s", s, out)
		}
	}
}

func TestSummarizeCmd(t *testing.T) {
	// Not parallel: modifies the shared app and summarizeCmd flag state.
	dir := useApp(t)
	writeLog(t, dir, "a.txt", cleanLog)
	writeLog(t, dir, "b.txt", strings.Replace(cleanLog, "20250101", "20250201", 1))
	logs := filepath.Join(dir, "logs")

	out, _, err := run(t, summarizeCmd, runSummarize, logs)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	for _, s := range []string{"[All Records] (20250101 - 20250201)", "Days with time records: 2 day(s)", "STUDY: 4h00m (2h00m/day)"} {
		if !strings.Contains(out, s) {
			t.Errorf("summarize missing %q:\n%s", s, out)
		}
	}

	if err := summarizeCmd.Flags().Set("month", "202502"); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = summarizeCmd.Flags().Set("month", "") }()
	out, _, err = run(t, summarizeCmd, runSummarize, logs)
	if err != nil {
		t.Fatalf("summarize --month: %v", err)
	}
	if !strings.Contains(out, "[202502 Monthly]") || !strings.Contains(out, "Days with time records: 1 day(s)") {
		t.Errorf("summarize --month output:\n%s", out)
	}
	if _, err := os.Stat(current.cfg.DBPath); !os.IsNotExist(err) {
		t.Errorf("summarize touched the database: %v", err)
	}
}

func TestWatchLoop(t *testing.T) {
	dir := useApp(t)
	writeLog(t, dir, "a.txt", brokenLog)
	file := filepath.Join(dir, "logs", "a.txt")

	changes := make(chan watch.Change, 2)
	changes <- watch.Change{Kind: watch.ChangeModified, File: file}
	changes <- watch.Change{Kind: watch.ChangeRemoved, File: filepath.Join(dir, "logs", "gone.txt")}
	close(changes)

	var out, status bytes.Buffer
	v := validate.New(current.loadTaxonomy(), zap.NewNop())
	checked := watchLoop(context.Background(), changes, v, ui.NewWithWriters(&out, &status), current, nil)
	if checked != 1 {
		t.Errorf("checked = %d, want 1", checked)
	}
	for _, s := range []string{"modified " + file, "bogus", "removed"} {
		if !strings.Contains(status.String(), s) {
			t.Errorf("watch output missing %q:\n%s", s, status.String())
		}
	}
}

func TestWatchLoopStopsOnCancel(t *testing.T) {
	useApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	v := validate.New(current.loadTaxonomy(), zap.NewNop())
	if n := watchLoop(ctx, make(chan watch.Change), v, ui.NewWithWriters(&out, &out), current, nil); n != 0 {
		t.Errorf("checked = %d, want 0", n)
	}
}

func TestLoadTaxonomyLogsParents(t *testing.T) {
	useApp(t)
	core, logs := observer.New(zapcore.DebugLevel)
	current.logger = zap.New(core)

	if tax := current.loadTaxonomy(); tax.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tax.Len())
	}
	entries := logs.FilterMessage("taxonomy loaded").All()
	if len(entries) != 1 {
		t.Fatalf("expected one taxonomy log entry, got %d", len(entries))
	}
	got := entries[0].ContextMap()["parents"]
	if diff := cmp.Diff([]interface{}{"routine", "study"}, got); diff != "" {
		t.Errorf("parents field mismatch (-want +got):\n%s", diff)
	}
}
