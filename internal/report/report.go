package report

import (
	"fmt"
	"time"

	"github.com/papapumpkin/daylog/internal/clock"
	"github.com/papapumpkin/daylog/internal/day"
	"github.com/papapumpkin/daylog/internal/hierarchy"
)

// DateLayout is the calendar key format used by log files and the store.
const DateLayout = "20060102"

// Build registers every activity path of records with h and aggregates them
// into a new tree.
func Build(records []day.Record, h *hierarchy.Builder) *Tree {
	t := NewTree(h)
	for _, r := range records {
		for _, a := range r.Activities {
			if h != nil {
				h.Register(a.Label)
			}
			t.AddInterval(a.Label, a.Duration)
		}
	}
	return t
}

// DayLines renders the summary of a single day.
func DayLines(r day.Record, h *hierarchy.Builder) []string {
	total := r.Total()
	getup := r.Getup
	if getup == "" {
		getup = "-"
	}
	lines := []string{
		"Date: " + r.Date,
		fmt.Sprintf("Total Time: %s (%d minutes)", clock.Format(total), total/60),
		"Status: " + boolToken(r.Status),
		"Getup: " + getup,
	}
	if r.Remark != "" {
		lines = append(lines, "Remark: "+r.Remark)
	}
	if len(r.Activities) == 0 {
		return append(lines, "No time records for this day.")
	}
	return append(lines, Build([]day.Record{r}, h).RenderShare(total)...)
}

// Period is an inclusive range of calendar keys.
type Period struct {
	Title string
	From  string
	To    string
}

// Contains reports whether the calendar key date falls inside p.
func (p Period) Contains(date string) bool {
	return date >= p.From && date <= p.To
}

// LastDays returns the n days ending on end.
func LastDays(n int, end time.Time) (Period, error) {
	if n < 1 {
		return Period{}, fmt.Errorf("%w: day count must be positive, got %d", ErrBadPeriod, n)
	}
	start := end.AddDate(0, 0, -(n - 1))
	return Period{
		Title: fmt.Sprintf("Last %d Days", n),
		From:  start.Format(DateLayout),
		To:    end.Format(DateLayout),
	}, nil
}

// Month returns the calendar month named by yyyymm.
func Month(yyyymm string) (Period, error) {
	start, err := time.Parse("200601", yyyymm)
	if err != nil || len(yyyymm) != 6 {
		return Period{}, fmt.Errorf("%w: month must be YYYYMM, got %q", ErrBadPeriod, yyyymm)
	}
	end := start.AddDate(0, 1, -1)
	return Period{
		Title: yyyymm + " Monthly",
		From:  start.Format(DateLayout),
		To:    end.Format(DateLayout),
	}, nil
}

// ParseDate parses a YYYYMMDD calendar key.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil || len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: date must be YYYYMMDD, got %q", ErrBadPeriod, s)
	}
	return t, nil
}

// Summary aggregates the records of one period.
type Summary struct {
	Period Period
	// DaysWithRecords counts days that logged at least one activity.
	DaysWithRecords int
	True            int
	False           int
	Total           int
	Tree            *Tree
}

// Summarize aggregates the records of p. Records outside p are ignored.
func Summarize(p Period, records []day.Record, h *hierarchy.Builder) Summary {
	s := Summary{Period: p}
	var in []day.Record
	for _, r := range records {
		if !p.Contains(r.Date) {
			continue
		}
		in = append(in, r)
		if r.Status {
			s.True++
		} else {
			s.False++
		}
		if len(r.Activities) > 0 {
			s.DaysWithRecords++
		}
		s.Total += r.Total()
	}
	s.Tree = Build(in, h)
	return s
}

// Divisor is the day count used for averages; never less than 1.
func (s Summary) Divisor() int {
	if s.DaysWithRecords < 1 {
		return 1
	}
	return s.DaysWithRecords
}

// Lines renders the summary.
func (s Summary) Lines() []string {
	lines := []string{
		fmt.Sprintf("[%s] (%s - %s)", s.Period.Title, s.Period.From, s.Period.To),
		"Overall Total Time: " + clock.FormatAverage(s.Total, s.Divisor()),
		fmt.Sprintf("Days with time records: %d day(s)", s.DaysWithRecords),
	}
	switch {
	case s.DaysWithRecords > 0:
		lines = append(lines,
			"Status Distribution (for days with records):",
			fmt.Sprintf("  True: %d day(s) (%.1f%%)", s.True, percent(s.True, s.DaysWithRecords)),
			fmt.Sprintf("  False: %d day(s) (%.1f%%)", s.False, percent(s.False, s.DaysWithRecords)),
		)
	case s.True+s.False > 0:
		lines = append(lines,
			"Status Distribution (overall days with status entries):",
			fmt.Sprintf("  True: %d day(s)", s.True),
			fmt.Sprintf("  False: %d day(s)", s.False),
		)
	default:
		lines = append(lines, "Status Distribution: No status information available for this period.")
	}
	if s.Total == 0 && len(s.Tree.Buckets()) == 0 {
		return append(lines, "", "No time records found for this period.")
	}
	return append(lines, s.Tree.Render(s.Divisor())...)
}

func percent(n, of int) float64 {
	return float64(n) / float64(of) * 100
}

func boolToken(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Span returns the period covering every record, or an empty period titled
// "All Records" when there are none.
func Span(records []day.Record) Period {
	p := Period{Title: "All Records"}
	for _, r := range records {
		if p.From == "" || r.Date < p.From {
			p.From = r.Date
		}
		if r.Date > p.To {
			p.To = r.Date
		}
	}
	return p
}
