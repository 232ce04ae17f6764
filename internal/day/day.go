// Package day builds day records from activity logs. It is the lenient
// counterpart of the validator: malformed content is skipped with a warning
// and everything usable is kept.
package day

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/papapumpkin/daylog/internal/clock"
	"github.com/papapumpkin/daylog/internal/logline"
)

// Interval is one logged activity. Duration is in seconds and never negative.
type Interval struct {
	Start    string
	End      string
	Label    string
	Duration int
	Line     int
}

// Record is one day block. Getup is empty when the block had no Getup value.
// Activities keep file order.
type Record struct {
	Date       string
	Status     bool
	Getup      string
	Remark     string
	Activities []Interval
	Line       int
}

// Total returns the summed duration of all activities.
func (r Record) Total() int {
	sum := 0
	for _, a := range r.Activities {
		sum += a.Duration
	}
	return sum
}

// Builder turns log lines into records.
type Builder struct {
	aliases []alias
	logger  *zap.Logger
}

type alias struct{ from, to string }

// NewBuilder returns a Builder that rewrites label substrings per aliases
// after lower-casing. Aliases are applied in order of their keys.
func NewBuilder(aliases map[string]string, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Builder{logger: logger}
	for from, to := range aliases {
		if from == "" {
			continue
		}
		b.aliases = append(b.aliases, alias{strings.ToLower(from), to})
	}
	sort.Slice(b.aliases, func(i, j int) bool { return b.aliases[i].from < b.aliases[j].from })
	return b
}

// ParseFile reads path and parses it.
func (b *Builder) ParseFile(path string) ([]Record, error) {
	lines, err := logline.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return b.Parse(lines), nil
}

// Parse builds records from one file's lines. Any non-header line holding
// "~" is read as an activity; trailing text after the label is ignored. A
// date repeated in the same file is merged as described on Merge.
func (b *Builder) Parse(lines []string) []Record {
	var (
		out []Record
		cur *Record
	)
	flush := func() {
		if cur != nil {
			out = append(out, *cur)
			cur = nil
		}
	}

	for i, raw := range lines {
		n := i + 1
		l := logline.Classify(raw)
		switch l.Kind {
		case logline.KindBlank:
		case logline.KindDate:
			flush()
			cur = &Record{Date: strings.TrimSpace(l.Value), Line: n}
		case logline.KindStatus:
			if cur != nil {
				cur.Status = strings.TrimSpace(l.Value) == "True"
			}
		case logline.KindGetup:
			if cur != nil {
				cur.Getup = strings.TrimSpace(l.Value)
			}
		case logline.KindRemark:
			if cur != nil {
				cur.Remark = strings.TrimSpace(l.Value)
			}
		default:
			if !strings.Contains(raw, "~") {
				continue
			}
			if cur == nil {
				b.logger.Warn("activity before any Date line", zap.Int("line", n), zap.String("text", raw))
				continue
			}
			start, end, label, ok := matchInterval(raw)
			if !ok {
				b.logger.Warn("skipping malformed activity", zap.Int("line", n), zap.String("text", raw))
				continue
			}
			cur.Activities = append(cur.Activities, Interval{
				Start:    start,
				End:      end,
				Label:    b.normalize(label),
				Duration: clock.Elapsed(start, end),
				Line:     n,
			})
		}
	}
	flush()
	return b.Merge(out)
}

// Merge folds records sharing a date into the first one, keeping first-seen
// order. The later record's header fields win; a later activity replaces an
// earlier one with the same start time and is appended otherwise.
func (b *Builder) Merge(records []Record) []Record {
	out := make([]Record, 0, len(records))
	index := make(map[string]int, len(records))
	for _, r := range records {
		at, dup := index[r.Date]
		if !dup {
			index[r.Date] = len(out)
			r.Activities = append([]Interval(nil), r.Activities...)
			out = append(out, r)
			continue
		}
		b.logger.Warn("merging repeated date", zap.String("date", r.Date), zap.Int("line", r.Line))
		dst := &out[at]
		dst.Status, dst.Getup, dst.Remark = r.Status, r.Getup, r.Remark
		for _, a := range r.Activities {
			dst.Activities = upsert(dst.Activities, a)
		}
	}
	return out
}

func upsert(list []Interval, a Interval) []Interval {
	for i := range list {
		if list[i].Start == a.Start {
			list[i] = a
			return list
		}
	}
	return append(list, a)
}

func (b *Builder) normalize(label string) string {
	label = strings.ToLower(label)
	for _, a := range b.aliases {
		label = strings.ReplaceAll(label, a.from, a.to)
	}
	return label
}

// Lines renders r back into the log grammar with activities ordered by start.
func (r Record) Lines() []string {
	status := "False"
	if r.Status {
		status = "True"
	}
	lines := []string{
		logline.PrefixDate + r.Date,
		logline.PrefixStatus + status,
		logline.PrefixGetup + r.Getup,
		logline.PrefixRemark + r.Remark,
	}
	acts := append([]Interval(nil), r.Activities...)
	sort.SliceStable(acts, func(i, j int) bool { return acts[i].Start < acts[j].Start })
	for _, a := range acts {
		lines = append(lines, a.Start+"~"+a.End+a.Label)
	}
	return lines
}
