package validate

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/daylog/internal/clock"
	"github.com/papapumpkin/daylog/internal/logline"
)

// studyMarker is the substring that makes an activity count as study.
const studyMarker = "study"

// excerptLen bounds how much of an offending line is quoted.
const excerptLen = 50

// headerOrder lists the headers that must follow a Date line, in order.
var headerOrder = [...]logline.Kind{logline.KindStatus, logline.KindGetup, logline.KindRemark}

// scan holds the state of one pass over a file.
type scan struct {
	v     *Validator
	lines []string
	diags []Diagnostic

	sawDate         bool // a Date line, or the leading-content error, has been seen
	leadingReported bool
	validBlock      bool
	nonBlank        bool
}

func (s *scan) addf(line int, cat Category, format string, args ...any) {
	s.diags = append(s.diags, Diagnostic{Line: line, Category: cat, Message: fmt.Sprintf(format, args...)})
}

// run walks the file between blocks (the awaiting-Date state).
func (s *scan) run() {
	i := 0
	for i < len(s.lines) {
		l := logline.Classify(s.lines[i])
		if l.Kind == logline.KindBlank {
			i++
			continue
		}
		s.nonBlank = true

		if l.Kind != logline.KindDate {
			if !s.sawDate {
				s.addf(i+1, CatLeadingContent, "file must start with a Date:YYYYMMDD line, found %q", excerpt(l.Raw))
				s.sawDate = true
				s.leadingReported = true
			} else {
				s.addf(i+1, CatUnexpectedContent, "unexpected content where a Date block or end of file was expected: %q", excerpt(l.Raw))
			}
			i = s.nextDate(i + 1)
			continue
		}

		s.sawDate = true
		if !logline.IsDateKey(l.Value) {
			s.addf(i+1, CatDateFormat, "Date must be eight digits (YYYYMMDD), found %q", l.Value)
			i = s.nextDate(i + 1)
			continue
		}
		s.validBlock = true
		i = s.block(i)
	}

	if !s.validBlock && s.nonBlank && !s.leadingReported {
		s.addf(0, CatNoDateBlock, "file contains no valid Date block")
	}
}

// nextDate returns the index of the first Date line at or after from, or
// len(lines).
func (s *scan) nextDate(from int) int {
	for j := from; j < len(s.lines); j++ {
		if logline.Classify(s.lines[j]).Kind == logline.KindDate {
			return j
		}
	}
	return len(s.lines)
}

// block checks the block whose valid Date line is at index start and returns
// the index where the next block may begin. Diagnostics are added in line
// order, so the derived status check runs as soon as the Status line is seen.
func (s *scan) block(start int) int {
	body := start + 1 + len(headerOrder)
	end, study := s.activities(body)

	for k, want := range headerOrder {
		j := start + 1 + k
		if j >= len(s.lines) || logline.Classify(s.lines[j]).Kind == logline.KindDate {
			s.addf(start+1, CatPrematureEnd, "block starting at line %d ended before its %s header", start+1, want)
			return s.nextDate(j)
		}
		h := logline.Classify(s.lines[j])
		if h.Kind != want {
			s.addf(j+1, CatHeaderOrder, "expected %s: header, found %q", want, excerpt(h.Raw))
		}
		status, ok := s.header(h, j+1)
		if want == logline.KindStatus && h.Kind == logline.KindStatus && ok && status != study {
			s.mismatch(j+1, status, study)
		}
	}

	for j := body; j < end; j++ {
		if a := logline.Classify(s.lines[j]); a.Kind != logline.KindBlank {
			s.activity(a, j+1)
		}
	}
	return end
}

// activities finds the end of the activity section starting at index from
// and whether any activity label mentions study.
func (s *scan) activities(from int) (end int, study bool) {
	for end = from; end < len(s.lines); end++ {
		a := logline.Classify(s.lines[end])
		if a.Kind == logline.KindDate {
			break
		}
		if a.Kind == logline.KindActivity && strings.Contains(a.Label, studyMarker) {
			study = true
		}
	}
	return end, study
}

func (s *scan) mismatch(line int, status, study bool) {
	verb := "has no"
	if study {
		verb = "has a"
	}
	s.addf(line, CatStatusMismatch, "Status should be %s because the day %s %q activity, found %s",
		boolToken(study), verb, studyMarker, boolToken(status))
}

// header format-checks a header line by its own kind. For Status it also
// returns the parsed value and whether it was a valid boolean token.
func (s *scan) header(h logline.Line, line int) (bool, bool) {
	switch h.Kind {
	case logline.KindStatus:
		switch h.Value {
		case "True":
			return true, true
		case "False":
			return false, true
		}
		s.addf(line, CatStatusValue, "Status must be True or False, found %q", h.Value)
	case logline.KindGetup:
		switch {
		case !logline.IsClock(h.Value):
			s.addf(line, CatGetupFormat, "Getup must be HH:MM, found %q", h.Value)
		case !clock.ValidTimeOfDay(h.Value):
			s.addf(line, CatGetupRange, "Getup time %s is out of range 00:00..23:59", h.Value)
		}
	}
	return false, false
}

func boolToken(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func excerpt(s string) string {
	if len(s) <= excerptLen {
		return s
	}
	return s[:excerptLen] + "..."
}
