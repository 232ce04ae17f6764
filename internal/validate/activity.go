package validate

import (
	"strings"

	"github.com/papapumpkin/daylog/internal/clock"
	"github.com/papapumpkin/daylog/internal/logline"
	"github.com/papapumpkin/daylog/internal/taxonomy"
)

// activity checks one non-blank line of the activity section. A line that
// fails the grammar gets a single format diagnostic and nothing else.
func (s *scan) activity(a logline.Line, line int) {
	if a.Kind != logline.KindActivity || !logline.ValidLabel(a.Label) {
		s.addf(line, CatActivityFormat, "activity must be HH:MM~HH:MM<label>, found %q", excerpt(a.Raw))
		return
	}

	startOK := clock.ValidTimeOfDay(a.Start)
	endOK := clock.ValidTimeOfDay(a.End)
	if !startOK {
		s.addf(line, CatTimeRange, "start time %s is out of range 00:00..23:59", a.Start)
	}
	if !endOK {
		s.addf(line, CatTimeRange, "end time %s is out of range 00:00..23:59", a.End)
	}
	if startOK && endOK {
		sh, sm, _ := clock.Parts(a.Start)
		eh, em, _ := clock.Parts(a.End)
		// Only same-hour reversals are caught; 09:00~08:00 reads as crossing midnight.
		if sh == eh && em < sm {
			s.addf(line, CatTimeOrder, "end minute %02d is before start minute %02d within the same hour", em, sm)
		}
	}

	s.label(a.Label, line)
}

func (s *scan) label(label string, line int) {
	verdict := s.v.tax.Classify(label)
	switch verdict.Outcome {
	case taxonomy.Valid:
	case taxonomy.TooGeneric:
		s.addf(line, CatLabelTooGeneric, "label %q is a parent category and too generic on its own", label)
	case taxonomy.WrongChild:
		s.addf(line, CatLabelWrongChild, "label %q is not allowed under %q; allowed labels include %s",
			label, verdict.Parent, strings.Join(verdict.Examples, ", "))
	case taxonomy.Unrecognized:
		if len(verdict.Examples) == 0 {
			s.addf(line, CatLabelUnrecognized, "label %q matches no category; no categories are configured", label)
			return
		}
		s.addf(line, CatLabelUnrecognized, "label %q matches no category; known labels include %s",
			label, strings.Join(verdict.Examples, ", "))
	}
}
