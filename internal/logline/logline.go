// Package logline tokenizes the daily activity log grammar. Every trimmed line
// maps to exactly one Kind; value checks are left to the validator.
package logline

import "strings"

// Kind identifies which grammar production a line belongs to.
type Kind int

const (
	KindBlank    Kind = iota // empty line
	KindDate                 // Date:<raw>
	KindStatus               // Status:<raw>
	KindGetup                // Getup:<raw>
	KindRemark               // Remark:<raw>
	KindActivity             // HH:MM~HH:MM<label>
	KindUnknown              // anything else
)

// Header prefixes of the block grammar.
const (
	PrefixDate   = "Date:"
	PrefixStatus = "Status:"
	PrefixGetup  = "Getup:"
	PrefixRemark = "Remark:"
)

// String returns the grammar name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindDate:
		return "Date"
	case KindStatus:
		return "Status"
	case KindGetup:
		return "Getup"
	case KindRemark:
		return "Remark"
	case KindActivity:
		return "activity"
	default:
		return "unknown"
	}
}

// Line is the classified form of one trimmed input line. Value holds the raw
// text after a header prefix; Start, End and Label are set for activities.
type Line struct {
	Kind  Kind
	Raw   string
	Value string
	Start string
	End   string
	Label string
}

// Classify tags a trimmed line. It never fails: text that fits no production
// is returned as KindUnknown, and header values are carried unvalidated.
func Classify(line string) Line {
	l := Line{Kind: KindUnknown, Raw: line}
	switch {
	case line == "":
		l.Kind = KindBlank
	case strings.HasPrefix(line, PrefixDate):
		l.Kind, l.Value = KindDate, line[len(PrefixDate):]
	case strings.HasPrefix(line, PrefixStatus):
		l.Kind, l.Value = KindStatus, line[len(PrefixStatus):]
	case strings.HasPrefix(line, PrefixGetup):
		l.Kind, l.Value = KindGetup, line[len(PrefixGetup):]
	case strings.HasPrefix(line, PrefixRemark):
		l.Kind, l.Value = KindRemark, line[len(PrefixRemark):]
	case hasIntervalPrefix(line):
		l.Kind = KindActivity
		l.Start, l.End, l.Label = line[0:5], line[6:11], line[11:]
	}
	return l
}

// hasIntervalPrefix reports whether line starts with the DD:DD~DD:DD shape.
func hasIntervalPrefix(line string) bool {
	if len(line) < 11 {
		return false
	}
	return IsClock(line[0:5]) && line[5] == '~' && IsClock(line[6:11])
}

// IsClock reports whether s has the exact shape DD:DD. Ranges are not checked.
func IsClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	return isDigit(s[0]) && isDigit(s[1]) && isDigit(s[3]) && isDigit(s[4])
}

// ValidLabel reports whether label is a non-empty run of ASCII letters,
// digits, underscores and hyphens.
func ValidLabel(label string) bool {
	if label == "" {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case isDigit(c), c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}

// IsDateKey reports whether s is exactly eight ASCII digits.
func IsDateKey(s string) bool {
	if len(s) != 8 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
