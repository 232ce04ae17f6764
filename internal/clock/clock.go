// Package clock does time-of-day arithmetic on HH:MM strings.
package clock

import (
	"fmt"
	"strconv"
)

// SecondsPerDay is added to a negative interval, which is read as crossing midnight.
const SecondsPerDay = 24 * 60 * 60

// ToSeconds converts HH:MM to seconds since midnight. Input that is not two
// colon-separated two-digit numbers yields 0.
func ToSeconds(hhmm string) int {
	h, m, ok := split(hhmm)
	if !ok {
		return 0
	}
	return h*3600 + m*60
}

// Elapsed returns the seconds from start to end. A negative difference wraps
// past midnight, so the result is never negative.
func Elapsed(start, end string) int {
	d := ToSeconds(end) - ToSeconds(start)
	if d < 0 {
		d += SecondsPerDay
	}
	return d
}

// ValidTimeOfDay reports whether hhmm is a well-formed time in 00:00..23:59.
func ValidTimeOfDay(hhmm string) bool {
	h, m, ok := split(hhmm)
	return ok && h <= 23 && m <= 59
}

// Parts returns the hour and minute fields of hhmm.
func Parts(hhmm string) (hour, minute int, ok bool) {
	return split(hhmm)
}

func split(s string) (int, int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, false
	}
	for _, i := range [...]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, false
		}
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	return h, m, true
}

// Format renders seconds as XhYYm, or Ym when under an hour.
func Format(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatAverage renders seconds like Format and, when divisor > 1, appends
// the per-unit average: "10h00m (2h00m/day)".
func FormatAverage(seconds, divisor int) string {
	if divisor <= 1 {
		return Format(seconds)
	}
	return fmt.Sprintf("%s (%s/day)", Format(seconds), Format(seconds/divisor))
}
