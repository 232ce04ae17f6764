package day

import "strings"

// matchInterval reads the parse-mode interval shape: H:MM or HH:MM, "~",
// H:MM or HH:MM, optional whitespace, then a run of [A-Za-z0-9_-]. Anything
// after the run is ignored. Times come back with a two-digit hour.
func matchInterval(line string) (start, end, label string, ok bool) {
	start, rest, ok := leadingTime(line)
	if !ok || !strings.HasPrefix(rest, "~") {
		return "", "", "", false
	}
	end, rest, ok = leadingTime(rest[1:])
	if !ok {
		return "", "", "", false
	}
	rest = strings.TrimLeft(rest, " \t")
	n := 0
	for n < len(rest) && isLabelByte(rest[n]) {
		n++
	}
	if n == 0 {
		return "", "", "", false
	}
	return start, end, rest[:n], true
}

// leadingTime consumes H:MM or HH:MM from the front of s.
func leadingTime(s string) (hhmm, rest string, ok bool) {
	h := 0
	for h < len(s) && h < 2 && isDigit(s[h]) {
		h++
	}
	if h == 0 || len(s) < h+3 || s[h] != ':' || !isDigit(s[h+1]) || !isDigit(s[h+2]) {
		return "", s, false
	}
	hour := s[:h]
	if h == 1 {
		hour = "0" + hour
	}
	return hour + s[h:h+3], s[h+3:], true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLabelByte(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '-'
}
