package report

import "errors"

// ErrBadPeriod indicates a report period that cannot be resolved to a date range.
var ErrBadPeriod = errors.New("invalid report period")
