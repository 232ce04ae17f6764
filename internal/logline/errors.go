package logline

import "errors"

// ErrNotLogFile indicates a path given explicitly does not carry the log extension.
var ErrNotLogFile = errors.New("not a log file")
