package taxonomy

import "errors"

// ErrMalformed indicates the taxonomy document could not be decoded or does
// not have the expected shape.
var ErrMalformed = errors.New("malformed taxonomy document")
