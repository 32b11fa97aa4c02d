package form

import "errors"

var (
	// ErrRejectedAttribute marks an unknown form setting or an invalid value.
	ErrRejectedAttribute = errors.New("form: rejected attribute")
	// ErrMalformedBulkInput marks bulk input that is not a sequence of
	// [label, attributes?, slug?] entries.
	ErrMalformedBulkInput = errors.New("form: malformed bulk input")
)
