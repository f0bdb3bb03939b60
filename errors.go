package tracecache

import (
	"errors"
	"fmt"
)

// ErrUnsupportedValue is returned by Store for value kinds outside the
// supported scalar/binary set.
var ErrUnsupportedValue = errors.New("tracecache: unsupported value type")

// DecodeError reports a failure to decode the bytes stored under Key.
// The stored entry is left untouched; only the interpretation failed.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tracecache: decode %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
