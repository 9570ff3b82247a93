package book

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindUnavailable ErrorKind = iota + 1
	KindTimeout
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindTimeout:
		return "timeout"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// LookupError is returned when the catalog cannot be queried or its answer
// cannot be read. Message is safe to show to end users; Err is not.
type LookupError struct {
	Kind   ErrorKind
	Author string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup books for %q (%s): %v", e.Author, e.Kind, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func (e *LookupError) Message() string {
	switch e.Kind {
	case KindTimeout:
		return "lookup timed out"
	case KindMalformed:
		return "could not parse catalog response"
	default:
		return "could not reach book catalog"
	}
}

// IsLookupError reports whether err, or anything it wraps, is a *LookupError.
func IsLookupError(err error) bool {
	var lookupErr *LookupError
	return errors.As(err, &lookupErr)
}
