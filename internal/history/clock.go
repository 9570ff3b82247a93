package history

import "time"

var _ Clock = (*UTCClock)(nil)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// UTCClock reports the wall clock in UTC.
type UTCClock struct{}

func (UTCClock) Now() time.Time {
	return time.Now().UTC()
}
