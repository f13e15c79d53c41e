package money

import "time"

// Clock is the time source for everything that accrues or timestamps.
// It is passed around explicitly so tests can pin the current time.
type Clock func() time.Time

// SystemClock returns the current time in UTC.
func SystemClock() time.Time {
	return time.Now().In(time.UTC)
}
