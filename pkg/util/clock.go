package util

import "time"

// Clock is the time source for audit timestamps. Tests substitute a fixed
// clock to make trails deterministic.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
