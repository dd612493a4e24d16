package profuse

import "time"

// Clock abstracts wall-clock time so tests can control the cool-down timer.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}
