// Package clock lets storage and seeding code read the time through an
// interface so tests can pin it.
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/dungeon-api/internal/pkg/clock Clock

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// New returns the system clock
func New() Clock {
	return realClock{}
}

// Fixed is a clock stuck at one instant.
type Fixed time.Time

// Now returns the fixed instant
func (f Fixed) Now() time.Time { return time.Time(f) }
