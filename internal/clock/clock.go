// Package clock abstracts the current time so signed URL expiries are testable.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Real is the wall clock, always in UTC.
type Real struct{}

// Now returns time.Now in UTC.
func (Real) Now() time.Time { return time.Now().UTC() }

// Fake is a settable clock for tests.
type Fake struct {
	now time.Time
}

// NewFake returns a Fake pinned to t.
func NewFake(t time.Time) *Fake { return &Fake{now: t.UTC()} }

// Now returns the pinned time.
func (f *Fake) Now() time.Time { return f.now }

// Advance moves the pinned time forward by d.
func (f *Fake) Advance(d time.Duration) { f.now = f.now.Add(d) }
