// Package service contains the business logic behind the HTTP handlers.
package service

import (
	"fmt"
	"time"
)

// RegistrationTimeLayout renders user registration times, e.g.
// "04 April 2025 12:03 AM IST".
const RegistrationTimeLayout = "02 January 2006 03:04 PM MST"

// Clock supplies the current time and the zone user-facing timestamps are
// rendered in.
type Clock struct {
	now func() time.Time
	loc *time.Location
}

// NewClock returns a wall clock rendering in the named IANA zone.
func NewClock(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Clock{now: time.Now, loc: loc}, nil
}

// FixedClock always returns t. Used by tests and seeding.
func FixedClock(t time.Time, loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{now: func() time.Time { return t }, loc: loc}
}

// Now returns the current instant in UTC.
func (c *Clock) Now() time.Time {
	return c.now().UTC()
}

// Format renders t in the clock's zone using RegistrationTimeLayout.
func (c *Clock) Format(t time.Time) string {
	return t.In(c.loc).Format(RegistrationTimeLayout)
}
