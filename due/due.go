// /home/krylon/go/src/github.com/blicero/medalert/due/due.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 08:51:20 krylon>

// Package due decides which Reminders are due at a given point in time
// and when the scheduler should wake up next. Everything in here is free
// of side effects.
package due

import (
	"time"

	"github.com/blicero/medalert/objects"
)

// Policy bundles the parameters of the due-ness check.
//
// A Reminder is due if it has not been triggered yet and its due time lies
// within [now - After, now + Before]. Before absorbs a wakeup that comes
// slightly early relative to the next cadence, After is the grace period
// for wakeups the host delayed past the due time.
//
// Lead is how long before a due time the next-due wakeup is aimed,
// MinDelay is the shortest delay NextWake will ever return.
type Policy struct {
	Before   time.Duration
	After    time.Duration
	Lead     time.Duration
	MinDelay time.Duration
}

// Evaluate returns the Reminders that are due at now, given the tolerance
// window. The order of the result is unspecified.
func Evaluate(reminders []objects.Reminder, now time.Time, before, after time.Duration) []objects.Reminder {
	var result = make([]objects.Reminder, 0)

	for _, r := range reminders {
		if isDue(&r, now, before, after) {
			result = append(result, r)
		}
	}

	return result
} // func Evaluate(reminders []objects.Reminder, now time.Time, before, after time.Duration) []objects.Reminder

func isDue(r *objects.Reminder, now time.Time, before, after time.Duration) bool {
	if r.Triggered {
		return false
	}

	var delta = r.DueAt.Sub(now)

	return delta <= before && delta >= -after
} // func isDue(r *objects.Reminder, now time.Time, before, after time.Duration) bool

// Evaluate applies the Policy's tolerance window.
func (p Policy) Evaluate(reminders []objects.Reminder, now time.Time) []objects.Reminder {
	return Evaluate(reminders, now, p.Before, p.After)
} // func (p Policy) Evaluate(reminders []objects.Reminder, now time.Time) []objects.Reminder

// NextWake computes how long the scheduler may sleep before it needs to
// look at the Reminders again. The second return value is false if there
// is no untriggered Reminder that could still become due.
//
// The wakeup is aimed at Lead before the earliest due time, but never
// sooner than MinDelay from now.
func (p Policy) NextWake(reminders []objects.Reminder, now time.Time) (time.Duration, bool) {
	var (
		earliest time.Time
		found    bool
		horizon  = now.Add(-p.After)
	)

	for _, r := range reminders {
		if r.Triggered || r.DueAt.Before(horizon) {
			continue
		} else if !found || r.DueAt.Before(earliest) {
			earliest = r.DueAt
			found = true
		}
	}

	if !found {
		return 0, false
	}

	var delay = earliest.Add(-p.Lead).Sub(now)

	if delay < p.MinDelay {
		delay = p.MinDelay
	}

	return delay, true
} // func (p Policy) NextWake(reminders []objects.Reminder, now time.Time) (time.Duration, bool)
