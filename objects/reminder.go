// /home/krylon/go/src/github.com/blicero/medalert/objects/reminder.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 10:12:44 krylon>

package objects

import (
	"fmt"
	"strings"
	"time"
)

//go:generate ffjson reminder.go

// NotificationTitle is the summary line of every reminder notification.
const NotificationTitle = "MedAlert Reminder"

// Reminder is one scheduled occurrence of a medicine the user should take.
// Subject and DueAt never change once the Reminder has been created,
// postponing it creates a new Reminder (see Snoozed).
type Reminder struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	DueAt     time.Time `json:"dueAt"`
	Triggered bool      `json:"triggered"`
	Origin    string    `json:"origin,omitempty"`
	Created   time.Time `json:"created"`
}

// MakeID builds the identifier for an occurrence of a medicine schedule
// from the schedule's ID, the date and the time of day.
// Saving the same occurrence twice thus yields the same ID.
func MakeID(scheduleID, date, timeOfDay string) string {
	return fmt.Sprintf("%s_%s_%s",
		scheduleID,
		date,
		strings.Replace(timeOfDay, ":", "", 1))
} // func MakeID(scheduleID, date, timeOfDay string) string

// Due returns the Reminder's due time.
func (r *Reminder) Due() time.Time {
	return r.DueAt
} // func (r *Reminder) Due() time.Time

// Tag returns the identifier notifications for this Reminder are grouped by.
func (r *Reminder) Tag() string {
	return r.ID
} // func (r *Reminder) Tag() string

// Payload returns the title and body of the Reminder's notification.
func (r *Reminder) Payload() (string, string) {
	return NotificationTitle, "Time to take: " + r.Subject
} // func (r *Reminder) Payload() (string, string)

// Root returns the ID of the occurrence this Reminder ultimately descends
// from. For Reminders that were not created by snoozing, that is their own ID.
func (r *Reminder) Root() string {
	if r.Origin != "" {
		return r.Origin
	}

	return r.ID
} // func (r *Reminder) Root() string

// Snoozed derives a new, untriggered Reminder for the same Subject that is
// due offset after now. The receiver is not modified.
func (r *Reminder) Snoozed(now time.Time, offset time.Duration) Reminder {
	var root = r.Root()

	return Reminder{
		ID:      fmt.Sprintf("%s_snooze_%d", root, now.UnixNano()),
		Subject: r.Subject,
		DueAt:   now.Add(offset).Truncate(time.Second),
		Origin:  root,
		Created: now,
	}
} // func (r *Reminder) Snoozed(now time.Time, offset time.Duration) Reminder

func (r *Reminder) String() string {
	return fmt.Sprintf("Reminder{ ID: %q, Subject: %q, Due: %s, Triggered: %t }",
		r.ID,
		r.Subject,
		r.DueAt.Format(time.RFC3339),
		r.Triggered)
} // func (r *Reminder) String() string
