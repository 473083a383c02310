// /home/krylon/go/src/github.com/blicero/medalert/clients/planner/remove.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 11:52:30 krylon>

package planner

import (
	"fmt"
)

// Deleter deletes Reminders. clientlib.Client is one.
type Deleter interface {
	DeleteReminder(id string) error
}

// Remove deletes a Schedule along with all of its Reminders.
// If any Reminder cannot be deleted, the Schedule is kept, so the removal
// can be retried.
func Remove(b *Book, del Deleter, scheduleID string) error {
	var (
		err    error
		s      *Schedule
		failed int
	)

	if s, err = b.Get(scheduleID); err != nil {
		return err
	}

	for _, id := range s.AllReminders() {
		if err = del.DeleteReminder(id); err != nil {
			b.log.Printf("[ERROR] Cannot delete Reminder %s: %s\n",
				id,
				err.Error())
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("Cannot delete %d of %d Reminders of %q",
			failed,
			len(s.AllReminders()),
			s.Subject)
	}

	b.log.Printf("[INFO] Removed Schedule %s (%q) with %d Reminders\n",
		s.ID,
		s.Subject,
		len(s.Reminders))

	return b.Delete(scheduleID)
} // func Remove(b *Book, del Deleter, scheduleID string) error
