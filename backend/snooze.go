// /home/krylon/go/src/github.com/blicero/medalert/backend/snooze.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 18:51:30 krylon>

package backend

import (
	"errors"
	"time"

	"github.com/blicero/medalert/objects"
)

// ErrNotFound is returned when a Reminder does not exist.
var ErrNotFound = errors.New("Reminder was not found")

// ErrNotTriggered is returned when trying to snooze a Reminder that has not
// been delivered, yet.
var ErrNotTriggered = errors.New("Reminder has not been triggered, yet")

// Snooze postpones a delivered Reminder. It creates a new Reminder for the
// same subject that is due offset from now, and leaves the original as it
// is. An offset of zero means the configured default.
func (d *Daemon) Snooze(id string, offset time.Duration) (*objects.Reminder, error) {
	var (
		err     error
		orig    *objects.Reminder
		snoozed objects.Reminder
	)

	if offset <= 0 {
		offset = d.cfg.Snooze
	}

	if orig, err = d.store.ReminderGetByID(id); err != nil {
		d.log.Printf("[ERROR] Cannot look up Reminder %s: %s\n",
			id,
			err.Error())
		return nil, err
	} else if orig == nil {
		d.log.Printf("[DEBUG] Cannot snooze Reminder %s: %s\n",
			id,
			ErrNotFound.Error())
		return nil, ErrNotFound
	} else if !orig.Triggered {
		return nil, ErrNotTriggered
	}

	snoozed = orig.Snoozed(d.clock(), offset)

	if err = d.store.ReminderAddUnique(&snoozed); err != nil {
		d.log.Printf("[ERROR] Cannot save snoozed Reminder %s: %s\n",
			snoozed.ID,
			err.Error())
		return nil, err
	}

	d.closeNotification(id)

	d.log.Printf("[INFO] Snoozed Reminder %s (%q) for %s as %s\n",
		id,
		orig.Subject,
		offset,
		snoozed.ID)

	d.rearm()

	return &snoozed, nil
} // func (d *Daemon) Snooze(id string, offset time.Duration) (*objects.Reminder, error)

// Acknowledge dismisses the notification for a Reminder. The Reminder
// itself stays as it is.
func (d *Daemon) Acknowledge(id string) error {
	var (
		err error
		r   *objects.Reminder
	)

	if r, err = d.store.ReminderGetByID(id); err != nil {
		d.log.Printf("[ERROR] Cannot look up Reminder %s: %s\n",
			id,
			err.Error())
		return err
	} else if r == nil {
		return ErrNotFound
	}

	d.closeNotification(id)

	d.log.Printf("[INFO] Reminder %s (%q) was acknowledged\n",
		id,
		r.Subject)

	return nil
} // func (d *Daemon) Acknowledge(id string) error
