// /home/krylon/go/src/github.com/blicero/medalert/backend/dispatch.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 16:21:09 krylon>

package backend

import (
	"fmt"

	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/objects"
)

// DispatchResult describes what happened when a due Reminder was handed to
// the dispatcher.
type DispatchResult struct {
	ID        string
	Marked    bool
	Skipped   bool
	Displayed bool
	Listeners int
	Err       error
}

func (res *DispatchResult) String() string {
	return fmt.Sprintf("DispatchResult{ ID: %q, Marked: %t, Skipped: %t, Displayed: %t, Listeners: %d, Err: %v }",
		res.ID,
		res.Marked,
		res.Skipped,
		res.Displayed,
		res.Listeners,
		res.Err)
} // func (res *DispatchResult) String() string

// dispatch delivers a single due Reminder.
//
// The Reminder is marked as triggered first, and only if that call made the
// transition is it displayed. Two cycles racing for the same Reminder thus
// display it at most once. If the store cannot be updated at all, the
// Reminder is displayed anyway and may be displayed again in a later cycle.
// A failure to display leaves the Reminder triggered.
func (d *Daemon) dispatch(r *objects.Reminder) DispatchResult {
	var (
		err error
		ok  bool
		res = DispatchResult{ID: r.ID}
	)

	if ok, err = d.store.ReminderSetTriggered(r.ID); err != nil {
		d.log.Printf("[ERROR] Cannot mark Reminder %s as triggered, displaying it anyway: %s\n",
			r.ID,
			err.Error())
		res.Err = err
	} else if !ok {
		d.log.Printf("[DEBUG] Reminder %s has already been triggered\n",
			r.ID)
		res.Skipped = true
		return res
	} else {
		res.Marked = true
	}

	r.Triggered = true

	if err = d.notifier.Show(r); err != nil {
		d.log.Printf("[ERROR] Cannot display Reminder %s (%q): %s\n",
			r.ID,
			r.Subject,
			err.Error())
		if res.Err == nil {
			res.Err = err
		}
	} else {
		res.Displayed = true
	}

	res.Listeners = d.hub.broadcast(objects.Event{
		Type:     objects.MsgReminderTriggered,
		Reminder: *r,
		Time:     d.clock(),
	})

	d.log.Printf("[INFO] Dispatched Reminder %s (%q, due %s) to %d listener(s)\n",
		r.ID,
		r.Subject,
		r.DueAt.Format(common.TimestampFormat),
		res.Listeners)

	return res
} // func (d *Daemon) dispatch(r *objects.Reminder) DispatchResult

func (d *Daemon) closeNotification(id string) {
	if d.notifier == nil {
		return
	} else if err := d.notifier.Close(id); err != nil {
		d.log.Printf("[ERROR] Cannot close notification for Reminder %s: %s\n",
			id,
			err.Error())
	}
} // func (d *Daemon) closeNotification(id string)
