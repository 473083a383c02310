// /home/krylon/go/src/github.com/blicero/medalert/backend/notifier.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 16:40:31 krylon>

package backend

import (
	"log"

	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/objects"
	"github.com/blicero/medalert/objects/action"
)

// Notifier is the surface due Reminders are displayed on.
type Notifier interface {
	// Show displays a notification. Showing one with the same Tag again
	// replaces the earlier notification.
	Show(n objects.Notification) error
	// Close removes the notification with the given Tag, if there is one.
	Close(id string) error
	Shutdown() error
}

// ActionHandler is called when the user picks one of the actions a
// notification offers.
type ActionHandler func(id string, a action.Action)

// LogNotifier writes notifications to the log. It is used when there is
// no desktop notification service.
type LogNotifier struct {
	log *log.Logger
}

// NewLogNotifier creates a LogNotifier writing to l.
func NewLogNotifier(l *log.Logger) *LogNotifier {
	return &LogNotifier{log: l}
} // func NewLogNotifier(l *log.Logger) *LogNotifier

// Show logs the notification.
func (n *LogNotifier) Show(item objects.Notification) error {
	var title, body = item.Payload()

	n.log.Printf("[INFO] %s: %s (%s, due %s)\n",
		title,
		body,
		item.Tag(),
		item.Due().Format(common.TimestampFormatMinute))
	return nil
} // func (n *LogNotifier) Show(item objects.Notification) error

// Close does nothing beyond logging.
func (n *LogNotifier) Close(id string) error {
	n.log.Printf("[TRACE] Close notification for %s\n", id)
	return nil
} // func (n *LogNotifier) Close(id string) error

// Shutdown does nothing.
func (n *LogNotifier) Shutdown() error {
	return nil
} // func (n *LogNotifier) Shutdown() error

// handleAction routes the user's response to a notification.
func (d *Daemon) handleAction(id string, a action.Action) {
	var err error

	d.log.Printf("[DEBUG] User picked %s for Reminder %s\n",
		a,
		id)

	switch a {
	case action.Acknowledge:
		err = d.Acknowledge(id)
	case action.Snooze:
		_, err = d.Snooze(id, 0)
	}

	if err != nil {
		d.log.Printf("[ERROR] Cannot %s Reminder %s: %s\n",
			a.Key(),
			id,
			err.Error())
	}
} // func (d *Daemon) handleAction(id string, a action.Action)
