// /home/krylon/go/src/github.com/blicero/medalert/objects/action/action.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 12:08:55 krylon>

// Package action contains symbolic constants for the choices a
// reminder notification offers the user.
package action

// Action is something the user can do in response to a notification.
type Action uint8

// Acknowledge means the user took the medicine, the notification is dismissed.
// Snooze means the user wants to be reminded again a few minutes later.
const (
	Acknowledge Action = iota
	Snooze
)

var (
	keys   = [...]string{"ack", "snooze"}
	labels = [...]string{"Acknowledge", "Snooze"}
)

// All returns all Actions in the order they are offered to the user.
func All() []Action {
	return []Action{Acknowledge, Snooze}
} // func All() []Action

// Key returns the identifier used for the Action on the notification bus.
func (a Action) Key() string {
	if int(a) < len(keys) {
		return keys[a]
	}
	return ""
} // func (a Action) Key() string

// String returns the human-readable label for the Action.
func (a Action) String() string {
	if int(a) < len(labels) {
		return labels[a]
	}
	return "Invalid"
} // func (a Action) String() string

// Parse looks up the Action for a key as returned by Key.
func Parse(key string) (Action, bool) {
	for i, k := range keys {
		if k == key {
			return Action(i), true
		}
	}

	return 0, false
} // func Parse(key string) (Action, bool)
