// /home/krylon/go/src/github.com/blicero/medalert/objects/message.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 10:40:17 krylon>

package objects

import "time"

//go:generate ffjson message.go

// MsgType identifies the kind of a Message sent between the foreground
// and the daemon.
type MsgType string

// Message types understood by the daemon, plus the one it sends
// on its own accord.
const (
	MsgSaveReminder      MsgType = "SAVE_REMINDER"
	MsgDeleteReminder    MsgType = "DELETE_REMINDER"
	MsgCheckNow          MsgType = "CHECK_NOW"
	MsgGetAllReminders   MsgType = "GET_ALL_REMINDERS"
	MsgSnoozeReminder    MsgType = "SNOOZE_REMINDER"
	MsgAckReminder       MsgType = "ACK_REMINDER"
	MsgKeepAlive         MsgType = "KEEP_ALIVE"
	MsgReminderTriggered MsgType = "REMINDER_TRIGGERED"
)

// Message is a request from a foreground client to the daemon.
// Which of the payload fields must be set depends on the Type.
type Message struct {
	Type     MsgType   `json:"type"`
	Corr     string    `json:"corr,omitempty"`
	Reminder *Reminder `json:"reminder,omitempty"`
	ID       string    `json:"id,omitempty"`
	Minutes  int       `json:"minutes,omitempty"`
}

// Valid returns true if the Message has a known type and carries the
// payload that type requires.
func (m *Message) Valid() bool {
	switch m.Type {
	case MsgSaveReminder:
		return m.Reminder != nil &&
			m.Reminder.ID != "" &&
			m.Reminder.Subject != "" &&
			!m.Reminder.DueAt.IsZero()
	case MsgDeleteReminder, MsgSnoozeReminder, MsgAckReminder:
		return m.ID != "" && m.Minutes >= 0
	case MsgCheckNow, MsgGetAllReminders, MsgKeepAlive:
		return true
	default:
		return false
	}
} // func (m *Message) Valid() bool

// Event is pushed from the daemon to connected foreground clients.
type Event struct {
	Type     MsgType   `json:"type"`
	Reminder Reminder  `json:"reminder"`
	Time     time.Time `json:"time"`
}

// Status describes the state of the daemon's scheduler.
type Status struct {
	Alive     bool      `json:"alive"`
	Strategy  string    `json:"strategy"`
	LastCycle time.Time `json:"lastCycle"`
	NextWake  time.Time `json:"nextWake"`
	Pending   int       `json:"pending"`
	Listeners int       `json:"listeners"`
}
