// /home/krylon/go/src/github.com/blicero/medalert/objects/01_reminder_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 17:55:30 krylon>

package objects

import (
	"strings"
	"testing"
	"time"
)

func TestMakeID(t *testing.T) {
	var id = MakeID("1704096000000", "2024-01-01", "08:30")

	if id != "1704096000000_2024-01-01_0830" {
		t.Errorf("Unexpected ID: %q", id)
	}
} // func TestMakeID(t *testing.T)

func TestSnoozed(t *testing.T) {
	var (
		now  = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		orig = Reminder{
			ID:        "42_2024-01-01_0955",
			Subject:   "Aspirin",
			DueAt:     time.Date(2024, 1, 1, 9, 55, 0, 0, time.UTC),
			Triggered: true,
		}
		snoozed = orig.Snoozed(now, 5*time.Minute)
	)

	if !snoozed.DueAt.Equal(time.Date(2024, 1, 1, 10, 5, 0, 0, time.UTC)) {
		t.Errorf("Unexpected due time of snoozed Reminder: %s",
			snoozed.DueAt.Format(time.RFC3339))
	}

	if snoozed.Triggered {
		t.Error("Snoozed Reminder must not be triggered")
	} else if snoozed.ID == orig.ID {
		t.Errorf("Snoozed Reminder reuses the original ID %q", orig.ID)
	} else if snoozed.Subject != "Aspirin" {
		t.Errorf("Snoozed Reminder has wrong subject %q", snoozed.Subject)
	} else if !orig.Triggered {
		t.Error("Original Reminder was modified")
	} else if snoozed.Origin != orig.ID {
		t.Errorf("Origin of snoozed Reminder is %q, expected %q",
			snoozed.Origin,
			orig.ID)
	}

	// Snoozing again keeps pointing at the root occurrence.
	var again = snoozed.Snoozed(now.Add(10*time.Minute), 5*time.Minute)

	if again.Origin != orig.ID {
		t.Errorf("Second snooze has origin %q, expected %q",
			again.Origin,
			orig.ID)
	} else if !strings.HasPrefix(again.ID, orig.ID+"_snooze_") {
		t.Errorf("Unexpected ID for second snooze: %q", again.ID)
	} else if again.ID == snoozed.ID {
		t.Errorf("Second snooze reuses ID %q", again.ID)
	}
} // func TestSnoozed(t *testing.T)

func TestMessageValid(t *testing.T) {
	type testCase struct {
		msg   Message
		valid bool
	}

	var cases = []testCase{
		{msg: Message{Type: MsgCheckNow}, valid: true},
		{msg: Message{Type: MsgKeepAlive}, valid: true},
		{msg: Message{Type: MsgGetAllReminders}, valid: true},
		{msg: Message{Type: MsgDeleteReminder}, valid: false},
		{msg: Message{Type: MsgDeleteReminder, ID: "abc"}, valid: true},
		{msg: Message{Type: MsgSaveReminder}, valid: false},
		{
			msg: Message{
				Type:     MsgSaveReminder,
				Reminder: &Reminder{ID: "x", Subject: "Aspirin"},
			},
			valid: false,
		},
		{
			msg: Message{
				Type: MsgSaveReminder,
				Reminder: &Reminder{
					ID:      "x",
					Subject: "Aspirin",
					DueAt:   time.Now(),
				},
			},
			valid: true,
		},
		{msg: Message{Type: "RESET_EVERYTHING"}, valid: false},
		{msg: Message{}, valid: false},
	}

	for i, c := range cases {
		if v := c.msg.Valid(); v != c.valid {
			t.Errorf("Case %d (%s): Valid() returned %t, expected %t",
				i,
				c.msg.Type,
				v,
				c.valid)
		}
	}
} // func TestMessageValid(t *testing.T)
