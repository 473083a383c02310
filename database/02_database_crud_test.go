// /home/krylon/go/src/github.com/blicero/medalert/database/02_database_crud_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 14:31:20 krylon>

package database

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/blicero/medalert/objects"
)

const (
	itemCnt   = 32
	maxOffset = time.Hour * 168
)

var items []*objects.Reminder

func init() {
	items = make([]*objects.Reminder, itemCnt)

	var now = time.Now().Truncate(time.Second)

	for i := range items {
		var (
			due = now.Add(time.Duration(rand.Int63n(int64(maxOffset))))
			r   = &objects.Reminder{
				ID: objects.MakeID(
					"test",
					due.Format("2006-01-02"),
					fmt.Sprintf("%02d:%02d", i/2, (i%2)*30)),
				Subject: fmt.Sprintf("TEST #%03d", i),
				DueAt:   due.Truncate(time.Second),
			}
		)

		items[i] = r
	}
}

func TestReminderUpsert(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for _, r := range items {
		var err error

		if err = db.ReminderUpsert(r); err != nil {
			t.Fatalf("Cannot add Reminder %s: %s",
				r.ID,
				err.Error())
		} else if r.Created.IsZero() {
			t.Errorf("Creation time of Reminder %s was not set", r.ID)
		}
	}

	// Saving the same Reminders again must not create duplicates.
	for _, r := range items[:4] {
		if err := db.ReminderUpsert(r); err != nil {
			t.Fatalf("Cannot save Reminder %s a second time: %s",
				r.ID,
				err.Error())
		}
	}
} // func TestReminderUpsert(t *testing.T)

func TestReminderGetAll(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		rem []objects.Reminder
	)

	if rem, err = db.ReminderGetAll(); err != nil {
		t.Fatalf("Cannot fetch all Reminders: %s",
			err.Error())
	} else if len(rem) != len(items) {
		t.Fatalf("Unexpected number of Reminders: %d (expected %d)",
			len(rem),
			len(items))
	}

	for i := 1; i < len(rem); i++ {
		if rem[i].DueAt.Before(rem[i-1].DueAt) {
			t.Errorf("Reminders are not ordered by due time: %s comes after %s",
				rem[i].DueAt.Format(time.RFC3339),
				rem[i-1].DueAt.Format(time.RFC3339))
		}
	}
} // func TestReminderGetAll(t *testing.T)

func TestReminderGetByID(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for _, r := range items {
		var (
			err error
			res *objects.Reminder
		)

		if res, err = db.ReminderGetByID(r.ID); err != nil {
			t.Fatalf("Cannot look up Reminder %s: %s",
				r.ID,
				err.Error())
		} else if res == nil {
			t.Fatalf("Reminder %s was not found", r.ID)
		} else if res.Subject != r.Subject || !res.DueAt.Equal(r.DueAt) {
			t.Errorf("Reminder from database does not match: %s <-> %s",
				res,
				r)
		}
	}

	if res, err := db.ReminderGetByID("no_such_reminder"); err != nil {
		t.Errorf("Looking up a missing Reminder yielded an error: %s",
			err.Error())
	} else if res != nil {
		t.Errorf("Looking up a missing Reminder returned %s", res)
	}
} // func TestReminderGetByID(t *testing.T)

func TestReminderSetTriggered(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err     error
		ok      bool
		r       = items[0]
		pending []objects.Reminder
	)

	if ok, err = db.ReminderSetTriggered(r.ID); err != nil {
		t.Fatalf("Cannot mark Reminder %s as triggered: %s",
			r.ID,
			err.Error())
	} else if !ok {
		t.Fatalf("Marking Reminder %s as triggered did not report a transition",
			r.ID)
	} else if ok, err = db.ReminderSetTriggered(r.ID); err != nil {
		t.Fatalf("Cannot mark Reminder %s as triggered again: %s",
			r.ID,
			err.Error())
	} else if ok {
		t.Errorf("Marking Reminder %s as triggered twice reported two transitions",
			r.ID)
	}

	if ok, err = db.ReminderSetTriggered("no_such_reminder"); err != nil || ok {
		t.Errorf("Marking a missing Reminder returned (%t, %v)", ok, err)
	}

	// Saving the untriggered version again must not reset the flag.
	if err = db.ReminderUpsert(r); err != nil {
		t.Fatalf("Cannot save Reminder %s: %s", r.ID, err.Error())
	} else if pending, err = db.ReminderGetPending(); err != nil {
		t.Fatalf("Cannot get pending Reminders: %s", err.Error())
	} else if len(pending) != len(items)-1 {
		t.Errorf("Unexpected number of pending Reminders: %d (expected %d)",
			len(pending),
			len(items)-1)
	}

	for _, p := range pending {
		if p.ID == r.ID {
			t.Errorf("Triggered Reminder %s is still pending", r.ID)
		}
	}
} // func TestReminderSetTriggered(t *testing.T)

func TestReminderDeleteCascade(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err     error
		all     []objects.Reminder
		root    = items[1]
		now     = time.Now()
		snooze1 = root.Snoozed(now, 5*time.Minute)
		snooze2 = snooze1.Snoozed(now.Add(time.Second), 5*time.Minute)
	)

	for _, s := range []*objects.Reminder{&snooze1, &snooze2} {
		if err = db.ReminderUpsert(s); err != nil {
			t.Fatalf("Cannot save snoozed Reminder %s: %s",
				s.ID,
				err.Error())
		}
	}

	if err = db.ReminderDelete(root.ID); err != nil {
		t.Fatalf("Cannot delete Reminder %s: %s", root.ID, err.Error())
	} else if all, err = db.ReminderGetAll(); err != nil {
		t.Fatalf("Cannot fetch all Reminders: %s", err.Error())
	} else if len(all) != len(items)-1 {
		t.Errorf("Unexpected number of Reminders after delete: %d (expected %d)",
			len(all),
			len(items)-1)
	}

	for _, r := range all {
		if r.Root() == root.ID {
			t.Errorf("Reminder %s survived deletion of %s",
				r.ID,
				root.ID)
		}
	}

	if err = db.ReminderDelete(root.ID); err != nil {
		t.Errorf("Deleting a missing Reminder failed: %s", err.Error())
	}
} // func TestReminderDeleteCascade(t *testing.T)

// The due time is part of a Reminder's identity, saving a Reminder again
// with a different due time must leave the stored one alone.
func TestReminderDueFixed(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		res   *objects.Reminder
		r     = items[3]
		moved = *r
	)

	moved.DueAt = r.DueAt.Add(time.Hour)

	if err = db.ReminderUpsert(&moved); err != nil {
		t.Fatalf("Cannot save Reminder %s: %s", moved.ID, err.Error())
	} else if res, err = db.ReminderGetByID(r.ID); err != nil {
		t.Fatalf("Cannot look up Reminder %s: %s", r.ID, err.Error())
	} else if res == nil {
		t.Fatalf("Reminder %s was not found", r.ID)
	} else if !res.DueAt.Equal(r.DueAt) {
		t.Errorf("Due time of Reminder %s changed from %s to %s",
			r.ID,
			r.DueAt.Format(time.RFC3339),
			res.DueAt.Format(time.RFC3339))
	}
} // func TestReminderDueFixed(t *testing.T)

func TestReminderAddUnique(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		res   *objects.Reminder
		orig  = items[2]
		added = make([]string, 0, 2)
	)

	for i := 1; i <= 2; i++ {
		var (
			dup      = *orig
			expected = fmt.Sprintf("%s_%d", orig.ID, i)
		)

		dup.Subject = fmt.Sprintf("DUPLICATE #%d", i)

		if err = db.ReminderAddUnique(&dup); err != nil {
			t.Fatalf("Cannot add duplicate #%d of Reminder %s: %s",
				i,
				orig.ID,
				err.Error())
		} else if dup.ID != expected {
			t.Fatalf("Unexpected ID for duplicate #%d: %s (expected %s)",
				i,
				dup.ID,
				expected)
		} else if res, err = db.ReminderGetByID(dup.ID); err != nil {
			t.Fatalf("Cannot look up Reminder %s: %s", dup.ID, err.Error())
		} else if res == nil || res.Subject != dup.Subject {
			t.Errorf("Reminder %s was not stored correctly: %v", dup.ID, res)
		}

		added = append(added, dup.ID)
	}

	if db.tx != nil {
		t.Errorf("Transaction is still open after ReminderAddUnique")
	}

	if res, err = db.ReminderGetByID(orig.ID); err != nil {
		t.Fatalf("Cannot look up Reminder %s: %s", orig.ID, err.Error())
	} else if res == nil || res.Subject != orig.Subject {
		t.Errorf("Original Reminder %s was modified: %v", orig.ID, res)
	}

	for _, id := range added {
		if err = db.ReminderDelete(id); err != nil {
			t.Errorf("Cannot delete Reminder %s: %s", id, err.Error())
		}
	}
} // func TestReminderAddUnique(t *testing.T)

func TestCloseDatabase(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	if err := db.Close(); err != nil {
		t.Errorf("Cannot close database: %s", err.Error())
	}

	db = nil
} // func TestCloseDatabase(t *testing.T)
