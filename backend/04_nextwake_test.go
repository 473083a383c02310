// /home/krylon/go/src/github.com/blicero/medalert/backend/04_nextwake_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 22:05:13 krylon>

package backend

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/config"
	"github.com/blicero/medalert/database"
	"github.com/blicero/medalert/objects"
)

func nextWakeIn(d *Daemon, now time.Time) time.Duration {
	d.timerLock.Lock()
	defer d.timerLock.Unlock()
	if d.nextWake.IsZero() {
		return 0
	}
	return d.nextWake.Sub(now)
} // func nextWakeIn(d *Daemon, now time.Time) time.Duration

func TestNextDueTimer(t *testing.T) {
	var (
		err   error
		d     *Daemon
		store *database.Store
		path  = filepath.Join(common.BaseDir, "nextdue.db")
		clk   = &testClock{now: t0}
		soon  = objects.Reminder{
			ID:      "soon",
			Subject: "Aspirin",
			DueAt:   t0.Add(10 * time.Minute),
		}
		late = objects.Reminder{
			ID:      "late",
			Subject: "Aspirin",
			DueAt:   t0.Add(90 * time.Minute),
		}
		now = objects.Reminder{
			ID:      "now",
			Subject: "Aspirin",
			DueAt:   t0.Add(10 * time.Second),
		}
	)

	if store, err = database.NewStore(path, 1); err != nil {
		t.Fatalf("Cannot open Store at %s: %s", path, err.Error())
	} else if d, err = create(testConfig(config.StrategyNextDue), store, new(fakeNotifier)); err != nil {
		store.Close() // nolint: errcheck
		t.Fatalf("Cannot create Daemon: %s", err.Error())
	}

	d.clock = clk.Now
	defer d.Banish() // nolint: errcheck

	if delay := nextWakeIn(d, t0); delay != 0 {
		t.Errorf("Timer is armed with nothing to wait for: %s", delay)
	}

	for _, r := range []objects.Reminder{late, soon} {
		if err = d.SaveReminder(&r); err != nil {
			t.Fatalf("Cannot save Reminder %s: %s", r.ID, err.Error())
		}
	}

	if delay := nextWakeIn(d, t0); delay != 10*time.Minute-30*time.Second {
		t.Errorf("Next wakeup in %s, expected %s",
			delay,
			10*time.Minute-30*time.Second)
	}

	if err = d.SaveReminder(&now); err != nil {
		t.Fatalf("Cannot save Reminder %s: %s", now.ID, err.Error())
	} else if delay := nextWakeIn(d, t0); delay != 5*time.Second {
		t.Errorf("Next wakeup in %s, expected it to be clamped to 5s", delay)
	}

	if err = d.DeleteReminder(now.ID); err != nil {
		t.Fatalf("Cannot delete Reminder %s: %s", now.ID, err.Error())
	} else if delay := nextWakeIn(d, t0); delay != 10*time.Minute-30*time.Second {
		t.Errorf("Next wakeup in %s after delete, expected %s",
			delay,
			10*time.Minute-30*time.Second)
	}

	// A superseded timer firing must not run a cycle.
	d.timerLock.Lock()
	var stale = d.timerGen - 1
	d.timerLock.Unlock()

	d.wake(stale)

	if st := d.Status(); !st.LastCycle.IsZero() {
		t.Errorf("Superseded wakeup ran a cycle at %s",
			st.LastCycle.Format(time.RFC3339))
	} else if st.Pending != 2 {
		t.Errorf("Status reports %d pending Reminders, expected 2", st.Pending)
	} else if st.Strategy != config.StrategyNextDue {
		t.Errorf("Status reports strategy %q", st.Strategy)
	}
} // func TestNextDueTimer(t *testing.T)
