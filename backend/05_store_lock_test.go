// /home/krylon/go/src/github.com/blicero/medalert/backend/05_store_lock_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-15 11:40:02 krylon>

package backend

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/config"
	"github.com/blicero/medalert/database"
	"github.com/blicero/medalert/objects"
)

// A cycle must not hang when another process holds the database's write
// lock. The due Reminder is displayed anyway, and the failure is reported.
func TestCheckLockedStore(t *testing.T) {
	var (
		err   error
		store *database.Store
		d     *Daemon
		raw   *sql.DB
		tx    *sql.Tx
		path  = filepath.Join(common.BaseDir, "locked.db")
		n     = new(fakeNotifier)
		done  = make(chan []DispatchResult, 1)
		r     = objects.Reminder{
			ID:      objects.MakeID("naproxen", "2024-01-01", "10:00"),
			Subject: "Naproxen",
			DueAt:   t0,
		}
	)

	if store, err = database.NewStore(path, 1); err != nil {
		t.Fatalf("Cannot open Store at %s: %s", path, err.Error())
	}
	defer store.Close() // nolint: errcheck

	if d, err = create(testConfig(config.StrategyCadence), store, n); err != nil {
		t.Fatalf("Cannot create Daemon: %s", err.Error())
	}

	d.clock = (&testClock{now: t0}).Now

	if err = d.SaveReminder(&r); err != nil {
		t.Fatalf("Cannot save Reminder %s: %s", r.ID, err.Error())
	} else if raw, err = sql.Open("sqlite3", path); err != nil {
		t.Fatalf("Cannot open second connection to %s: %s", path, err.Error())
	}
	defer raw.Close() // nolint: errcheck

	if tx, err = raw.Begin(); err != nil {
		t.Fatalf("Cannot begin transaction: %s", err.Error())
	}
	defer tx.Rollback() // nolint: errcheck

	if _, err = tx.Exec("UPDATE reminder SET subject = subject WHERE id = ?", r.ID); err != nil {
		t.Fatalf("Cannot lock database: %s", err.Error())
	}

	go func() {
		done <- d.Check()
	}()

	select {
	case res := <-done:
		if len(res) != 1 {
			t.Fatalf("Expected 1 dispatched Reminder, got %d", len(res))
		} else if res[0].Err == nil || res[0].Marked {
			t.Errorf("Failure to mark the Reminder was not reported: %s", &res[0])
		} else if !res[0].Displayed || n.shownCount(r.ID) != 1 {
			t.Errorf("Reminder was not displayed: %s", &res[0])
		}
	case <-time.After(15 * time.Second):
		t.Fatalf("Check did not return while the database was locked")
	}
} // func TestCheckLockedStore(t *testing.T)
