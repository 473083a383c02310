// /home/krylon/go/src/github.com/blicero/medalert/clients/clientlib/01_client_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 10:21:37 krylon>

package clientlib

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/blicero/medalert/backend"
	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/config"
	"github.com/blicero/medalert/objects"
)

var (
	daemon *backend.Daemon
	client *Client
	dueRem *objects.Reminder
)

func freeAddress() (string, error) {
	var (
		err error
		l   net.Listener
	)

	if l, err = net.Listen("tcp", "localhost:0"); err != nil {
		return "", err
	}

	defer l.Close() // nolint: errcheck
	return l.Addr().String(), nil
} // func freeAddress() (string, error)

func TestSummonDaemon(t *testing.T) {
	var (
		err  error
		cfg  *config.Config
		addr string
	)

	if cfg, err = config.Load(""); err != nil {
		t.Fatalf("Cannot load configuration: %s", err.Error())
	} else if addr, err = freeAddress(); err != nil {
		t.Fatalf("Cannot find a free port: %s", err.Error())
	}

	cfg.Daemon.Address = addr
	cfg.Daemon.Notifier = config.NotifierLog
	cfg.Database.Path = filepath.Join(common.BaseDir, "client.db")

	if daemon, err = backend.Summon(cfg); err != nil {
		daemon = nil
		t.Fatalf("Cannot summon Daemon: %s", err.Error())
	} else if client, err = NewClient("http://"+addr, time.Second*5); err != nil {
		client = nil
		t.Fatalf("Cannot create Client: %s", err.Error())
	}

	// The web server comes up in the background.
	for i := 0; i < 50; i++ {
		if err = client.KeepAlive(); err == nil {
			return
		}
		time.Sleep(time.Millisecond * 50)
	}

	t.Fatalf("Daemon does not answer: %s", err.Error())
} // func TestSummonDaemon(t *testing.T)

func TestSaveReminders(t *testing.T) {
	if client == nil {
		t.SkipNow()
	}

	var (
		err    error
		list   []objects.Reminder
		day    = time.Now().Add(time.Hour * 48)
		date   = day.Format(common.TimestampFormatDate)
		batch  = make([]objects.Reminder, 0, 3)
		failed map[string]error
		saved  int
	)

	for _, hm := range []string{"08:00", "12:00", "20:00"} {
		var due, _ = time.ParseInLocation(
			common.TimestampFormatMinute,
			date+" "+hm,
			time.Local)

		batch = append(batch, objects.Reminder{
			ID:      objects.MakeID("client", date, hm),
			Subject: "Aspirin",
			DueAt:   due,
		})
	}

	if saved, failed = client.SaveReminders(batch); saved != len(batch) {
		t.Fatalf("Saved %d of %d Reminders: %v", saved, len(batch), failed)
	} else if list, err = client.GetAllReminders(); err != nil {
		t.Fatalf("Cannot list Reminders: %s", err.Error())
	} else if len(list) != len(batch) {
		t.Errorf("Daemon has %d Reminders, expected %d", len(list), len(batch))
	}
} // func TestSaveReminders(t *testing.T)

func TestDueEvent(t *testing.T) {
	if client == nil {
		t.SkipNow()
	}

	var (
		err         error
		st          *objects.Status
		ctx, cancel = context.WithCancel(context.Background())
		events      = make(chan objects.Event, 4)
		done        = make(chan error, 1)
	)
	defer cancel()

	dueRem = &objects.Reminder{
		ID:      objects.MakeID("client", "now", "0000"),
		Subject: "Ibuprofen",
		DueAt:   time.Now().Truncate(time.Second),
	}

	go func() {
		done <- client.Listen(ctx, func(ev objects.Event) { events <- ev })
	}()

	for i := 0; i < 50; i++ {
		if st, err = client.Status(); err != nil {
			t.Fatalf("Cannot get Status: %s", err.Error())
		} else if st.Listeners > 0 {
			break
		}
		time.Sleep(time.Millisecond * 20)
	}

	if st.Listeners == 0 {
		t.Fatal("Event subscription did not show up")
	} else if err = client.SaveReminder(dueRem); err != nil {
		t.Fatalf("Cannot save Reminder: %s", err.Error())
	} else if err = client.CheckNow(); err != nil {
		t.Fatalf("Cannot trigger check: %s", err.Error())
	}

	select {
	case ev := <-events:
		if ev.Type != objects.MsgReminderTriggered {
			t.Errorf("Unexpected Event type %s", ev.Type)
		} else if ev.Reminder.ID != dueRem.ID {
			t.Errorf("Event is about %s, expected %s",
				ev.Reminder.ID,
				dueRem.ID)
		}
	case <-time.After(time.Second * 10):
		t.Fatal("No Event was received")
	}

	cancel()

	select {
	case err = <-done:
		if err != nil {
			t.Errorf("Listen returned an error: %s", err.Error())
		}
	case <-time.After(time.Second * 5):
		t.Error("Listen did not return after cancellation")
	}
} // func TestDueEvent(t *testing.T)

func TestSnoozeAndDelete(t *testing.T) {
	if client == nil || dueRem == nil {
		t.SkipNow()
	}

	var (
		err     error
		snoozed *objects.Reminder
		list    []objects.Reminder
	)

	if snoozed, err = client.Snooze(dueRem.ID, 10); err != nil {
		t.Fatalf("Cannot snooze Reminder %s: %s", dueRem.ID, err.Error())
	} else if snoozed.Origin != dueRem.ID {
		t.Errorf("Snoozed Reminder has origin %q, expected %q",
			snoozed.Origin,
			dueRem.ID)
	} else if d := snoozed.DueAt.Sub(time.Now()); d < 9*time.Minute || d > 11*time.Minute {
		t.Errorf("Snoozed Reminder is due in %s, expected about 10 minutes", d)
	} else if err = client.Acknowledge(dueRem.ID); err != nil {
		t.Errorf("Cannot acknowledge Reminder %s: %s", dueRem.ID, err.Error())
	}

	if _, err = client.Snooze("no_such_reminder", 0); err == nil {
		t.Error("Snoozing a missing Reminder succeeded")
	}

	if err = client.DeleteReminder(dueRem.ID); err != nil {
		t.Fatalf("Cannot delete Reminder %s: %s", dueRem.ID, err.Error())
	} else if list, err = client.GetAllReminders(); err != nil {
		t.Fatalf("Cannot list Reminders: %s", err.Error())
	}

	for _, r := range list {
		if r.Root() == dueRem.ID {
			t.Errorf("Reminder %s survived deletion of %s", r.ID, dueRem.ID)
		}
	}
} // func TestSnoozeAndDelete(t *testing.T)

func TestBanishDaemon(t *testing.T) {
	if daemon == nil {
		t.SkipNow()
	} else if err := daemon.Banish(); err != nil {
		t.Errorf("Cannot banish Daemon: %s", err.Error())
	}
} // func TestBanishDaemon(t *testing.T)
