// /home/krylon/go/src/github.com/blicero/medalert/commands/02_cli_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 16:11:26 krylon>

package commands

import (
	"bytes"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blicero/medalert/backend"
	"github.com/blicero/medalert/clients/clientlib"
	"github.com/blicero/medalert/clients/planner"
	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/config"
	"github.com/blicero/medalert/objects"
)

var (
	daemon  *backend.Daemon
	address string
)

// run executes the command line given in args against the test daemon.
func run(args ...string) (string, error) {
	var (
		err error
		buf bytes.Buffer
		cmd = New()
	)

	args = append([]string{"--appdir", common.BaseDir, "--address", address}, args...)

	cmd.SetArgs(args)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	err = cmd.Execute()
	return buf.String(), err
} // func run(args ...string) (string, error)

func TestCLISummon(t *testing.T) {
	var (
		err    error
		cfg    *config.Config
		l      net.Listener
		client *clientlib.Client
	)

	if l, err = net.Listen("tcp", "localhost:0"); err != nil {
		t.Fatalf("Cannot find a free port: %s", err.Error())
	}

	address = l.Addr().String()
	l.Close() // nolint: errcheck

	if cfg, err = config.Load(""); err != nil {
		t.Fatalf("Cannot load configuration: %s", err.Error())
	}

	cfg.Daemon.Address = address
	cfg.Daemon.Notifier = config.NotifierLog
	cfg.Database.Path = filepath.Join(common.BaseDir, "cli.db")

	if daemon, err = backend.Summon(cfg); err != nil {
		daemon = nil
		t.Fatalf("Cannot summon Daemon: %s", err.Error())
	} else if client, err = clientlib.NewClient(serverURL(address), time.Second); err != nil {
		t.Fatalf("Cannot create Client: %s", err.Error())
	}

	for i := 0; i < 50; i++ {
		if err = client.KeepAlive(); err == nil {
			return
		}
		time.Sleep(time.Millisecond * 50)
	}

	daemon = nil
	t.Fatalf("Daemon does not answer: %s", err.Error())
} // func TestCLISummon(t *testing.T)

func TestCLIVersion(t *testing.T) {
	var (
		err error
		out string
	)

	if out, err = run("version"); err != nil {
		t.Fatalf("version failed: %s", err.Error())
	} else if !strings.Contains(out, common.Version) {
		t.Errorf("version does not print the version number: %q", out)
	}
} // func TestCLIVersion(t *testing.T)

func TestCLIScheduleLifecycle(t *testing.T) {
	if daemon == nil {
		t.SkipNow()
	}

	var (
		err   error
		out   string
		book  *planner.Book
		list  []*planner.Schedule
		start = time.Now().AddDate(0, 0, 2).Format(common.TimestampFormatDate)
	)

	if out, err = run("add", "--name", "Aspirin", "--start", start, "--days", "2",
		"--time", "08:00", "--time", "20:00"); err != nil {
		t.Fatalf("add failed: %s\n%s", err.Error(), out)
	} else if !strings.Contains(out, "4 reminder(s)") {
		t.Errorf("Unexpected output from add: %q", out)
	}

	if _, err = run("add", "--name", "", "--time", "08:00"); err == nil {
		t.Error("add without a medicine name succeeded")
	}

	if out, err = run("schedules"); err != nil {
		t.Fatalf("schedules failed: %s", err.Error())
	} else if !strings.Contains(out, "Aspirin") || !strings.Contains(out, "08:00, 20:00") {
		t.Errorf("schedules does not list the new schedule:\n%s", out)
	}

	if out, err = run("reminders", "--pending"); err != nil {
		t.Fatalf("reminders failed: %s", err.Error())
	} else if n := strings.Count(out, "Aspirin"); n != 4 {
		t.Errorf("Expected 4 pending reminders, found %d:\n%s", n, out)
	}

	if _, err = run("check"); err != nil {
		t.Errorf("check failed: %s", err.Error())
	}

	if book, err = planner.OpenBook(filepath.Join(common.BaseDir, "schedules")); err != nil {
		t.Fatalf("Cannot open Book: %s", err.Error())
	} else if list, err = book.List(); err != nil {
		t.Fatalf("Cannot list Schedules: %s", err.Error())
	} else if len(list) != 1 {
		t.Fatalf("Expected 1 Schedule, found %d", len(list))
	}

	if out, err = run("remove", list[0].ID); err != nil {
		t.Fatalf("remove failed: %s\n%s", err.Error(), out)
	} else if out, err = run("reminders"); err != nil {
		t.Fatalf("reminders failed: %s", err.Error())
	} else if strings.Contains(out, "Aspirin") {
		t.Errorf("Reminders survived removal of their schedule:\n%s", out)
	}
} // func TestCLIScheduleLifecycle(t *testing.T)

func TestCLISnoozeAck(t *testing.T) {
	if daemon == nil {
		t.SkipNow()
	}

	var (
		err error
		out string
		r   = objects.Reminder{
			ID:      "manual_2024-01-01_0800",
			Subject: "Ibuprofen",
			DueAt:   time.Now().Add(-30 * time.Second),
		}
	)

	if _, err = run("snooze", r.ID); err == nil {
		t.Error("Snoozing an unknown reminder succeeded")
	}

	if err = daemon.SaveReminder(&r); err != nil {
		t.Fatalf("Cannot save Reminder: %s", err.Error())
	}

	daemon.Check()

	if out, err = run("snooze", "--minutes", "10", r.ID); err != nil {
		t.Fatalf("snooze failed: %s\n%s", err.Error(), out)
	} else if !strings.Contains(out, "Snoozed until") {
		t.Errorf("Unexpected output from snooze: %q", out)
	}

	if out, err = run("ack", r.ID); err != nil {
		t.Errorf("ack failed: %s\n%s", err.Error(), out)
	} else if _, err = run("ack", "no-such-reminder"); err == nil {
		t.Error("Acknowledging an unknown reminder succeeded")
	}
} // func TestCLISnoozeAck(t *testing.T)

func TestCLIBanish(t *testing.T) {
	if daemon == nil {
		t.SkipNow()
	}

	if err := daemon.Banish(); err != nil {
		t.Errorf("Cannot banish Daemon: %s", err.Error())
	}

	daemon = nil
} // func TestCLIBanish(t *testing.T)
