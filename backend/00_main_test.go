// /home/krylon/go/src/github.com/blicero/medalert/backend/00_main_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 20:11:38 krylon>

package backend

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/config"
	"github.com/blicero/medalert/objects"
)

// t0 is the point in time the tests pretend it is, at least initially.
var t0 = time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir string
	)

	if baseDir, err = os.MkdirTemp("", "medalert_backend_test"); err != nil {
		fmt.Printf("Cannot create temporary directory: %s\n", err.Error())
		os.Exit(1)
	}

	common.LogOutput = io.Discard

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if result = m.Run(); result == 0 {
		os.RemoveAll(baseDir) // nolint: errcheck
	} else {
		fmt.Printf(">>> TEST DIRECTORY: %s\n", baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)

func testConfig(strategy string) config.DaemonConfig {
	return config.DaemonConfig{
		Address:         "localhost:0",
		Strategy:        strategy,
		PollInterval:    30 * time.Second,
		Lead:            30 * time.Second,
		MinDelay:        5 * time.Second,
		ToleranceBefore: 2 * time.Minute,
		ToleranceAfter:  time.Minute,
		Snooze:          5 * time.Minute,
		Notifier:        config.NotifierLog,
	}
} // func testConfig(strategy string) config.DaemonConfig

type testClock struct {
	lock sync.Mutex
	now  time.Time
}

func (c *testClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
} // func (c *testClock) Now() time.Time

func (c *testClock) Set(t time.Time) {
	c.lock.Lock()
	c.now = t
	c.lock.Unlock()
} // func (c *testClock) Set(t time.Time)

var errDisplay = errors.New("notification service is gone")

// fakeNotifier records what it is asked to do instead of talking to the
// desktop.
type fakeNotifier struct {
	lock   sync.Mutex
	shown  []string
	closed []string
	fail   bool
}

func (n *fakeNotifier) Show(item objects.Notification) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	if n.fail {
		return errDisplay
	}

	n.shown = append(n.shown, item.Tag())
	return nil
} // func (n *fakeNotifier) Show(item objects.Notification) error

func (n *fakeNotifier) Close(id string) error {
	n.lock.Lock()
	n.closed = append(n.closed, id)
	n.lock.Unlock()
	return nil
} // func (n *fakeNotifier) Close(id string) error

func (n *fakeNotifier) Shutdown() error {
	return nil
} // func (n *fakeNotifier) Shutdown() error

func (n *fakeNotifier) shownCount(id string) int {
	n.lock.Lock()
	defer n.lock.Unlock()

	var cnt int
	for _, s := range n.shown {
		if s == id {
			cnt++
		}
	}

	return cnt
} // func (n *fakeNotifier) shownCount(id string) int

func (n *fakeNotifier) wasClosed(id string) bool {
	n.lock.Lock()
	defer n.lock.Unlock()

	for _, c := range n.closed {
		if c == id {
			return true
		}
	}

	return false
} // func (n *fakeNotifier) wasClosed(id string) bool

// brokenStore fails to mark Reminders as triggered.
type brokenStore struct {
	Store
}

func (s *brokenStore) ReminderSetTriggered(id string) (bool, error) {
	return false, errors.New("database is on fire")
} // func (s *brokenStore) ReminderSetTriggered(id string) (bool, error)
