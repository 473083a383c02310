// /home/krylon/go/src/github.com/blicero/medalert/backend/loop.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 18:22:57 krylon>

package backend

import (
	"fmt"
	"time"

	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/config"
	"github.com/blicero/medalert/objects"
	"github.com/robfig/cron/v3"
)

func (d *Daemon) useCadence() bool {
	return d.cfg.Strategy == config.StrategyCadence ||
		d.cfg.Strategy == config.StrategyBoth
} // func (d *Daemon) useCadence() bool

func (d *Daemon) useNextDue() bool {
	return d.cfg.Strategy == config.StrategyNextDue ||
		d.cfg.Strategy == config.StrategyBoth
} // func (d *Daemon) useNextDue() bool

// startScheduler sets up the wakeup sources for the configured strategy
// and runs the first cycle right away, so Reminders that came due while
// the Daemon was not running are delivered without waiting for a wakeup.
func (d *Daemon) startScheduler() error {
	var err error

	if d.useCadence() {
		var spec = fmt.Sprintf("@every %s", d.cfg.PollInterval)

		d.sched = cron.New(cron.WithLogger(cron.PrintfLogger(d.log)))

		if _, err = d.sched.AddFunc(spec, d.cadenceTick); err != nil {
			d.log.Printf("[ERROR] Cannot schedule periodic check %q: %s\n",
				spec,
				err.Error())
			return err
		}

		d.sched.Start()
		d.log.Printf("[INFO] Checking for due Reminders %s\n", spec)
	}

	go d.Check()

	return nil
} // func (d *Daemon) startScheduler() error

func (d *Daemon) stopScheduler() {
	if d.sched != nil {
		var ctx = d.sched.Stop()
		select {
		case <-ctx.Done():
		case <-time.After(shutdownTimeout):
			d.log.Println("[ERROR] Timed out waiting for periodic check to finish")
		}
	}

	d.timerLock.Lock()
	d.timerGen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.nextWake = time.Time{}
	d.timerLock.Unlock()
} // func (d *Daemon) stopScheduler()

func (d *Daemon) cadenceTick() {
	d.Check()
} // func (d *Daemon) cadenceTick()

// Check runs one scheduling cycle: it loads the pending Reminders,
// dispatches those that are due and re-arms the wakeup timer.
// Cycles never run concurrently. Errors are logged, they never stop the
// scheduler.
func (d *Daemon) Check() []DispatchResult {
	d.cycleLock.Lock()
	defer d.cycleLock.Unlock()

	if !d.IsAlive() {
		return nil
	}

	var (
		err     error
		now     = d.clock()
		pending []objects.Reminder
		results []DispatchResult
	)

	d.lastCycle = now

	if pending, err = d.store.ReminderGetPending(); err != nil {
		d.log.Printf("[ERROR] Cannot get pending Reminders from Database: %s\n",
			err.Error())
		// Without the Reminders there is no way to tell when to wake up
		// next, so try again after one poll interval.
		d.armTimer(d.cfg.PollInterval)
		return nil
	}

	var dueList = d.policy.Evaluate(pending, now)

	if len(dueList) > 0 {
		d.log.Printf("[DEBUG] %d of %d pending Reminder(s) are due at %s\n",
			len(dueList),
			len(pending),
			now.Format(common.TimestampFormat))
	}

	results = make([]DispatchResult, 0, len(dueList))
	var handled = make(map[string]bool, len(dueList))

	for idx := range dueList {
		var res = d.dispatch(&dueList[idx])
		results = append(results, res)
		handled[res.ID] = true
	}

	for idx := range pending {
		if handled[pending[idx].ID] {
			pending[idx].Triggered = true
		}
	}

	d.reschedule(pending, now)

	return results
} // func (d *Daemon) Check() []DispatchResult

// rearm recomputes the next wakeup after the set of Reminders changed.
func (d *Daemon) rearm() {
	if !d.useNextDue() || !d.IsAlive() {
		return
	}

	d.cycleLock.Lock()
	defer d.cycleLock.Unlock()

	var (
		err     error
		pending []objects.Reminder
	)

	if pending, err = d.store.ReminderGetPending(); err != nil {
		d.log.Printf("[ERROR] Cannot get pending Reminders from Database: %s\n",
			err.Error())
		d.armTimer(d.cfg.PollInterval)
		return
	}

	d.reschedule(pending, d.clock())
} // func (d *Daemon) rearm()

func (d *Daemon) reschedule(pending []objects.Reminder, now time.Time) {
	if !d.useNextDue() {
		return
	}

	var delay, ok = d.policy.NextWake(pending, now)

	if !ok {
		d.disarmTimer()
		return
	}

	d.armTimer(delay)
} // func (d *Daemon) reschedule(pending []objects.Reminder, now time.Time)

// armTimer replaces the pending wakeup, if any, by one after delay.
// A timer that was replaced but fires anyway does nothing.
func (d *Daemon) armTimer(delay time.Duration) {
	if !d.useNextDue() {
		return
	}

	d.timerLock.Lock()
	defer d.timerLock.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timerGen++
	var gen = d.timerGen

	d.nextWake = d.clock().Add(delay)
	d.timer = time.AfterFunc(delay, func() { d.wake(gen) })

	d.log.Printf("[TRACE] Next wakeup in %s (at %s)\n",
		delay,
		d.nextWake.Format(common.TimestampFormat))
} // func (d *Daemon) armTimer(delay time.Duration)

func (d *Daemon) disarmTimer() {
	d.timerLock.Lock()
	defer d.timerLock.Unlock()

	d.timerGen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.nextWake = time.Time{}
} // func (d *Daemon) disarmTimer()

func (d *Daemon) wake(gen uint64) {
	d.timerLock.Lock()
	var (
		current = gen == d.timerGen
		planned = d.nextWake
	)
	d.timerLock.Unlock()

	if !current {
		d.log.Printf("[TRACE] Ignore superseded wakeup #%d\n", gen)
		return
	}

	// The host may have been suspended or the clock may have been set.
	if skew := d.clock().Sub(planned); durAbs(skew) > d.cfg.MinDelay {
		d.log.Printf("[WARN] Wakeup is off by %s (planned for %s)\n",
			skew,
			planned.Format(common.TimestampFormat))
	}

	d.Check()
} // func (d *Daemon) wake(gen uint64)

// Status reports the state of the scheduler.
func (d *Daemon) Status() objects.Status {
	var st = objects.Status{
		Alive:     d.IsAlive(),
		Strategy:  d.cfg.Strategy,
		Listeners: d.hub.count(),
	}

	d.cycleLock.Lock()
	st.LastCycle = d.lastCycle
	d.cycleLock.Unlock()

	d.timerLock.Lock()
	st.NextWake = d.nextWake
	d.timerLock.Unlock()

	if pending, err := d.store.ReminderGetPending(); err != nil {
		d.log.Printf("[ERROR] Cannot count pending Reminders: %s\n",
			err.Error())
	} else {
		st.Pending = len(pending)
	}

	return st
} // func (d *Daemon) Status() objects.Status
