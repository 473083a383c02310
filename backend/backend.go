// /home/krylon/go/src/github.com/blicero/medalert/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 16:02:44 krylon>

// Package backend implements the daemon, the part of the application that
// keeps running in the background, watches the Reminders in the database and
// notifies the user when one of them is due.
package backend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/config"
	"github.com/blicero/medalert/database"
	"github.com/blicero/medalert/due"
	"github.com/blicero/medalert/logdomain"
	"github.com/blicero/medalert/objects"
	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
)

const shutdownTimeout = time.Second * 3

// Store is the persistence the Daemon needs. database.Store implements it.
type Store interface {
	ReminderUpsert(r *objects.Reminder) error
	ReminderAddUnique(r *objects.Reminder) error
	ReminderGetAll() ([]objects.Reminder, error)
	ReminderGetPending() ([]objects.Reminder, error)
	ReminderGetByID(id string) (*objects.Reminder, error)
	ReminderSetTriggered(id string) (bool, error)
	ReminderDelete(id string) error
	Close() error
}

// Daemon is the centerpiece of the backend, coordinating between the
// database, the notification surface and the foreground clients.
type Daemon struct {
	log        *log.Logger
	cfg        config.DaemonConfig
	store      Store
	notifier   Notifier
	policy     due.Policy
	clock      func() time.Time
	lock       sync.RWMutex
	active     bool
	cycleLock  sync.Mutex
	lastCycle  time.Time
	sched      *cron.Cron
	timerLock  sync.Mutex
	timer      *time.Timer
	timerGen   uint64
	nextWake   time.Time
	hub        *eventHub
	web        http.Server
	router     *mux.Router
	listenAddr string
	idLock     sync.Mutex
	idCnt      int64
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is required.
// The Daemon opens the database, connects to the notification service and
// starts the scheduler and the bridge to the foreground.
func Summon(cfg *config.Config) (*Daemon, error) {
	krylib.Trace()

	var (
		err   error
		d     *Daemon
		store *database.Store
	)

	if store, err = database.NewStore(cfg.Database.Path, cfg.Database.PoolSize); err != nil {
		fmt.Printf("ERROR opening database %s: %s\n",
			cfg.Database.Path,
			err.Error())
		return nil, err
	} else if d, err = create(cfg.Daemon, store, nil); err != nil {
		store.Close() // nolint: errcheck
		return nil, err
	}

	d.notifier = d.openNotifier(cfg.Daemon.Notifier)

	if err = d.Start(); err != nil {
		d.log.Printf("[ERROR] Cannot start Daemon: %s\n",
			err.Error())
		d.notifier.Shutdown() // nolint: errcheck
		store.Close()         // nolint: errcheck
		return nil, err
	}

	return d, nil
} // func Summon(cfg *config.Config) (*Daemon, error)

// create sets up a Daemon without starting any of its background activity.
func create(cfg config.DaemonConfig, store Store, n Notifier) (*Daemon, error) {
	var (
		err error
		d   = &Daemon{
			cfg:        cfg,
			store:      store,
			notifier:   n,
			clock:      time.Now,
			active:     true,
			hub:        newEventHub(),
			router:     mux.NewRouter(),
			listenAddr: cfg.Address,
			policy: due.Policy{
				Before:   cfg.ToleranceBefore,
				After:    cfg.ToleranceAfter,
				Lead:     cfg.Lead,
				MinDelay: cfg.MinDelay,
			},
		}
	)

	if d.log, err = common.GetLogger(logdomain.Scheduler); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	}

	d.web.Addr = d.listenAddr
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		return nil, err
	}

	return d, nil
} // func create(cfg config.DaemonConfig, store Store, n Notifier) (*Daemon, error)

// openNotifier connects to the desktop notification service if so
// configured, falling back to the log if there is no session bus.
func (d *Daemon) openNotifier(kind string) Notifier {
	var (
		err error
		n   Notifier
		l   *log.Logger
	)

	if l, err = common.GetLogger(logdomain.Notifier); err != nil {
		d.log.Printf("[ERROR] Cannot create Logger for Notifier: %s\n",
			err.Error())
		l = d.log
	}

	if kind == config.NotifierLog {
		return NewLogNotifier(l)
	} else if n, err = NewDBusNotifier(l, d.handleAction); err != nil {
		d.log.Printf("[WARN] Cannot connect to notification service, notifications go to the log: %s\n",
			err.Error())
		return NewLogNotifier(l)
	}

	return n
} // func (d *Daemon) openNotifier(kind string) Notifier

// Start launches the scheduler and the web server.
func (d *Daemon) Start() error {
	var err error

	if err = d.startScheduler(); err != nil {
		return err
	}

	go d.serveHTTP()

	return nil
} // func (d *Daemon) Start() error

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish clears the Daemon's active flag, telling components to shut down.
func (d *Daemon) Banish() error {
	krylib.Trace()
	defer d.log.Printf("[TRACE] EXIT %s\n",
		krylib.TraceInfo())

	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), shutdownTimeout)
	)
	defer cancel()

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()

	d.stopScheduler()
	d.hub.closeAll()

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	// Wait for a cycle that might still be running.
	d.cycleLock.Lock()
	defer d.cycleLock.Unlock()

	if d.notifier != nil {
		if e := d.notifier.Shutdown(); e != nil {
			d.log.Printf("[ERROR] Cannot shut down Notifier: %s\n",
				e.Error())
		}
	}

	if e := d.store.Close(); e != nil {
		d.log.Printf("[ERROR] Cannot close Store: %s\n",
			e.Error())
		if err == nil {
			err = e
		}
	}

	return err
} // func (d *Daemon) Banish() error

// SaveReminder stores a Reminder, or updates the stored Reminder with the
// same ID, and re-arms the wakeup timer.
func (d *Daemon) SaveReminder(r *objects.Reminder) error {
	var err error

	if err = d.store.ReminderUpsert(r); err != nil {
		d.log.Printf("[ERROR] Cannot save Reminder %s: %s\n",
			r.ID,
			err.Error())
		return err
	}

	d.log.Printf("[DEBUG] Saved %s\n", r)
	d.rearm()
	return nil
} // func (d *Daemon) SaveReminder(r *objects.Reminder) error

// DeleteReminder removes a Reminder and all Reminders snoozed from it.
// Deleting a Reminder that does not exist is not an error.
func (d *Daemon) DeleteReminder(id string) error {
	var err error

	if err = d.store.ReminderDelete(id); err != nil {
		d.log.Printf("[ERROR] Cannot delete Reminder %s: %s\n",
			id,
			err.Error())
		return err
	}

	d.closeNotification(id)
	d.rearm()
	return nil
} // func (d *Daemon) DeleteReminder(id string) error

func (d *Daemon) getID() int64 {
	d.idLock.Lock()
	d.idCnt++
	var id = d.idCnt
	d.idLock.Unlock()
	return id
} // func (d *Daemon) getID() int64
