// /home/krylon/go/src/github.com/blicero/medalert/database/store.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 13:52:36 krylon>

package database

import (
	"github.com/blicero/medalert/objects"
)

// Store is the Reminder store the daemon works with. Every call borrows
// one connection from the Pool for the duration of a single statement,
// so it is safe to use from multiple goroutines.
type Store struct {
	pool *Pool
}

// NewStore opens a Store backed by size connections to the database at path.
func NewStore(path string, size int) (*Store, error) {
	var (
		err error
		s   = new(Store)
	)

	if s.pool, err = NewPool(path, size); err != nil {
		return nil, err
	}

	return s, nil
} // func NewStore(path string, size int) (*Store, error)

func (s *Store) get() (*Database, error) {
	var db = s.pool.Get()

	if db == nil {
		return nil, ErrPoolClosed
	}

	return db, nil
} // func (s *Store) get() (*Database, error)

// ReminderUpsert saves a Reminder, replacing a stored one with the same ID.
func (s *Store) ReminderUpsert(r *objects.Reminder) error {
	var (
		err error
		db  *Database
	)

	if db, err = s.get(); err != nil {
		return err
	}
	defer s.pool.Put(db)

	return db.ReminderUpsert(r)
} // func (s *Store) ReminderUpsert(r *objects.Reminder) error

// ReminderAddUnique saves a new Reminder under an unused ID. See
// Database.ReminderAddUnique.
func (s *Store) ReminderAddUnique(r *objects.Reminder) error {
	var (
		err error
		db  *Database
	)

	if db, err = s.get(); err != nil {
		return err
	}
	defer s.pool.Put(db)

	return db.ReminderAddUnique(r)
} // func (s *Store) ReminderAddUnique(r *objects.Reminder) error

// ReminderGetAll returns every stored Reminder.
func (s *Store) ReminderGetAll() ([]objects.Reminder, error) {
	var (
		err error
		db  *Database
	)

	if db, err = s.get(); err != nil {
		return nil, err
	}
	defer s.pool.Put(db)

	return db.ReminderGetAll()
} // func (s *Store) ReminderGetAll() ([]objects.Reminder, error)

// ReminderGetPending returns the Reminders that have not been triggered.
func (s *Store) ReminderGetPending() ([]objects.Reminder, error) {
	var (
		err error
		db  *Database
	)

	if db, err = s.get(); err != nil {
		return nil, err
	}
	defer s.pool.Put(db)

	return db.ReminderGetPending()
} // func (s *Store) ReminderGetPending() ([]objects.Reminder, error)

// ReminderGetByID returns the Reminder with the given ID, or nil.
func (s *Store) ReminderGetByID(id string) (*objects.Reminder, error) {
	var (
		err error
		db  *Database
	)

	if db, err = s.get(); err != nil {
		return nil, err
	}
	defer s.pool.Put(db)

	return db.ReminderGetByID(id)
} // func (s *Store) ReminderGetByID(id string) (*objects.Reminder, error)

// ReminderSetTriggered marks a Reminder as triggered. See
// Database.ReminderSetTriggered.
func (s *Store) ReminderSetTriggered(id string) (bool, error) {
	var (
		err error
		db  *Database
	)

	if db, err = s.get(); err != nil {
		return false, err
	}
	defer s.pool.Put(db)

	return db.ReminderSetTriggered(id)
} // func (s *Store) ReminderSetTriggered(id string) (bool, error)

// ReminderDelete deletes a Reminder and its snoozed descendants.
func (s *Store) ReminderDelete(id string) error {
	var (
		err error
		db  *Database
	)

	if db, err = s.get(); err != nil {
		return err
	}
	defer s.pool.Put(db)

	return db.ReminderDelete(id)
} // func (s *Store) ReminderDelete(id string) error

// Close closes all database connections.
func (s *Store) Close() error {
	return s.pool.Close()
} // func (s *Store) Close() error
