// /home/krylon/go/src/github.com/blicero/medalert/clients/planner/book.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 11:40:19 krylon>

package planner

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/logdomain"
	"github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"
	"github.com/pquerna/ffjson/ffjson"
)

// ErrNoSchedule is returned when a Schedule does not exist.
var ErrNoSchedule = errors.New("No such schedule")

// Book keeps the Schedules the user has entered, one file per Schedule.
// The daemon never looks at it.
type Book struct {
	log  *log.Logger
	lock sync.Mutex
	d    *diskv.Diskv
}

// OpenBook opens the Book stored in the directory at path.
func OpenBook(path string) (*Book, error) {
	var (
		err error
		b   = new(Book)
	)

	if b.log, err = common.GetLogger(logdomain.Planner); err != nil {
		return nil, err
	} else if path, err = homedir.Expand(path); err != nil {
		b.log.Printf("[ERROR] Cannot expand path %q: %s\n",
			path,
			err.Error())
		return nil, err
	} else if err = os.MkdirAll(path, 0700); err != nil {
		b.log.Printf("[ERROR] Cannot create directory %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	b.d = diskv.New(diskv.Options{
		BasePath:     path,
		CacheSizeMax: 1024 * 1024,
	})

	return b, nil
} // func OpenBook(path string) (*Book, error)

// Save stores a Schedule, replacing an earlier version with the same ID.
func (b *Book) Save(s *Schedule) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	return b.write(s)
} // func (b *Book) Save(s *Schedule) error

func (b *Book) write(s *Schedule) error {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(s); err != nil {
		b.log.Printf("[ERROR] Cannot serialize Schedule %s: %s\n",
			s.ID,
			err.Error())
		return err
	}

	if err = b.d.Write(s.ID, buf); err != nil {
		b.log.Printf("[ERROR] Cannot save Schedule %s: %s\n",
			s.ID,
			err.Error())
		return err
	}

	return nil
} // func (b *Book) write(s *Schedule) error

// Get loads the Schedule with the given ID.
func (b *Book) Get(id string) (*Schedule, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	return b.read(id)
} // func (b *Book) Get(id string) (*Schedule, error)

func (b *Book) read(id string) (*Schedule, error) {
	var (
		err error
		buf []byte
		s   = new(Schedule)
	)

	if !b.d.Has(id) {
		return nil, ErrNoSchedule
	} else if buf, err = b.d.Read(id); err != nil {
		b.log.Printf("[ERROR] Cannot read Schedule %s: %s\n",
			id,
			err.Error())
		return nil, err
	} else if err = ffjson.Unmarshal(buf, s); err != nil {
		b.log.Printf("[ERROR] Cannot parse Schedule %s: %s\n",
			id,
			err.Error())
		return nil, err
	}

	return s, nil
} // func (b *Book) read(id string) (*Schedule, error)

// List returns all Schedules, oldest first.
func (b *Book) List() ([]*Schedule, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	var (
		list   = make([]*Schedule, 0)
		cancel = make(chan struct{})
	)
	defer close(cancel)

	for key := range b.d.Keys(cancel) {
		var (
			err error
			s   *Schedule
		)

		if s, err = b.read(key); err != nil {
			return nil, fmt.Errorf("Cannot load Schedule %s: %w", key, err)
		}

		list = append(list, s)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Created.Equal(list[j].Created) {
			return list[i].ID < list[j].ID
		}
		return list[i].Created.Before(list[j].Created)
	})

	return list, nil
} // func (b *Book) List() ([]*Schedule, error)

// Delete removes a Schedule from the Book. It does not touch the Reminders
// stored with the daemon, see Remove for that.
func (b *Book) Delete(id string) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	if !b.d.Has(id) {
		return ErrNoSchedule
	}

	return b.d.Erase(id)
} // func (b *Book) Delete(id string) error

// Attach records that the Reminder snoozedID was created by snoozing
// reminderID, so deleting the Schedule removes it as well.
// It returns ErrNoSchedule if reminderID belongs to no Schedule.
func (b *Book) Attach(reminderID, snoozedID string) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	var cancel = make(chan struct{})
	defer close(cancel)

	for key := range b.d.Keys(cancel) {
		var (
			err error
			s   *Schedule
		)

		if s, err = b.read(key); err != nil {
			return err
		} else if !s.Owns(reminderID) {
			continue
		}

		s.Snoozed = append(s.Snoozed, snoozedID)
		return b.write(s)
	}

	return ErrNoSchedule
} // func (b *Book) Attach(reminderID, snoozedID string) error
