// /home/krylon/go/src/github.com/blicero/medalert/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 13:40:09 krylon>

package database

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/logdomain"
)

// ErrPoolClosed is returned when Get is called on a Pool that has been closed.
var ErrPoolClosed = errors.New("Database pool has been closed")

// Pool is a fixed-size pool of database connections. Get blocks until a
// connection is available.
type Pool struct {
	path   string
	cnt    int
	dbs    chan *Database
	log    *log.Logger
	lock   sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewPool opens cnt connections to the database at path.
func NewPool(path string, cnt int) (*Pool, error) {
	var (
		err  error
		pool = &Pool{
			path: path,
			cnt:  cnt,
			dbs:  make(chan *Database, cnt),
			done: make(chan struct{}),
		}
	)

	if cnt < 1 {
		return nil, fmt.Errorf("Invalid pool size %d", cnt)
	} else if pool.log, err = common.GetLogger(logdomain.DBPool); err != nil {
		return nil, err
	}

	for i := 0; i < cnt; i++ {
		var db *Database

		if db, err = Open(path); err != nil {
			pool.log.Printf("[ERROR] Cannot open database connection #%d: %s\n",
				i,
				err.Error())
			pool.Close() // nolint: errcheck
			return nil, err
		}

		pool.dbs <- db
	}

	return pool, nil
} // func NewPool(path string, cnt int) (*Pool, error)

// Get fetches a connection from the Pool, waiting for one to be returned
// if necessary. It returns nil if the Pool has been closed, including
// while waiting.
func (pool *Pool) Get() *Database {
	pool.lock.RLock()
	var closed = pool.closed
	pool.lock.RUnlock()

	if closed {
		return nil
	}

	select {
	case db := <-pool.dbs:
		return db
	case <-pool.done:
		return nil
	}
} // func (pool *Pool) Get() *Database

// Put returns a connection to the Pool.
func (pool *Pool) Put(db *Database) {
	if db == nil {
		return
	}

	pool.lock.RLock()
	defer pool.lock.RUnlock()

	if pool.closed {
		db.Close() // nolint: errcheck
		return
	}

	pool.dbs <- db
} // func (pool *Pool) Put(db *Database)

// Close closes all connections currently in the Pool. Connections that are
// handed back afterwards are closed by Put.
func (pool *Pool) Close() error {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	if pool.closed {
		return nil
	}

	pool.closed = true
	close(pool.done)

	for {
		select {
		case db := <-pool.dbs:
			if err := db.Close(); err != nil {
				pool.log.Printf("[ERROR] Cannot close database connection: %s\n",
					err.Error())
			}
		default:
			return nil
		}
	}
} // func (pool *Pool) Close() error
