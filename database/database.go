// /home/krylon/go/src/github.com/blicero/medalert/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 13:22:51 krylon>

// Package database provides the persistence layer for Reminders.
// It wraps a SQLite database file that outlives the processes using it.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/database/query"
	"github.com/blicero/medalert/logdomain"
	"github.com/blicero/medalert/objects"
	"github.com/mattn/go-sqlite3"
)

var (
	openLock sync.Mutex
	idCnt    int64
)

// ErrTxInProgress indicates that an attempt to initiate a transaction failed
// because there is already one in progress.
var ErrTxInProgress = errors.New("A Transaction is already in progress")

// ErrNoTxInProgress indicates that an attempt was made to finish a
// transaction when none was active.
var ErrNoTxInProgress = errors.New("There is no transaction in progress")

// A statement that finds the database busy is retried up to maxRetries
// times, each attempt waiting up to the busy timeout, before the error is
// returned to the caller.
const (
	retryDelay        = 25 * time.Millisecond
	maxRetries        = 8
	maxUniqueAttempts = 100
)

// The SQLite driver is told to use WAL mode, so the scheduler reading
// Reminders does not block a client saving new ones. Explicit transactions
// take the write lock right away.
const connParams = "?_locking=NORMAL&_journal=WAL&_busy_timeout=250&_txlock=immediate"

// Database wraps a connection to the reminder database and the prepared
// statements used on it.
type Database struct {
	id      int64
	db      *sql.DB
	tx      *sql.Tx
	log     *log.Logger
	path    string
	queries map[query.ID]*sql.Stmt
}

// Open opens the database at path. If the file does not exist yet, it is
// created and the schema is initialized.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:    path,
			queries: make(map[query.ID]*sql.Stmt),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	} else if common.Debug {
		db.log.Printf("[DEBUG] Open database %s\n", path)
	}

	if _, err = os.Stat(path); err == nil {
		dbExists = true
	} else if !os.IsNotExist(err) {
		db.log.Printf("[ERROR] Cannot stat database file %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if db.db, err = sql.Open("sqlite3", path+connParams); err != nil {
		db.log.Printf("[ERROR] Cannot open database %q: %s\n",
			path,
			err.Error())
		return nil, err
	}

	// A Database is never used concurrently, the Pool takes care of that.
	db.db.SetMaxOpenConns(1)

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to close database: %s\n",
					e2.Error())
				return nil, e2
			} else if e2 = os.Remove(path); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to delete database file %q: %s\n",
					path,
					e2.Error())
			}

			return nil, err
		}
		db.log.Printf("[INFO] Database at %q has been initialized\n",
			path)
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var (
		err error
		tx  *sql.Tx
	)

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		db.log.Printf("[TRACE] Execute init query:\n%s\n",
			q)
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query: %s\n%s\n",
				err.Error(),
				q)
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
				return rbErr
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[CANTHAPPEN] Failed to commit init transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database.
// If there is a pending transaction, it is rolled back.
func (db *Database) Close() error {
	if db.tx != nil {
		if err := db.tx.Rollback(); err != nil {
			db.log.Printf("[ERROR] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
	}

	for key, stmt := range db.queries {
		if err := stmt.Close(); err != nil {
			db.log.Printf("[ERROR] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err := db.db.Close(); err != nil {
		db.log.Printf("[ERROR] Cannot close database: %s\n",
			err.Error())
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt    *sql.Stmt
		found   bool
		err     error
		attempt int
	)

	if stmt, found = db.queries[id]; found {
		return stmt, nil
	} else if _, found = dbQueries[id]; !found {
		return nil, fmt.Errorf("Unknown Query %d",
			id)
	}

	db.log.Printf("[TRACE] Prepare query %s\n", id)

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) && attempt < maxRetries {
			attempt++
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot parse query %s: %s\n%s\n",
			id,
			err.Error(),
			dbQueries[id])
		return nil, err
	}

	db.queries[id] = stmt
	return stmt, nil
} // func (db *Database) getQuery(query.ID) (*sql.Stmt, error)

func (db *Database) resetSQLError(err error) error {
	var msg = fmt.Sprintf("Database %d (%s) SQL error: %s",
		db.id,
		db.path,
		err.Error())
	db.log.Printf("[ERROR] %s\n", msg)
	return errors.New(msg)
} // func (db *Database) resetSQLError(err error) error

// Begin begins an explicit database transaction.
// Only one transaction can be in progress at once, attempting to start one,
// while another transaction is already in progress will yield ErrTxInProgress.
func (db *Database) Begin() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Begin Transaction\n",
		db.id)

	if db.tx != nil {
		return ErrTxInProgress
	}

BEGIN_TX:
	for i := 0; i < maxRetries; i++ {
		if db.tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				continue BEGIN_TX
			}
			break
		}
		return nil
	}

	db.log.Printf("[ERROR] Error beginning transaction: %v\n", err)
	return err
} // func (db *Database) Begin() error

// Rollback terminates a pending transaction, undoing any changes to the
// database made during that transaction.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Rollback() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Roll back Transaction\n",
		db.id)

	if db.tx == nil {
		return ErrNoTxInProgress
	}

	err = db.tx.Rollback()
	db.tx = nil

	if err != nil {
		return fmt.Errorf("Cannot roll back database transaction: %w", err)
	}

	return nil
} // func (db *Database) Rollback() error

// Commit ends the active transaction, making any changes made during that
// transaction permanent and visible to other connections.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Commit() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Commit Transaction\n",
		db.id)

	if db.tx == nil {
		return ErrNoTxInProgress
	}

	// The Tx is finished even if Commit fails.
	err = db.tx.Commit()
	db.tx = nil

	if err != nil {
		return fmt.Errorf("Cannot commit transaction: %w", err)
	}

	return nil
} // func (db *Database) Commit() error

// stmt returns the prepared statement for id, bound to the active
// transaction if there is one.
func (db *Database) stmt(id query.ID) (*sql.Stmt, error) {
	var (
		err error
		s   *sql.Stmt
	)

	if s, err = db.getQuery(id); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			id,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		s = db.tx.Stmt(s)
	}

	return s, nil
} // func (db *Database) stmt(id query.ID) (*sql.Stmt, error)

// ReminderUpsert adds a Reminder to the database, or updates the stored
// Reminder with the same ID. The triggered flag of a stored Reminder is
// never cleared this way.
func (db *Database) ReminderUpsert(r *objects.Reminder) error {
	const qid query.ID = query.ReminderUpsert
	var (
		err     error
		stmt    *sql.Stmt
		attempt int
	)

	if r.Created.IsZero() {
		r.Created = time.Now()
	}

	if stmt, err = db.stmt(qid); err != nil {
		return err
	}

EXEC_QUERY:
	if _, err = stmt.Exec(
		r.ID,
		r.Subject,
		r.DueAt.Unix(),
		r.Triggered,
		r.Origin,
		r.Created.Unix(),
	); err != nil {
		if worthARetry(err) && attempt < maxRetries {
			attempt++
			waitForRetry()
			goto EXEC_QUERY
		}

		err = fmt.Errorf("Cannot save Reminder %s: %w",
			r.ID,
			err)
		db.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	return nil
} // func (db *Database) ReminderUpsert(r *objects.Reminder) error

// ReminderAddUnique saves a new Reminder. If its ID is taken already, a
// numeric suffix is appended until the ID is unused; r.ID is updated to the
// ID the Reminder was saved under. Looking for a free ID and saving happen
// in one transaction.
func (db *Database) ReminderAddUnique(r *objects.Reminder) error {
	var err error

	// The transaction holds the only connection, so the statements must be
	// prepared before it starts.
	for _, qid := range []query.ID{query.ReminderGetByID, query.ReminderUpsert} {
		if _, err = db.getQuery(qid); err != nil {
			return err
		}
	}

	if err = db.Begin(); err != nil {
		return err
	} else if err = db.insertUnique(r); err != nil {
		if rbErr := db.Rollback(); rbErr != nil {
			db.log.Printf("[CANTHAPPEN] %s\n", rbErr.Error())
		}
		return err
	}

	return db.Commit()
} // func (db *Database) ReminderAddUnique(r *objects.Reminder) error

func (db *Database) insertUnique(r *objects.Reminder) error {
	var (
		err      error
		existing *objects.Reminder
		baseID   = r.ID
	)

	for i := 1; ; i++ {
		if existing, err = db.ReminderGetByID(r.ID); err != nil {
			return err
		} else if existing == nil {
			break
		} else if i > maxUniqueAttempts {
			return fmt.Errorf("Cannot find an unused ID for Reminder %s", baseID)
		}

		r.ID = fmt.Sprintf("%s_%d", baseID, i)
	}

	return db.ReminderUpsert(r)
} // func (db *Database) insertUnique(r *objects.Reminder) error

// ReminderDelete removes the Reminder with the given ID along with all
// Reminders that were derived from it by snoozing.
// Deleting a Reminder that does not exist is not an error.
func (db *Database) ReminderDelete(id string) error {
	const qid query.ID = query.ReminderDelete
	var (
		err     error
		stmt    *sql.Stmt
		res     sql.Result
		cnt     int64
		attempt int
	)

	if stmt, err = db.stmt(qid); err != nil {
		return err
	}

EXEC_QUERY:
	if res, err = stmt.Exec(id, id); err != nil {
		if worthARetry(err) && attempt < maxRetries {
			attempt++
			waitForRetry()
			goto EXEC_QUERY
		}

		err = fmt.Errorf("Cannot delete Reminder %s: %w",
			id,
			err)
		db.log.Printf("[ERROR] %s\n", err.Error())
		return err
	} else if cnt, err = res.RowsAffected(); err != nil {
		return db.resetSQLError(err)
	}

	db.log.Printf("[DEBUG] Deleted %d Reminder(s) for %s\n",
		cnt,
		id)

	return nil
} // func (db *Database) ReminderDelete(id string) error

// ReminderSetTriggered marks the Reminder as triggered if it is not already.
// The return value tells if this call made the transition, so at most one
// caller ever sees true for a given Reminder.
func (db *Database) ReminderSetTriggered(id string) (bool, error) {
	const qid query.ID = query.ReminderSetTriggered
	var (
		err     error
		stmt    *sql.Stmt
		res     sql.Result
		cnt     int64
		attempt int
	)

	if stmt, err = db.stmt(qid); err != nil {
		return false, err
	}

EXEC_QUERY:
	if res, err = stmt.Exec(id); err != nil {
		if worthARetry(err) && attempt < maxRetries {
			attempt++
			waitForRetry()
			goto EXEC_QUERY
		}

		err = fmt.Errorf("Cannot mark Reminder %s as triggered: %w",
			id,
			err)
		db.log.Printf("[ERROR] %s\n", err.Error())
		return false, err
	} else if cnt, err = res.RowsAffected(); err != nil {
		return false, db.resetSQLError(err)
	}

	return cnt == 1, nil
} // func (db *Database) ReminderSetTriggered(id string) (bool, error)

// ReminderGetPending returns all Reminders that have not been triggered, yet.
func (db *Database) ReminderGetPending() ([]objects.Reminder, error) {
	return db.reminderList(query.ReminderGetPending)
} // func (db *Database) ReminderGetPending() ([]objects.Reminder, error)

// ReminderGetAll returns all Reminders, ordered by their due time.
func (db *Database) ReminderGetAll() ([]objects.Reminder, error) {
	return db.reminderList(query.ReminderGetAll)
} // func (db *Database) ReminderGetAll() ([]objects.Reminder, error)

func (db *Database) reminderList(qid query.ID) ([]objects.Reminder, error) {
	var (
		err     error
		stmt    *sql.Stmt
		rows    *sql.Rows
		attempt int
	)

	if stmt, err = db.stmt(qid); err != nil {
		return nil, err
	}

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) && attempt < maxRetries {
			attempt++
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, fmt.Errorf("Cannot query %s: %w", qid, err)
	}

	defer rows.Close() // nolint: errcheck

	var list = make([]objects.Reminder, 0, 16)

	for rows.Next() {
		var r objects.Reminder

		if err = scanReminder(rows, &r); err != nil {
			db.log.Printf("[ERROR] Cannot scan row from %s: %s\n",
				qid,
				err.Error())
			return nil, err
		}

		list = append(list, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("Error iterating result of %s: %w", qid, err)
	}

	return list, nil
} // func (db *Database) reminderList(qid query.ID) ([]objects.Reminder, error)

// ReminderGetByID looks up a Reminder by its ID.
// If no such Reminder exists, it returns nil and no error.
func (db *Database) ReminderGetByID(id string) (*objects.Reminder, error) {
	const qid query.ID = query.ReminderGetByID
	var (
		err     error
		stmt    *sql.Stmt
		rows    *sql.Rows
		attempt int
	)

	if stmt, err = db.stmt(qid); err != nil {
		return nil, err
	}

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) && attempt < maxRetries {
			attempt++
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, fmt.Errorf("Cannot look up Reminder %s: %w", id, err)
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var r = new(objects.Reminder)

		if err = scanReminder(rows, r); err != nil {
			db.log.Printf("[ERROR] Cannot scan Reminder %s: %s\n",
				id,
				err.Error())
			return nil, err
		}

		return r, nil
	}

	return nil, rows.Err()
} // func (db *Database) ReminderGetByID(id string) (*objects.Reminder, error)

func scanReminder(rows *sql.Rows, r *objects.Reminder) error {
	var (
		err          error
		due, created int64
	)

	if err = rows.Scan(
		&r.ID,
		&r.Subject,
		&due,
		&r.Triggered,
		&r.Origin,
		&created,
	); err != nil {
		return err
	}

	r.DueAt = time.Unix(due, 0)
	r.Created = time.Unix(created, 0)
	return nil
} // func scanReminder(rows *sql.Rows, r *objects.Reminder) error

func worthARetry(err error) bool {
	var e sqlite3.Error

	if errors.As(err, &e) {
		return e.Code == sqlite3.ErrBusy || e.Code == sqlite3.ErrLocked
	}

	return strings.Contains(err.Error(), "database is locked")
} // func worthARetry(err error) bool

func waitForRetry() {
	if common.Debug {
		krylib.Trace()
	}
	time.Sleep(retryDelay)
} // func waitForRetry()
