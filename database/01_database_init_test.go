// /home/krylon/go/src/github.com/blicero/medalert/database/01_database_init_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 14:04:48 krylon>

package database

import (
	"testing"

	"github.com/blicero/medalert/common"
)

var db *Database

func TestCreateDatabase(t *testing.T) {
	var err error

	if db, err = Open(common.DbPath); err != nil {
		db = nil
		t.Fatalf("Cannot open database at %s: %s",
			common.DbPath,
			err.Error())
	}
} // func TestCreateDatabase(t *testing.T)

// We prepare each query once to make sure there are no syntax errors in the SQL.
func TestPrepareQueries(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for id := range dbQueries {
		var err error
		if _, err = db.getQuery(id); err != nil {
			t.Errorf("Cannot prepare query %s: %s",
				id,
				err.Error())
		}
	}
} // func TestPrepareQueries(t *testing.T)

func TestTransaction(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var err error

	if err = db.Commit(); err != ErrNoTxInProgress {
		t.Errorf("Commit without transaction returned %v", err)
	} else if err = db.Begin(); err != nil {
		t.Fatalf("Cannot begin transaction: %s", err.Error())
	} else if err = db.Begin(); err != ErrTxInProgress {
		t.Errorf("Nested Begin returned %v", err)
	} else if err = db.Rollback(); err != nil {
		t.Errorf("Cannot roll back transaction: %s", err.Error())
	}
} // func TestTransaction(t *testing.T)
