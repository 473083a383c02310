// /home/krylon/go/src/github.com/blicero/medalert/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 12:03:17 krylon>

// Package query provides symbolic constants for identifying SQL queries.
package query

import "strconv"

// ID identifies a prepared statement.
type ID uint8

const (
	ReminderUpsert ID = iota
	ReminderDelete
	ReminderSetTriggered
	ReminderGetPending
	ReminderGetByID
	ReminderGetAll
)

var idNames = [...]string{
	"ReminderUpsert",
	"ReminderDelete",
	"ReminderSetTriggered",
	"ReminderGetPending",
	"ReminderGetByID",
	"ReminderGetAll",
}

func (id ID) String() string {
	if int(id) < len(idNames) {
		return idNames[id]
	}

	return "ID(" + strconv.Itoa(int(id)) + ")"
} // func (id ID) String() string
