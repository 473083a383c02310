// /home/krylon/go/src/github.com/blicero/medalert/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 12:05:40 krylon>

package database

var initQueries = []string{
	`
CREATE TABLE reminder (
    id          TEXT PRIMARY KEY,
    subject     TEXT NOT NULL,
    due         INTEGER NOT NULL,
    triggered   INTEGER NOT NULL DEFAULT 0,
    origin      TEXT NOT NULL DEFAULT '',
    created     INTEGER NOT NULL,
    CHECK (id <> ''),
    CHECK (triggered IN (0, 1))
) WITHOUT ROWID
`,
	"CREATE INDEX reminder_due_idx ON reminder (due)",
	"CREATE INDEX reminder_triggered_idx ON reminder (triggered)",
	"CREATE INDEX reminder_origin_idx ON reminder (origin)",
}
