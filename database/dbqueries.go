// /home/krylon/go/src/github.com/blicero/medalert/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 12:14:02 krylon>

package database

import "github.com/blicero/medalert/database/query"

var dbQueries = map[query.ID]string{
	// A re-sent save must never clear the triggered flag of a Reminder
	// that has already been delivered. The due time is part of the ID,
	// so it is never changed in place.
	query.ReminderUpsert: `
INSERT INTO reminder (id, subject, due, triggered, origin, created)
VALUES               ( ?,       ?,   ?,         ?,      ?,       ?)
ON CONFLICT(id) DO UPDATE SET
    subject   = excluded.subject,
    triggered = MAX(triggered, excluded.triggered),
    origin    = excluded.origin
`,
	query.ReminderDelete: "DELETE FROM reminder WHERE id = ? OR origin = ?",
	query.ReminderSetTriggered: `
UPDATE reminder
SET triggered = 1
WHERE id = ? AND triggered = 0
`,
	query.ReminderGetPending: `
SELECT
    id,
    subject,
    due,
    triggered,
    origin,
    created
FROM reminder
WHERE triggered = 0
ORDER BY due, subject
`,
	query.ReminderGetByID: `
SELECT
    id,
    subject,
    due,
    triggered,
    origin,
    created
FROM reminder
WHERE id = ?
`,
	query.ReminderGetAll: `
SELECT
    id,
    subject,
    due,
    triggered,
    origin,
    created
FROM reminder
ORDER BY due, subject
`,
}
