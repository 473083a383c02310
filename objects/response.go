// /home/krylon/go/src/github.com/blicero/medalert/objects/response.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 16:25:39 krylon>

package objects

//go:generate ffjson response.go

// Response is what the backend sends to a client after processing a request.
// ID is assigned by the backend, Corr echoes the correlation token of the
// request it answers.
type Response struct {
	ID        int64      `json:"id"`
	Corr      string     `json:"corr,omitempty"`
	Status    bool       `json:"status"`
	Message   string     `json:"message,omitempty"`
	Reminder  *Reminder  `json:"reminder,omitempty"`
	Reminders []Reminder `json:"reminders,omitempty"`
}
