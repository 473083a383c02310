// /home/krylon/go/src/github.com/blicero/medalert/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-16 18:02:11 krylon>

// Package logdomain provides symbolic constants to identify the various
// pieces of the application that need to do logging.
package logdomain

import "strconv"

// ID is an id...
type ID uint8

// These are the log domains of the application.
const (
	Common ID = iota
	Config
	Database
	DBPool
	Scheduler
	Dispatch
	Notifier
	Bridge
	Client
	Planner
	Tone
	CLI
)

var domainNames = [...]string{
	"Common",
	"Config",
	"Database",
	"DBPool",
	"Scheduler",
	"Dispatch",
	"Notifier",
	"Bridge",
	"Client",
	"Planner",
	"Tone",
	"CLI",
}

func (id ID) String() string {
	if int(id) < len(domainNames) {
		return domainNames[id]
	}

	return "ID(" + strconv.Itoa(int(id)) + ")"
} // func (id ID) String() string

// AllDomains returns a slice of all the known log sources.
func AllDomains() []ID {
	var domains = make([]ID, len(domainNames))

	for i := range domains {
		domains[i] = ID(i)
	}

	return domains
} // func AllDomains() []ID
