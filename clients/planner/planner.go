// /home/krylon/go/src/github.com/blicero/medalert/clients/planner/planner.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 11:02:47 krylon>

// Package planner turns a medicine schedule entered by the user into the
// individual Reminders the daemon works with, and keeps track of the
// schedules so they can be listed and deleted as a whole.
package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/objects"
)

// MaxDays is the longest course of medication a single schedule can cover.
const MaxDays = 366

// Errors returned by Validate.
var (
	ErrInvalidSubject   = errors.New("Please fill in the medicine name")
	ErrInvalidStartDate = errors.New("Please fill in a valid start date")
	ErrInvalidDays      = fmt.Errorf("Number of days must be between 1 and %d", MaxDays)
	ErrInvalidTime      = errors.New("Please fill all time slots")
)

// Request is what the user enters to schedule a medicine.
type Request struct {
	Subject   string
	StartDate string
	Days      int
	Times     []string
}

// Schedule groups the Reminders generated for one medicine.
type Schedule struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	StartDate string    `json:"startDate"`
	Days      int       `json:"days"`
	Times     []string  `json:"times"`
	Created   time.Time `json:"created"`
	Reminders []string  `json:"reminders"`
	Snoozed   []string  `json:"snoozed,omitempty"`
}

// Owns returns true if the Reminder with the given ID belongs to the Schedule,
// either as one of its occurrences or as a Reminder snoozed from one.
func (s *Schedule) Owns(id string) bool {
	return strings.HasPrefix(id, s.ID+"_")
} // func (s *Schedule) Owns(id string) bool

// AllReminders returns the IDs of the Schedule's occurrences and the
// Reminders snoozed from them.
func (s *Schedule) AllReminders() []string {
	var ids = make([]string, 0, len(s.Reminders)+len(s.Snoozed))
	ids = append(ids, s.Reminders...)
	return append(ids, s.Snoozed...)
} // func (s *Schedule) AllReminders() []string

var timeFormats = []string{
	"15:04",
	"15:04:05",
	"3:04PM",
	"3:04 PM",
	"3:04pm",
	"3:04 pm",
	"3:04:05PM",
	"3:04:05 PM",
}

// NormalizeTime brings a time of day into the HH:MM form.
// Seconds are dropped, single-digit hours and 12-hour notation are accepted.
func NormalizeTime(s string) (string, error) {
	var (
		err error
		t   time.Time
	)

	s = strings.TrimSpace(s)

	if s == "" {
		return "", ErrInvalidTime
	}

	for _, f := range timeFormats {
		if t, err = time.Parse(f, s); err == nil {
			return t.Format(common.TimeOfDayFormat), nil
		}
	}

	return "", fmt.Errorf("%w: cannot parse %q", ErrInvalidTime, s)
} // func NormalizeTime(s string) (string, error)

// Validate checks the Request and normalizes its times of day.
func (r *Request) Validate() error {
	var err error

	r.Subject = strings.TrimSpace(r.Subject)

	if r.Subject == "" {
		return ErrInvalidSubject
	} else if _, err = time.Parse(common.TimestampFormatDate, r.StartDate); err != nil {
		return ErrInvalidStartDate
	} else if r.Days < 1 || r.Days > MaxDays {
		return ErrInvalidDays
	} else if len(r.Times) == 0 {
		return ErrInvalidTime
	}

	var (
		seen  = make(map[string]bool, len(r.Times))
		times = make([]string, len(r.Times))
	)

	for i, raw := range r.Times {
		if times[i], err = NormalizeTime(raw); err != nil {
			return err
		} else if seen[times[i]] {
			return fmt.Errorf("%w: %s is given twice", ErrInvalidTime, times[i])
		}
		seen[times[i]] = true
	}

	r.Times = times
	return nil
} // func (r *Request) Validate() error

// Generate validates the Request and creates a Schedule along with one
// Reminder for every combination of day and time slot. Dates and times
// are interpreted in loc.
func Generate(req Request, loc *time.Location) (*Schedule, []objects.Reminder, error) {
	var (
		err   error
		start time.Time
		now   = time.Now()
	)

	if err = req.Validate(); err != nil {
		return nil, nil, err
	} else if start, err = time.ParseInLocation(common.TimestampFormatDate, req.StartDate, loc); err != nil {
		return nil, nil, ErrInvalidStartDate
	}

	var (
		sched = &Schedule{
			ID:        common.GetUUID(),
			Subject:   req.Subject,
			StartDate: req.StartDate,
			Days:      req.Days,
			Times:     req.Times,
			Created:   now,
			Reminders: make([]string, 0, req.Days*len(req.Times)),
		}
		list = make([]objects.Reminder, 0, req.Days*len(req.Times))
	)

	for d := 0; d < req.Days; d++ {
		var (
			day  = start.AddDate(0, 0, d)
			date = day.Format(common.TimestampFormatDate)
		)

		for _, hm := range req.Times {
			var due time.Time

			if due, err = time.ParseInLocation(common.TimestampFormatMinute, date+" "+hm, loc); err != nil {
				return nil, nil, fmt.Errorf("Cannot compute due time for %s %s: %w",
					date,
					hm,
					err)
			}

			var r = objects.Reminder{
				ID:      objects.MakeID(sched.ID, date, hm),
				Subject: req.Subject,
				DueAt:   due,
				Created: now,
			}

			list = append(list, r)
			sched.Reminders = append(sched.Reminders, r.ID)
		}
	}

	return sched, list, nil
} // func Generate(req Request, loc *time.Location) (*Schedule, []objects.Reminder, error)
