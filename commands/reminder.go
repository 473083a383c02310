// /home/krylon/go/src/github.com/blicero/medalert/commands/reminder.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 11:35:52 krylon>

package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/blicero/medalert/clients/clientlib"
	"github.com/blicero/medalert/clients/planner"
	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/objects"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func addReminders(topLevel *cobra.Command, opt *globalOptions) {
	var pending bool

	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "List the reminders known to the daemon.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err    error
				client *clientlib.Client
				list   []objects.Reminder
			)

			if client, err = opt.client(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			} else if list, err = client.GetAllReminders(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			}

			if pending {
				var open = make([]objects.Reminder, 0, len(list))
				for _, r := range list {
					if !r.Triggered {
						open = append(open, r)
					}
				}
				list = open
			}

			printReminders(cmd.OutOrStdout(), list, time.Now())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pending, "pending", "p", false,
		"Only list reminders that have not fired yet.")

	topLevel.AddCommand(cmd)
} // func addReminders(topLevel *cobra.Command, opt *globalOptions)

var (
	fired   = color.New(color.Faint)
	overdue = color.New(color.FgHiYellow)
	waiting = color.New(color.FgGreen)
)

func reminderState(r *objects.Reminder, now time.Time) string {
	switch {
	case r.Triggered:
		return fired.Sprint("fired")
	case r.DueAt.Before(now):
		return overdue.Sprint("overdue")
	default:
		return waiting.Sprint("pending")
	}
} // func reminderState(r *objects.Reminder, now time.Time) string

func printReminders(w io.Writer, list []objects.Reminder, now time.Time) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No reminders.")
		return
	}

	tbl := uitable.New()
	tbl.MaxColWidth = 64
	tbl.AddRow("ID", "MEDICINE", "DUE", "STATE")

	for i := range list {
		var r = &list[i]
		tbl.AddRow(
			r.ID,
			r.Subject,
			r.DueAt.In(now.Location()).Format(common.TimestampFormatMinute),
			reminderState(r, now))
	}

	fmt.Fprintln(w, tbl)
} // func printReminders(w io.Writer, list []objects.Reminder, now time.Time)

func addCheck(topLevel *cobra.Command, opt *globalOptions) {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Ask the daemon to look for due reminders right away.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err    error
				client *clientlib.Client
			)

			if client, err = opt.client(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			} else if err = client.CheckNow(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			}

			return nil
		},
	}

	topLevel.AddCommand(cmd)
} // func addCheck(topLevel *cobra.Command, opt *globalOptions)

func addSnooze(topLevel *cobra.Command, opt *globalOptions) {
	var minutes int

	cmd := &cobra.Command{
		Use:   "snooze <reminder-id>",
		Short: "Postpone a reminder that has fired.",
		Example: `
medalert snooze 5f0c..._2026-10-20_0800
medalert snooze --minutes 15 5f0c..._2026-10-20_0800
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err    error
				client *clientlib.Client
				book   *planner.Book
				r      *objects.Reminder
			)

			if client, err = opt.client(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			} else if book, err = opt.book(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			} else if r, err = snooze(client, book, args[0], minutes); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Snoozed until %s (%s)\n",
				r.DueAt.Local().Format(common.TimeOfDayFormat),
				r.ID)
			return nil
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0,
		"Minutes to postpone the reminder by (default is the daemon's setting).")

	topLevel.AddCommand(cmd)
} // func addSnooze(topLevel *cobra.Command, opt *globalOptions)

// snooze postpones the Reminder id and records the new Reminder with the
// Schedule it belongs to. Reminders that were not created by a Schedule
// are fine, too.
func snooze(client alertClient, book *planner.Book, id string, minutes int) (*objects.Reminder, error) {
	var (
		err error
		r   *objects.Reminder
	)

	if minutes < 0 {
		return nil, fmt.Errorf("Cannot snooze by %d minutes", minutes)
	} else if r, err = client.Snooze(id, minutes); err != nil {
		return nil, err
	} else if err = book.Attach(id, r.ID); err != nil && !errors.Is(err, planner.ErrNoSchedule) {
		return r, err
	}

	return r, nil
} // func snooze(client alertClient, book *planner.Book, id string, minutes int) (*objects.Reminder, error)

func addAck(topLevel *cobra.Command, opt *globalOptions) {
	cmd := &cobra.Command{
		Use:   "ack <reminder-id>",
		Short: "Acknowledge a reminder, i.e. you took your medicine.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err    error
				client *clientlib.Client
			)

			if client, err = opt.client(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			} else if err = client.Acknowledge(args[0]); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			}

			return nil
		},
	}

	topLevel.AddCommand(cmd)
} // func addAck(topLevel *cobra.Command, opt *globalOptions)
