// /home/krylon/go/src/github.com/blicero/medalert/commands/schedule.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 10:47:18 krylon>

package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/blicero/medalert/clients/clientlib"
	"github.com/blicero/medalert/clients/planner"
	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/objects"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

type addOptions struct {
	name  string
	start string
	days  int
	times []string
}

func addAdd(topLevel *cobra.Command, opt *globalOptions) {
	var o addOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a medicine.",
		Example: `
medalert add --name Aspirin --start 2026-10-20 --days 7 --time 08:00 --time 20:00
medalert add --name "Vitamin D" --days 30 --time 7:30
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err    error
				client *clientlib.Client
				book   *planner.Book
				sched  *planner.Schedule
				out    = cmd.OutOrStdout()
				req    = planner.Request{
					Subject:   o.name,
					StartDate: o.start,
					Days:      o.days,
					Times:     o.times,
				}
			)

			if client, err = opt.client(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			} else if book, err = opt.book(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			} else if sched, err = addSchedule(book, client, req); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			}

			fmt.Fprintf(out, "Scheduled %s: %d reminder(s), schedule %s\n",
				sched.Subject,
				len(sched.Reminders),
				sched.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&o.name, "name", "", "Name of the medicine.")
	cmd.Flags().StringVar(&o.start, "start", time.Now().Format(common.TimestampFormatDate),
		`Date of the first dose, e.g. --start="2026-10-20".`)
	cmd.Flags().IntVar(&o.days, "days", 1, "Number of days to take the medicine.")
	cmd.Flags().StringSliceVar(&o.times, "time", nil,
		"Time of day for a dose, may be given more than once.")

	topLevel.AddCommand(cmd)
} // func addAdd(topLevel *cobra.Command, opt *globalOptions)

// addSchedule generates the Reminders for req, hands them to the daemon
// and records the Schedule in the Book. The Schedule is recorded as long
// as any Reminder was saved, so it can be removed again later.
func addSchedule(book *planner.Book, client *clientlib.Client, req planner.Request) (*planner.Schedule, error) {
	var (
		err    error
		sched  *planner.Schedule
		rems   []objects.Reminder
		saved  int
		failed map[string]error
	)

	if sched, rems, err = planner.Generate(req, time.Local); err != nil {
		return nil, err
	}

	saved, failed = client.SaveReminders(rems)

	if saved > 0 {
		if err = book.Save(sched); err != nil {
			return nil, err
		}
	}

	if len(failed) > 0 {
		var ids = make([]string, 0, len(failed))
		for id := range failed {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		return sched, fmt.Errorf("Cannot save %d of %d reminders for %s (first: %s: %w)",
			len(failed),
			len(rems),
			sched.Subject,
			ids[0],
			failed[ids[0]])
	}

	return sched, nil
} // func addSchedule(book *planner.Book, client *clientlib.Client, req planner.Request) (*planner.Schedule, error)

func addSchedules(topLevel *cobra.Command, opt *globalOptions) {
	cmd := &cobra.Command{
		Use:   "schedules",
		Short: "List the scheduled medicines.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err  error
				book *planner.Book
				list []*planner.Schedule
			)

			if book, err = opt.book(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			} else if list, err = book.List(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			}

			printSchedules(cmd.OutOrStdout(), list)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
} // func addSchedules(topLevel *cobra.Command, opt *globalOptions)

func printSchedules(w io.Writer, list []*planner.Schedule) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No medicines scheduled.")
		return
	}

	tbl := uitable.New()
	tbl.MaxColWidth = 48
	tbl.AddRow("ID", "MEDICINE", "START", "DAYS", "TIMES", "REMINDERS")

	for _, s := range list {
		tbl.AddRow(
			s.ID,
			s.Subject,
			s.StartDate,
			s.Days,
			strings.Join(s.Times, ", "),
			len(s.AllReminders()))
	}

	fmt.Fprintln(w, tbl)
} // func printSchedules(w io.Writer, list []*planner.Schedule)

func addRemove(topLevel *cobra.Command, opt *globalOptions) {
	cmd := &cobra.Command{
		Use:   "remove <schedule-id>",
		Short: "Remove a scheduled medicine with all its reminders.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err    error
				client *clientlib.Client
				book   *planner.Book
			)

			if client, err = opt.client(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			} else if book, err = opt.book(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			} else if err = planner.Remove(book, client, args[0]); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed schedule %s\n", args[0])
			return nil
		},
	}

	topLevel.AddCommand(cmd)
} // func addRemove(topLevel *cobra.Command, opt *globalOptions)
