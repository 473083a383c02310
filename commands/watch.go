// /home/krylon/go/src/github.com/blicero/medalert/commands/watch.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 13:58:09 krylon>

package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/blicero/medalert/clients/clientlib"
	"github.com/blicero/medalert/clients/planner"
	"github.com/blicero/medalert/clients/tone"
	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/objects"
	"github.com/blicero/medalert/objects/action"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// alertClient is the part of the client the alert prompt needs.
type alertClient interface {
	Acknowledge(id string) error
	Snooze(id string, minutes int) (*objects.Reminder, error)
}

func addWatch(topLevel *cobra.Command, opt *globalOptions) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stay in the foreground and alert loudly when a reminder fires.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err    error
				client *clientlib.Client
				book   *planner.Book
				player tone.Player
				errQ   = make(chan error, 1)
				events = make(chan objects.Event, 16)
			)

			if client, err = opt.client(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			} else if book, err = opt.book(); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			} else if player, err = tone.NewPlayer(opt.cfg.Client.Tone, opt.cfg.Client.ToneCommand, cmd.OutOrStdout()); err != nil {
				return complain(cmd.ErrOrStderr(), err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			go func() {
				errQ <- client.Listen(ctx, func(ev objects.Event) {
					if ev.Type != objects.MsgReminderTriggered {
						return
					}

					select {
					case events <- ev:
					default:
						client.GetLogger().Printf("[WARN] Too many alerts pending, dropping %s\n",
							ev.Reminder.ID)
					}
				})
			}()

			var (
				out = cmd.OutOrStdout()
				in  = newLineReader(cmd.InOrStdin())
			)

			fmt.Fprintf(out, "Waiting for reminders from %s, press Ctrl-C to quit.\n",
				opt.cfg.Client.Server)

			for {
				select {
				case <-ctx.Done():
					return nil
				case err = <-errQ:
					if err != nil {
						return complain(cmd.ErrOrStderr(), err)
					}
					return nil
				case ev := <-events:
					if err = alertUser(ctx, out, in, player, client, book, &ev.Reminder); errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
						return nil
					}
				}
			}
		},
	}

	topLevel.AddCommand(cmd)
} // func addWatch(topLevel *cobra.Command, opt *globalOptions)

var (
	banner  = color.New(color.BgRed, color.FgHiWhite, color.Bold)
	subject = color.New(color.FgHiWhite, color.Bold)
)

// alertUser shows a Reminder that has fired, plays the tone until the user
// reacts and carries out what the user chose. It only returns an error if
// reading the user's input failed, errors talking to the daemon are shown
// to the user and must be acknowledged, or if ctx is cancelled while
// waiting for input.
func alertUser(ctx context.Context, w io.Writer, in *lineReader, player tone.Player, client alertClient, book *planner.Book, r *objects.Reminder) error {
	var (
		err    error
		handle tone.Handle
		line   string
		act    action.Action
		ok     bool
	)

	fmt.Fprintln(w)
	banner.Fprintf(w, " %s ", objects.NotificationTitle) // nolint: errcheck
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Time to take %s (due %s)\n",
		subject.Sprint(r.Subject),
		r.DueAt.Local().Format(common.TimeOfDayFormat))

	if handle, err = player.Acquire(); err != nil {
		fmt.Fprintf(w, "Cannot play alert tone: %s\n", err.Error())
	} else {
		defer handle.Release() // nolint: errcheck
		if err = handle.Play(); err != nil {
			fmt.Fprintf(w, "Cannot play alert tone: %s\n", err.Error())
		}
	}

	for !ok {
		fmt.Fprintf(w, "[%s] taken, [%s] snooze, [i]gnore: ",
			action.Acknowledge.Key()[:1],
			action.Snooze.Key()[:1])

		if line, err = in.readLine(ctx); err != nil {
			return err
		}

		line = strings.ToLower(strings.TrimSpace(line))

		switch {
		case line == "":
			continue
		case line == "i" || line == "ignore":
			if handle != nil {
				handle.Stop() // nolint: errcheck
			}
			return nil
		case len(line) == 1:
			for _, a := range action.All() {
				if strings.HasPrefix(a.Key(), line) {
					act, ok = a, true
				}
			}
		default:
			act, ok = action.Parse(line)
		}
	}

	if handle != nil {
		handle.Stop() // nolint: errcheck
	}

	switch act {
	case action.Acknowledge:
		err = client.Acknowledge(r.ID)
	case action.Snooze:
		var s *objects.Reminder
		if s, err = snooze(client, book, r.ID, 0); err == nil {
			fmt.Fprintf(w, "Snoozed until %s\n",
				s.DueAt.Local().Format(common.TimeOfDayFormat))
		}
	}

	if err != nil {
		complain(w, err) // nolint: errcheck
		fmt.Fprint(w, "Press Enter to continue.")
		if _, err = in.readLine(ctx); err != nil {
			return err
		}
	}

	return nil
} // func alertUser(ctx context.Context, w io.Writer, in *lineReader, player tone.Player, client alertClient, book *planner.Book, r *objects.Reminder) error

// lineReader reads lines in the background, so a prompt waiting for input
// can still give up when its context is cancelled.
type lineReader struct {
	lines chan string
	err   error // set before lines is closed
}

func newLineReader(r io.Reader) *lineReader {
	var lr = &lineReader{lines: make(chan string)}

	go lr.run(bufio.NewReader(r))

	return lr
} // func newLineReader(r io.Reader) *lineReader

func (lr *lineReader) run(in *bufio.Reader) {
	defer close(lr.lines)

	for {
		var line, err = in.ReadString('\n')

		if line != "" {
			lr.lines <- line
		}

		if err != nil {
			lr.err = err
			return
		}
	}
} // func (lr *lineReader) run(in *bufio.Reader)

// readLine returns the next line of input. Once the input is exhausted, it
// returns the error that ended it.
func (lr *lineReader) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lr.lines:
		if !ok {
			return "", lr.err
		}
		return line, nil
	}
} // func (lr *lineReader) readLine(ctx context.Context) (string, error)

var _ alertClient = (*clientlib.Client)(nil)
