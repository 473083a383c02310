// /home/krylon/go/src/github.com/blicero/medalert/clients/tone/command.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 15:02:44 krylon>

package tone

import (
	"errors"
	"log"
	"os/exec"
	"strings"
	"sync"

	"github.com/mitchellh/go-homedir"
)

// ErrNoCommand is returned when the command line for the tone is empty.
var ErrNoCommand = errors.New("No command given to play the tone")

// Command plays the tone by running an external program, e.g. paplay(1).
// The program is started over and over until playback is stopped.
type Command struct {
	owner
	log  *log.Logger
	args []string
}

// NewCommand creates a Command Player from a command line. A leading ~ in
// any argument is expanded to the user's home directory.
func NewCommand(l *log.Logger, cmdline string) (*Command, error) {
	var (
		err error
		c   = &Command{log: l, args: strings.Fields(cmdline)}
	)

	if len(c.args) == 0 {
		return nil, ErrNoCommand
	}

	for i, a := range c.args {
		if c.args[i], err = homedir.Expand(a); err != nil {
			l.Printf("[ERROR] Cannot expand %q: %s\n",
				a,
				err.Error())
			return nil, err
		}
	}

	return c, nil
} // func NewCommand(l *log.Logger, cmdline string) (*Command, error)

// Acquire returns the Command's Handle, or ErrBusy if someone else holds it.
func (c *Command) Acquire() (Handle, error) {
	if err := c.acquire(); err != nil {
		return nil, err
	}

	return &commandHandle{c: c}, nil
} // func (c *Command) Acquire() (Handle, error)

type commandHandle struct {
	lock     sync.Mutex
	c        *Command
	proc     *exec.Cmd
	stop     chan struct{}
	done     chan struct{}
	released bool
}

func (h *commandHandle) Play() error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.released {
		return ErrReleased
	} else if h.stop != nil {
		return nil
	}

	var (
		err  error
		proc = exec.Command(h.c.args[0], h.c.args[1:]...) // nolint: gosec
	)

	if err = proc.Start(); err != nil {
		h.c.log.Printf("[ERROR] Cannot start %s: %s\n",
			h.c.args[0],
			err.Error())
		return err
	}

	h.proc = proc
	h.stop = make(chan struct{})
	h.done = make(chan struct{})

	go h.loop(proc, h.stop, h.done)

	return nil
} // func (h *commandHandle) Play() error

func (h *commandHandle) loop(proc *exec.Cmd, stop, done chan struct{}) {
	defer close(done)

	for {
		if err := proc.Wait(); err != nil {
			select {
			case <-stop:
				return
			default:
				h.c.log.Printf("[ERROR] %s failed: %s\n",
					h.c.args[0],
					err.Error())
				return
			}
		}

		select {
		case <-stop:
			return
		default:
		}

		proc = exec.Command(h.c.args[0], h.c.args[1:]...) // nolint: gosec

		if err := proc.Start(); err != nil {
			h.c.log.Printf("[ERROR] Cannot restart %s: %s\n",
				h.c.args[0],
				err.Error())
			return
		}

		h.lock.Lock()
		select {
		case <-stop:
			h.lock.Unlock()
			proc.Process.Kill() // nolint: errcheck
			proc.Wait()         // nolint: errcheck
			return
		default:
			h.proc = proc
		}
		h.lock.Unlock()
	}
} // func (h *commandHandle) loop(proc *exec.Cmd, stop, done chan struct{})

func (h *commandHandle) Stop() error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.released {
		return ErrReleased
	}

	h.halt()
	return nil
} // func (h *commandHandle) Stop() error

// halt must be called with the lock held. It drops the lock while waiting
// for the loop, which needs it to swap processes.
func (h *commandHandle) halt() {
	if h.stop == nil {
		return
	}

	close(h.stop)

	if h.proc != nil && h.proc.Process != nil {
		h.proc.Process.Kill() // nolint: errcheck
	}

	var done = h.done
	h.lock.Unlock()
	<-done
	h.lock.Lock()

	h.proc, h.stop, h.done = nil, nil, nil
} // func (h *commandHandle) halt()

func (h *commandHandle) Release() error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.released {
		return ErrReleased
	}

	h.halt()
	h.released = true
	h.c.release()
	return nil
} // func (h *commandHandle) Release() error
