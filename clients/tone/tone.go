// /home/krylon/go/src/github.com/blicero/medalert/clients/tone/tone.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 14:10:52 krylon>

// Package tone plays the alert sound while a Reminder is shown in the
// foreground. A Player hands out at most one Handle at a time; whoever
// holds the Handle owns the sound until it calls Release.
package tone

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/config"
	"github.com/blicero/medalert/logdomain"
)

// Errors returned by Players and Handles.
var (
	ErrBusy     = errors.New("Tone player is in use")
	ErrReleased = errors.New("Handle has been released")
)

// Player hands out the Handle to play the alert tone.
type Player interface {
	Acquire() (Handle, error)
}

// Handle controls the playback of the alert tone. Play starts the tone and
// keeps it going until Stop is called. Release stops playback and returns
// the Handle to its Player; the Handle is unusable afterwards.
type Handle interface {
	Play() error
	Stop() error
	Release() error
}

// NewPlayer creates the Player named by kind, one of config.ToneBell,
// config.ToneCommand and config.ToneNone. Bell writes to out, command runs
// cmdline.
func NewPlayer(kind, cmdline string, out io.Writer) (Player, error) {
	var (
		err error
		l   *log.Logger
	)

	if l, err = common.GetLogger(logdomain.Tone); err != nil {
		return nil, err
	}

	switch kind {
	case config.ToneBell:
		return &Bell{log: l, out: out, interval: bellInterval}, nil
	case config.ToneCommand:
		return NewCommand(l, cmdline)
	case config.ToneNone:
		return &silence{}, nil
	default:
		return nil, fmt.Errorf("Unknown tone player %q", kind)
	}
} // func NewPlayer(kind, cmdline string, out io.Writer) (Player, error)

// owner tracks whether a Player's Handle is currently checked out.
type owner struct {
	lock sync.Mutex
	busy bool
}

func (o *owner) acquire() error {
	o.lock.Lock()
	defer o.lock.Unlock()

	if o.busy {
		return ErrBusy
	}

	o.busy = true
	return nil
} // func (o *owner) acquire() error

func (o *owner) release() {
	o.lock.Lock()
	o.busy = false
	o.lock.Unlock()
} // func (o *owner) release()

type silence struct {
	owner
}

type silentHandle struct {
	p        *silence
	released bool
}

func (s *silence) Acquire() (Handle, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}

	return &silentHandle{p: s}, nil
} // func (s *silence) Acquire() (Handle, error)

func (h *silentHandle) Play() error {
	if h.released {
		return ErrReleased
	}
	return nil
}

func (h *silentHandle) Stop() error {
	if h.released {
		return ErrReleased
	}
	return nil
}

func (h *silentHandle) Release() error {
	if h.released {
		return ErrReleased
	}
	h.released = true
	h.p.release()
	return nil
} // func (h *silentHandle) Release() error
