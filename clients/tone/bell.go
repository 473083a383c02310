// /home/krylon/go/src/github.com/blicero/medalert/clients/tone/bell.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 14:31:20 krylon>

package tone

import (
	"io"
	"log"
	"sync"
	"time"
)

const bellInterval = 1500 * time.Millisecond

// Bell rings the terminal bell repeatedly.
type Bell struct {
	owner
	log      *log.Logger
	out      io.Writer
	interval time.Duration
}

// Acquire returns the Bell's Handle, or ErrBusy if someone else holds it.
func (b *Bell) Acquire() (Handle, error) {
	if err := b.acquire(); err != nil {
		return nil, err
	}

	return &bellHandle{b: b}, nil
} // func (b *Bell) Acquire() (Handle, error)

type bellHandle struct {
	lock     sync.Mutex
	b        *Bell
	stop     chan struct{}
	done     chan struct{}
	released bool
}

func (h *bellHandle) Play() error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.released {
		return ErrReleased
	} else if h.stop != nil {
		return nil
	}

	h.stop = make(chan struct{})
	h.done = make(chan struct{})

	go h.ring(h.stop, h.done)

	return nil
} // func (h *bellHandle) Play() error

func (h *bellHandle) ring(stop, done chan struct{}) {
	defer close(done)

	var ticker = time.NewTicker(h.b.interval)
	defer ticker.Stop()

	for {
		if _, err := io.WriteString(h.b.out, "\a"); err != nil {
			h.b.log.Printf("[ERROR] Cannot ring bell: %s\n",
				err.Error())
			return
		}

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
} // func (h *bellHandle) ring(stop, done chan struct{})

func (h *bellHandle) Stop() error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.released {
		return ErrReleased
	}

	h.halt()
	return nil
} // func (h *bellHandle) Stop() error

// halt must be called with the lock held.
func (h *bellHandle) halt() {
	if h.stop == nil {
		return
	}

	close(h.stop)
	<-h.done
	h.stop, h.done = nil, nil
} // func (h *bellHandle) halt()

func (h *bellHandle) Release() error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.released {
		return ErrReleased
	}

	h.halt()
	h.released = true
	h.b.release()
	return nil
} // func (h *bellHandle) Release() error
