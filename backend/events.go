// /home/krylon/go/src/github.com/blicero/medalert/backend/events.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 17:40:02 krylon>

package backend

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/blicero/medalert/objects"
	"github.com/pquerna/ffjson/ffjson"
)

const (
	subscriberDepth = 8
	streamKeepAlive = time.Second * 15
)

// eventHub fans Events out to the foreground clients listening on the
// event stream. A subscriber that does not keep up loses Events, delivery
// to the others never waits for it.
type eventHub struct {
	lock sync.Mutex
	cnt  int64
	subs map[int64]chan objects.Event
}

func newEventHub() *eventHub {
	return &eventHub{subs: make(map[int64]chan objects.Event)}
} // func newEventHub() *eventHub

func (h *eventHub) subscribe() (int64, <-chan objects.Event) {
	var ch = make(chan objects.Event, subscriberDepth)

	h.lock.Lock()
	h.cnt++
	var id = h.cnt
	h.subs[id] = ch
	h.lock.Unlock()

	return id, ch
} // func (h *eventHub) subscribe() (int64, <-chan objects.Event)

func (h *eventHub) unsubscribe(id int64) {
	h.lock.Lock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
	h.lock.Unlock()
} // func (h *eventHub) unsubscribe(id int64)

// broadcast returns the number of subscribers the Event was handed to.
func (h *eventHub) broadcast(ev objects.Event) int {
	var cnt int

	h.lock.Lock()
	defer h.lock.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- ev:
			cnt++
		default:
		}
	}

	return cnt
} // func (h *eventHub) broadcast(ev objects.Event) int

func (h *eventHub) count() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.subs)
} // func (h *eventHub) count() int

func (h *eventHub) closeAll() {
	h.lock.Lock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
	h.lock.Unlock()
} // func (h *eventHub) closeAll()

// handleEvents streams Events to the client as server-sent events until
// the client goes away or the Daemon shuts down.
func (d *Daemon) handleEvents(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		flusher, ok = w.(http.Flusher)
		ticker      *time.Ticker
	)

	if !ok {
		http.Error(w, "Streaming is not supported", http.StatusInternalServerError)
		return
	}

	var id, events = d.hub.subscribe()
	defer d.hub.unsubscribe(id)

	ticker = time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n") // nolint: errcheck
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, open := <-events:
			if !open {
				return
			}

			var (
				err error
				buf []byte
			)

			if buf, err = ffjson.Marshal(&ev); err != nil {
				d.log.Printf("[ERROR] Cannot serialize Event: %s\n",
					err.Error())
				continue
			}

			_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, buf)
			ffjson.Pool(buf)
			if err != nil {
				d.log.Printf("[DEBUG] Lost event stream client %s: %s\n",
					r.RemoteAddr,
					err.Error())
				return
			}
			flusher.Flush()
		}
	}
} // func (d *Daemon) handleEvents(w http.ResponseWriter, r *http.Request)
