// /home/krylon/go/src/github.com/blicero/medalert/clients/clientlib/events.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 09:30:02 krylon>

package clientlib

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/blicero/medalert/objects"
	"github.com/pquerna/ffjson/ffjson"
)

// Listen subscribes to the daemon's event stream and calls handler for
// every Event received. It returns when ctx is cancelled, which is not an
// error, or when the connection to the daemon is lost.
//
// handler is called on the goroutine that called Listen.
func (c *Client) Listen(ctx context.Context, handler func(objects.Event)) error {
	var (
		err  error
		req  *http.Request
		res  *http.Response
		addr = c.endpoint(eventsPath)
		// The stream stays open indefinitely, so the Client's timeout
		// must not apply.
		hc = http.Client{Transport: c.Client.Transport}
	)

	if req, err = http.NewRequestWithContext(ctx, http.MethodGet, addr, nil); err != nil {
		return err
	}

	req.Header.Set("Accept", "text/event-stream")

	if res, err = hc.Do(req); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		c.log.Printf("[ERROR] Cannot subscribe to %s: %s\n",
			addr,
			err.Error())
		return err
	}

	defer res.Body.Close() // nolint: errcheck

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("Unexpected status from %s: %s",
			addr,
			res.Status)
	}

	c.log.Printf("[DEBUG] Listening for events from %s\n", addr)

	var scanner = bufio.NewScanner(res.Body)

	for scanner.Scan() {
		var (
			ev   objects.Event
			line = scanner.Text()
		)

		if !strings.HasPrefix(line, "data:") {
			continue
		}

		line = strings.TrimSpace(strings.TrimPrefix(line, "data:"))

		if err = ffjson.Unmarshal([]byte(line), &ev); err != nil {
			c.log.Printf("[ERROR] Cannot de-serialize Event %q: %s\n",
				line,
				err.Error())
			continue
		}

		handler(ev)
	}

	if ctx.Err() != nil {
		return nil
	} else if err = scanner.Err(); err != nil && !errors.Is(err, context.Canceled) {
		c.log.Printf("[ERROR] Lost event stream from %s: %s\n",
			addr,
			err.Error())
		return err
	}

	return errors.New("Daemon closed the event stream")
} // func (c *Client) Listen(ctx context.Context, handler func(objects.Event)) error
