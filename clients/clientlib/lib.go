// /home/krylon/go/src/github.com/blicero/medalert/clients/clientlib/lib.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 09:12:40 krylon>

// Package clientlib provides the basic framework for building clients
// that talk to the daemon: saving and deleting Reminders, snoozing them,
// and receiving the Events the daemon sends when a Reminder is due.
package clientlib

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/logdomain"
	"github.com/blicero/medalert/objects"
	"github.com/pquerna/ffjson/ffjson"
)

const (
	bridgePath = "/bridge"
	statusPath = "/status"
	eventsPath = "/events"
)

// ErrUnanswered means the daemon accepted a request without answering it,
// which it does for messages it considers invalid.
var ErrUnanswered = errors.New("Daemon did not answer the request")

// ErrCorrelation means the daemon's answer does not belong to the request.
var ErrCorrelation = errors.New("Response does not match the request")

// Client is the basic implementation of a MedAlert client,
// it implements the fundamental communication with the daemon.
type Client struct {
	Server *url.URL
	Client http.Client
	log    *log.Logger
}

// NewClient creates a new Client talking to the daemon at srv.
func NewClient(srv string, timeout time.Duration) (*Client, error) {
	var (
		err error
		c   = &Client{
			Client: http.Client{
				Timeout: timeout,
			},
		}
	)

	if c.log, err = common.GetLogger(logdomain.Client); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger: %s\n",
			err.Error())
		return nil, err
	} else if c.Server, err = url.Parse(srv); err != nil {
		c.log.Printf("[ERROR] Cannot parse URL %q: %s\n",
			srv,
			err.Error())
		return nil, err
	}

	if c.Server.Scheme == "" {
		c.Server.Scheme = "http"
	}

	return c, nil
} // func NewClient(srv string, timeout time.Duration) (*Client, error)

// GetLogger returns the Client's Logger.
func (c *Client) GetLogger() *log.Logger {
	return c.log
} // func (c *Client) GetLogger() *log.Logger

func (c *Client) endpoint(path string) string {
	var u = *c.Server
	u.Path = path
	return u.String()
} // func (c *Client) endpoint(path string) string

// send posts a Message to the daemon, tagged with a fresh correlation
// token. It returns the HTTP status and, if the daemon answered with one,
// the Response.
func (c *Client) send(msg *objects.Message) (int, *objects.Response, error) {
	var (
		err     error
		sendBuf []byte
		rcvBuf  bytes.Buffer
		hres    *http.Response
		addr    = c.endpoint(bridgePath)
	)

	msg.Corr = common.GetUUID()

	if sendBuf, err = ffjson.Marshal(msg); err != nil {
		c.log.Printf("[ERROR] Cannot serialize Message: %s\n",
			err.Error())
		return 0, nil, err
	}

	defer ffjson.Pool(sendBuf)

	if hres, err = c.Client.Post(addr, "application/json", bytes.NewReader(sendBuf)); err != nil {
		c.log.Printf("[ERROR] Failed to POST %s to %s: %s\n",
			msg.Type,
			addr,
			err.Error())
		return 0, nil, err
	}

	defer hres.Body.Close() // nolint: errcheck

	if hres.StatusCode != http.StatusOK {
		return hres.StatusCode, nil, nil
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			addr,
			err.Error())
		return hres.StatusCode, nil, err
	}

	var ores = new(objects.Response)

	if err = ffjson.Unmarshal(rcvBuf.Bytes(), ores); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			addr,
			err.Error())
		return hres.StatusCode, nil, err
	} else if ores.Corr != msg.Corr {
		c.log.Printf("[ERROR] Response #%d carries correlation token %q, expected %q\n",
			ores.ID,
			ores.Corr,
			msg.Corr)
		return hres.StatusCode, nil, ErrCorrelation
	}

	return hres.StatusCode, ores, nil
} // func (c *Client) send(msg *objects.Message) (int, *objects.Response, error)

// request sends a Message that the daemon is supposed to answer and
// translates a negative Response into an error.
func (c *Client) request(msg *objects.Message) (*objects.Response, error) {
	var (
		err    error
		status int
		res    *objects.Response
	)

	if status, res, err = c.send(msg); err != nil {
		return nil, err
	} else if status == http.StatusNoContent {
		c.log.Printf("[ERROR] Daemon did not answer %s\n", msg.Type)
		return nil, ErrUnanswered
	} else if res == nil {
		return nil, fmt.Errorf("Unexpected status %d for %s",
			status,
			msg.Type)
	} else if !res.Status {
		err = fmt.Errorf("Request %s failed: %s",
			msg.Type,
			res.Message)
		c.log.Printf("[ERROR] %s\n", err.Error())
		return res, err
	}

	c.log.Printf("[DEBUG] Request %s (#%d) was successful: %s\n",
		msg.Type,
		res.ID,
		res.Message)

	return res, nil
} // func (c *Client) request(msg *objects.Message) (*objects.Response, error)

// SaveReminder saves a Reminder with the daemon.
func (c *Client) SaveReminder(r *objects.Reminder) error {
	var _, err = c.request(&objects.Message{
		Type:     objects.MsgSaveReminder,
		Reminder: r,
	})

	return err
} // func (c *Client) SaveReminder(r *objects.Reminder) error

// SaveReminders saves a batch of Reminders and asks the daemon to check
// for due Reminders afterwards. It returns the number of Reminders that
// were saved and the error for each one that could not be.
func (c *Client) SaveReminders(list []objects.Reminder) (int, map[string]error) {
	var (
		saved  int
		failed = make(map[string]error)
	)

	for idx := range list {
		if err := c.SaveReminder(&list[idx]); err != nil {
			failed[list[idx].ID] = err
		} else {
			saved++
		}
	}

	c.log.Printf("[INFO] Saved %d Reminder(s), %d failed\n",
		saved,
		len(failed))

	if saved > 0 {
		if err := c.CheckNow(); err != nil {
			c.log.Printf("[ERROR] Cannot trigger check: %s\n",
				err.Error())
		}
	}

	return saved, failed
} // func (c *Client) SaveReminders(list []objects.Reminder) (int, map[string]error)

// DeleteReminder deletes a Reminder along with the Reminders snoozed from it.
func (c *Client) DeleteReminder(id string) error {
	var _, err = c.request(&objects.Message{
		Type: objects.MsgDeleteReminder,
		ID:   id,
	})

	return err
} // func (c *Client) DeleteReminder(id string) error

// GetAllReminders fetches all Reminders from the daemon.
func (c *Client) GetAllReminders() ([]objects.Reminder, error) {
	var (
		err error
		res *objects.Response
	)

	if res, err = c.request(&objects.Message{Type: objects.MsgGetAllReminders}); err != nil {
		return nil, err
	}

	return res.Reminders, nil
} // func (c *Client) GetAllReminders() ([]objects.Reminder, error)

// Snooze postpones a triggered Reminder by the given number of minutes,
// or by the daemon's default if minutes is zero. It returns the new Reminder.
func (c *Client) Snooze(id string, minutes int) (*objects.Reminder, error) {
	var (
		err error
		res *objects.Response
	)

	if res, err = c.request(&objects.Message{
		Type:    objects.MsgSnoozeReminder,
		ID:      id,
		Minutes: minutes,
	}); err != nil {
		return nil, err
	}

	return res.Reminder, nil
} // func (c *Client) Snooze(id string, minutes int) (*objects.Reminder, error)

// Acknowledge tells the daemon the user has taken care of a Reminder.
func (c *Client) Acknowledge(id string) error {
	var _, err = c.request(&objects.Message{
		Type: objects.MsgAckReminder,
		ID:   id,
	})

	return err
} // func (c *Client) Acknowledge(id string) error

// CheckNow asks the daemon to look for due Reminders right away.
// The daemon does not wait for the check to finish before answering.
func (c *Client) CheckNow() error {
	var (
		err    error
		status int
	)

	if status, _, err = c.send(&objects.Message{Type: objects.MsgCheckNow}); err != nil {
		return err
	} else if status != http.StatusAccepted {
		return fmt.Errorf("Unexpected status %d for %s",
			status,
			objects.MsgCheckNow)
	}

	return nil
} // func (c *Client) CheckNow() error

// KeepAlive pings the daemon.
func (c *Client) KeepAlive() error {
	var (
		err    error
		status int
	)

	if status, _, err = c.send(&objects.Message{Type: objects.MsgKeepAlive}); err != nil {
		return err
	} else if status != http.StatusNoContent {
		return fmt.Errorf("Unexpected status %d for %s",
			status,
			objects.MsgKeepAlive)
	}

	return nil
} // func (c *Client) KeepAlive() error

// Status fetches the state of the daemon's scheduler.
func (c *Client) Status() (*objects.Status, error) {
	var (
		err  error
		hres *http.Response
		buf  []byte
		st   = new(objects.Status)
		addr = c.endpoint(statusPath)
	)

	if hres, err = c.Client.Get(addr); err != nil {
		c.log.Printf("[ERROR] Cannot GET %s: %s\n",
			addr,
			err.Error())
		return nil, err
	}

	defer hres.Body.Close() // nolint: errcheck

	if hres.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Unexpected status from %s: %s",
			addr,
			hres.Status)
	} else if buf, err = io.ReadAll(hres.Body); err != nil {
		return nil, err
	} else if err = ffjson.Unmarshal(buf, st); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Status: %s\n",
			err.Error())
		return nil, err
	}

	return st, nil
} // func (c *Client) Status() (*objects.Status, error)
