// /home/krylon/go/src/github.com/blicero/medalert/backend/notify_dbus.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 17:13:45 krylon>

package backend

import (
	"fmt"
	"log"
	"sync"

	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/objects"
	"github.com/blicero/medalert/objects/action"
	"github.com/godbus/dbus/v5"
)

const (
	notifyObj      = "org.freedesktop.Notifications"
	notifyIntf     = "org.freedesktop.Notifications"
	notifyPath     = "/org/freedesktop/Notifications"
	notifyMethod   = notifyIntf + ".Notify"
	closeMethod    = notifyIntf + ".CloseNotification"
	sigAction      = notifyIntf + ".ActionInvoked"
	sigClosed      = notifyIntf + ".NotificationClosed"
	notifyCategory = "x-medalert.reminder"
	urgencyCrit    = byte(2)
	signalDepth    = 16
)

// DBusNotifier posts notifications via the freedesktop notification
// service on the session bus and listens for the user's response.
type DBusNotifier struct {
	log      *log.Logger
	bus      *dbus.Conn
	obj      dbus.BusObject
	handler  ActionHandler
	lock     sync.Mutex
	byRem    map[string]uint32
	byNotify map[uint32]string
	signals  chan *dbus.Signal
	done     chan struct{}
}

// NewDBusNotifier connects to the session bus. handler is called with the
// Reminder ID whenever the user clicks one of a notification's actions.
func NewDBusNotifier(l *log.Logger, handler ActionHandler) (*DBusNotifier, error) {
	var (
		err error
		n   = &DBusNotifier{
			log:      l,
			handler:  handler,
			byRem:    make(map[string]uint32),
			byNotify: make(map[uint32]string),
			signals:  make(chan *dbus.Signal, signalDepth),
			done:     make(chan struct{}),
		}
	)

	if n.bus, err = dbus.ConnectSessionBus(); err != nil {
		return nil, fmt.Errorf("Failed to connect to DBus Session bus: %w", err)
	}

	n.obj = n.bus.Object(notifyObj, notifyPath)

	for _, member := range []string{"ActionInvoked", "NotificationClosed"} {
		if err = n.bus.AddMatchSignal(
			dbus.WithMatchObjectPath(notifyPath),
			dbus.WithMatchInterface(notifyIntf),
			dbus.WithMatchMember(member),
		); err != nil {
			n.bus.Close() // nolint: errcheck
			return nil, fmt.Errorf("Cannot subscribe to %s signals: %w",
				member,
				err)
		}
	}

	n.bus.Signal(n.signals)
	go n.listen()

	return n, nil
} // func NewDBusNotifier(l *log.Logger, handler ActionHandler) (*DBusNotifier, error)

// Show posts a notification. If a notification with the same Tag is still
// open, it is replaced instead of posting another one.
func (n *DBusNotifier) Show(item objects.Notification) error {
	var (
		err        error
		nid        uint32
		tag        = item.Tag()
		head, body = item.Payload()
		actions    = make([]string, 0, 4)
		hints      = map[string]dbus.Variant{
			"urgency":  dbus.MakeVariant(urgencyCrit),
			"category": dbus.MakeVariant(notifyCategory),
		}
	)

	for _, a := range action.All() {
		actions = append(actions, a.Key(), a.String())
	}

	n.lock.Lock()
	defer n.lock.Unlock()

	var call = n.obj.Call(
		notifyMethod,
		0,
		common.AppName,
		n.byRem[tag],
		"",
		head,
		body,
		actions,
		hints,
		int32(0),
	)

	if call.Err != nil {
		n.log.Printf("[ERROR] Cannot send Notification %q: %s\n",
			head,
			call.Err.Error())
		return call.Err
	} else if err = call.Store(&nid); err != nil {
		n.log.Printf("[ERROR] Cannot read ID of Notification for %s: %s\n",
			tag,
			err.Error())
		return err
	}

	n.byRem[tag] = nid
	n.byNotify[nid] = tag

	return nil
} // func (n *DBusNotifier) Show(item objects.Notification) error

// Close closes the notification for the Reminder with the given ID.
func (n *DBusNotifier) Close(id string) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	var nid, ok = n.byRem[id]

	if !ok {
		return nil
	}

	delete(n.byRem, id)
	delete(n.byNotify, nid)

	return n.obj.Call(closeMethod, 0, nid).Err
} // func (n *DBusNotifier) Close(id string) error

// Shutdown stops listening for signals and closes the bus connection.
func (n *DBusNotifier) Shutdown() error {
	n.bus.RemoveSignal(n.signals)
	close(n.done)
	return n.bus.Close()
} // func (n *DBusNotifier) Shutdown() error

func (n *DBusNotifier) listen() {
	defer n.log.Println("[TRACE] Quitting DBus signal listener")

	for {
		select {
		case <-n.done:
			return
		case sig := <-n.signals:
			if sig == nil {
				return
			}
			n.handleSignal(sig)
		}
	}
} // func (n *DBusNotifier) listen()

func (n *DBusNotifier) handleSignal(sig *dbus.Signal) {
	var (
		nid   uint32
		id    string
		found bool
	)

	if len(sig.Body) < 2 {
		return
	} else if nid, found = sig.Body[0].(uint32); !found {
		return
	}

	n.lock.Lock()
	id, found = n.byNotify[nid]
	if found && sig.Name == sigClosed {
		delete(n.byNotify, nid)
		delete(n.byRem, id)
	}
	n.lock.Unlock()

	if !found {
		return
	}

	switch sig.Name {
	case sigAction:
		var (
			key, _ = sig.Body[1].(string)
			a, ok  = action.Parse(key)
		)

		if !ok {
			n.log.Printf("[DEBUG] Unknown action %q for Reminder %s\n",
				key,
				id)
			return
		}

		go n.handler(id, a)
	case sigClosed:
		n.log.Printf("[TRACE] Notification %d for Reminder %s was closed\n",
			nid,
			id)
	}
} // func (n *DBusNotifier) handleSignal(sig *dbus.Signal)
