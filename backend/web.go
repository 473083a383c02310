// /home/krylon/go/src/github.com/blicero/medalert/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 19:40:26 krylon>

package backend

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/blicero/medalert/objects"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
)

const maxBodySize = 1 << 20

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/bridge", d.handleBridge).Methods(http.MethodPost)
	d.router.HandleFunc("/events", d.handleEvents).Methods(http.MethodGet)
	d.router.HandleFunc("/status", d.handleStatus).Methods(http.MethodGet)
	d.router.HandleFunc("/check", d.handleCheck).Methods(http.MethodPost)
	d.router.HandleFunc("/reminder/all", d.handleReminderGetAll).Methods(http.MethodGet)
	d.router.HandleFunc("/reminder/pending", d.handleReminderGetPending).Methods(http.MethodGet)
	d.router.HandleFunc("/reminder/save", d.handleReminderSave).Methods(http.MethodPost)
	d.router.HandleFunc("/reminder/{id}/delete", d.handleReminderDelete).Methods(http.MethodPost)
	d.router.HandleFunc("/reminder/{id}/snooze", d.handleReminderSnooze).Methods(http.MethodPost)
	d.router.HandleFunc("/reminder/{id}/ack", d.handleReminderAck).Methods(http.MethodPost)

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Bridge is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

// handleBridge accepts a Message envelope. Anything that does not parse
// or is not a valid Message is dropped without an answer.
func (d *Daemon) handleBridge(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		buf []byte
		msg objects.Message
	)

	if buf, err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize)); err != nil {
		d.log.Printf("[DEBUG] Cannot read request body: %s\n",
			err.Error())
		w.WriteHeader(http.StatusNoContent)
		return
	} else if err = ffjson.Unmarshal(buf, &msg); err != nil {
		d.log.Printf("[DEBUG] Ignore malformed message: %s\n",
			err.Error())
		w.WriteHeader(http.StatusNoContent)
		return
	}

	d.handleMessage(w, &msg)
} // func (d *Daemon) handleBridge(w http.ResponseWriter, r *http.Request)

// handleMessage processes a Message and sends the Response, if the type of
// Message warrants one.
func (d *Daemon) handleMessage(w http.ResponseWriter, msg *objects.Message) {
	var (
		err      error
		msgStr   string
		rem      *objects.Reminder
		response objects.Response
	)

	if !msg.Valid() {
		d.log.Printf("[DEBUG] Ignore invalid message of type %q\n",
			msg.Type)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	switch msg.Type {
	case objects.MsgKeepAlive:
		w.WriteHeader(http.StatusNoContent)
		return
	case objects.MsgCheckNow:
		go d.Check()
		w.WriteHeader(http.StatusAccepted)
		return
	}

	response = objects.Response{ID: d.getID(), Corr: msg.Corr}

	switch msg.Type {
	case objects.MsgSaveReminder:
		if err = d.SaveReminder(msg.Reminder); err != nil {
			msgStr = fmt.Sprintf("Cannot save Reminder %s: %s",
				msg.Reminder.ID,
				err.Error())
			goto SEND_ERROR
		}
		response.Reminder = msg.Reminder
	case objects.MsgDeleteReminder:
		if err = d.DeleteReminder(msg.ID); err != nil {
			msgStr = fmt.Sprintf("Cannot delete Reminder %s: %s",
				msg.ID,
				err.Error())
			goto SEND_ERROR
		}
	case objects.MsgGetAllReminders:
		if response.Reminders, err = d.store.ReminderGetAll(); err != nil {
			msgStr = fmt.Sprintf("Cannot load Reminders: %s",
				err.Error())
			goto SEND_ERROR
		}
	case objects.MsgSnoozeReminder:
		var offset = time.Duration(msg.Minutes) * time.Minute

		if rem, err = d.Snooze(msg.ID, offset); err != nil {
			msgStr = fmt.Sprintf("Cannot snooze Reminder %s: %s",
				msg.ID,
				err.Error())
			goto SEND_ERROR
		}
		response.Reminder = rem
	case objects.MsgAckReminder:
		if err = d.Acknowledge(msg.ID); err != nil {
			msgStr = fmt.Sprintf("Cannot acknowledge Reminder %s: %s",
				msg.ID,
				err.Error())
			goto SEND_ERROR
		}
	}

	response.Status = true
	response.Message = "OK"
	goto SEND_RESPONSE

SEND_ERROR:
	d.log.Printf("[ERROR] %s\n", msgStr)
	response.Message = msgStr

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleMessage(w http.ResponseWriter, msg *objects.Message)

func (d *Daemon) handleCheck(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	d.handleMessage(w, &objects.Message{Type: objects.MsgCheckNow})
} // func (d *Daemon) handleCheck(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	d.handleMessage(w, &objects.Message{
		Type: objects.MsgGetAllReminders,
		Corr: r.FormValue("corr"),
	})
} // func (d *Daemon) handleReminderGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderGetPending(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		response = objects.Response{ID: d.getID(), Corr: r.FormValue("corr")}
	)

	if response.Reminders, err = d.store.ReminderGetPending(); err != nil {
		response.Message = fmt.Sprintf("Cannot load pending Reminders: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", response.Message)
	} else {
		response.Status = true
	}

	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleReminderGetPending(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderSave(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		buf []byte
		rem objects.Reminder
	)

	if buf, err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize)); err != nil {
		d.log.Printf("[DEBUG] Cannot read request body: %s\n",
			err.Error())
		w.WriteHeader(http.StatusNoContent)
		return
	} else if err = ffjson.Unmarshal(buf, &rem); err != nil {
		d.log.Printf("[DEBUG] Ignore malformed Reminder: %s\n",
			err.Error())
		w.WriteHeader(http.StatusNoContent)
		return
	}

	d.handleMessage(w, &objects.Message{
		Type:     objects.MsgSaveReminder,
		Corr:     r.FormValue("corr"),
		Reminder: &rem,
	})
} // func (d *Daemon) handleReminderSave(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	d.handleMessage(w, &objects.Message{
		Type: objects.MsgDeleteReminder,
		Corr: r.FormValue("corr"),
		ID:   mux.Vars(r)["id"],
	})
} // func (d *Daemon) handleReminderDelete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderSnooze(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err     error
		minutes int
		msg     = objects.Message{
			Type: objects.MsgSnoozeReminder,
			Corr: r.FormValue("corr"),
			ID:   mux.Vars(r)["id"],
		}
	)

	if mstr := r.FormValue("minutes"); mstr != "" {
		if minutes, err = strconv.Atoi(mstr); err != nil {
			d.log.Printf("[DEBUG] Cannot parse snooze minutes %q: %s\n",
				mstr,
				err.Error())
			w.WriteHeader(http.StatusNoContent)
			return
		}
		msg.Minutes = minutes
	}

	d.handleMessage(w, &msg)
} // func (d *Daemon) handleReminderSnooze(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderAck(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	d.handleMessage(w, &objects.Message{
		Type: objects.MsgAckReminder,
		Corr: r.FormValue("corr"),
		ID:   mux.Vars(r)["id"],
	})
} // func (d *Daemon) handleReminderAck(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleStatus(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err    error
		buf    []byte
		status = d.Status()
	)

	if buf, err = ffjson.Marshal(&status); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Status: %s\n",
			err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleStatus(w http.ResponseWriter, r *http.Request)

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(res); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Response object %#v: %s\n",
			res,
			err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response)
