// /home/krylon/go/src/github.com/blicero/medalert/backend/helpers.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 19:52:14 krylon>

package backend

import "time"

func durAbs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}

	return d
} // func durAbs(d time.Duration) time.Duration
