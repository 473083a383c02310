// /home/krylon/go/src/github.com/blicero/medalert/config/defaults.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-17 20:14:52 krylon>

package config

import (
	"fmt"

	"github.com/blicero/medalert/common"
	"github.com/knadh/koanf/providers/confmap"
)

// Strategies the scheduler can use to decide when to wake up.
const (
	StrategyCadence = "cadence"
	StrategyNextDue = "nextdue"
	StrategyBoth    = "both"
)

// Notifier backends.
const (
	NotifierDBus = "dbus"
	NotifierLog  = "log"
)

// Tone players.
const (
	ToneBell    = "bell"
	ToneCommand = "command"
	ToneNone    = "none"
)

// DefaultConfig returns the built-in configuration as a nested map.
func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"daemon": map[string]interface{}{
			"address":          fmt.Sprintf("localhost:%d", common.DefaultPort),
			"strategy":         StrategyBoth,
			"poll_interval":    "30s",
			"lead":             "30s",
			"min_delay":        "5s",
			"tolerance_before": "2m",
			"tolerance_after":  "1m",
			"snooze":           "5m",
			"notifier":         NotifierDBus,
		},
		"database": map[string]interface{}{
			"path":      common.DbPath,
			"pool_size": 4,
		},
		"log": map[string]interface{}{
			"level": "DEBUG",
		},
		"client": map[string]interface{}{
			"server":       fmt.Sprintf("http://localhost:%d", common.DefaultPort),
			"book_dir":     common.BookPath,
			"tone":         ToneBell,
			"tone_command": "paplay ~/.medalert/tone.oga",
			"timeout":      "10s",
		},
	}
} // func DefaultConfig() map[string]interface{}

// NewDefaultProvider wraps the defaults in a koanf provider.
func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
} // func NewDefaultProvider() *confmap.Confmap
