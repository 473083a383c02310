// /home/krylon/go/src/github.com/blicero/medalert/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 11:40:27 krylon>

// Package common contains definitions used throughout the application,
// paths, formats, logging and such.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/blicero/medalert/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/odeke-em/go-uuid"
)

// Debug indicates whether to emit additional log messages and perform
// additional sanity checks.
// Version is the version number to display.
// AppName is the name of the application.
// DefaultPort is the TCP port the daemon listens on by default.
const (
	Debug       = true
	Version     = "0.3.1"
	AppName     = "MedAlert"
	DefaultPort = 7204
)

// BuildStamp is set at link time.
var BuildStamp = "(unknown)"

// Time stamp formats used throughout the application.
const (
	TimestampFormat          = "2006-01-02 15:04:05"
	TimestampFormatMinute    = "2006-01-02 15:04"
	TimestampFormatSubSecond = "2006-01-02 15:04:05.0000 MST"
	TimestampFormatTime      = "15:04:05"
	TimestampFormatDate      = "2006-01-02"
	TimeOfDayFormat          = "15:04"
)

// LogLevels are the names of the log levels supported by the logger.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

var (
	lock sync.RWMutex

	// BaseDir is the folder where all application-specific files are stored.
	BaseDir = filepath.Join(os.Getenv("HOME"), ".medalert")

	// LogPath is the file the log is written to.
	LogPath = filepath.Join(BaseDir, "medalert.log")

	// DbPath is the path of the reminder database.
	DbPath = filepath.Join(BaseDir, "medalert.db")

	// BookPath is the folder the foreground keeps its medicine schedules in.
	BookPath = filepath.Join(BaseDir, "schedules")

	// ConfigPath is the default location of the configuration file.
	ConfigPath = filepath.Join(BaseDir, "medalert.yaml")

	// MinLogLevel is the lowest level of log messages that are emitted.
	MinLogLevel logutils.LogLevel = "TRACE"

	// LogOutput is where loggers write to besides the log file.
	LogOutput io.Writer = os.Stdout
)

// SetBaseDir sets the BaseDir and all the derived paths, and makes sure
// the directory exists.
func SetBaseDir(path string) error {
	fmt.Printf("Setting BASE_DIR to %s\n", path)

	lock.Lock()
	BaseDir = path
	LogPath = filepath.Join(BaseDir, "medalert.log")
	DbPath = filepath.Join(BaseDir, "medalert.db")
	BookPath = filepath.Join(BaseDir, "schedules")
	ConfigPath = filepath.Join(BaseDir, "medalert.yaml")
	lock.Unlock()

	if err := InitApp(); err != nil {
		fmt.Printf("Error initializing application environment: %s\n",
			err.Error())
		return err
	}

	return nil
} // func SetBaseDir(path string) error

// InitApp creates the base directory if it does not exist yet.
func InitApp() error {
	lock.RLock()
	var dir = BaseDir
	lock.RUnlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create base directory %s: %w",
			dir,
			err)
	}

	return nil
} // func InitApp() error

// SetLogLevel sets the minimum level of log messages for all
// Loggers created after the call.
func SetLogLevel(level string) error {
	for _, l := range LogLevels {
		if string(l) == level {
			lock.Lock()
			MinLogLevel = l
			lock.Unlock()
			return nil
		}
	}

	return fmt.Errorf("invalid log level %q", level)
} // func SetLogLevel(level string) error

// GetLogger tries to create a named logger instance and return it.
// If the directory to hold the log file does not exist, try to create it.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err     error
		logfile *os.File
		writer  io.Writer
		prefix  = fmt.Sprintf("%s.%s ", AppName, dom)
	)

	if err = InitApp(); err != nil {
		return nil, err
	}

	lock.RLock()
	var (
		logPath = LogPath
		level   = MinLogLevel
		out     = LogOutput
	)
	lock.RUnlock()

	if logfile, err = os.OpenFile(logPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600); err != nil {
		return nil, fmt.Errorf("cannot open log file %s: %w",
			logPath,
			err)
	}

	writer = io.MultiWriter(out, logfile)

	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: level,
		Writer:   writer,
	}

	return log.New(filter, prefix, log.Ldate|log.Ltime|log.Lshortfile), nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// GetUUID returns a randomized UUID.
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string
