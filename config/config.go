// /home/krylon/go/src/github.com/blicero/medalert/config/config.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-18 09:31:06 krylon>

// Package config loads the configuration for both the daemon and the
// foreground clients. Values are layered: built-in defaults, then an
// optional YAML file, then environment variables prefixed with MEDALERT_.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/go-homedir"
)

// EnvPrefix is the prefix for environment variables that override
// configuration values. Nesting is expressed with a double underscore,
// e.g. MEDALERT_DAEMON__POLL_INTERVAL.
const EnvPrefix = "MEDALERT_"

// Config is the complete configuration.
type Config struct {
	Daemon   DaemonConfig   `koanf:"daemon"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	Client   ClientConfig   `koanf:"client"`
}

// DaemonConfig controls the background scheduler.
type DaemonConfig struct {
	Address         string        `koanf:"address"`
	Strategy        string        `koanf:"strategy"`
	PollInterval    time.Duration `koanf:"poll_interval"`
	Lead            time.Duration `koanf:"lead"`
	MinDelay        time.Duration `koanf:"min_delay"`
	ToleranceBefore time.Duration `koanf:"tolerance_before"`
	ToleranceAfter  time.Duration `koanf:"tolerance_after"`
	Snooze          time.Duration `koanf:"snooze"`
	Notifier        string        `koanf:"notifier"`
}

// DatabaseConfig locates the reminder database.
type DatabaseConfig struct {
	Path     string `koanf:"path"`
	PoolSize int    `koanf:"pool_size"`
}

// LogConfig sets the minimum log level.
type LogConfig struct {
	Level string `koanf:"level"`
}

// ClientConfig is used by the foreground commands.
type ClientConfig struct {
	Server      string        `koanf:"server"`
	BookDir     string        `koanf:"book_dir"`
	Tone        string        `koanf:"tone"`
	ToneCommand string        `koanf:"tone_command"`
	Timeout     time.Duration `koanf:"timeout"`
}

// Load builds a Config from the defaults, the file at configPath (if it
// exists) and the environment.
func Load(configPath string) (*Config, error) {
	var (
		err error
		k   = koanf.New(".")
		cfg = new(Config)
	)

	if err = k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if configPath, err = homedir.Expand(configPath); err != nil {
			return nil, fmt.Errorf("cannot expand config path %q: %w",
				configPath,
				err)
		}

		if _, err = os.Stat(configPath); err == nil {
			if err = k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w",
					configPath,
					err)
			}
		}
	}

	if err = k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err = k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("cannot decode configuration: %w", err)
	}

	if err = cfg.expandPaths(); err != nil {
		return nil, err
	} else if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
} // func Load(configPath string) (*Config, error)

// envKey turns MEDALERT_DAEMON__POLL_INTERVAL into daemon.poll_interval.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
} // func envKey(s string) string

func (c *Config) expandPaths() error {
	var err error

	if c.Database.Path, err = homedir.Expand(c.Database.Path); err != nil {
		return fmt.Errorf("cannot expand database path %q: %w",
			c.Database.Path,
			err)
	} else if c.Client.BookDir, err = homedir.Expand(c.Client.BookDir); err != nil {
		return fmt.Errorf("cannot expand schedule directory %q: %w",
			c.Client.BookDir,
			err)
	}

	return nil
} // func (c *Config) expandPaths() error

// Validate checks the configuration for values the daemon cannot work with.
func (c *Config) Validate() error {
	switch c.Daemon.Strategy {
	case StrategyCadence, StrategyNextDue, StrategyBoth:
	default:
		return fmt.Errorf("invalid scheduling strategy %q", c.Daemon.Strategy)
	}

	switch c.Daemon.Notifier {
	case NotifierDBus, NotifierLog:
	default:
		return fmt.Errorf("invalid notifier %q", c.Daemon.Notifier)
	}

	switch c.Client.Tone {
	case ToneBell, ToneCommand, ToneNone:
	default:
		return fmt.Errorf("invalid tone player %q", c.Client.Tone)
	}

	if c.Daemon.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s",
			c.Daemon.PollInterval)
	} else if c.Daemon.ToleranceBefore < 0 || c.Daemon.ToleranceAfter < 0 {
		return fmt.Errorf("tolerance window must not be negative (before %s, after %s)",
			c.Daemon.ToleranceBefore,
			c.Daemon.ToleranceAfter)
	} else if c.Daemon.MinDelay <= 0 {
		return fmt.Errorf("minimum wake delay must be positive, got %s",
			c.Daemon.MinDelay)
	} else if c.Daemon.Snooze <= 0 {
		return fmt.Errorf("snooze offset must be positive, got %s",
			c.Daemon.Snooze)
	} else if c.Database.PoolSize < 1 {
		return fmt.Errorf("database pool size must be at least 1, got %d",
			c.Database.PoolSize)
	}

	return nil
} // func (c *Config) Validate() error
