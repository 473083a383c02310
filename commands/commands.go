// /home/krylon/go/src/github.com/blicero/medalert/commands/commands.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 09:12:40 krylon>

// Package commands implements the command line interface of MedAlert.
package commands

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/blicero/medalert/clients/clientlib"
	"github.com/blicero/medalert/clients/planner"
	"github.com/blicero/medalert/common"
	"github.com/blicero/medalert/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// globalOptions holds the flags shared by all commands and the
// configuration derived from them.
type globalOptions struct {
	configPath string
	appDir     string
	address    string
	cfg        *config.Config
}

// load reads the configuration, applying the global flags on top.
func (o *globalOptions) load() error {
	var err error

	if o.appDir != "" {
		if err = common.SetBaseDir(o.appDir); err != nil {
			return err
		}
	}

	if o.configPath == "" {
		o.configPath = common.ConfigPath
	}

	if o.cfg, err = config.Load(o.configPath); err != nil {
		return err
	} else if err = common.SetLogLevel(o.cfg.Log.Level); err != nil {
		return err
	}

	if o.address != "" {
		var u *url.URL

		if u, err = url.Parse(serverURL(o.address)); err != nil {
			return fmt.Errorf("invalid address %q: %w", o.address, err)
		}

		o.cfg.Daemon.Address = u.Host
		o.cfg.Client.Server = u.String()
	}

	return nil
} // func (o *globalOptions) load() error

func (o *globalOptions) client() (*clientlib.Client, error) {
	return clientlib.NewClient(o.cfg.Client.Server, o.cfg.Client.Timeout)
} // func (o *globalOptions) client() (*clientlib.Client, error)

func (o *globalOptions) book() (*planner.Book, error) {
	return planner.OpenBook(o.cfg.Client.BookDir)
} // func (o *globalOptions) book() (*planner.Book, error)

// serverURL adds the http scheme to addr unless it already has one.
func serverURL(addr string) string {
	if strings.Contains(addr, "://") {
		return addr
	}
	return "http://" + addr
} // func serverURL(addr string) string

var alert = color.New(color.FgHiRed, color.Bold)

// complain prints err in red to w and returns it, so a RunE can end with
// `return complain(...)`.
func complain(w io.Writer, err error) error {
	alert.Fprintf(w, "Error: %s\n", err.Error()) // nolint: errcheck
	return err
} // func complain(w io.Writer, err error) error

// New creates the root command with all subcommands attached.
func New() *cobra.Command {
	var opt = new(globalOptions)

	cmd := &cobra.Command{
		Use:           "medalert",
		Short:         "Reminds you to take your medicine.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opt.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&opt.configPath, "config", "",
		"Configuration file (default is medalert.yaml in the application directory)")
	cmd.PersistentFlags().StringVar(&opt.appDir, "appdir", "",
		fmt.Sprintf("The directory where application-specific files live (default %s)",
			common.BaseDir))
	cmd.PersistentFlags().StringVar(&opt.address, "address", "",
		"Address to either listen on (daemon) or connect to (everything else)")

	addCommands(cmd, opt)
	return cmd
} // func New() *cobra.Command

func addCommands(topLevel *cobra.Command, opt *globalOptions) {
	addDaemon(topLevel, opt)
	addAdd(topLevel, opt)
	addSchedules(topLevel, opt)
	addRemove(topLevel, opt)
	addReminders(topLevel, opt)
	addCheck(topLevel, opt)
	addSnooze(topLevel, opt)
	addAck(topLevel, opt)
	addWatch(topLevel, opt)
	addVersion(topLevel)
} // func addCommands(topLevel *cobra.Command, opt *globalOptions)

// Execute runs the command line interface and exits with a non-zero
// status if the command failed.
func Execute() {
	if err := New().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
} // func Execute()
