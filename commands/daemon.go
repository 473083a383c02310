// /home/krylon/go/src/github.com/blicero/medalert/commands/daemon.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 09:30:05 krylon>

package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blicero/medalert/backend"
	"github.com/blicero/medalert/common"
	"github.com/spf13/cobra"
)

func addDaemon(topLevel *cobra.Command, opt *globalOptions) {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the scheduler that delivers reminder notifications.",
		Example: `
medalert daemon
medalert --address localhost:7300 daemon
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				err    error
				daemon *backend.Daemon
				out    = cmd.OutOrStdout()
			)

			fmt.Fprintf(out, "%s %s (built %s)\n",
				common.AppName,
				common.Version,
				common.BuildStamp)

			if daemon, err = backend.Summon(opt.cfg); err != nil {
				return complain(cmd.ErrOrStderr(),
					fmt.Errorf("Failed to initialize daemon: %w", err))
			}

			var (
				sigQ   = make(chan os.Signal, 1)
				ticker = time.NewTicker(time.Second * 2)
			)

			defer ticker.Stop()

			signal.Notify(sigQ, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
			defer signal.Stop(sigQ)

			for daemon.IsAlive() {
				select {
				case sig := <-sigQ:
					fmt.Fprintf(out, "Quitting on signal %s\n", sig)
					return daemon.Banish()
				case <-ticker.C:
					continue
				}
			}

			return nil
		},
	}

	topLevel.AddCommand(cmd)
} // func addDaemon(topLevel *cobra.Command, opt *globalOptions)
