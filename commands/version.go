// /home/krylon/go/src/github.com/blicero/medalert/commands/version.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 09:14:21 krylon>

package commands

import (
	"fmt"

	"github.com/blicero/medalert/common"
	"github.com/spf13/cobra"
)

func addVersion(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of MedAlert.",
		Args:  cobra.NoArgs,
		// No configuration needed for this one.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (built %s)\n",
				common.AppName,
				common.Version,
				common.BuildStamp)
		},
	}

	topLevel.AddCommand(cmd)
} // func addVersion(topLevel *cobra.Command)
