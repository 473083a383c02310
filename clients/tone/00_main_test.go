// /home/krylon/go/src/github.com/blicero/medalert/clients/tone/00_main_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-19 15:20:13 krylon>

package tone

import (
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/blicero/medalert/common"
)

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir string
	)

	if baseDir, err = os.MkdirTemp("", "medalert_tone_test"); err != nil {
		fmt.Printf("Cannot create temporary directory: %s\n", err.Error())
		os.Exit(1)
	}

	common.LogOutput = io.Discard

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if result = m.Run(); result == 0 {
		os.RemoveAll(baseDir) // nolint: errcheck
	} else {
		fmt.Printf(">>> TEST DIRECTORY: %s\n", baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)
