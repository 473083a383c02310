// /home/krylon/go/src/github.com/blicero/medalert/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 16. 10. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-10-20 16:30:02 krylon>

package main

import (
	"github.com/blicero/medalert/commands"
)

func main() {
	commands.Execute()
}
