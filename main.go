/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/checkup/cmd"
)

func main() {
	app := &cli.Command{
		Name:   "checkup",
		Usage:  "Checkup - Patient Health Analysis",
		Flags:  cmd.GlobalFlags,
		Before: cmd.ConfigureLogging,
		Action: cmd.Menu,
		Commands: []*cli.Command{
			cmd.CmdMenu,
			cmd.CmdSummary,
			cmd.CmdAnalyze,
			cmd.CmdTop,
			cmd.CmdChart,
			cmd.CmdImport,
			cmd.CmdMigrate,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
