/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/checkup/dataset"
	"github.com/humaidq/checkup/db"
)

// CmdImport copies a CSV dataset into PostgreSQL.
var CmdImport = &cli.Command{
	Name:  "import",
	Usage: "Store the rows of the --data CSV file in PostgreSQL",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "replace",
			Usage: "remove previously imported rows first",
		},
	},
	Action: importCheckups,
}

func importCheckups(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("data")

	table, err := dataset.CSVSource{Path: path}.Load(ctx)
	if err != nil {
		return err
	}

	if err := connectDB(ctx, cmd); err != nil {
		return err
	}
	defer db.Close()

	result, err := db.ImportCheckups(ctx, table.Records, cmd.Bool("replace"))
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}

	total, err := db.CountCheckups(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d rows from %s (import %s); %d checkups stored\n", result.Rows, path, result.ImportID, total)

	return nil
}
