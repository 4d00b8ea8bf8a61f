/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/checkup/analysis"
	"github.com/humaidq/checkup/report"
)

const (
	exitChoice   = "10"
	reloadChoice = "r"
)

// CmdMenu runs the interactive menu.
var CmdMenu = &cli.Command{
	Name:   "menu",
	Usage:  "Interactive analysis menu (default)",
	Action: Menu,
}

// Menu runs the interactive menu on stdin. It is also the root action.
func Menu(ctx context.Context, cmd *cli.Command) error {
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	return runMenu(ctx, s, os.Stdin)
}

type menuOption struct {
	label string
	run   func(context.Context) error
}

func menuOptions(s *session) []menuOption {
	return []menuOption{
		{"Show data summary", s.summary},
		{"Analyse health data", s.analyze},
		{"Blood pressure trend chart", func(ctx context.Context) error { return s.trend(ctx, analysis.BloodPressure) }},
		{"Blood sugar trend chart", func(ctx context.Context) error { return s.trend(ctx, analysis.BloodSugar) }},
		{"Cholesterol trend chart", func(ctx context.Context) error { return s.trend(ctx, analysis.Cholesterol) }},
		{"Compare all indicators", s.comparison},
		{"Risk categories", s.riskCategories},
		{"Average indicators", s.averages},
		{"Highest risk patients", func(ctx context.Context) error { return s.topPatients(ctx, analysis.DefaultTopPatients) }},
	}
}

// runMenu reads choices from in until the exit option or end of input.
func runMenu(ctx context.Context, s *session, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	options := menuOptions(s)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := printMenu(s.out, options); err != nil {
			return err
		}

		fmt.Fprintf(s.out, "Choose an option (1-%s): ", exitChoice)

		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		choice := strings.TrimSpace(scanner.Text())
		if choice == "" {
			continue
		}

		if choice == exitChoice {
			fmt.Fprintln(s.out, "Thank you for using the patient health analysis system. Goodbye!")
			return nil
		}

		if strings.EqualFold(choice, reloadChoice) {
			s.cache.Clear()
			fmt.Fprintln(s.out, "Data will be reloaded from the source on next use.")
			continue
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(options) {
			fmt.Fprintf(s.out, "Invalid choice. Please choose an option from 1-%s or %s.\n", exitChoice, reloadChoice)
			continue
		}

		if err := options[n-1].run(ctx); err != nil {
			appLogger.Debug("Menu option failed", "choice", n, "error", err)
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}

		fmt.Fprint(s.out, "\nPress Enter to continue...")

		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
	}
}

func printMenu(w io.Writer, options []menuOption) error {
	if err := report.Header(w, "PATIENT HEALTH ANALYSIS SYSTEM"); err != nil {
		return err
	}

	for i, opt := range options {
		fmt.Fprintf(w, "%d. %s\n", i+1, opt.label)
	}

	fmt.Fprintf(w, "%s. Reload data\n", reloadChoice)

	_, err := fmt.Fprintf(w, "%s. Exit\n", exitChoice)
	return err
}
