/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/checkup/analysis"
)

// CmdSummary prints the dataset overview.
var CmdSummary = &cli.Command{
	Name:   "summary",
	Usage:  "Print the dataset summary",
	Action: withSession((*session).summary),
}

// CmdAnalyze prints statistics and per-indicator risk counts.
var CmdAnalyze = &cli.Command{
	Name:   "analyze",
	Usage:  "Print indicator statistics and risk distributions",
	Action: withSession((*session).analyze),
}

// CmdTop lists and charts the highest risk patients.
var CmdTop = &cli.Command{
	Name:  "top",
	Usage: "List the patients with the highest mean blood pressure",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "n",
			Value: analysis.DefaultTopPatients,
			Usage: "number of patients to list",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		n := int(cmd.Int("n"))
		return withSession(func(s *session, ctx context.Context) error {
			return s.topPatients(ctx, n)
		})(ctx, cmd)
	},
}

// chartKinds maps chart names accepted by the chart command to their builders.
var chartKinds = map[string]func(*session, context.Context) error{
	"blood-pressure": func(s *session, ctx context.Context) error { return s.trend(ctx, analysis.BloodPressure) },
	"blood-sugar":    func(s *session, ctx context.Context) error { return s.trend(ctx, analysis.BloodSugar) },
	"cholesterol":    func(s *session, ctx context.Context) error { return s.trend(ctx, analysis.Cholesterol) },
	"comparison":     (*session).comparison,
	"risk":           (*session).riskCategories,
	"averages":       (*session).averages,
	"top": func(s *session, ctx context.Context) error {
		return s.topPatients(ctx, analysis.DefaultTopPatients)
	},
}

func chartKindNames() []string {
	names := make([]string, 0, len(chartKinds))
	for name := range chartKinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CmdChart writes a single chart selected by name.
var CmdChart = &cli.Command{
	Name:      "chart",
	Usage:     "Write one chart as HTML",
	ArgsUsage: "<" + strings.Join(chartKindNames(), "|") + ">",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() < 1 {
			return errChartKindRequired
		}

		kind := cmd.Args().First()
		build, ok := chartKinds[kind]
		if !ok {
			return fmt.Errorf("%w %q (expected one of: %s)", errUnknownChart, kind, strings.Join(chartKindNames(), ", "))
		}

		return withSession(build)(ctx, cmd)
	},
}

// withSession adapts a session method to a cli action.
func withSession(fn func(*session, context.Context) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		s, err := openSession(ctx, cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		return fn(s, ctx)
	}
}
