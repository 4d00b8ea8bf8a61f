/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/checkup/analysis"
	"github.com/humaidq/checkup/dataset"
	"github.com/humaidq/checkup/db"
	"github.com/humaidq/checkup/plot"
	"github.com/humaidq/checkup/report"
)

// session holds the cached dataset and output settings for one run.
type session struct {
	cache    *dataset.Cache
	out      io.Writer
	chartDir string
	from, to string
	closeDB  bool
}

// openSession builds a session from the global flags, connecting to the
// database when checkups are read from Postgres.
func openSession(ctx context.Context, cmd *cli.Command) (*session, error) {
	s := &session{
		out:      os.Stdout,
		chartDir: cmd.String("chart-dir"),
		from:     cmd.String("from"),
		to:       cmd.String("to"),
	}

	switch cmd.String("source") {
	case sourceCSV:
		s.cache = dataset.NewCache(dataset.CSVSource{Path: cmd.String("data")})
	case sourcePostgres:
		if err := connectDB(ctx, cmd); err != nil {
			return nil, err
		}

		s.closeDB = true
		s.cache = dataset.NewCache(db.Source{})
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownSource, cmd.String("source"))
	}

	return s, nil
}

func connectDB(ctx context.Context, cmd *cli.Command) error {
	databaseURL := cmd.String("database-url")
	if databaseURL == "" {
		return errDatabaseURLRequired
	}

	appLogger.Info("Connecting to database")

	if err := db.Init(ctx, databaseURL); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.SyncSchema(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to sync schema: %w", err)
	}

	return nil
}

func (s *session) Close() {
	if s.closeDB {
		db.Close()
	}
}

// records returns the cached rows within the configured visit-date range.
func (s *session) records(ctx context.Context) (*dataset.Snapshot, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	if s.from != "" || s.to != "" {
		snap = snap.Between(s.from, s.to)
	}

	return snap, nil
}

func (s *session) writeChart(name string, chart plot.Renderer) error {
	path, err := plot.Write(s.chartDir, name, chart)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(s.out, "Chart written to %s\n", path)
	return err
}

// ========== Reports ==========

func (s *session) summary(ctx context.Context) error {
	snap, err := s.records(ctx)
	if err != nil {
		return err
	}

	summary, err := analysis.Summarize(snap.Records())
	if err != nil {
		return err
	}
	summary.TotalColumns = len(snap.Columns())

	if err := report.Header(s.out, "PATIENT DATA SUMMARY"); err != nil {
		return err
	}

	return report.Summary(s.out, summary)
}

func (s *session) analyze(ctx context.Context) error {
	snap, err := s.records(ctx)
	if err != nil {
		return err
	}

	records := snap.Records()

	stats, err := analysis.ComputeStatistics(records)
	if err != nil {
		return err
	}

	desc, err := analysis.Describe(records)
	if err != nil {
		return err
	}

	classified, err := analysis.AddIndicatorCategories(records)
	if err != nil {
		return err
	}

	if err := report.Header(s.out, "HEALTH STATISTICS"); err != nil {
		return err
	}
	if err := report.Statistics(s.out, stats); err != nil {
		return err
	}

	if err := report.Header(s.out, "DESCRIPTIVE STATISTICS"); err != nil {
		return err
	}
	if err := report.Description(s.out, desc); err != nil {
		return err
	}

	for _, ind := range analysis.Indicators() {
		counts, err := analysis.IndicatorDistribution(classified, ind)
		if err != nil {
			return err
		}

		title := "RISK BY " + strings.ToUpper(ind.String())
		if err := report.Header(s.out, title); err != nil {
			return err
		}
		if err := report.Distribution(s.out, ind.String(), counts); err != nil {
			return err
		}
	}

	return nil
}

func (s *session) dailyAverages(ctx context.Context) ([]analysis.DailyAverage, error) {
	snap, err := s.records(ctx)
	if err != nil {
		return nil, err
	}

	return analysis.DailyAverages(snap.Records())
}

// ========== Charts ==========

func trendChartName(ind analysis.Indicator) string {
	return strings.ReplaceAll(strings.ToLower(ind.String()), " ", "_") + "_trend"
}

func (s *session) trend(ctx context.Context, ind analysis.Indicator) error {
	daily, err := s.dailyAverages(ctx)
	if err != nil {
		return err
	}

	line, err := plot.IndicatorTrend(daily, ind)
	if err != nil {
		return err
	}

	return s.writeChart(trendChartName(ind), line)
}

func (s *session) comparison(ctx context.Context) error {
	daily, err := s.dailyAverages(ctx)
	if err != nil {
		return err
	}

	if err := report.Header(s.out, "DAILY AVERAGES"); err != nil {
		return err
	}
	if err := report.DailyAverages(s.out, daily); err != nil {
		return err
	}

	page, err := plot.Comparison(daily)
	if err != nil {
		return err
	}

	return s.writeChart("indicator_comparison", page)
}

func (s *session) riskCategories(ctx context.Context) error {
	snap, err := s.records(ctx)
	if err != nil {
		return err
	}

	classified, err := analysis.AddIndicatorCategories(snap.Records())
	if err != nil {
		return err
	}

	counts, err := analysis.RiskDistribution(classified)
	if err != nil {
		return err
	}

	if err := report.Header(s.out, "PATIENT RISK CATEGORIES"); err != nil {
		return err
	}
	if err := report.Distribution(s.out, "Final risk", counts); err != nil {
		return err
	}

	pie, err := plot.RiskCategories(counts)
	if err != nil {
		return err
	}

	return s.writeChart("risk_categories", pie)
}

func (s *session) averages(ctx context.Context) error {
	snap, err := s.records(ctx)
	if err != nil {
		return err
	}

	stats, err := analysis.ComputeStatistics(snap.Records())
	if err != nil {
		return err
	}

	bar, err := plot.AverageIndicators(stats)
	if err != nil {
		return err
	}

	return s.writeChart("average_indicators", bar)
}

func (s *session) topPatients(ctx context.Context, n int) error {
	snap, err := s.records(ctx)
	if err != nil {
		return err
	}

	ranked, err := analysis.TopRiskPatients(snap.Records(), n)
	if err != nil {
		return err
	}

	if err := report.Header(s.out, "HIGHEST RISK PATIENTS"); err != nil {
		return err
	}
	if err := report.TopPatients(s.out, ranked); err != nil {
		return err
	}

	bar, err := plot.HighRiskPatients(ranked)
	if err != nil {
		return err
	}

	return s.writeChart("high_risk_patients", bar)
}
