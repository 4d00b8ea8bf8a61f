/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package plot

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/checkup/analysis"
)

// Renderer is anything that renders itself as an HTML document.
type Renderer interface {
	Render(w io.Writer) error
}

var indicatorColors = map[analysis.Indicator]string{
	analysis.BloodPressure: "red",
	analysis.BloodSugar:    "green",
	analysis.Cholesterol:   "blue",
}

var riskColors = map[analysis.RiskLevel]string{
	analysis.Normal:  "green",
	analysis.Warning: "orange",
	analysis.High:    "red",
}

const visitDateAxis = "Visit date"

// ========== Trend Charts ==========

// IndicatorTrend draws the daily average of one indicator over visit dates.
func IndicatorTrend(daily []analysis.DailyAverage, ind analysis.Indicator) (*charts.Line, error) {
	def, err := ind.Definition()
	if err != nil {
		return nil, err
	}

	if len(daily) == 0 {
		return nil, ErrNoData
	}

	line := trendLine(daily, def, "Trend: "+def.Label)
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: def.Label + " trend"}),
		charts.WithXAxisOpts(opts.XAxis{Name: visitDateAxis}),
	)

	return line, nil
}

// Comparison stacks the three indicator trends on one page.
func Comparison(daily []analysis.DailyAverage) (*components.Page, error) {
	if len(daily) == 0 {
		return nil, ErrNoData
	}

	page := components.NewPage()
	page.PageTitle = "Indicator comparison"

	for _, ind := range analysis.Indicators() {
		def, err := ind.Definition()
		if err != nil {
			return nil, err
		}

		page.AddCharts(trendLine(daily, def, def.Label))
	}

	return page, nil
}

func trendLine(daily []analysis.DailyAverage, def analysis.IndicatorDefinition, title string) *charts.Line {
	xAxis := make([]string, 0, len(daily))
	yData := make([]opts.LineData, 0, len(daily))

	for _, d := range daily {
		xAxis = append(xAxis, d.Date)
		yData = append(yData, opts.LineData{Value: d.Value(def.Indicator)})
	}

	color := indicatorColors[def.Indicator]

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: fmt.Sprintf("Average %s (%s)", def.Label, def.Unit),
		}),
	)

	line.SetXAxis(xAxis).
		AddSeries(def.Label, yData).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{
				ShowSymbol: opts.Bool(true),
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color, Width: 2}),
		)

	return line
}

// ========== Distribution Charts ==========

// RiskCategories draws the share of patients in each final risk level.
// Levels with no patients are left out.
func RiskCategories(counts analysis.CategoryCounts) (*charts.Pie, error) {
	data := make([]opts.PieData, 0, len(counts))
	for _, level := range analysis.RiskLevels() {
		n := counts[level]
		if n == 0 {
			continue
		}

		data = append(data, opts.PieData{
			Name:      level.String(),
			Value:     n,
			ItemStyle: &opts.ItemStyle{Color: riskColors[level]},
		})
	}

	if len(data) == 0 {
		return nil, ErrNoData
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Risk categories"}),
		charts.WithTitleOpts(opts.Title{
			Title: "Patient risk categories",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
	)

	pie.AddSeries("Patients", data,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {d}%",
		}),
	)

	return pie, nil
}

// AverageIndicators draws the overall mean of each indicator.
func AverageIndicators(stats analysis.Statistics) (*charts.Bar, error) {
	xAxis := make([]string, 0, 3)
	data := make([]opts.BarData, 0, 3)

	for _, ind := range analysis.Indicators() {
		def, err := ind.Definition()
		if err != nil {
			return nil, err
		}

		xAxis = append(xAxis, def.Label)
		data = append(data, opts.BarData{
			Value:     round2(stats.For(ind).Mean),
			ItemStyle: &opts.ItemStyle{Color: indicatorColors[ind]},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Average indicators"}),
		charts.WithTitleOpts(opts.Title{
			Title: "Average health indicators",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Average value",
		}),
	)

	bar.SetXAxis(xAxis).
		AddSeries("Average", data,
			charts.WithLabelOpts(opts.Label{
				Show:     opts.Bool(true),
				Position: "top",
			}),
		)

	return bar, nil
}

// HighRiskPatients draws the ranked patients' mean indicators as grouped bars.
func HighRiskPatients(ranked []analysis.RankedPatient) (*charts.Bar, error) {
	if len(ranked) == 0 {
		return nil, ErrNoData
	}

	names := make([]string, 0, len(ranked))
	for _, p := range ranked {
		names = append(names, p.Name)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Highest risk patients"}),
		charts.WithTitleOpts(opts.Title{
			Title: "Highest risk patients",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Patient"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Indicator value"}),
	)

	bar.SetXAxis(names)

	for _, ind := range analysis.Indicators() {
		def, err := ind.Definition()
		if err != nil {
			return nil, err
		}

		data := make([]opts.BarData, 0, len(ranked))
		for _, p := range ranked {
			data = append(data, opts.BarData{Value: round2(p.Value(ind))})
		}

		bar.AddSeries(def.Label, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: indicatorColors[ind]}))
	}

	return bar, nil
}

// ========== Output ==========

// Write renders chart to <dir>/<name>.html and returns the file path.
func Write(dir, name string, chart Renderer) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidChartName, name)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create chart directory: %w", err)
	}

	path := filepath.Join(dir, name+".html")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := chart.Render(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to render chart: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close chart file: %w", err)
	}

	logger.Info("Chart written", "path", path)

	return path, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
