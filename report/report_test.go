// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/humaidq/checkup/analysis"
)

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()

	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestHeader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Header(&buf, "PATIENT DATA"); err != nil {
		t.Fatalf("Header failed: %v", err)
	}

	assertContains(t, buf.String(), "PATIENT DATA", "═")
}

func TestSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Summary(&buf, analysis.PatientSummary{
		UniquePatients: 3, MinAge: 38, MaxAge: 52, MeanAge: 45.3,
		TotalExaminations: 4, TotalColumns: 8,
	})
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	assertContains(t, buf.String(), "Unique patients", "38 - 52 years", "45.3 years", "Total examinations")
}

func TestStatistics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Statistics(&buf, analysis.Statistics{
		BloodPressure: analysis.IndicatorStats{Mean: 130, StdDev: 20},
		BloodSugar:    analysis.IndicatorStats{Mean: 105.5, StdDev: math.NaN()},
		Cholesterol:   analysis.IndicatorStats{Mean: 210, StdDev: 5.126},
	})
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}

	assertContains(t, buf.String(), "Blood Pressure", "mmHg", "130.00", "20.00", "105.50", "NaN", "5.13")
}

func TestDescription(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Description(&buf, []analysis.IndicatorDescription{
		{Indicator: analysis.Cholesterol, Count: 4, Mean: 200, StdDev: 10, Min: 190, Q1: 195, Median: 200, Q3: 205, Max: 210},
	})
	if err != nil {
		t.Fatalf("Description failed: %v", err)
	}

	assertContains(t, buf.String(), "Cholesterol", "25%", "195.00", "210.00")
}

func TestDistributionIncludesEmptyLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	counts := analysis.CategoryCounts{analysis.Normal: 2, analysis.Warning: 0, analysis.High: 1}

	if err := Distribution(&buf, "Blood Sugar", counts); err != nil {
		t.Fatalf("Distribution failed: %v", err)
	}

	assertContains(t, buf.String(), "Normal", "Warning", "High", "Total", "3")
}

func TestDailyAveragesAndTopPatients(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	daily := []analysis.DailyAverage{
		{Date: "2024-01-01", Visits: 2, BloodPressure: 140, BloodSugar: 110, Cholesterol: 220},
	}
	if err := DailyAverages(&buf, daily); err != nil {
		t.Fatalf("DailyAverages failed: %v", err)
	}

	assertContains(t, buf.String(), "2024-01-01", "140.00", "220.00")

	buf.Reset()
	ranked := []analysis.RankedPatient{
		{Name: "Budi", Visits: 2, BloodPressure: 150, BloodSugar: 120, Cholesterol: 230},
		{Name: "Andi", Visits: 1, BloodPressure: 135, BloodSugar: 98, Cholesterol: 190},
	}
	if err := TopPatients(&buf, ranked); err != nil {
		t.Fatalf("TopPatients failed: %v", err)
	}

	out := buf.String()
	assertContains(t, out, "Budi", "Andi", "150.00")

	if strings.Index(out, "Budi") > strings.Index(out, "Andi") {
		t.Fatalf("expected ranking order to be preserved:\n%s", out)
	}
}
