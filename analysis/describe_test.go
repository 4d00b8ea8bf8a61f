// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	records := []PatientRecord{
		{PatientID: "P001", Name: "Andi", Age: 30, VisitDate: "2024-01-01"},
		{PatientID: "P001", Name: "Andi", Age: 30, VisitDate: "2024-02-01"},
		{PatientID: "P002", Name: "Budi", Age: 60, VisitDate: "2024-01-01"},
		{PatientID: "P003", Name: "Citra", Age: 45, VisitDate: "2024-01-01"},
	}

	summary, err := Summarize(records)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if summary.UniquePatients != 3 {
		t.Fatalf("expected 3 unique patients, got %d", summary.UniquePatients)
	}
	if summary.MinAge != 30 || summary.MaxAge != 60 {
		t.Fatalf("unexpected age range %d-%d", summary.MinAge, summary.MaxAge)
	}
	assertFloatClose(t, summary.MeanAge, 41.25)
	if summary.TotalExaminations != 4 {
		t.Fatalf("expected 4 examinations, got %d", summary.TotalExaminations)
	}
	if summary.TotalColumns != 8 {
		t.Fatalf("expected 8 columns, got %d", summary.TotalColumns)
	}

	if _, err := Summarize(nil); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	records := []PatientRecord{
		record("P001", "Andi", "2024-01-01", 130, 100, 200),
		record("P002", "Budi", "2024-01-01", 110, 100, 200),
		record("P003", "Citra", "2024-01-01", 140, 100, 200),
		record("P004", "Dewi", "2024-01-01", 120, 100, 200),
	}

	desc, err := Describe(records)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if len(desc) != 3 {
		t.Fatalf("expected 3 indicators, got %d", len(desc))
	}

	bp := desc[0]
	if bp.Indicator != BloodPressure || bp.Count != 4 {
		t.Fatalf("unexpected first description: %+v", bp)
	}
	assertFloatClose(t, bp.Mean, 125)
	assertFloatClose(t, bp.Min, 110)
	assertFloatClose(t, bp.Q1, 117.5)
	assertFloatClose(t, bp.Median, 125)
	assertFloatClose(t, bp.Q3, 132.5)
	assertFloatClose(t, bp.Max, 140)
	assertFloatClose(t, bp.StdDev, math.Sqrt(500.0/3))

	sugar := desc[1]
	assertFloatClose(t, sugar.StdDev, 0)
	assertFloatClose(t, sugar.Median, 100)

	if _, err := Describe(nil); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestQuantile(t *testing.T) {
	t.Parallel()

	sorted := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.25, 2},
		{0.5, 3},
		{0.9, 4.6},
		{1, 5},
	}

	for _, tt := range tests {
		assertFloatClose(t, quantile(sorted, tt.p), tt.want)
	}

	assertFloatClose(t, quantile([]float64{7}, 0.75), 7)
}
