// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/humaidq/checkup/analysis"
)

const sampleCSV = `id_pasien,nama,umur,jenis_kelamin,tanggal_periksa,tekanan_darah,gula_darah,kolesterol,catatan
P001,Andi,45,L,2024-01-01,110,90,190,rutin
P002,Budi,52.0,L,2024-01-02,130,110,210,
P001,Andi,45,L,2024-01-03,150,130,250,kontrol

P003,Citra,38,P,2024-01-03,118.5,99.9,199,
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	table, err := ReadCSV(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if len(table.Columns) != 9 {
		t.Fatalf("expected 9 columns, got %d", len(table.Columns))
	}
	if len(table.Records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(table.Records))
	}

	want := analysis.PatientRecord{
		PatientID: "P002", Name: "Budi", Age: 52, Sex: "L", VisitDate: "2024-01-02",
		BloodPressure: 130, BloodSugar: 110, Cholesterol: 210,
	}
	if table.Records[1] != want {
		t.Fatalf("expected %+v, got %+v", want, table.Records[1])
	}

	if table.Records[3].BloodPressure != 118.5 {
		t.Fatalf("expected decimal blood pressure, got %v", table.Records[3].BloodPressure)
	}
}

func TestReadCSVHeaderHandling(t *testing.T) {
	t.Parallel()

	t.Run("case and whitespace insensitive with BOM", func(t *testing.T) {
		t.Parallel()

		input := "\ufeffID_PASIEN, Nama ,umur,jenis_kelamin,tanggal_periksa,tekanan_darah,gula_darah,kolesterol\n" +
			"P001,Andi,45,L,2024-01-01,110,90,190\n"

		table, err := ReadCSV(context.Background(), strings.NewReader(input))
		if err != nil {
			t.Fatalf("ReadCSV failed: %v", err)
		}
		if len(table.Records) != 1 || table.Records[0].Name != "Andi" {
			t.Fatalf("unexpected records: %+v", table.Records)
		}
	})

	t.Run("missing columns", func(t *testing.T) {
		t.Parallel()

		input := "id_pasien,nama,umur,tanggal_periksa,tekanan_darah\nP001,Andi,45,2024-01-01,110\n"

		_, err := ReadCSV(context.Background(), strings.NewReader(input))

		var schemaErr *analysis.SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("expected SchemaError, got %v", err)
		}

		want := []string{analysis.ColumnSex, analysis.ColumnBloodSugar, analysis.ColumnCholesterol}
		if !reflect.DeepEqual(schemaErr.Missing, want) {
			t.Fatalf("expected missing %v, got %v", want, schemaErr.Missing)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		if _, err := ReadCSV(context.Background(), strings.NewReader("")); !errors.Is(err, ErrEmptyDataFile) {
			t.Fatalf("expected ErrEmptyDataFile, got %v", err)
		}
	})
}

func TestReadCSVRejectsMalformedRows(t *testing.T) {
	t.Parallel()

	header := "id_pasien,nama,umur,jenis_kelamin,tanggal_periksa,tekanan_darah,gula_darah,kolesterol\n"

	tests := []struct {
		name   string
		row    string
		field  string
		target error
	}{
		{"bad number", "P001,Andi,45,L,2024-01-01,abc,90,190", analysis.ColumnBloodPressure, analysis.ErrSchema},
		{"empty number", "P001,Andi,45,L,2024-01-01,110,,190", analysis.ColumnBloodSugar, analysis.ErrSchema},
		{"fractional age", "P001,Andi,45.5,L,2024-01-01,110,90,190", analysis.ColumnAge, analysis.ErrSchema},
		{"overflowing age", "P001,Andi,1e30,L,2024-01-01,110,90,190", analysis.ColumnAge, analysis.ErrSchema},
		{"implausible age", "P001,Andi,151,L,2024-01-01,110,90,190", analysis.ColumnAge, analysis.ErrSchema},
		{"empty id", ",Andi,45,L,2024-01-01,110,90,190", analysis.ColumnPatientID, analysis.ErrSchema},
		{"negative value", "P001,Andi,45,L,2024-01-01,110,90,-1", analysis.ColumnCholesterol, analysis.ErrInvalidValue},
		{"nan value", "P001,Andi,45,L,2024-01-01,NaN,90,190", analysis.ColumnBloodPressure, analysis.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ReadCSV(context.Background(), strings.NewReader(header+tt.row+"\n"))
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Fatalf("expected error to mention %s, got %q", tt.field, err)
			}
			if !strings.Contains(err.Error(), "row 1") {
				t.Fatalf("expected error to mention row 1, got %q", err)
			}
		})
	}
}

func TestParseAge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  int
		ok    bool
	}{
		{"45", 45, true},
		{"52.0", 52, true},
		{"150", 150, true},
		{"151", 0, false},
		{"1e30", 0, false},
		{"9223372036854775808", 0, false},
		{"45.5", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, err := parseAge(tt.value)
		if (err == nil) != tt.ok {
			t.Fatalf("parseAge(%q): unexpected error state %v", tt.value, err)
		}
		if tt.ok && got != tt.want {
			t.Fatalf("parseAge(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestCSVSourceLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data.csv")
		if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		table, err := CSVSource{Path: path}.Load(context.Background())
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(table.Records) != 4 {
			t.Fatalf("expected 4 records, got %d", len(table.Records))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := CSVSource{Path: filepath.Join(t.TempDir(), "nope.csv")}.Load(context.Background())
		if !errors.Is(err, ErrDataFileNotFound) {
			t.Fatalf("expected ErrDataFileNotFound, got %v", err)
		}
	})
}

type countingSource struct {
	calls int
	table Table
	err   error
}

func (s *countingSource) Load(context.Context) (Table, error) {
	s.calls++
	return s.table, s.err
}

func TestCache(t *testing.T) {
	t.Parallel()

	t.Run("loads once until cleared", func(t *testing.T) {
		t.Parallel()

		table, err := ReadCSV(context.Background(), strings.NewReader(sampleCSV))
		if err != nil {
			t.Fatalf("ReadCSV failed: %v", err)
		}

		src := &countingSource{table: table}
		cache := NewCache(src)
		ctx := context.Background()

		first, err := cache.Get(ctx)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		second, err := cache.Get(ctx)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}

		if first != second {
			t.Fatalf("expected the same snapshot on repeated Get")
		}
		if src.calls != 1 {
			t.Fatalf("expected 1 load, got %d", src.calls)
		}

		cache.Clear()
		if _, err := cache.Get(ctx); err != nil {
			t.Fatalf("Get after Clear failed: %v", err)
		}
		if src.calls != 2 {
			t.Fatalf("expected reload after Clear, got %d loads", src.calls)
		}
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		src := &countingSource{err: ErrEmptyDataFile}
		cache := NewCache(src)

		for i := 0; i < 2; i++ {
			if _, err := cache.Get(context.Background()); !errors.Is(err, ErrEmptyDataFile) {
				t.Fatalf("expected ErrEmptyDataFile, got %v", err)
			}
		}
		if src.calls != 2 {
			t.Fatalf("expected 2 load attempts, got %d", src.calls)
		}
	})

	t.Run("no source", func(t *testing.T) {
		t.Parallel()

		if _, err := NewCache(nil).Get(context.Background()); err == nil {
			t.Fatal("expected error without source")
		}
	})
}

func TestSnapshotIsImmutable(t *testing.T) {
	t.Parallel()

	table, err := ReadCSV(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	snap := NewSnapshot(table)
	table.Records[0].Name = "changed at source"

	records := snap.Records()
	records[0].BloodPressure = 999

	again := snap.Records()
	if again[0].Name != "Andi" || again[0].BloodPressure != 110 {
		t.Fatalf("snapshot was mutated: %+v", again[0])
	}

	if snap.Len() != 4 {
		t.Fatalf("unexpected len %d", snap.Len())
	}
}

func TestSnapshotBetween(t *testing.T) {
	t.Parallel()

	table, err := ReadCSV(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	snap := NewSnapshot(table)

	tests := []struct {
		from, to string
		want     int
	}{
		{"", "", 4},
		{"2024-01-02", "", 3},
		{"", "2024-01-02", 2},
		{"2024-01-02", "2024-01-02", 1},
		{"2025-01-01", "", 0},
	}

	for _, tt := range tests {
		if got := snap.Between(tt.from, tt.to).Len(); got != tt.want {
			t.Fatalf("Between(%q, %q) = %d rows, want %d", tt.from, tt.to, got, tt.want)
		}
	}

	if snap.Len() != 4 {
		t.Fatalf("filtering modified the source snapshot")
	}
}
