/*
 * Copyright (C) 2026 Mustafa Naseer (Mustafa Gaeed)
 *
 * This file is part of sysdiag.
 *
 * sysdiag is free software: you can redistribute it and/or modify
 * it under the terms of the MIT License as described in the
 * LICENSE file distributed with this project.
 *
 * sysdiag is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * MIT License for more details.
 *
 * You should have received a copy of the MIT License
 * along with sysdiag. If not, see the LICENSE file in the project root.
 */

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/urustack/sysdiag/internal/models"
)

func testSample() *models.Sample {
	s := models.NewSample(time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC))
	s.SetFloat(models.MetricCPUPercent, 12.5)
	s.SetFloat(models.MetricRAMPercent, 40)
	s.SetFloat(models.DiskMetric("/"), 55.25)
	s.SetText(models.MetricHostname, "bench")
	return s
}

func TestWriteSampleJSONRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "snap.json")
	in := testSample()

	if err := WriteSample(path, in); err != nil {
		t.Fatalf("WriteSample() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var out models.Sample
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !out.Timestamp.Equal(in.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", out.Timestamp, in.Timestamp)
	}
	if !reflect.DeepEqual(out.Values, in.Values) {
		t.Errorf("Values = %#v, want %#v", out.Values, in.Values)
	}
}

func TestWriteSampleTXT(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "snap.txt")

	if err := WriteSample(path, testSample()); err != nil {
		t.Fatalf("WriteSample() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	want := strings.Join([]string{
		"timestamp: 2025-06-30T12:00:00Z",
		"cpu.percent: 12.5",
		"disk./.used_percent: 55.25",
		"host.hostname: bench",
		"memory.used_percent: 40",
		"",
	}, "\n")
	if string(data) != want {
		t.Errorf("txt output:\n%s\nwant:\n%s", data, want)
	}
}

func TestEncodeHistory(t *testing.T) {
	t.Parallel()
	t0 := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	records := []models.LogRecord{
		{Timestamp: t0, Metric: models.MetricCPUPercent, Value: 10.0},
		{Timestamp: t0, Metric: models.MetricBatteryState, Value: "Charging"},
		{Timestamp: t0.Add(time.Minute), Metric: models.MetricCPUPercent, Value: 20.0},
	}

	t.Run("txt blocks", func(t *testing.T) {
		var buf bytes.Buffer
		if err := EncodeHistory(&buf, FormatTXT, records); err != nil {
			t.Fatalf("EncodeHistory() error = %v", err)
		}
		if blocks := strings.Split(strings.TrimSpace(buf.String()), "\n\n"); len(blocks) != 2 {
			t.Errorf("got %d blocks, want 2:\n%s", len(blocks), buf.String())
		}
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		if err := EncodeHistory(&buf, FormatCSV, records); err != nil {
			t.Fatalf("EncodeHistory() error = %v", err)
		}
		rows, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if len(rows) != 4 || rows[0][0] != "timestamp" || rows[2][2] != "Charging" {
			t.Errorf("rows = %v", rows)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := EncodeHistory(&buf, FormatJSON, records); err != nil {
			t.Fatalf("EncodeHistory() error = %v", err)
		}
		var out []models.LogRecord
		if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if len(out) != 3 || out[2].Value != 20.0 || out[1].Value != "Charging" {
			t.Errorf("decoded = %+v", out)
		}
	})

	t.Run("empty json is array", func(t *testing.T) {
		var buf bytes.Buffer
		if err := EncodeHistory(&buf, FormatJSON, nil); err != nil {
			t.Fatalf("EncodeHistory() error = %v", err)
		}
		if strings.TrimSpace(buf.String()) != "[]" {
			t.Errorf("output = %q, want []", buf.String())
		}
	})
}

func TestWriteErrors(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		path   string
		target error
	}{
		{"unwritable", filepath.Join(blocker, "snap.json"), nil},
		{"unknown extension", filepath.Join(t.TempDir(), "snap.xml"), ErrUnsupportedFormat},
		{"no extension", filepath.Join(t.TempDir(), "snap"), ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WriteSample(tt.path, testSample())
			var eerr *ExportError
			if !errors.As(err, &eerr) {
				t.Fatalf("WriteSample() error = %v, want *ExportError", err)
			}
			if eerr.Path != tt.path {
				t.Errorf("ExportError.Path = %q, want %q", eerr.Path, tt.path)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("WriteSample() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestDefaultName(t *testing.T) {
	t.Parallel()
	got := DefaultName("snapshot", FormatJSON, time.Date(2025, 6, 30, 12, 0, 5, 0, time.UTC))
	if got != "sysdiag-snapshot-20250630-120005.json" {
		t.Errorf("DefaultName() = %q", got)
	}
}
