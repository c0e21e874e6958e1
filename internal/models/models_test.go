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

package models

import (
	"testing"
	"time"
)

func TestSnapshotSampleOmitsMissingCategories(t *testing.T) {
	t.Parallel()

	snap := &Snapshot{
		CollectedAt: time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
		CPU:         &CPUStats{Percent: 12.5, LogicalCores: 8},
		Memory:      &MemoryStats{Total: 100, Used: 40, UsedPercent: 40},
		Disks:       []DiskUsage{{Mountpoint: "/", UsedPercent: 55}},
	}
	snap.MarkUnavailable("battery", "no battery")

	s := snap.Sample()
	if !s.Timestamp.Equal(snap.CollectedAt) {
		t.Fatalf("Timestamp = %v, want %v", s.Timestamp, snap.CollectedAt)
	}
	if v, ok := s.Float(MetricCPUPercent); !ok || v != 12.5 {
		t.Errorf("cpu.percent = %v (%v), want 12.5", v, ok)
	}
	if v, ok := s.Float(DiskMetric("/")); !ok || v != 55 {
		t.Errorf("disk./.used_percent = %v (%v), want 55", v, ok)
	}
	if _, ok := s.Values[MetricBatteryPct]; ok {
		t.Error("battery.percent present, want omitted")
	}
	if snap.IsAvailable("battery") {
		t.Error("IsAvailable(battery) = true, want false")
	}
	if !snap.IsAvailable("cpu") {
		t.Error("IsAvailable(cpu) = false, want true")
	}
}

func TestSampleAccessors(t *testing.T) {
	t.Parallel()

	s := NewSample(time.Now())
	s.SetFloat("b", 2)
	s.SetText("a", "charging")
	s.Values["c"] = int64(7)

	if got := s.Names(); len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("Names() = %v, want sorted [a b c]", got)
	}
	if v, ok := s.Float("c"); !ok || v != 7 {
		t.Errorf("Float(c) = %v, %v; want 7, true", v, ok)
	}
	if _, ok := s.Float("a"); ok {
		t.Error("Float(a) ok = true for text value")
	}
	if got := s.Text("b"); got != "2" {
		t.Errorf("Text(b) = %q, want %q", got, "2")
	}
	if got := s.Text("missing"); got != "" {
		t.Errorf("Text(missing) = %q, want empty", got)
	}
}

func TestGroupRecordsAndRates(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(10 * time.Second)
	t2 := t1.Add(10 * time.Second)
	records := []LogRecord{
		{Timestamp: t0, Metric: MetricNetSent, Value: 1000.0},
		{Timestamp: t0, Metric: MetricCPUPercent, Value: 10.0},
		{Timestamp: t1, Metric: MetricNetSent, Value: 3000.0},
		{Timestamp: t1, Metric: MetricCPUPercent, Value: 20.0},
		{Timestamp: t2, Metric: MetricNetSent, Value: 500.0},
	}

	samples := GroupRecords(records)
	if len(samples) != 3 {
		t.Fatalf("GroupRecords() = %d samples, want 3", len(samples))
	}
	if got := Series(samples, MetricCPUPercent); len(got) != 2 || got[1] != 20 {
		t.Errorf("Series(cpu) = %v, want [10 20]", got)
	}

	rates := CounterRates(samples, MetricNetSent)
	want := []float64{0, 200, 0}
	if len(rates) != len(want) {
		t.Fatalf("CounterRates() len = %d, want %d", len(rates), len(want))
	}
	for i, r := range rates {
		if r.Value != want[i] {
			t.Errorf("rate[%d] = %v, want %v", i, r.Value, want[i])
		}
	}
}

func TestRangeContains(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name string
		r    Range
		t    time.Time
		want bool
	}{
		{"unbounded", All(), now, true},
		{"before from", Range{From: now}, now.Add(-time.Second), false},
		{"after to", Range{To: now}, now.Add(time.Second), false},
		{"inside", Range{From: now.Add(-time.Minute), To: now.Add(time.Minute)}, now, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Contains(tt.t); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}
}
