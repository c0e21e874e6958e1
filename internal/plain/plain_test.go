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

package plain

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/monitor"
	"github.com/urustack/sysdiag/internal/schedule"
	"github.com/urustack/sysdiag/internal/storage/sqlite"
)

type fakeCollector struct{}

func (fakeCollector) Collect(context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{
		CollectedAt: time.Now(),
		CPU:         &models.CPUStats{Percent: 12.5},
		Memory:      &models.MemoryStats{UsedPercent: 40},
	}
	snap.MarkUnavailable("battery", "no battery")
	return snap, nil
}

func TestFormatLine(t *testing.T) {
	t.Parallel()
	snap := &models.Snapshot{
		CollectedAt: time.Date(2025, 6, 30, 9, 15, 0, 0, time.UTC),
		CPU:         &models.CPUStats{Percent: 95},
		Memory:      &models.MemoryStats{UsedPercent: 40, SwapTotal: 1, SwapPercent: 5},
		Disks:       []models.DiskUsage{{Mountpoint: "/", UsedPercent: 55.3}},
		Network:     &models.NetworkStats{SentRate: 1024},
		Battery:     &models.Battery{Percent: 80, Charging: true},
	}
	snap.MarkUnavailable("load", "not supported")
	alerts := []models.Alert{{Category: "cpu", Message: "CPU usage above 90%", Severity: models.SeverityCritical}}

	got := FormatLine(snap, alerts)
	for _, want := range []string{
		"09:15:00", "cpu 95.0%", "mem 40.0%", "swap 5.0%", "disk / 55.3%",
		"net up 1.0 KiB/s down 0 B/s", "bat 80%+", "[n/a: load]", "[CRITICAL CPU usage above 90%]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatLine() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "\n") {
		t.Error("FormatLine() spans several lines")
	}
}

func TestRunPollsAndPersistsUntilCancelled(t *testing.T) {
	t.Parallel()
	store, err := sqlite.New(t.TempDir(), sqlite.DefaultName)
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	defer store.Close()

	mon := monitor.New(fakeCollector{}, monitor.Options{Store: store, Persist: true, Thresholds: config.Default().Thresholds})
	var out bytes.Buffer
	r := NewRenderer(mon, schedule.NewTicker(time.Second), &out)

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) < 3 {
		t.Fatalf("Run() printed %d lines, want header plus at least two samples:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "sysdiag: polling every 1s") {
		t.Errorf("header = %q", lines[0])
	}

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Samples != len(lines)-1 {
		t.Errorf("Stats().Samples = %d, want %d", stats.Samples, len(lines)-1)
	}
}

func TestRunWithoutStore(t *testing.T) {
	t.Parallel()
	mon := monitor.New(fakeCollector{}, monitor.Options{Persist: true})
	var out bytes.Buffer
	r := NewRenderer(mon, schedule.NewTicker(time.Second), &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "history unavailable") {
		t.Errorf("output does not mention the missing store:\n%s", out.String())
	}
	if strings.Contains(out.String(), "store error") {
		t.Errorf("missing store reported as an error:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "cpu 12.5%") {
		t.Errorf("first sample not printed:\n%s", out.String())
	}
}
