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

package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/metrics"
	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/monitor"
	"github.com/urustack/sysdiag/internal/tui/components"
	"github.com/urustack/sysdiag/internal/tui/styles"
	"github.com/urustack/sysdiag/pkg/helper"
)

// TickMsg fires on the polling cadence. ID ties it to one polling run so
// ticks from a paused run are dropped.
type TickMsg struct {
	ID int
	At time.Time
}

type SnapshotMsg struct {
	Snapshot *models.Snapshot
	Sample   *models.Sample
	Alerts   []models.Alert
}

type CollectErrorMsg struct {
	Err error
}

// StatusMsg follows a persist attempt.
type StatusMsg struct {
	Status monitor.StoreStatus
	Err    error
}

type HistoryMsg struct {
	Window  int
	Records []models.LogRecord
	Err     error
}

// SpinMsg advances loading spinners.
type SpinMsg struct{}

type ExportedMsg struct {
	Path  string
	Count int
	Err   error
}

// frame is embedded by every tab view.
type frame struct {
	Width      int
	Height     int
	Spin       int
	Snapshot   *models.Snapshot
	Thresholds config.Thresholds
}

func (f *frame) SetSize(w, h int) {
	f.Width = w
	f.Height = h
}

func (f *frame) SetSnapshot(s *models.Snapshot) {
	f.Snapshot = s
}

// unavailable renders the reason a category is missing, or "" when it is
// present.
func (f frame) unavailable(category string) string {
	if f.Snapshot == nil {
		return components.Empty("Waiting for the first sample...", "", f.Width)
	}
	if reason, missing := f.Snapshot.Unavailable[category]; missing {
		return components.Unavailable(category, reason, f.Width)
	}
	if !f.reported(category) {
		return components.Unavailable(category, "not reported", f.Width)
	}
	return ""
}

func (f frame) reported(category string) bool {
	switch category {
	case metrics.CategoryCPU:
		return f.Snapshot.CPU != nil
	case metrics.CategoryMemory:
		return f.Snapshot.Memory != nil
	case metrics.CategoryNetwork:
		return f.Snapshot.Network != nil
	}
	return true
}

func fill(content string, height int) string {
	lines := helper.CountLines(content)
	var b strings.Builder
	b.WriteString(content)
	for i := 0; i < height-lines; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func formatMHz(mhz float64) string {
	if mhz <= 0 {
		return styles.MutedStyle.Render("n/a")
	}
	if mhz >= 1000 {
		return fmt.Sprintf("%.2f GHz", mhz/1000)
	}
	return fmt.Sprintf("%.0f MHz", mhz)
}

func usedOfTotal(used, total uint64) string {
	return helper.FormatBytes(used) + " / " + helper.FormatBytes(total)
}
