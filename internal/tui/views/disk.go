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
	"strings"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/metrics"
	"github.com/urustack/sysdiag/internal/tui/components"
	"github.com/urustack/sysdiag/internal/tui/styles"
)

type DiskModel struct {
	frame
}

func NewDiskModel(t config.Thresholds) DiskModel {
	return DiskModel{frame: frame{Thresholds: t}}
}

func (m DiskModel) View() string {
	if msg := m.unavailable(metrics.CategoryDisk); msg != "" {
		return msg
	}

	t := m.Thresholds
	w := m.Width
	var b strings.Builder

	b.WriteString(components.Section("Partitions", w) + "\n\n")
	var table strings.Builder
	table.WriteString(components.DiskHeader(w) + "\n")
	table.WriteString("  " + styles.Line(w-10) + "\n")
	for _, d := range m.Snapshot.Disks {
		table.WriteString(components.DiskRow(d.Mountpoint, d.Device, d.Fstype, d.Used, d.Total, d.UsedPercent, t.DiskWarning, t.DiskCritical, w) + "\n")
	}
	b.WriteString(components.Wrap(strings.TrimRight(table.String(), "\n"), w) + "\n\n")

	b.WriteString(components.Section("Usage", w) + "\n\n")
	var bars strings.Builder
	for i, d := range m.Snapshot.Disks {
		if i > 0 {
			bars.WriteString("\n")
		}
		bars.WriteString(components.Meter(styles.Trunc(d.Mountpoint, 10), d.UsedPercent, t.DiskWarning, t.DiskCritical, w-8))
	}
	b.WriteString(components.Wrap(bars.String(), w))

	return b.String()
}
