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

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/metrics"
	"github.com/urustack/sysdiag/internal/tui/components"
	"github.com/urustack/sysdiag/internal/tui/styles"
)

type CPUModel struct {
	frame
}

func NewCPUModel(t config.Thresholds) CPUModel {
	return CPUModel{frame: frame{Thresholds: t}}
}

func (m CPUModel) View() string {
	if msg := m.unavailable(metrics.CategoryCPU); msg != "" {
		return msg
	}

	c := m.Snapshot.CPU
	t := m.Thresholds
	w := m.Width
	var b strings.Builder

	b.WriteString(components.Section("Processor", w) + "\n\n")
	model := c.Model
	if model == "" {
		model = styles.MutedStyle.Render("unknown")
	}
	b.WriteString(components.Card("", []components.CardLine{
		{Label: "Model", Value: model},
		{Label: "Cores", Value: fmt.Sprintf("%d physical, %d logical", c.PhysicalCores, c.LogicalCores)},
		{Label: "Frequency", Value: formatMHz(c.CurrentMHz)},
		{Label: "Max frequency", Value: formatMHz(c.MaxMHz)},
	}, w) + "\n\n")

	b.WriteString(components.Section("Utilization", w) + "\n\n")
	var usage strings.Builder
	usage.WriteString(components.Meter("Total", c.Percent, t.CPUWarning, t.CPUCritical, w-8))
	for i, pct := range c.PerCore {
		usage.WriteString("\n" + components.Meter(fmt.Sprintf("Core %d", i), pct, t.CPUWarning, t.CPUCritical, w-8))
	}
	if l := m.Snapshot.Load; l != nil {
		usage.WriteString(fmt.Sprintf("\n\n  %s %.2f (1m)  %.2f (5m)  %.2f (15m)",
			styles.SubtleStyle.Render(styles.Pad("Load", 10)), l.Load1, l.Load5, l.Load15))
	}
	b.WriteString(components.Wrap(usage.String(), w))

	return b.String()
}
