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
	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/tui/components"
	"github.com/urustack/sysdiag/internal/tui/styles"
	"github.com/urustack/sysdiag/pkg/helper"
)

type OverviewModel struct {
	frame
	Alerts []models.Alert
}

func NewOverviewModel(t config.Thresholds) OverviewModel {
	return OverviewModel{frame: frame{Thresholds: t}}
}

func (m *OverviewModel) SetAlerts(alerts []models.Alert) {
	m.Alerts = alerts
}

func (m OverviewModel) View() string {
	if m.Snapshot == nil {
		return components.CenteredLogo(m.Width) + "\n\n" + components.Loading(m.Spin, "Collecting first sample...")
	}

	s := m.Snapshot
	t := m.Thresholds
	w := m.Width
	var b strings.Builder

	if s.Host != nil {
		b.WriteString(components.Section("System", w) + "\n\n")
		b.WriteString(components.Card("", []components.CardLine{
			{Label: "Hostname", Value: s.Host.Hostname},
			{Label: "OS", Value: strings.TrimSpace(s.Host.Platform + " " + s.Host.PlatformVersion)},
			{Label: "Kernel", Value: s.Host.KernelVersion + " (" + s.Host.KernelArch + ")"},
			{Label: "Uptime", Value: helper.FormatUptime(s.Host.Uptime)},
		}, w) + "\n\n")
	}

	b.WriteString(components.Section("Usage", w) + "\n\n")
	var usage strings.Builder
	if s.CPU != nil {
		usage.WriteString(components.Meter("CPU", s.CPU.Percent, t.CPUWarning, t.CPUCritical, w-8) + "\n")
	}
	if s.Memory != nil {
		usage.WriteString(components.Meter("Memory", s.Memory.UsedPercent, t.MemoryWarning, t.MemoryCritical, w-8) + "\n")
		if s.Memory.SwapTotal > 0 {
			usage.WriteString(components.Meter("Swap", s.Memory.SwapPercent, t.SwapWarning, 0, w-8) + "\n")
		}
	}
	for _, d := range s.Disks {
		usage.WriteString(components.Meter(styles.Trunc(d.Mountpoint, 10), d.UsedPercent, t.DiskWarning, t.DiskCritical, w-8) + "\n")
	}
	if s.Battery != nil {
		line := components.Meter("Battery", s.Battery.Percent, 0, 0, w-8)
		if s.Battery.Charging {
			line += "  " + components.Badge("charging")
		}
		usage.WriteString(line + "\n")
	}
	if s.Load != nil {
		usage.WriteString(fmt.Sprintf("\n  %s %.2f  %.2f  %.2f",
			styles.SubtleStyle.Render(styles.Pad("Load", 10)), s.Load.Load1, s.Load.Load5, s.Load.Load15))
	}
	if s.Network != nil {
		usage.WriteString(fmt.Sprintf("\n  %s %s %s   %s %s",
			styles.SubtleStyle.Render(styles.Pad("Network", 10)),
			styles.MutedStyle.Render("↑"), helper.FormatRate(s.Network.SentRate),
			styles.MutedStyle.Render("↓"), helper.FormatRate(s.Network.RecvRate)))
	}
	b.WriteString(components.Wrap(strings.TrimRight(usage.String(), "\n"), w) + "\n\n")

	b.WriteString(components.Section("Alerts", w) + "\n\n")
	var alerts strings.Builder
	if len(m.Alerts) == 0 {
		alerts.WriteString("  " + styles.SuccessStyle.Render(styles.IconSuccess) + "  " + styles.MutedStyle.Render("All readings within thresholds"))
	} else {
		for _, a := range m.Alerts {
			alerts.WriteString(components.AlertRow(string(a.Severity), a.Category, a.Message, w) + "\n")
		}
	}
	if !s.IsAvailable(metrics.CategoryBattery) {
		alerts.WriteString("\n  " + styles.MutedStyle.Render("No battery detected"))
	}
	b.WriteString(components.Wrap(strings.TrimRight(alerts.String(), "\n"), w))

	return b.String()
}
