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
	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/tui/components"
	"github.com/urustack/sysdiag/internal/tui/styles"
	"github.com/urustack/sysdiag/pkg/helper"
)

const liveRateWindow = 120

type NetworkModel struct {
	frame
	SentRates []float64
	RecvRates []float64
}

func NewNetworkModel(t config.Thresholds) NetworkModel {
	return NetworkModel{frame: frame{Thresholds: t}}
}

// SetSnapshot also records the live rates for the throughput graph.
func (m *NetworkModel) SetSnapshot(s *models.Snapshot) {
	m.Snapshot = s
	if s == nil || s.Network == nil {
		return
	}
	m.SentRates = appendWindow(m.SentRates, s.Network.SentRate)
	m.RecvRates = appendWindow(m.RecvRates, s.Network.RecvRate)
}

func appendWindow(values []float64, v float64) []float64 {
	values = append(values, v)
	if len(values) > liveRateWindow {
		values = values[len(values)-liveRateWindow:]
	}
	return values
}

func (m NetworkModel) View() string {
	if msg := m.unavailable(metrics.CategoryNetwork); msg != "" {
		return msg
	}

	n := m.Snapshot.Network
	w := m.Width
	var b strings.Builder

	b.WriteString(components.Section("Connection", w) + "\n\n")
	ip := n.PrimaryIP
	if ip == "" {
		ip = styles.MutedStyle.Render("not connected")
	}
	b.WriteString(components.Card("", []components.CardLine{
		{Label: "Hostname", Value: n.Hostname},
		{Label: "IP address", Value: ip},
		{Label: "Sent", Value: helper.FormatBytes(n.BytesSent)},
		{Label: "Received", Value: helper.FormatBytes(n.BytesRecv)},
	}, w) + "\n\n")

	b.WriteString(components.Section("Throughput", w) + "\n\n")
	graphW := w - 36
	b.WriteString(components.Wrap(
		"  "+styles.SubtleStyle.Render(styles.Pad("Upload", 10))+" "+styles.PadL(helper.FormatRate(n.SentRate), 12)+"  "+components.Sparkline(m.SentRates, graphW, 0)+"\n"+
			"  "+styles.SubtleStyle.Render(styles.Pad("Download", 10))+" "+styles.PadL(helper.FormatRate(n.RecvRate), 12)+"  "+components.Sparkline(m.RecvRates, graphW, 0), w) + "\n\n")

	b.WriteString(components.Section("Interfaces", w) + "\n\n")
	if len(n.Interfaces) == 0 {
		b.WriteString(components.Empty("No interfaces reported", "", w))
		return b.String()
	}
	var ifaces strings.Builder
	for i, iface := range n.Interfaces {
		if i > 0 {
			ifaces.WriteString("\n")
		}
		ifaces.WriteString(components.InterfaceRow(iface.Name, iface.MAC, iface.Addrs, w))
	}
	b.WriteString(components.Wrap(ifaces.String(), w))

	return b.String()
}
