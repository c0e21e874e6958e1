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
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/monitor"
	"github.com/urustack/sysdiag/internal/storage"
	"github.com/urustack/sysdiag/internal/tui/components"
	"github.com/urustack/sysdiag/internal/tui/styles"
	"github.com/urustack/sysdiag/pkg/helper"
)

type HistoryWindow struct {
	Label string
	Span  time.Duration
}

var HistoryWindows = []HistoryWindow{
	{Label: "15m", Span: 15 * time.Minute},
	{Label: "1h", Span: time.Hour},
	{Label: "24h", Span: 24 * time.Hour},
	{Label: "all", Span: 0},
}

const historyTableRows = 12

type HistoryModel struct {
	ctx     context.Context
	mon     *monitor.Monitor
	Width   int
	Height  int
	Window  int
	Samples []*models.Sample
	Records int
	Loading bool
	Spin    int
	err     error
}

// NewHistoryModel starts in the loading state; queries run under ctx.
func NewHistoryModel(ctx context.Context, mon *monitor.Monitor) HistoryModel {
	return HistoryModel{ctx: ctx, mon: mon, Loading: true}
}

func (m *HistoryModel) SetSize(w, h int) {
	m.Width = w
	m.Height = h
}

// Range is the query for the selected window.
func (m HistoryModel) Range() models.Range {
	span := HistoryWindows[m.Window].Span
	if span == 0 {
		return models.All()
	}
	return models.Last(span)
}

func (m HistoryModel) Init() tea.Cmd {
	return m.fetch
}

func (m HistoryModel) fetch() tea.Msg {
	records, err := m.mon.History(m.ctx, m.Range())
	return HistoryMsg{Window: m.Window, Records: records, Err: err}
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.Window = (m.Window + 1) % len(HistoryWindows)
			m.Loading = true
			return m, m.fetch
		case "R", "ctrl+r":
			m.Loading = true
			return m, m.fetch
		}
	case HistoryMsg:
		if msg.Window != m.Window {
			return m, nil
		}
		m.Loading = false
		m.err = msg.Err
		m.Records = len(msg.Records)
		m.Samples = models.GroupRecords(msg.Records)
	}
	return m, nil
}

func (m HistoryModel) windowSelector() string {
	parts := make([]string, len(HistoryWindows))
	for i, win := range HistoryWindows {
		if i == m.Window {
			parts[i] = styles.TabActive.Render(win.Label)
		} else {
			parts[i] = styles.TabInactive.Render(win.Label)
		}
	}
	return "  " + styles.SubtleStyle.Render("Range ") + strings.Join(parts, "  ")
}

func (m HistoryModel) View() string {
	w := m.Width
	var b strings.Builder

	b.WriteString(m.windowSelector() + "\n\n")

	if m.err != nil {
		if errors.Is(m.err, storage.ErrUnavailable) {
			b.WriteString(components.Empty("History unavailable", "The metric log could not be opened; live data is still shown in the other tabs", w))
		} else {
			b.WriteString(components.MsgError("Could not read history: "+m.err.Error(), w))
		}
		return b.String()
	}

	if len(m.Samples) == 0 {
		if m.Loading {
			return b.String() + components.Loading(m.Spin, "Loading history...")
		}
		b.WriteString(components.Empty("No samples recorded in this range", "Samples are logged on every poll while recording is on", w))
		return b.String()
	}

	cpu := models.Series(m.Samples, models.MetricCPUPercent)
	mem := models.Series(m.Samples, models.MetricRAMPercent)
	up := rateValues(models.CounterRates(m.Samples, models.MetricNetSent))
	down := rateValues(models.CounterRates(m.Samples, models.MetricNetRecv))

	first := m.Samples[0].Timestamp
	last := m.Samples[len(m.Samples)-1].Timestamp
	b.WriteString(components.Section(fmt.Sprintf("%d samples, %d records", len(m.Samples), m.Records), w) + "\n\n")

	graphW := w - 36
	var graphs strings.Builder
	graphs.WriteString(graphLine("CPU", lastValue(cpu, "%.1f%%"), components.Sparkline(cpu, graphW, 100)) + "\n")
	graphs.WriteString(graphLine("Memory", lastValue(mem, "%.1f%%"), components.Sparkline(mem, graphW, 100)) + "\n")
	graphs.WriteString(graphLine("Upload", lastRate(up), components.Sparkline(up, graphW, 0)) + "\n")
	graphs.WriteString(graphLine("Download", lastRate(down), components.Sparkline(down, graphW, 0)) + "\n\n")
	graphs.WriteString("  " + styles.MutedStyle.Render(first.Format("2006-01-02 15:04:05")+" → "+last.Format("2006-01-02 15:04:05")))
	b.WriteString(components.Wrap(graphs.String(), w) + "\n\n")

	b.WriteString(components.Section("Latest samples", w) + "\n\n")
	var table strings.Builder
	table.WriteString(styles.MutedStyle.Render(components.HistoryRow("TIME", "CPU%", "MEM%", "UP", "DOWN")) + "\n")
	upRates := models.CounterRates(m.Samples, models.MetricNetSent)
	downRates := models.CounterRates(m.Samples, models.MetricNetRecv)
	rows := 0
	for i := len(m.Samples) - 1; i >= 0 && rows < historyTableRows; i-- {
		s := m.Samples[i]
		table.WriteString(components.HistoryRow(
			s.Timestamp.Format("2006-01-02 15:04:05"),
			floatOrDash(s, models.MetricCPUPercent),
			floatOrDash(s, models.MetricRAMPercent),
			rateAt(upRates, s.Timestamp),
			rateAt(downRates, s.Timestamp),
		) + "\n")
		rows++
	}
	b.WriteString(components.Wrap(strings.TrimRight(table.String(), "\n"), w))

	return b.String()
}

func graphLine(label, value, graph string) string {
	return "  " + styles.SubtleStyle.Render(styles.Pad(label, 10)) + " " + styles.PadL(value, 12) + "  " + graph
}

func rateValues(rates []models.Rate) []float64 {
	out := make([]float64, len(rates))
	for i, r := range rates {
		out[i] = r.Value
	}
	return out
}

func lastValue(values []float64, format string) string {
	if len(values) == 0 {
		return "-"
	}
	return fmt.Sprintf(format, values[len(values)-1])
}

func lastRate(values []float64) string {
	if len(values) == 0 {
		return "-"
	}
	return helper.FormatRate(values[len(values)-1])
}

func floatOrDash(s *models.Sample, metric string) string {
	if v, ok := s.Float(metric); ok {
		return fmt.Sprintf("%.1f", v)
	}
	return "-"
}

func rateAt(rates []models.Rate, ts time.Time) string {
	for i := len(rates) - 1; i >= 0; i-- {
		if rates[i].Timestamp.Equal(ts) {
			return helper.FormatRate(rates[i].Value)
		}
	}
	return "-"
}
