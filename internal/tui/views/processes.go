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
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/metrics"
	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/tui/components"
	"github.com/urustack/sysdiag/internal/tui/styles"
)

type ProcessSort int

const (
	SortByCPU ProcessSort = iota
	SortByMemory
)

type ProcessesModel struct {
	frame
	Cursor int
	SortBy ProcessSort
}

func NewProcessesModel(t config.Thresholds) ProcessesModel {
	return ProcessesModel{frame: frame{Thresholds: t}}
}

func (m ProcessesModel) Init() tea.Cmd {
	return nil
}

func (m ProcessesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.rows())-1 {
			m.Cursor++
		}
	case "c":
		m.SortBy = SortByCPU
		m.Cursor = 0
	case "m":
		m.SortBy = SortByMemory
		m.Cursor = 0
	}
	return m, nil
}

func (m ProcessesModel) rows() []models.Process {
	if m.Snapshot == nil {
		return nil
	}
	rows := append([]models.Process(nil), m.Snapshot.Processes...)
	if m.SortBy == SortByMemory {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].RSS > rows[j].RSS })
	}
	return rows
}

func (m ProcessesModel) View() string {
	if msg := m.unavailable(metrics.CategoryProcesses); msg != "" {
		return msg
	}

	w := m.Width
	rows := m.rows()
	var b strings.Builder

	title := "Top processes by CPU"
	if m.SortBy == SortByMemory {
		title = "Top processes by memory"
	}
	b.WriteString(components.Section(title, w) + "\n\n")

	if len(rows) == 0 {
		b.WriteString(components.Empty("No process data", "Process collection may be disabled in the config", w))
		return b.String()
	}

	cursor := m.Cursor
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}

	var table strings.Builder
	table.WriteString(components.ProcessHeader(w) + "\n")
	table.WriteString("  " + styles.Line(w-10) + "\n")
	for i, p := range rows {
		started := "-"
		if !p.StartedAt.IsZero() {
			started = p.StartedAt.Format("Jan 02 15:04")
		}
		table.WriteString(components.ProcessRow(p.PID, p.Name, p.CPUPercent, p.RSS, p.VMS, p.Threads, p.Username, started, i == cursor, w) + "\n")
	}
	b.WriteString(components.Wrap(strings.TrimRight(table.String(), "\n"), w))

	return b.String()
}
