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

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/urustack/sysdiag/internal/export"
	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/monitor"
	"github.com/urustack/sysdiag/internal/tui/components"
	"github.com/urustack/sysdiag/internal/tui/styles"
	"github.com/urustack/sysdiag/pkg/helper"
)

type ExportKind int

const (
	ExportSnapshot ExportKind = iota
	ExportHistory
)

func (k ExportKind) String() string {
	if k == ExportHistory {
		return "history"
	}
	return "snapshot"
}

// ExportModel is the path prompt shown over the current tab.
type ExportModel struct {
	ctx    context.Context
	mon    *monitor.Monitor
	input  textinput.Model
	Active bool
	Kind   ExportKind
	Width  int
	Height int
	sample *models.Sample
	rng    models.Range
	err    error
}

func NewExportModel(ctx context.Context, mon *monitor.Monitor) ExportModel {
	ti := textinput.New()
	ti.Prompt = "  "
	ti.Placeholder = "path ending in .txt or .json"
	ti.CharLimit = 512
	ti.Width = 56
	return ExportModel{ctx: ctx, mon: mon, input: ti}
}

func (m *ExportModel) SetSize(w, h int) {
	m.Width = w
	m.Height = h
}

// Open shows the prompt prefilled with a default path. sample may be nil,
// in which case only history can be exported.
func (m *ExportModel) Open(kind ExportKind, sample *models.Sample, r models.Range) tea.Cmd {
	if sample == nil {
		kind = ExportHistory
	}
	m.Active = true
	m.Kind = kind
	m.sample = sample
	m.rng = r
	m.err = nil
	m.input.SetValue(m.defaultPath())
	m.input.CursorEnd()
	m.input.Focus()
	return textinput.Blink
}

func (m *ExportModel) Close() {
	m.Active = false
	m.input.Blur()
}

func (m ExportModel) defaultPath() string {
	return m.mon.DefaultExportPath(m.Kind.String(), export.FormatTXT, time.Now())
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.Close()
			return m, nil
		case "tab":
			if m.sample == nil {
				return m, nil
			}
			if m.Kind == ExportSnapshot {
				m.Kind = ExportHistory
			} else {
				m.Kind = ExportSnapshot
			}
			m.input.SetValue(m.defaultPath())
			m.input.CursorEnd()
			return m, nil
		case "enter":
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				m.err = errors.New("enter a file path")
				return m, nil
			}
			if _, err := export.FormatFromPath(path); err != nil {
				m.err = err
				return m, nil
			}
			m.Close()
			return m, m.run(helper.ExpandHome(path))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ExportModel) run(path string) tea.Cmd {
	ctx, mon, kind, sample, rng := m.ctx, m.mon, m.Kind, m.sample, m.rng
	return func() tea.Msg {
		if kind == ExportSnapshot {
			err := mon.ExportSample(path, sample)
			return ExportedMsg{Path: path, Count: sample.Len(), Err: err}
		}
		n, err := mon.ExportHistory(ctx, path, rng)
		return ExportedMsg{Path: path, Count: n, Err: err}
	}
}

func (m ExportModel) View() string {
	var body strings.Builder

	kinds := []string{ExportSnapshot.String(), ExportHistory.String()}
	body.WriteString(styles.SubtleStyle.Render("Export ") + components.Tabs(kinds, int(m.Kind)) + "\n\n")
	if m.Kind == ExportSnapshot {
		body.WriteString(styles.MutedStyle.Render("Writes the latest sample.") + "\n\n")
	} else {
		body.WriteString(styles.MutedStyle.Render("Writes the records of the selected history range.") + "\n\n")
	}

	body.WriteString(styles.InputBoxFocused.Render(m.input.View()) + "\n")
	if m.err != nil {
		body.WriteString("\n" + styles.ErrorStyle.Render(styles.IconError+" "+m.err.Error()) + "\n")
	}

	hint := "enter export  esc cancel"
	if m.sample != nil {
		hint = "tab switch  " + hint
	}
	return components.Overlay(fmt.Sprintf("%s Export", styles.IconPointer), body.String(), hint, m.Width, m.Height)
}
