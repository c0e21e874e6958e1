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

package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/monitor"
	"github.com/urustack/sysdiag/internal/schedule"
	"github.com/urustack/sysdiag/internal/storage"
	"github.com/urustack/sysdiag/internal/tui/components"
	"github.com/urustack/sysdiag/internal/tui/styles"
	"github.com/urustack/sysdiag/internal/tui/views"
	"github.com/urustack/sysdiag/pkg/helper"
)

type ViewState int

const (
	ViewOverview ViewState = iota
	ViewCPU
	ViewMemory
	ViewDisk
	ViewNetwork
	ViewProcesses
	ViewHistory
)

var viewNames = []string{"Overview", "CPU", "Memory", "Disk", "Network", "Processes", "History"}

// chrome is the number of lines taken by the header and footer.
const chrome = 6

const spinInterval = 100 * time.Millisecond

type Model struct {
	ctx    context.Context
	mon    *monitor.Monitor
	ticker *schedule.Ticker

	ActiveView ViewState
	Width      int
	Height     int
	Ready      bool
	Polling    bool
	tickID     int
	spinning   bool
	spinFrame  int

	Status      monitor.StoreStatus
	LastErr     error
	Message     string
	MessageType string

	latest views.SnapshotMsg

	Overview  views.OverviewModel
	CPU       views.CPUModel
	Memory    views.MemoryModel
	Disk      views.DiskModel
	Network   views.NetworkModel
	Processes views.ProcessesModel
	History   views.HistoryModel
	Export    views.ExportModel
}

func NewModel(ctx context.Context, mon *monitor.Monitor, ticker *schedule.Ticker, t config.Thresholds) Model {
	return Model{
		ctx:        ctx,
		mon:        mon,
		ticker:     ticker,
		ActiveView: ViewOverview,
		Polling:    true,
		Overview:   views.NewOverviewModel(t),
		CPU:        views.NewCPUModel(t),
		Memory:     views.NewMemoryModel(t),
		Disk:       views.NewDiskModel(t),
		Network:    views.NewNetworkModel(t),
		Processes:  views.NewProcessesModel(t),
		History:    views.NewHistoryModel(ctx, mon),
		Export:     views.NewExportModel(ctx, mon),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.collect(), m.tick(), m.status())
}

func (m *Model) collect() tea.Cmd {
	ctx, mon := m.ctx, m.mon
	return func() tea.Msg {
		snap, err := mon.Collect(ctx)
		if err != nil {
			return views.CollectErrorMsg{Err: err}
		}
		return views.SnapshotMsg{Snapshot: snap, Sample: snap.Sample(), Alerts: mon.Alerts(snap)}
	}
}

func (m *Model) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.ticker.Delay(time.Now()), func(t time.Time) tea.Msg {
		return views.TickMsg{ID: id, At: t}
	})
}

func (m *Model) persist(msg views.SnapshotMsg) tea.Cmd {
	ctx, mon := m.ctx, m.mon
	return func() tea.Msg {
		err := mon.Persist(ctx, msg.Sample)
		return views.StatusMsg{Status: mon.StoreStatus(ctx), Err: err}
	}
}

func (m *Model) status() tea.Cmd {
	ctx, mon := m.ctx, m.mon
	return func() tea.Msg {
		return views.StatusMsg{Status: mon.StoreStatus(ctx)}
	}
}

// loading reports whether the active tab is showing a spinner.
func (m *Model) loading() bool {
	switch m.ActiveView {
	case ViewOverview:
		return m.latest.Snapshot == nil
	case ViewHistory:
		return m.History.Loading
	}
	return false
}

// spin schedules the next spinner frame unless one is pending or nothing
// is loading.
func (m *Model) spin() tea.Cmd {
	if m.spinning || !m.loading() {
		return nil
	}
	m.spinning = true
	return tea.Tick(spinInterval, func(time.Time) tea.Msg {
		return views.SpinMsg{}
	})
}

func (m *Model) setMessage(msg, kind string) {
	m.Message = msg
	m.MessageType = kind
}

func (m *Model) switchTo(v ViewState) tea.Cmd {
	if v == m.ActiveView {
		return nil
	}
	m.ActiveView = v
	if v == ViewHistory {
		return m.History.Init()
	}
	return nil
}

func (m *Model) togglePolling() tea.Cmd {
	m.tickID++
	m.Polling = !m.Polling
	if !m.Polling {
		return nil
	}
	return tea.Batch(m.collect(), m.tick())
}

func (m *Model) openExport() tea.Cmd {
	kind := views.ExportSnapshot
	if m.ActiveView == ViewHistory {
		kind = views.ExportHistory
	}
	return m.Export.Open(kind, m.latest.Sample, m.History.Range())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	if spin := m.spin(); spin != nil {
		return model, tea.Batch(cmd, spin)
	}
	return model, cmd
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case views.SpinMsg:
		m.spinning = false
		m.spinFrame++
		m.Overview.Spin = m.spinFrame
		m.History.Spin = m.spinFrame
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		h := msg.Height - chrome
		m.Overview.SetSize(msg.Width, h)
		m.CPU.SetSize(msg.Width, h)
		m.Memory.SetSize(msg.Width, h)
		m.Disk.SetSize(msg.Width, h)
		m.Network.SetSize(msg.Width, h)
		m.Processes.SetSize(msg.Width, h)
		m.History.SetSize(msg.Width, h)
		m.Export.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.Export.Active {
			var newModel tea.Model
			newModel, cmd = m.Export.Update(msg)
			m.Export = newModel.(views.ExportModel)
			return m, cmd
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab", "right":
			return m, m.switchTo((m.ActiveView + 1) % ViewState(len(viewNames)))
		case "shift+tab", "left":
			return m, m.switchTo((m.ActiveView + ViewState(len(viewNames)) - 1) % ViewState(len(viewNames)))
		case "1", "2", "3", "4", "5", "6", "7":
			return m, m.switchTo(ViewState(msg.String()[0] - '1'))
		case "p":
			return m, m.togglePolling()
		case "s":
			m.mon.SetPersist(!m.mon.Persisting())
			if m.mon.Persisting() {
				m.setMessage("Recording samples to the metric log", "info")
			} else {
				m.setMessage("Recording paused; live data continues", "info")
			}
			return m, m.status()
		case "e":
			return m, m.openExport()
		}

	case views.TickMsg:
		if msg.ID != m.tickID || !m.Polling {
			return m, nil
		}
		return m, tea.Batch(m.collect(), m.tick())

	case views.SnapshotMsg:
		m.latest = msg
		m.LastErr = nil
		m.Overview.SetSnapshot(msg.Snapshot)
		m.Overview.SetAlerts(msg.Alerts)
		m.CPU.SetSnapshot(msg.Snapshot)
		m.Memory.SetSnapshot(msg.Snapshot)
		m.Disk.SetSnapshot(msg.Snapshot)
		m.Network.SetSnapshot(msg.Snapshot)
		m.Processes.SetSnapshot(msg.Snapshot)
		return m, m.persist(msg)

	case views.CollectErrorMsg:
		m.LastErr = msg.Err
		return m, nil

	case views.StatusMsg:
		m.Status = msg.Status
		if msg.Err != nil && !errors.Is(msg.Err, storage.ErrUnavailable) {
			m.LastErr = msg.Err
		}
		if m.ActiveView == ViewHistory && !m.History.Loading {
			cmds = append(cmds, m.History.Init())
		}
		return m, tea.Batch(cmds...)

	case views.ExportedMsg:
		if msg.Err != nil {
			m.setMessage("Export failed: "+msg.Err.Error(), "error")
		} else {
			m.setMessage(fmt.Sprintf("Exported %d records to %s", msg.Count, msg.Path), "success")
		}
		return m, nil

	case views.HistoryMsg:
		var newModel tea.Model
		newModel, cmd = m.History.Update(msg)
		m.History = newModel.(views.HistoryModel)
		return m, cmd
	}

	if m.Export.Active {
		var newModel tea.Model
		newModel, cmd = m.Export.Update(msg)
		m.Export = newModel.(views.ExportModel)
		return m, cmd
	}

	switch m.ActiveView {
	case ViewProcesses:
		var newModel tea.Model
		newModel, cmd = m.Processes.Update(msg)
		m.Processes = newModel.(views.ProcessesModel)
		cmds = append(cmds, cmd)
	case ViewHistory:
		var newModel tea.Model
		newModel, cmd = m.History.Update(msg)
		m.History = newModel.(views.HistoryModel)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) body() string {
	switch m.ActiveView {
	case ViewCPU:
		return m.CPU.View()
	case ViewMemory:
		return m.Memory.View()
	case ViewDisk:
		return m.Disk.View()
	case ViewNetwork:
		return m.Network.View()
	case ViewProcesses:
		return m.Processes.View()
	case ViewHistory:
		return m.History.View()
	default:
		return m.Overview.View()
	}
}

// statusLine shows polling state, the store and anything that went wrong.
func (m *Model) statusLine() string {
	parts := []string{}
	if m.Polling {
		parts = append(parts, components.Badge("polling"))
	} else {
		parts = append(parts, components.Badge("idle"))
	}
	if m.Status.Available && m.Status.Persist {
		parts = append(parts, components.Badge("recording"))
	}

	storeText := m.Status.String()
	if !m.Status.Available || m.Status.Err != nil {
		parts = append(parts, styles.WarningStyle.Render(storeText))
	} else {
		parts = append(parts, styles.MutedStyle.Render(storeText))
	}

	if snap := m.latest.Snapshot; snap != nil && len(snap.Unavailable) > 0 {
		missing := make([]string, 0, len(snap.Unavailable))
		for c := range snap.Unavailable {
			missing = append(missing, c)
		}
		sort.Strings(missing)
		parts = append(parts, styles.MutedStyle.Render("n/a: "+strings.Join(missing, ", ")))
	}

	if m.LastErr != nil {
		parts = append(parts, styles.ErrorStyle.Render(styles.IconError+" "+styles.Trunc(m.LastErr.Error(), 60)))
	} else if m.latest.Snapshot != nil {
		parts = append(parts, styles.DimStyle.Render("updated "+m.latest.Snapshot.CollectedAt.Format("15:04:05")))
	}
	return "  " + strings.Join(parts, "  ")
}

func (m *Model) message() string {
	if m.Message == "" {
		return ""
	}
	return components.Notice(m.MessageType, m.Message, m.Width)
}

func (m *Model) help() [][]string {
	items := [][]string{{"tab", "switch"}, {"p", "pause"}, {"s", "record"}, {"e", "export"}}
	switch m.ActiveView {
	case ViewProcesses:
		items = append(items, []string{"c/m", "sort"}, []string{"↑↓", "select"})
	case ViewHistory:
		items = append(items, []string{"r", "range"})
	}
	if !m.Polling {
		items[1] = []string{"p", "resume"}
	}
	return append(items, []string{"q", "quit"})
}

func (m *Model) View() string {
	if !m.Ready {
		return ""
	}
	if m.Export.Active {
		return m.Export.View()
	}

	var b strings.Builder
	b.WriteString("\n" + components.ViewHeader(m.Width, viewNames[m.ActiveView]) + "   " + styles.Tagline() + "\n")
	b.WriteString(components.Tabs(viewNames, int(m.ActiveView)) + "\n\n")

	body := m.body()
	if msg := m.message(); msg != "" {
		body = msg + "\n\n" + body
	}
	b.WriteString(fillTo(body, m.Height-chrome))

	b.WriteString("\n" + styles.Line(m.Width) + "\n")
	b.WriteString(m.statusLine() + "\n")
	b.WriteString(components.Help(m.help()))
	return b.String()
}

func fillTo(content string, height int) string {
	lines := helper.CountLines(content)
	if lines >= height {
		return content
	}
	return content + strings.Repeat("\n", height-lines)
}
