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
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/monitor"
	"github.com/urustack/sysdiag/internal/schedule"
	"github.com/urustack/sysdiag/internal/storage"
	"github.com/urustack/sysdiag/internal/storage/sqlite"
	"github.com/urustack/sysdiag/internal/tui/views"
)

type fakeCollector struct{}

func (fakeCollector) Collect(context.Context) (*models.Snapshot, error) {
	return &models.Snapshot{
		CollectedAt: time.Now(),
		Host:        &models.HostInfo{Hostname: "testbox"},
		CPU:         &models.CPUStats{Percent: 42, LogicalCores: 4},
		Memory:      &models.MemoryStats{Total: 8 << 30, Used: 4 << 30, UsedPercent: 50},
	}, nil
}

type brokenStore struct{}

func (brokenStore) Append(context.Context, *models.Sample) error {
	return &storage.StoreError{Op: "append", Err: errors.New("unable to open database file")}
}

func (brokenStore) Query(context.Context, models.Range) ([]models.LogRecord, error) {
	return nil, &storage.StoreError{Op: "query", Err: errors.New("unable to open database file")}
}

func (brokenStore) Count(context.Context) (int, error) { return 0, nil }

func (brokenStore) Stats(context.Context) (*storage.Stats, error) {
	return nil, &storage.StoreError{Op: "stats", Err: errors.New("unable to open database file")}
}

func (brokenStore) Path() string { return "/nonexistent/system_metrics.db" }
func (brokenStore) Close() error { return nil }

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, store storage.Store, exportDir string) *Model {
	t.Helper()
	mon := monitor.New(fakeCollector{}, monitor.Options{
		Store:      store,
		Persist:    true,
		Thresholds: config.Default().Thresholds,
		ExportDir:  exportDir,
	})
	m := NewModel(context.Background(), mon, schedule.NewTicker(time.Second), config.Default().Thresholds)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &m
}

// poll runs one collect -> render -> persist round synchronously.
func poll(t *testing.T, m *Model) {
	t.Helper()
	msg := m.collect()()
	if _, ok := msg.(views.SnapshotMsg); !ok {
		t.Fatalf("collect() = %T, want SnapshotMsg", msg)
	}
	_, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("SnapshotMsg returned no persist command")
	}
	m.Update(cmd())
}

func TestPollPersistsAndRenders(t *testing.T) {
	t.Parallel()
	store, err := sqlite.New(t.TempDir(), sqlite.DefaultName)
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store, t.TempDir())
	poll(t, m)
	poll(t, m)

	if m.LastErr != nil {
		t.Errorf("LastErr = %v, want nil", m.LastErr)
	}
	if m.Status.Samples != 2 {
		t.Errorf("Status.Samples = %d, want 2", m.Status.Samples)
	}
	if m.CPU.Snapshot == nil || m.Processes.Snapshot == nil {
		t.Error("snapshot not fanned out to views")
	}

	view := m.View()
	for _, want := range []string{"testbox", "history:", "LIVE"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestBrokenStoreKeepsRendering(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, brokenStore{}, t.TempDir())

	poll(t, m)
	first := m.latest.Snapshot
	poll(t, m)

	var serr *storage.StoreError
	if !errors.As(m.LastErr, &serr) {
		t.Fatalf("LastErr = %v, want *storage.StoreError", m.LastErr)
	}
	if m.latest.Snapshot == first {
		t.Error("second sample was not rendered")
	}
	if !strings.Contains(m.View(), "testbox") {
		t.Error("View() stopped rendering live data")
	}
}

func TestMissingStoreIsNotAnError(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, t.TempDir())
	poll(t, m)

	if m.LastErr != nil {
		t.Errorf("LastErr = %v, want nil", m.LastErr)
	}
	if !strings.Contains(m.View(), "history unavailable") {
		t.Error("View() does not report history unavailable")
	}
}

func TestPauseDropsStaleTicks(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, t.TempDir())
	stale := views.TickMsg{ID: m.tickID, At: time.Now()}

	m.Update(key("p"))
	if m.Polling {
		t.Fatal("Polling = true after pause")
	}
	if _, cmd := m.Update(stale); cmd != nil {
		t.Error("tick while paused produced a command")
	}

	_, cmd := m.Update(key("p"))
	if !m.Polling || cmd == nil {
		t.Fatal("resume did not restart polling")
	}
	if _, cmd := m.Update(stale); cmd != nil {
		t.Error("tick from the previous run produced a command")
	}
	if _, cmd := m.Update(views.TickMsg{ID: m.tickID}); cmd == nil {
		t.Error("current tick produced no command")
	}
}

func TestTabNavigation(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, t.TempDir())

	tests := []struct {
		key  string
		want ViewState
	}{
		{"tab", ViewCPU},
		{"right", ViewMemory},
		{"shift+tab", ViewCPU},
		{"6", ViewProcesses},
		{"1", ViewOverview},
		{"left", ViewHistory},
	}
	for _, tt := range tests {
		msg := key(tt.key)
		if tt.key == "right" {
			msg = tea.KeyMsg{Type: tea.KeyRight}
		} else if tt.key == "left" {
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		}
		m.Update(msg)
		if m.ActiveView != tt.want {
			t.Errorf("after %q ActiveView = %d, want %d", tt.key, m.ActiveView, tt.want)
		}
	}
}

func TestHistoryTabReportsUnavailableStore(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, t.TempDir())

	_, cmd := m.Update(key("7"))
	if cmd == nil {
		t.Fatal("switching to history did not fetch")
	}
	m.Update(cmd())
	if !strings.Contains(m.View(), "History unavailable") {
		t.Error("History view does not explain the missing store")
	}
}

func TestExportSnapshotFromPrompt(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	m := newTestModel(t, nil, dir)
	poll(t, m)

	m.Update(key("e"))
	if !m.Export.Active {
		t.Fatal("export prompt not shown")
	}
	if m.Export.Kind != views.ExportSnapshot {
		t.Errorf("Export.Kind = %v, want snapshot", m.Export.Kind)
	}

	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter produced no export command")
	}
	msg, ok := cmd().(views.ExportedMsg)
	if !ok {
		t.Fatal("export command did not return ExportedMsg")
	}
	if msg.Err != nil {
		t.Fatalf("export error = %v", msg.Err)
	}
	if _, err := os.Stat(msg.Path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}

	m.Update(msg)
	if m.MessageType != "success" || m.Export.Active {
		t.Errorf("after export Message = %q (%s), Active = %v", m.Message, m.MessageType, m.Export.Active)
	}
}

func TestExportCancel(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, t.TempDir())
	poll(t, m)

	m.Update(key("e"))
	m.Update(key("esc"))
	if m.Export.Active {
		t.Error("esc did not close the export prompt")
	}
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q after closing the prompt did not quit")
	}
}

func TestSpinnerRunsUntilFirstSample(t *testing.T) {
	t.Parallel()
	mon := monitor.New(fakeCollector{}, monitor.Options{Thresholds: config.Default().Thresholds})
	model := NewModel(context.Background(), mon, schedule.NewTicker(time.Second), config.Default().Thresholds)
	m := &model

	if _, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40}); cmd == nil {
		t.Fatal("no spinner scheduled before the first sample")
	}
	if _, cmd := m.Update(views.SpinMsg{}); cmd == nil {
		t.Error("spinner stopped while still loading")
	}
	if m.Overview.Spin != 1 {
		t.Errorf("Overview.Spin = %d, want 1", m.Overview.Spin)
	}

	poll(t, m)
	if _, cmd := m.Update(views.SpinMsg{}); cmd != nil {
		t.Error("spinner still scheduled after the first sample")
	}
}

func TestStartupNoticeIsShown(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, t.TempDir())
	m.setMessage("Log file unavailable; logging to /tmp/sysdiag/sysdiag.log", "warning")
	poll(t, m)

	if !strings.Contains(m.View(), "Log file unavailable") {
		t.Error("View() does not show the startup notice")
	}
}
