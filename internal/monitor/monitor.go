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

package monitor

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/export"
	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/storage"
	"github.com/urustack/sysdiag/pkg/logger"
)

type Collector interface {
	Collect(ctx context.Context) (*models.Snapshot, error)
}

type Options struct {
	// Store may be nil, in which case history is reported unavailable.
	Store      storage.Store
	Persist    bool
	Thresholds config.Thresholds
	ExportDir  string
}

// Monitor ties the collector to the optional store for the renderers.
type Monitor struct {
	collector  Collector
	store      storage.Store
	persist    atomic.Bool
	thresholds config.Thresholds
	exportDir  string
	log        *logger.Logger
}

type StoreStatus struct {
	Available bool
	Persist   bool
	Path      string
	Records   int
	Samples   int
	Err       error
}

func (s StoreStatus) String() string {
	switch {
	case !s.Available:
		return "history unavailable"
	case s.Err != nil:
		return "history error: " + s.Err.Error()
	case !s.Persist:
		return fmt.Sprintf("history: %d records (not recording)", s.Records)
	}
	return fmt.Sprintf("history: %d records", s.Records)
}

func New(collector Collector, opts Options) *Monitor {
	m := &Monitor{
		collector:  collector,
		store:      opts.Store,
		thresholds: opts.Thresholds,
		exportDir:  opts.ExportDir,
		log:        logger.With("monitor"),
	}
	m.persist.Store(opts.Persist)
	return m
}

func (m *Monitor) Collect(ctx context.Context) (*models.Snapshot, error) {
	snap, err := m.collector.Collect(ctx)
	if err != nil {
		m.log.Warn("collection failed: %v", err)
		return nil, err
	}
	return snap, nil
}

// Persist appends the sample when recording is enabled.
func (m *Monitor) Persist(ctx context.Context, sample *models.Sample) error {
	if !m.persist.Load() {
		return nil
	}
	if m.store == nil {
		return storage.ErrUnavailable
	}
	if err := m.store.Append(ctx, sample); err != nil {
		m.log.Error("append failed: %v", err)
		return err
	}
	return nil
}

func (m *Monitor) History(ctx context.Context, r models.Range) ([]models.LogRecord, error) {
	if m.store == nil {
		return nil, storage.ErrUnavailable
	}
	return m.store.Query(ctx, r)
}

func (m *Monitor) StoreStatus(ctx context.Context) StoreStatus {
	status := StoreStatus{Persist: m.persist.Load()}
	if m.store == nil {
		return status
	}
	status.Available = true
	status.Path = m.store.Path()

	stats, err := m.store.Stats(ctx)
	if err != nil {
		status.Err = err
		return status
	}
	status.Records = stats.Records
	status.Samples = stats.Samples
	return status
}

func (m *Monitor) Alerts(snap *models.Snapshot) []models.Alert {
	return Evaluate(m.thresholds, snap)
}

func (m *Monitor) Persisting() bool {
	return m.persist.Load()
}

func (m *Monitor) SetPersist(on bool) {
	m.persist.Store(on)
}

// DefaultExportPath suggests a file in the export directory.
func (m *Monitor) DefaultExportPath(kind string, format export.Format, t time.Time) string {
	return filepath.Join(m.exportDir, export.DefaultName(kind, format, t))
}

func (m *Monitor) ExportSample(path string, sample *models.Sample) error {
	if err := export.WriteSample(path, sample); err != nil {
		m.log.Warn("%v", err)
		return err
	}
	m.log.Info("exported snapshot to %s", path)
	return nil
}

// ExportHistory writes the records in r to path and returns how many were
// written.
func (m *Monitor) ExportHistory(ctx context.Context, path string, r models.Range) (int, error) {
	records, err := m.History(ctx, r)
	if err != nil {
		return 0, err
	}
	if err := export.WriteHistory(path, records); err != nil {
		m.log.Warn("%v", err)
		return 0, err
	}
	m.log.Info("exported %d records to %s", len(records), path)
	return len(records), nil
}
