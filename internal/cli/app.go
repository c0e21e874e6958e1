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

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/metrics"
	"github.com/urustack/sysdiag/internal/monitor"
	"github.com/urustack/sysdiag/internal/plain"
	"github.com/urustack/sysdiag/internal/schedule"
	"github.com/urustack/sysdiag/internal/storage"
	"github.com/urustack/sysdiag/internal/storage/sqlite"
	"github.com/urustack/sysdiag/internal/tui"
	"github.com/urustack/sysdiag/pkg/logger"
)

// Renderer is a presentation front end. Run returns when the user quits or
// ctx is cancelled.
type Renderer interface {
	Run(ctx context.Context) error
}

// app owns the shared store connection for the lifetime of a command.
type app struct {
	cfg   *config.Config
	store storage.Store
	mon   *monitor.Monitor
	// notice is a startup warning for the user, such as a moved log file.
	notice string
}

// newApp opens the store and wires the monitor. A store that cannot be
// opened is logged and history is reported unavailable.
func newApp(cfg *config.Config) *app {
	a := &app{cfg: cfg}

	store, err := sqlite.New(cfg.DataPath(), cfg.DBName)
	if err != nil {
		logger.Error("history disabled: %v", err)
	} else {
		a.store = store
	}

	collector := metrics.NewCollector(metrics.Options{
		DiskAllPartitions: cfg.Collect.DiskAllPartitions,
		DiskPaths:         cfg.Collect.DiskPaths,
		Processes:         cfg.Collect.Processes,
		ProcessLimit:      cfg.Collect.ProcessLimit,
	})

	a.mon = monitor.New(collector, monitor.Options{
		Store:      a.store,
		Persist:    cfg.Persist,
		Thresholds: cfg.Thresholds,
		ExportDir:  cfg.ExportPath(),
	})
	return a
}

func (a *app) Close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		logger.Warn("close store: %v", err)
	}
}

func newRenderer(cfg *config.Config, a *app, out io.Writer) (Renderer, error) {
	ticker := schedule.NewTicker(cfg.Interval.Duration)
	switch cfg.UI.Renderer {
	case config.RendererTUI:
		r := tui.NewRenderer(a.mon, ticker, cfg.Thresholds)
		r.Notice = a.notice
		return r, nil
	case config.RendererPlain:
		return plain.NewRenderer(a.mon, ticker, out), nil
	}
	return nil, fmt.Errorf("%w: unknown renderer %q", config.ErrInvalid, cfg.UI.Renderer)
}
