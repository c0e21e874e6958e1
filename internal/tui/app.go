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

	tea "github.com/charmbracelet/bubbletea"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/monitor"
	"github.com/urustack/sysdiag/internal/schedule"
)

// Renderer runs the full-screen terminal UI.
type Renderer struct {
	mon        *monitor.Monitor
	ticker     *schedule.Ticker
	thresholds config.Thresholds

	// Notice is shown as a warning when the UI opens.
	Notice string
}

func NewRenderer(mon *monitor.Monitor, ticker *schedule.Ticker, t config.Thresholds) *Renderer {
	return &Renderer{mon: mon, ticker: ticker, thresholds: t}
}

// Run blocks until the user quits or ctx is cancelled. Cancellation is a
// normal shutdown.
func (r *Renderer) Run(ctx context.Context) error {
	model := NewModel(ctx, r.mon, r.ticker, r.thresholds)
	if r.Notice != "" {
		model.setMessage(r.Notice, "warning")
	}
	p := tea.NewProgram(&model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
