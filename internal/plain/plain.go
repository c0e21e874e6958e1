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

// Package plain renders samples as one line per tick for terminals without
// cursor control and for piping into other tools.
package plain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/monitor"
	"github.com/urustack/sysdiag/internal/schedule"
	"github.com/urustack/sysdiag/internal/storage"
	"github.com/urustack/sysdiag/pkg/helper"
	"github.com/urustack/sysdiag/pkg/logger"
)

type Renderer struct {
	mon    *monitor.Monitor
	ticker *schedule.Ticker
	out    io.Writer
	log    *logger.Logger
}

func NewRenderer(mon *monitor.Monitor, ticker *schedule.Ticker, out io.Writer) *Renderer {
	return &Renderer{
		mon:    mon,
		ticker: ticker,
		out:    out,
		log:    logger.With("plain"),
	}
}

// Run polls until ctx is cancelled. The first sample is taken immediately.
func (r *Renderer) Run(ctx context.Context) error {
	fmt.Fprintf(r.out, "sysdiag: polling every %s, %s\n", r.ticker.Interval(), r.mon.StoreStatus(ctx))
	r.poll(ctx)

	for {
		timer := time.NewTimer(r.ticker.Delay(time.Now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			r.log.Debug("stopped: %v", ctx.Err())
			return nil
		case <-timer.C:
			r.poll(ctx)
		}
	}
}

func (r *Renderer) poll(ctx context.Context) {
	snap, err := r.mon.Collect(ctx)
	if err != nil {
		if ctx.Err() == nil {
			fmt.Fprintf(r.out, "%s collection failed: %v\n", time.Now().Format("15:04:05"), err)
		}
		return
	}

	line := FormatLine(snap, r.mon.Alerts(snap))
	if err := r.mon.Persist(ctx, snap.Sample()); err != nil && !errors.Is(err, storage.ErrUnavailable) {
		line += " [store error: " + err.Error() + "]"
	}
	fmt.Fprintln(r.out, line)
}

// FormatLine summarises a snapshot on a single line.
func FormatLine(snap *models.Snapshot, alerts []models.Alert) string {
	parts := []string{snap.CollectedAt.Format("15:04:05")}

	if snap.CPU != nil {
		parts = append(parts, fmt.Sprintf("cpu %.1f%%", snap.CPU.Percent))
	}
	if snap.Memory != nil {
		parts = append(parts, fmt.Sprintf("mem %.1f%%", snap.Memory.UsedPercent))
		if snap.Memory.SwapTotal > 0 {
			parts = append(parts, fmt.Sprintf("swap %.1f%%", snap.Memory.SwapPercent))
		}
	}
	for _, d := range snap.Disks {
		parts = append(parts, fmt.Sprintf("disk %s %.1f%%", d.Mountpoint, d.UsedPercent))
	}
	if snap.Network != nil {
		parts = append(parts, fmt.Sprintf("net up %s down %s",
			helper.FormatRate(snap.Network.SentRate), helper.FormatRate(snap.Network.RecvRate)))
	}
	if snap.Load != nil {
		parts = append(parts, fmt.Sprintf("load %.2f", snap.Load.Load1))
	}
	if snap.Battery != nil {
		bat := fmt.Sprintf("bat %.0f%%", snap.Battery.Percent)
		if snap.Battery.Charging {
			bat += "+"
		}
		parts = append(parts, bat)
	}

	if len(snap.Unavailable) > 0 {
		missing := make([]string, 0, len(snap.Unavailable))
		for c := range snap.Unavailable {
			missing = append(missing, c)
		}
		sort.Strings(missing)
		parts = append(parts, "[n/a: "+strings.Join(missing, ",")+"]")
	}
	for _, a := range alerts {
		parts = append(parts, fmt.Sprintf("[%s %s]", strings.ToUpper(string(a.Severity)), a.Message))
	}

	return strings.Join(parts, "  ")
}
