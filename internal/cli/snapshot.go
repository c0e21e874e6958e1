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
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/urustack/sysdiag/internal/export"
	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/monitor"
	"github.com/urustack/sysdiag/internal/tui/styles"
	"github.com/urustack/sysdiag/pkg/logger"
)

var snapshotOpts struct {
	output string
	format string
	warmup time.Duration
	record bool
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Collect one sample and print or export it",
	Example: `  sysdiag snapshot
  sysdiag snapshot --format json
  sysdiag snapshot --output ~/report.txt`,
	Args: cobra.NoArgs,
	RunE: runSnapshot,
}

func init() {
	f := snapshotCmd.Flags()
	f.StringVarP(&snapshotOpts.output, "output", "o", "", "write to this file; the extension selects the format")
	f.StringVarP(&snapshotOpts.format, "format", "f", "", "txt, json or csv (default txt)")
	f.DurationVar(&snapshotOpts.warmup, "warmup", time.Second, "wait between two passes so rates and CPU usage are measured; 0 disables")
	f.BoolVar(&snapshotOpts.record, "record", false, "also append the sample to the metric log")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Persist = snapshotOpts.record
	a, err := start(cfg, true)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer a.Close()
	if a.notice != "" {
		warn(a.notice)
	}

	ctx, stop := signalContext()
	defer stop()

	snap, err := collectWarm(ctx, a.mon, snapshotOpts.warmup)
	if err != nil {
		return err
	}
	sample := snap.Sample()

	if snapshotOpts.record {
		if err := a.mon.Persist(ctx, sample); err != nil {
			warn("not recorded: " + err.Error())
		}
	}

	if snapshotOpts.output != "" {
		if err := a.mon.ExportSample(snapshotOpts.output, sample); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, styles.SuccessStyle.Render(styles.IconSuccess)+" Snapshot written to "+snapshotOpts.output)
		return nil
	}

	format, err := export.ParseFormat(snapshotOpts.format)
	if err != nil {
		return err
	}
	return export.EncodeSample(os.Stdout, format, sample)
}

// collectWarm takes a throwaway pass first so counters have a baseline.
func collectWarm(ctx context.Context, mon *monitor.Monitor, warmup time.Duration) (*models.Snapshot, error) {
	if warmup > 0 {
		if _, err := mon.Collect(ctx); err != nil {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(warmup):
		}
	}
	return mon.Collect(ctx)
}
