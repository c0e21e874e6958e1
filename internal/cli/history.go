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
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/urustack/sysdiag/internal/api/handlers"
	"github.com/urustack/sysdiag/internal/export"
	"github.com/urustack/sysdiag/internal/storage"
	"github.com/urustack/sysdiag/internal/tui/styles"
	"github.com/urustack/sysdiag/pkg/logger"
)

var historyOpts struct {
	since  string
	from   string
	to     string
	metric string
	limit  int
	output string
	format string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query the metric log",
	Example: `  sysdiag history --since 1h --metric cpu.percent
  sysdiag history --since 24h --output ~/day.csv`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyOpts.since, "since", "", "only records newer than this duration, e.g. 15m or 24h")
	f.StringVar(&historyOpts.from, "from", "", "start time (RFC 3339)")
	f.StringVar(&historyOpts.to, "to", "", "end time (RFC 3339)")
	f.StringVarP(&historyOpts.metric, "metric", "m", "", "only this metric")
	f.IntVarP(&historyOpts.limit, "limit", "n", 0, "at most this many of the newest records")
	f.StringVarP(&historyOpts.output, "output", "o", "", "write to this file; the extension selects the format")
	f.StringVarP(&historyOpts.format, "format", "f", "", "txt, json or csv (default txt)")
}

// historyQuery maps the flags onto the same parameters the HTTP API takes.
func historyQuery() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("since", historyOpts.since)
	set("from", historyOpts.from)
	set("to", historyOpts.to)
	set("metric", historyOpts.metric)
	if historyOpts.limit != 0 {
		q.Set("limit", fmt.Sprint(historyOpts.limit))
	}
	return q
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rng, err := handlers.ParseRange(historyQuery(), time.Now())
	if err != nil {
		return err
	}

	a, err := start(cfg, true)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer a.Close()
	if a.notice != "" {
		warn(a.notice)
	}
	if a.store == nil {
		return fmt.Errorf("%w: could not open %s", storage.ErrUnavailable, cfg.DataPath())
	}

	ctx, stop := signalContext()
	defer stop()

	if historyOpts.output != "" {
		n, err := a.mon.ExportHistory(ctx, historyOpts.output, rng)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%s Exported %d records to %s\n", styles.SuccessStyle.Render(styles.IconSuccess), n, historyOpts.output)
		return nil
	}

	format, err := export.ParseFormat(historyOpts.format)
	if err != nil {
		return err
	}
	records, err := a.mon.History(ctx, rng)
	if err != nil {
		return err
	}
	return export.EncodeHistory(os.Stdout, format, records)
}
