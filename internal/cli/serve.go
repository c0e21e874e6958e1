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
	"time"

	"github.com/spf13/cobra"

	"github.com/urustack/sysdiag/internal/api"
	"github.com/urustack/sysdiag/internal/schedule"
	"github.com/urustack/sysdiag/pkg/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Poll in the background and serve samples, history and prometheus metrics over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, 127.0.0.1:9470)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Serve.Addr = serveAddr
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

	ctx, stop := signalContext()
	defer stop()

	server := api.NewServer(a.mon, cfg.Serve.Addr)
	server.Poll(ctx)
	if err := server.Start(); err != nil {
		return err
	}

	runner := schedule.NewRunner(logger.Zap())
	runner.Every(cfg.Interval.Duration, func() { server.Poll(ctx) })
	runner.Start()

	fmt.Printf("sysdiag serving on http://%s (every %s, %s)\n", server.Addr(), cfg.Interval, a.mon.StoreStatus(ctx))
	<-ctx.Done()
	logger.Info("shutdown signal received")

	runner.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
