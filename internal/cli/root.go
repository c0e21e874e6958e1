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
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/tui/styles"
	"github.com/urustack/sysdiag/internal/version"
	"github.com/urustack/sysdiag/pkg/logger"
)

type globalFlags struct {
	configPath string
	debug      bool
	verbose    bool
	noPersist  bool
	renderer   string
	interval   time.Duration
}

var flags globalFlags

var rootCmd = &cobra.Command{
	Use:           "sysdiag",
	Short:         "sysdiag - system metrics diagnostics",
	Long:          `sysdiag samples CPU, memory, disk, network, load and battery metrics, shows them live and keeps a local history.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runApplication,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file path (yaml or toml)")
	pf.BoolVar(&flags.debug, "debug", false, "log at debug level")
	pf.BoolVar(&flags.verbose, "verbose", false, "also write logs to stderr (ignored by the tui renderer)")
	pf.BoolVar(&flags.noPersist, "no-persist", false, "do not record samples to the metric log")
	pf.StringVar(&flags.renderer, "renderer", "", "ui renderer: tui or plain")
	pf.DurationVar(&flags.interval, "interval", 0, "polling interval, at least 1s")

	rootCmd.AddCommand(snapshotCmd, historyCmd, serveCmd, initCmd, versionCmd)
}

// loadConfig resolves and loads the config file, then applies the
// persistent flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(config.ResolvePath(flags.configPath))
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, cmd, flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config, cmd *cobra.Command, f globalFlags) error {
	if f.debug {
		cfg.Log.Level = "debug"
	}
	if f.noPersist {
		cfg.Persist = false
	}
	if f.renderer != "" {
		cfg.UI.Renderer = f.renderer
	}
	if cmd != nil && cmd.Flags().Changed("interval") {
		cfg.Interval = config.Duration{Duration: f.interval}
	}
	return cfg.Validate()
}

// initLogger sends logs to the log file, plus stderr when verbose and the
// terminal is not owned by the tui. When the log file cannot be opened the
// log moves under the temp directory and the returned notice says where.
func initLogger(cfg *config.Config, console bool) (string, error) {
	err := logger.Init(logger.Options{
		Path:     cfg.LogPath(),
		Fallback: filepath.Join(os.TempDir(), "sysdiag", filepath.Base(cfg.LogPath())),
		Level:    cfg.Log.Level,
		Console:  console && flags.verbose,
	})
	if err != nil {
		return "", err
	}
	switch logger.Path() {
	case cfg.LogPath():
		return "", nil
	case "":
		return "Log file unavailable; logging disabled", nil
	default:
		return "Log file unavailable; logging to " + logger.Path(), nil
	}
}

// start brings up logging and the app for a command. Neither an unwritable
// log file nor an unopenable store stops it.
func start(cfg *config.Config, console bool) (*app, error) {
	notice, err := initLogger(cfg, console)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a := newApp(cfg)
	a.notice = notice
	return a, nil
}

func warn(msg string) {
	fmt.Fprintln(os.Stderr, styles.WarningStyle.Render(styles.IconWarning+" "+msg))
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runApplication(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := start(cfg, cfg.UI.Renderer != config.RendererTUI)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer a.Close()

	logger.Info("starting sysdiag %s (renderer %s, interval %s)", version.Version, cfg.UI.Renderer, cfg.Interval)
	if a.notice != "" && cfg.UI.Renderer != config.RendererTUI {
		warn(a.notice)
	}

	renderer, err := newRenderer(cfg, a, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	if err := renderer.Run(ctx); err != nil {
		logger.Error("renderer: %v", err)
		return err
	}
	logger.Info("sysdiag stopped")
	return nil
}
