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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/monitor"
	"github.com/urustack/sysdiag/internal/plain"
	"github.com/urustack/sysdiag/internal/tui"
	"github.com/urustack/sysdiag/pkg/logger"
)

func TestApplyFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flags   globalFlags
		args    []string
		check   func(*config.Config) bool
		wantErr bool
	}{
		{
			name:  "debug",
			flags: globalFlags{debug: true},
			check: func(c *config.Config) bool { return c.Log.Level == "debug" },
		},
		{
			name:  "no persist",
			flags: globalFlags{noPersist: true},
			check: func(c *config.Config) bool { return !c.Persist },
		},
		{
			name:  "plain renderer",
			flags: globalFlags{renderer: "plain"},
			check: func(c *config.Config) bool { return c.UI.Renderer == config.RendererPlain },
		},
		{
			name:  "interval",
			args:  []string{"--interval", "5s"},
			check: func(c *config.Config) bool { return c.Interval.Duration == 5*time.Second },
		},
		{
			name:    "unknown renderer",
			flags:   globalFlags{renderer: "gtk"},
			wantErr: true,
		},
		{
			name:    "interval too short",
			args:    []string{"--interval", "200ms"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.flags
			cmd := &cobra.Command{Use: "test"}
			cmd.Flags().DurationVar(&f.interval, "interval", 0, "")
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			cfg := config.Default()
			err := applyFlags(cfg, cmd, f)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applyFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !tt.check(cfg) {
				t.Errorf("applyFlags() config = %+v", cfg)
			}
		})
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	return cfg
}

func TestNewRenderer(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	a := newApp(cfg)
	defer a.Close()

	r, err := newRenderer(cfg, a, os.Stdout)
	if err != nil {
		t.Fatalf("newRenderer(tui) error = %v", err)
	}
	if _, ok := r.(*tui.Renderer); !ok {
		t.Errorf("newRenderer(tui) = %T", r)
	}

	cfg.UI.Renderer = config.RendererPlain
	r, err = newRenderer(cfg, a, os.Stdout)
	if err != nil {
		t.Fatalf("newRenderer(plain) error = %v", err)
	}
	if _, ok := r.(*plain.Renderer); !ok {
		t.Errorf("newRenderer(plain) = %T", r)
	}

	cfg.UI.Renderer = "qt"
	if _, err := newRenderer(cfg, a, os.Stdout); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("newRenderer(qt) error = %v, want ErrInvalid", err)
	}
}

func TestNewAppOpensStore(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	a := newApp(cfg)
	defer a.Close()

	if a.store == nil {
		t.Fatal("store not opened")
	}
	if want := filepath.Join(cfg.DataDir, config.DefaultDBName); a.store.Path() != want {
		t.Errorf("store path = %q, want %q", a.store.Path(), want)
	}
}

func TestNewAppWithoutStore(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.DataDir = filepath.Join(blocker, "logs")

	a := newApp(cfg)
	defer a.Close()

	if a.store != nil {
		t.Fatal("store opened under a regular file")
	}
	if got := a.mon.StoreStatus(context.Background()).String(); got != "history unavailable" {
		t.Errorf("StoreStatus() = %q", got)
	}
}

func TestStartWithUnwritableDataDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	tmp := filepath.Join(dir, "tmp")
	t.Setenv("TMPDIR", tmp)

	path := filepath.Join(dir, "config.yaml")
	written := config.Default()
	written.DataDir = filepath.Join(blocker, "logs")
	if err := written.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	t.Setenv(config.EnvConfigPath, path)

	cfg, err := loadConfig(nil)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	a, err := start(cfg, false)
	if err != nil {
		t.Fatalf("start() error = %v", err)
	}
	defer logger.Sync()
	defer a.Close()

	if a.store != nil {
		t.Error("store opened under a regular file")
	}
	if got := a.mon.StoreStatus(context.Background()).String(); got != "history unavailable" {
		t.Errorf("StoreStatus() = %q", got)
	}
	if !strings.HasPrefix(logger.Path(), tmp) {
		t.Errorf("logger.Path() = %q, want a file under %s", logger.Path(), tmp)
	}
	if !strings.Contains(a.notice, logger.Path()) {
		t.Errorf("notice = %q, want it to name %s", a.notice, logger.Path())
	}

	r, err := newRenderer(cfg, a, os.Stdout)
	if err != nil {
		t.Fatalf("newRenderer() error = %v", err)
	}
	if tr, ok := r.(*tui.Renderer); !ok || tr.Notice != a.notice {
		t.Errorf("tui renderer notice = %+v", r)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sysdiag", "config.toml")

	if err := writeDefaultConfig(path, false); err != nil {
		t.Fatalf("writeDefaultConfig() error = %v", err)
	}
	if err := writeDefaultConfig(path, false); err == nil {
		t.Error("second writeDefaultConfig() without force succeeded")
	}
	if err := writeDefaultConfig(path, true); err != nil {
		t.Errorf("writeDefaultConfig(force) error = %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Interval != config.Default().Interval || cfg.UI.Renderer != config.RendererTUI {
		t.Errorf("Load() = %+v", cfg)
	}
}

type countingCollector struct {
	calls int
}

func (c *countingCollector) Collect(context.Context) (*models.Snapshot, error) {
	c.calls++
	return &models.Snapshot{CollectedAt: time.Now(), CPU: &models.CPUStats{Percent: float64(c.calls)}}, nil
}

func TestCollectWarm(t *testing.T) {
	t.Parallel()
	c := &countingCollector{}
	mon := monitor.New(c, monitor.Options{})

	snap, err := collectWarm(context.Background(), mon, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("collectWarm() error = %v", err)
	}
	if c.calls != 2 || snap.CPU.Percent != 2 {
		t.Errorf("calls = %d, percent = %v; want the second pass", c.calls, snap.CPU.Percent)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := collectWarm(ctx, mon, time.Minute); !errors.Is(err, context.Canceled) {
		t.Errorf("collectWarm(cancelled) error = %v, want context.Canceled", err)
	}
}
