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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/urustack/sysdiag/pkg/helper"
)

const (
	EnvConfigPath = "SYSDIAG_CONFIG"

	RendererTUI   = "tui"
	RendererPlain = "plain"
)

var (
	DefaultDataDir = "~/PC_Diagnosis_Logs"
	DefaultDBName  = "system_metrics.db"
	DefaultAddr    = "127.0.0.1:9470"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Interval   Duration      `yaml:"interval" toml:"interval"`
	DataDir    string        `yaml:"data_dir" toml:"data_dir"`
	DBName     string        `yaml:"db_name" toml:"db_name"`
	Persist    bool          `yaml:"persist" toml:"persist"`
	UI         UIConfig      `yaml:"ui" toml:"ui"`
	Collect    CollectConfig `yaml:"collect" toml:"collect"`
	Thresholds Thresholds    `yaml:"thresholds" toml:"thresholds"`
	Log        LogConfig     `yaml:"log" toml:"log"`
	Serve      ServeConfig   `yaml:"serve" toml:"serve"`

	path string
}

type UIConfig struct {
	Renderer  string `yaml:"renderer" toml:"renderer"`
	ExportDir string `yaml:"export_dir" toml:"export_dir"`
}

type CollectConfig struct {
	DiskAllPartitions bool     `yaml:"disk_all_partitions" toml:"disk_all_partitions"`
	DiskPaths         []string `yaml:"disk_paths" toml:"disk_paths"`
	Processes         bool     `yaml:"processes" toml:"processes"`
	ProcessLimit      int      `yaml:"process_limit" toml:"process_limit"`
}

// Thresholds are percentages. BatteryLow and BatteryCritical trigger when the
// charge drops below them while discharging.
type Thresholds struct {
	CPUWarning      float64 `yaml:"cpu_warning" toml:"cpu_warning"`
	CPUCritical     float64 `yaml:"cpu_critical" toml:"cpu_critical"`
	MemoryWarning   float64 `yaml:"memory_warning" toml:"memory_warning"`
	MemoryCritical  float64 `yaml:"memory_critical" toml:"memory_critical"`
	DiskWarning     float64 `yaml:"disk_warning" toml:"disk_warning"`
	DiskCritical    float64 `yaml:"disk_critical" toml:"disk_critical"`
	SwapWarning     float64 `yaml:"swap_warning" toml:"swap_warning"`
	BatteryLow      float64 `yaml:"battery_low" toml:"battery_low"`
	BatteryCritical float64 `yaml:"battery_critical" toml:"battery_critical"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}

type ServeConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// ResolvePath picks the config file: the explicit flag value, then
// $SYSDIAG_CONFIG, then the per-user config directory.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "sysdiag", "config.yaml")
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	cfg.path = path
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when the file does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	if !helper.Exists(path) {
		cfg := Default()
		cfg.path = path
		return cfg, nil
	}
	return Load(path)
}

func (c *Config) setDefaults() {
	d := Default()
	if c.Interval.Duration == 0 {
		c.Interval = d.Interval
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.UI.Renderer == "" {
		c.UI.Renderer = d.UI.Renderer
	}
	if c.Collect.ProcessLimit == 0 {
		c.Collect.ProcessLimit = d.Collect.ProcessLimit
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = d.Serve.Addr
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Interval.Duration < minInterval:
		return fmt.Errorf("%w: interval %s is below %s", ErrInvalid, c.Interval, minInterval)
	case c.UI.Renderer != RendererTUI && c.UI.Renderer != RendererPlain:
		return fmt.Errorf("%w: unknown renderer %q", ErrInvalid, c.UI.Renderer)
	case strings.TrimSpace(c.DBName) == "":
		return fmt.Errorf("%w: db_name is empty", ErrInvalid)
	case c.Collect.ProcessLimit < 0:
		return fmt.Errorf("%w: process_limit must not be negative", ErrInvalid)
	}
	return nil
}

// Save writes the config as TOML or YAML depending on the extension.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var buf strings.Builder
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		data = []byte(buf.String())
	} else {
		var err error
		data, err = yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	c.path = path
	return nil
}

func (c *Config) Path() string {
	return c.path
}

func (c *Config) DataPath() string {
	return helper.ExpandHome(c.DataDir)
}

func (c *Config) ExportPath() string {
	if c.UI.ExportDir == "" {
		return c.DataPath()
	}
	return helper.ExpandHome(c.UI.ExportDir)
}

func (c *Config) LogPath() string {
	if c.Log.File == "" {
		return filepath.Join(c.DataPath(), "sysdiag.log")
	}
	return helper.ExpandHome(c.Log.File)
}

func Default() *Config {
	return &Config{
		Interval: Duration{defaultInterval},
		DataDir:  DefaultDataDir,
		DBName:   DefaultDBName,
		Persist:  true,
		UI: UIConfig{
			Renderer: RendererTUI,
		},
		Collect: CollectConfig{
			Processes:    true,
			ProcessLimit: 15,
		},
		Thresholds: Thresholds{
			CPUWarning:      80,
			CPUCritical:     90,
			MemoryWarning:   90,
			MemoryCritical:  95,
			DiskWarning:     85,
			DiskCritical:    95,
			SwapWarning:     80,
			BatteryLow:      20,
			BatteryCritical: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
		Serve: ServeConfig{
			Addr: DefaultAddr,
		},
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
