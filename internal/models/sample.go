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

package models

import (
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Metric names shared by the collector, store and views.
const (
	MetricCPUPercent    = "cpu.percent"
	MetricRAMPercent    = "memory.used_percent"
	MetricRAMUsed       = "memory.used"
	MetricRAMTotal      = "memory.total"
	MetricSwapPercent   = "memory.swap_percent"
	MetricNetSent       = "net.bytes_sent"
	MetricNetRecv       = "net.bytes_recv"
	MetricNetSentRate   = "net.sent_rate"
	MetricNetRecvRate   = "net.recv_rate"
	MetricLoad1         = "load.1"
	MetricBatteryPct    = "battery.percent"
	MetricBatteryState  = "battery.state"
	MetricHostname      = "host.hostname"
	MetricUptime        = "host.uptime"
	diskMetricPrefix    = "disk."
	diskMetricPctSuffix = ".used_percent"
)

// Sample is a flat view of one collection: metric name to float64 or string.
type Sample struct {
	Timestamp time.Time      `json:"timestamp"`
	Values    map[string]any `json:"values"`
}

func NewSample(ts time.Time) *Sample {
	return &Sample{Timestamp: ts, Values: make(map[string]any)}
}

func (s *Sample) SetFloat(name string, v float64) {
	s.Values[name] = v
}

func (s *Sample) SetText(name, v string) {
	s.Values[name] = v
}

func (s *Sample) Float(name string) (float64, bool) {
	v, ok := s.Values[name]
	if !ok {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (s *Sample) Text(name string) string {
	v, ok := s.Values[name]
	if !ok {
		return ""
	}
	return cast.ToString(v)
}

func (s *Sample) Names() []string {
	names := make([]string, 0, len(s.Values))
	for k := range s.Values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (s *Sample) Len() int {
	return len(s.Values)
}

// DiskMetric returns the metric name used for a mountpoint's usage percent.
func DiskMetric(mountpoint string) string {
	return diskMetricPrefix + mountpoint + diskMetricPctSuffix
}

func IsDiskMetric(name string) bool {
	return strings.HasPrefix(name, diskMetricPrefix) && strings.HasSuffix(name, diskMetricPctSuffix)
}

// Sample flattens the snapshot. Unavailable categories contribute nothing.
func (s *Snapshot) Sample() *Sample {
	sm := NewSample(s.CollectedAt)

	if s.Host != nil {
		sm.SetText(MetricHostname, s.Host.Hostname)
		sm.SetFloat(MetricUptime, float64(s.Host.Uptime))
	}

	if s.CPU != nil {
		sm.SetFloat(MetricCPUPercent, s.CPU.Percent)
		sm.SetFloat("cpu.logical_cores", float64(s.CPU.LogicalCores))
		if s.CPU.CurrentMHz > 0 {
			sm.SetFloat("cpu.current_mhz", s.CPU.CurrentMHz)
		}
	}

	if s.Memory != nil {
		sm.SetFloat(MetricRAMPercent, s.Memory.UsedPercent)
		sm.SetFloat(MetricRAMUsed, float64(s.Memory.Used))
		sm.SetFloat(MetricRAMTotal, float64(s.Memory.Total))
		sm.SetFloat("memory.available", float64(s.Memory.Available))
		sm.SetFloat(MetricSwapPercent, s.Memory.SwapPercent)
		sm.SetFloat("memory.swap_used", float64(s.Memory.SwapUsed))
	}

	for _, d := range s.Disks {
		sm.SetFloat(DiskMetric(d.Mountpoint), d.UsedPercent)
		sm.SetFloat(diskMetricPrefix+d.Mountpoint+".used", float64(d.Used))
		sm.SetFloat(diskMetricPrefix+d.Mountpoint+".total", float64(d.Total))
	}

	if s.Network != nil {
		sm.SetFloat(MetricNetSent, float64(s.Network.BytesSent))
		sm.SetFloat(MetricNetRecv, float64(s.Network.BytesRecv))
		sm.SetFloat(MetricNetSentRate, s.Network.SentRate)
		sm.SetFloat(MetricNetRecvRate, s.Network.RecvRate)
		if s.Network.PrimaryIP != "" {
			sm.SetText("net.primary_ip", s.Network.PrimaryIP)
		}
	}

	if s.Load != nil {
		sm.SetFloat(MetricLoad1, s.Load.Load1)
		sm.SetFloat("load.5", s.Load.Load5)
		sm.SetFloat("load.15", s.Load.Load15)
	}

	if s.Battery != nil {
		sm.SetFloat(MetricBatteryPct, s.Battery.Percent)
		sm.SetText(MetricBatteryState, s.Battery.State)
	}

	return sm
}
