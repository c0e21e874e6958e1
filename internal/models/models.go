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

import "time"

type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Snapshot is the structured result of one collection pass. Categories that
// could not be read are nil or empty and listed in Unavailable.
type Snapshot struct {
	CollectedAt time.Time         `json:"collected_at" yaml:"collected_at"`
	Host        *HostInfo         `json:"host,omitempty" yaml:"host,omitempty"`
	CPU         *CPUStats         `json:"cpu,omitempty" yaml:"cpu,omitempty"`
	Memory      *MemoryStats      `json:"memory,omitempty" yaml:"memory,omitempty"`
	Disks       []DiskUsage       `json:"disks,omitempty" yaml:"disks,omitempty"`
	Network     *NetworkStats     `json:"network,omitempty" yaml:"network,omitempty"`
	Load        *LoadAvg          `json:"load,omitempty" yaml:"load,omitempty"`
	Battery     *Battery          `json:"battery,omitempty" yaml:"battery,omitempty"`
	Processes   []Process         `json:"processes,omitempty" yaml:"processes,omitempty"`
	Unavailable map[string]string `json:"unavailable,omitempty" yaml:"unavailable,omitempty"`
}

type HostInfo struct {
	Hostname        string `json:"hostname" yaml:"hostname"`
	OS              string `json:"os" yaml:"os"`
	Platform        string `json:"platform" yaml:"platform"`
	PlatformVersion string `json:"platform_version" yaml:"platform_version"`
	KernelVersion   string `json:"kernel_version" yaml:"kernel_version"`
	KernelArch      string `json:"kernel_arch" yaml:"kernel_arch"`
	Uptime          uint64 `json:"uptime" yaml:"uptime"`
}

type CPUStats struct {
	Model         string    `json:"model" yaml:"model"`
	Percent       float64   `json:"percent" yaml:"percent"`
	PerCore       []float64 `json:"per_core" yaml:"per_core"`
	PhysicalCores int       `json:"physical_cores" yaml:"physical_cores"`
	LogicalCores  int       `json:"logical_cores" yaml:"logical_cores"`
	CurrentMHz    float64   `json:"current_mhz" yaml:"current_mhz"`
	MaxMHz        float64   `json:"max_mhz" yaml:"max_mhz"`
}

type MemoryStats struct {
	Total       uint64  `json:"total" yaml:"total"`
	Available   uint64  `json:"available" yaml:"available"`
	Used        uint64  `json:"used" yaml:"used"`
	UsedPercent float64 `json:"used_percent" yaml:"used_percent"`
	SwapTotal   uint64  `json:"swap_total" yaml:"swap_total"`
	SwapUsed    uint64  `json:"swap_used" yaml:"swap_used"`
	SwapPercent float64 `json:"swap_percent" yaml:"swap_percent"`
}

type DiskUsage struct {
	Device      string  `json:"device" yaml:"device"`
	Mountpoint  string  `json:"mountpoint" yaml:"mountpoint"`
	Fstype      string  `json:"fstype" yaml:"fstype"`
	Total       uint64  `json:"total" yaml:"total"`
	Used        uint64  `json:"used" yaml:"used"`
	Free        uint64  `json:"free" yaml:"free"`
	UsedPercent float64 `json:"used_percent" yaml:"used_percent"`
}

type NetworkStats struct {
	Hostname    string      `json:"hostname" yaml:"hostname"`
	PrimaryIP   string      `json:"primary_ip" yaml:"primary_ip"`
	BytesSent   uint64      `json:"bytes_sent" yaml:"bytes_sent"`
	BytesRecv   uint64      `json:"bytes_recv" yaml:"bytes_recv"`
	PacketsSent uint64      `json:"packets_sent" yaml:"packets_sent"`
	PacketsRecv uint64      `json:"packets_recv" yaml:"packets_recv"`
	SentRate    float64     `json:"sent_rate" yaml:"sent_rate"`
	RecvRate    float64     `json:"recv_rate" yaml:"recv_rate"`
	Interfaces  []Interface `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
}

type Interface struct {
	Name  string   `json:"name" yaml:"name"`
	MAC   string   `json:"mac,omitempty" yaml:"mac,omitempty"`
	Addrs []string `json:"addrs,omitempty" yaml:"addrs,omitempty"`
}

type LoadAvg struct {
	Load1  float64 `json:"load1" yaml:"load1"`
	Load5  float64 `json:"load5" yaml:"load5"`
	Load15 float64 `json:"load15" yaml:"load15"`
}

type Battery struct {
	Percent  float64 `json:"percent" yaml:"percent"`
	State    string  `json:"state" yaml:"state"`
	Charging bool    `json:"charging" yaml:"charging"`
	Count    int     `json:"count" yaml:"count"`
}

type Process struct {
	PID        int32     `json:"pid" yaml:"pid"`
	Name       string    `json:"name" yaml:"name"`
	Status     string    `json:"status" yaml:"status"`
	Username   string    `json:"username" yaml:"username"`
	CPUPercent float64   `json:"cpu_percent" yaml:"cpu_percent"`
	RSS        uint64    `json:"rss" yaml:"rss"`
	VMS        uint64    `json:"vms" yaml:"vms"`
	Threads    int32     `json:"threads" yaml:"threads"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
}

type Alert struct {
	Category string        `json:"category" yaml:"category"`
	Message  string        `json:"message" yaml:"message"`
	Severity AlertSeverity `json:"severity" yaml:"severity"`
}

// LogRecord is one persisted metric value. Value is float64 or string.
type LogRecord struct {
	ID        int64     `json:"-"`
	Timestamp time.Time `json:"timestamp"`
	Metric    string    `json:"metric"`
	Value     any       `json:"value"`
}

func (s *Snapshot) MarkUnavailable(category, reason string) {
	if s.Unavailable == nil {
		s.Unavailable = make(map[string]string)
	}
	s.Unavailable[category] = reason
}

func (s *Snapshot) IsAvailable(category string) bool {
	_, missing := s.Unavailable[category]
	return !missing
}
