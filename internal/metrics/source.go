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

package metrics

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// source holds every OS call the collector makes.
type source struct {
	hostInfo      func(ctx context.Context) (*host.InfoStat, error)
	cpuPercent    func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
	cpuCounts     func(ctx context.Context, logical bool) (int, error)
	cpuInfo       func(ctx context.Context) ([]cpu.InfoStat, error)
	virtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	swapMemory    func(ctx context.Context) (*mem.SwapMemoryStat, error)
	partitions    func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	diskUsage     func(ctx context.Context, path string) (*disk.UsageStat, error)
	netCounters   func(ctx context.Context, pernic bool) ([]psnet.IOCountersStat, error)
	interfaces    func(ctx context.Context) (psnet.InterfaceStatList, error)
	loadAvg       func(ctx context.Context) (*load.AvgStat, error)
	pids          func(ctx context.Context) ([]int32, error)
	openProcess   func(ctx context.Context, pid int32) (proc, error)
}

// proc is the part of *process.Process the collector reads.
type proc interface {
	PercentWithContext(ctx context.Context, interval time.Duration) (float64, error)
	NameWithContext(ctx context.Context) (string, error)
	MemoryInfoWithContext(ctx context.Context) (*process.MemoryInfoStat, error)
	NumThreadsWithContext(ctx context.Context) (int32, error)
	UsernameWithContext(ctx context.Context) (string, error)
	StatusWithContext(ctx context.Context) ([]string, error)
	CreateTimeWithContext(ctx context.Context) (int64, error)
}

func openSystemProcess(ctx context.Context, pid int32) (proc, error) {
	return process.NewProcessWithContext(ctx, pid)
}

func systemSource() source {
	return source{
		hostInfo:      host.InfoWithContext,
		cpuPercent:    cpu.PercentWithContext,
		cpuCounts:     cpu.CountsWithContext,
		cpuInfo:       cpu.InfoWithContext,
		virtualMemory: mem.VirtualMemoryWithContext,
		swapMemory:    mem.SwapMemoryWithContext,
		partitions:    disk.PartitionsWithContext,
		diskUsage:     disk.UsageWithContext,
		netCounters:   psnet.IOCountersWithContext,
		interfaces:    psnet.InterfacesWithContext,
		loadAvg:       load.AvgWithContext,
		pids:          process.PidsWithContext,
		openProcess:   openSystemProcess,
	}
}
