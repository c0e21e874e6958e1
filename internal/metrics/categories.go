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
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/urustack/sysdiag/internal/models"
)

func (c *Collector) collectHost(ctx context.Context, snap *models.Snapshot) error {
	info, err := c.src.hostInfo(ctx)
	if err != nil {
		return fmt.Errorf("host info: %w", err)
	}
	snap.Host = &models.HostInfo{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		KernelArch:      info.KernelArch,
		Uptime:          info.Uptime,
	}
	return nil
}

func (c *Collector) collectCPU(ctx context.Context, snap *models.Snapshot) error {
	total, err := c.src.cpuPercent(ctx, 0, false)
	if err != nil {
		return fmt.Errorf("cpu percent: %w", err)
	}
	if len(total) == 0 {
		return errors.New("cpu percent: no data")
	}

	stats := &models.CPUStats{Percent: clampPercent(total[0])}

	if perCore, err := c.src.cpuPercent(ctx, 0, true); err == nil {
		stats.PerCore = make([]float64, len(perCore))
		for i, v := range perCore {
			stats.PerCore[i] = clampPercent(v)
		}
	}

	if n, err := c.src.cpuCounts(ctx, false); err == nil {
		stats.PhysicalCores = n
	}
	if n, err := c.src.cpuCounts(ctx, true); err == nil {
		stats.LogicalCores = n
	}

	if infos, err := c.src.cpuInfo(ctx); err == nil && len(infos) > 0 {
		stats.Model = strings.TrimSpace(infos[0].ModelName)
		var sum float64
		for _, info := range infos {
			sum += info.Mhz
			if info.Mhz > stats.MaxMHz {
				stats.MaxMHz = info.Mhz
			}
		}
		stats.CurrentMHz = sum / float64(len(infos))
	}

	snap.CPU = stats
	return nil
}

func (c *Collector) collectMemory(ctx context.Context, snap *models.Snapshot) error {
	vm, err := c.src.virtualMemory(ctx)
	if err != nil {
		return fmt.Errorf("virtual memory: %w", err)
	}

	stats := &models.MemoryStats{
		Total:       vm.Total,
		Available:   vm.Available,
		Used:        vm.Used,
		UsedPercent: clampPercent(vm.UsedPercent),
	}

	if swap, err := c.src.swapMemory(ctx); err == nil {
		stats.SwapTotal = swap.Total
		stats.SwapUsed = swap.Used
		stats.SwapPercent = clampPercent(swap.UsedPercent)
	}

	snap.Memory = stats
	return nil
}

func (c *Collector) diskTargets(ctx context.Context) ([]models.DiskUsage, error) {
	if len(c.opts.DiskPaths) > 0 {
		targets := make([]models.DiskUsage, 0, len(c.opts.DiskPaths))
		for _, p := range c.opts.DiskPaths {
			targets = append(targets, models.DiskUsage{Mountpoint: p})
		}
		return targets, nil
	}

	parts, err := c.src.partitions(ctx, c.opts.DiskAllPartitions)
	if err != nil {
		return nil, fmt.Errorf("partitions: %w", err)
	}
	targets := make([]models.DiskUsage, 0, len(parts))
	for _, p := range parts {
		targets = append(targets, models.DiskUsage{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Fstype:     p.Fstype,
		})
	}
	return targets, nil
}

func (c *Collector) collectDisks(ctx context.Context, snap *models.Snapshot) error {
	targets, err := c.diskTargets(ctx)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	var lastErr error
	for _, d := range targets {
		if seen[d.Mountpoint] {
			continue
		}
		seen[d.Mountpoint] = true

		usage, err := c.src.diskUsage(ctx, d.Mountpoint)
		if err != nil {
			lastErr = fmt.Errorf("usage %s: %w", d.Mountpoint, err)
			continue
		}
		if usage.Total == 0 {
			continue
		}
		if d.Fstype == "" {
			d.Fstype = usage.Fstype
		}
		d.Total = usage.Total
		d.Used = usage.Used
		d.Free = usage.Free
		d.UsedPercent = clampPercent(usage.UsedPercent)
		snap.Disks = append(snap.Disks, d)
	}

	if len(snap.Disks) == 0 {
		if lastErr != nil {
			return lastErr
		}
		return errors.New("no readable disks")
	}
	return nil
}

func (c *Collector) collectNetwork(ctx context.Context, snap *models.Snapshot) error {
	counters, err := c.src.netCounters(ctx, false)
	if err != nil {
		return fmt.Errorf("io counters: %w", err)
	}
	if len(counters) == 0 {
		return errors.New("io counters: no data")
	}

	total := counters[0]
	stats := &models.NetworkStats{
		BytesSent:   total.BytesSent,
		BytesRecv:   total.BytesRecv,
		PacketsSent: total.PacketsSent,
		PacketsRecv: total.PacketsRecv,
	}
	if snap.Host != nil {
		stats.Hostname = snap.Host.Hostname
	}

	now := snap.CollectedAt
	if prev := c.prevNet; prev != nil {
		if dt := now.Sub(prev.at).Seconds(); dt > 0 {
			stats.SentRate = counterRate(prev.sent, total.BytesSent, dt)
			stats.RecvRate = counterRate(prev.recv, total.BytesRecv, dt)
		}
	}
	c.prevNet = &netCounters{sent: total.BytesSent, recv: total.BytesRecv, at: now}

	if ifaces, err := c.src.interfaces(ctx); err == nil {
		for _, iface := range ifaces {
			entry := models.Interface{Name: iface.Name, MAC: iface.HardwareAddr}
			for _, a := range iface.Addrs {
				entry.Addrs = append(entry.Addrs, a.Addr)
				if stats.PrimaryIP == "" {
					stats.PrimaryIP = routableIPv4(a.Addr)
				}
			}
			stats.Interfaces = append(stats.Interfaces, entry)
		}
	}

	snap.Network = stats
	return nil
}

func counterRate(prev, cur uint64, seconds float64) float64 {
	if cur < prev {
		return 0
	}
	return float64(cur-prev) / seconds
}

// routableIPv4 returns the address part of a CIDR string when it is a
// non-loopback, non-link-local IPv4 address.
func routableIPv4(cidr string) string {
	ip, _, err := net.ParseCIDR(cidr)
	if err != nil {
		ip = net.ParseIP(cidr)
	}
	if ip == nil || ip.To4() == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
		return ""
	}
	return ip.String()
}

func (c *Collector) collectLoad(ctx context.Context, snap *models.Snapshot) error {
	avg, err := c.src.loadAvg(ctx)
	if err != nil {
		return fmt.Errorf("load average: %w", err)
	}
	snap.Load = &models.LoadAvg{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}
	return nil
}

func (c *Collector) collectBattery(_ context.Context, snap *models.Snapshot) error {
	b, err := c.battery.Read()
	if err != nil {
		return err
	}
	snap.Battery = b
	return nil
}

func (c *Collector) collectProcesses(ctx context.Context, snap *models.Snapshot) error {
	pids, err := c.src.pids(ctx)
	if err != nil {
		return fmt.Errorf("process list: %w", err)
	}

	// Percent(0) reports usage since the previous call on the same handle,
	// so handles are kept between passes and dropped once the PID is gone.
	live := make(map[int32]proc, len(pids))
	type ranked struct {
		pid int32
		cpu float64
	}
	list := make([]ranked, 0, len(pids))
	for _, pid := range pids {
		p, cached := c.procs[pid]
		if !cached {
			opened, err := c.src.openProcess(ctx, pid)
			if err != nil {
				continue
			}
			p = opened
		}
		live[pid] = p
		pct, err := p.PercentWithContext(ctx, 0)
		if err != nil {
			continue
		}
		list = append(list, ranked{pid: pid, cpu: pct})
	}
	c.procs = live

	sort.Slice(list, func(i, j int) bool {
		if list[i].cpu == list[j].cpu {
			return list[i].pid < list[j].pid
		}
		return list[i].cpu > list[j].cpu
	})

	for _, r := range list {
		if len(snap.Processes) >= c.opts.ProcessLimit {
			break
		}
		p := live[r.pid]
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		entry := models.Process{PID: r.pid, Name: name, CPUPercent: r.cpu}
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil {
			entry.RSS = mi.RSS
			entry.VMS = mi.VMS
		}
		if n, err := p.NumThreadsWithContext(ctx); err == nil {
			entry.Threads = n
		}
		if u, err := p.UsernameWithContext(ctx); err == nil {
			entry.Username = u
		}
		if st, err := p.StatusWithContext(ctx); err == nil && len(st) > 0 {
			entry.Status = st[0]
		}
		if ms, err := p.CreateTimeWithContext(ctx); err == nil {
			entry.StartedAt = time.UnixMilli(ms)
		}
		snap.Processes = append(snap.Processes, entry)
	}

	if len(pids) > 0 && len(snap.Processes) == 0 {
		return errors.New("no readable processes")
	}
	return nil
}
