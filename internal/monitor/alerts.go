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

package monitor

import (
	"fmt"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/models"
)

func CheckCPU(t config.Thresholds, cpuPercent float64) *models.Alert {
	if cpuPercent > t.CPUCritical {
		return newAlert("cpu", fmt.Sprintf("CPU usage above %.0f%%", t.CPUCritical), models.SeverityCritical)
	}
	if cpuPercent > t.CPUWarning {
		return newAlert("cpu", fmt.Sprintf("CPU usage above %.0f%%", t.CPUWarning), models.SeverityWarning)
	}
	return nil
}

func CheckMemory(t config.Thresholds, memPercent float64) *models.Alert {
	if memPercent > t.MemoryCritical {
		return newAlert("memory", fmt.Sprintf("Memory usage above %.0f%%", t.MemoryCritical), models.SeverityCritical)
	}
	if memPercent > t.MemoryWarning {
		return newAlert("memory", fmt.Sprintf("Memory usage above %.0f%%", t.MemoryWarning), models.SeverityWarning)
	}
	return nil
}

func CheckSwap(t config.Thresholds, swapPercent float64) *models.Alert {
	if t.SwapWarning > 0 && swapPercent > t.SwapWarning {
		return newAlert("memory", fmt.Sprintf("Swap usage above %.0f%%", t.SwapWarning), models.SeverityWarning)
	}
	return nil
}

func CheckDisk(t config.Thresholds, mountpoint string, diskPercent float64) *models.Alert {
	if diskPercent > t.DiskCritical {
		return newAlert("disk", fmt.Sprintf("Disk %s above %.0f%%", mountpoint, t.DiskCritical), models.SeverityCritical)
	}
	if diskPercent > t.DiskWarning {
		return newAlert("disk", fmt.Sprintf("Disk %s above %.0f%%", mountpoint, t.DiskWarning), models.SeverityWarning)
	}
	return nil
}

func CheckBattery(t config.Thresholds, b *models.Battery) *models.Alert {
	if b == nil || b.Charging {
		return nil
	}
	if b.Percent < t.BatteryCritical {
		return newAlert("battery", fmt.Sprintf("Battery below %.0f%%", t.BatteryCritical), models.SeverityCritical)
	}
	if b.Percent < t.BatteryLow {
		return newAlert("battery", fmt.Sprintf("Battery below %.0f%%", t.BatteryLow), models.SeverityWarning)
	}
	return nil
}

// Evaluate returns every threshold alert raised by the snapshot, critical
// ones first.
func Evaluate(t config.Thresholds, snap *models.Snapshot) []models.Alert {
	if snap == nil {
		return nil
	}

	var alerts []*models.Alert
	if snap.CPU != nil {
		alerts = append(alerts, CheckCPU(t, snap.CPU.Percent))
	}
	if snap.Memory != nil {
		alerts = append(alerts, CheckMemory(t, snap.Memory.UsedPercent), CheckSwap(t, snap.Memory.SwapPercent))
	}
	for _, d := range snap.Disks {
		alerts = append(alerts, CheckDisk(t, d.Mountpoint, d.UsedPercent))
	}
	alerts = append(alerts, CheckBattery(t, snap.Battery))

	var critical, warning []models.Alert
	for _, a := range alerts {
		switch {
		case a == nil:
		case a.Severity == models.SeverityCritical:
			critical = append(critical, *a)
		default:
			warning = append(warning, *a)
		}
	}
	return append(critical, warning...)
}

func newAlert(category, msg string, severity models.AlertSeverity) *models.Alert {
	return &models.Alert{
		Category: category,
		Message:  msg,
		Severity: severity,
	}
}
