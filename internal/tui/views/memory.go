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

package views

import (
	"strings"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/metrics"
	"github.com/urustack/sysdiag/internal/tui/components"
	"github.com/urustack/sysdiag/pkg/helper"
)

type MemoryModel struct {
	frame
}

func NewMemoryModel(t config.Thresholds) MemoryModel {
	return MemoryModel{frame: frame{Thresholds: t}}
}

func (m MemoryModel) View() string {
	if msg := m.unavailable(metrics.CategoryMemory); msg != "" {
		return msg
	}

	mem := m.Snapshot.Memory
	t := m.Thresholds
	w := m.Width
	var b strings.Builder

	b.WriteString(components.Section("RAM", w) + "\n\n")
	b.WriteString(components.Wrap(
		components.Meter("Used", mem.UsedPercent, t.MemoryWarning, t.MemoryCritical, w-8)+"\n\n"+
			components.Card("", []components.CardLine{
				{Label: "Total", Value: helper.FormatBytes(mem.Total)},
				{Label: "Used", Value: helper.FormatBytes(mem.Used)},
				{Label: "Available", Value: helper.FormatBytes(mem.Available)},
			}, w-6), w) + "\n\n")

	b.WriteString(components.Section("Swap", w) + "\n\n")
	if mem.SwapTotal == 0 {
		b.WriteString(components.Empty("No swap configured", "", w))
		return b.String()
	}
	b.WriteString(components.Wrap(
		components.Meter("Used", mem.SwapPercent, t.SwapWarning, 0, w-8)+"\n\n"+
			components.Card("", []components.CardLine{
				{Label: "Total", Value: helper.FormatBytes(mem.SwapTotal)},
				{Label: "Used", Value: usedOfTotal(mem.SwapUsed, mem.SwapTotal)},
			}, w-6), w))

	return b.String()
}
