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

package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/urustack/sysdiag/internal/tui/styles"
)

// Sparkline draws the last w values scaled between 0 and max. A max of 0
// scales to the largest value shown.
func Sparkline(values []float64, w int, max float64) string {
	if w <= 0 || len(values) == 0 {
		return ""
	}
	if len(values) > w {
		values = values[len(values)-w:]
	}

	if max <= 0 {
		for _, v := range values {
			if v > max {
				max = v
			}
		}
	}

	levels := len(styles.SparkBlocks) - 1
	var b strings.Builder
	for _, v := range values {
		idx := 0
		if max > 0 && v > 0 {
			idx = int(math.Round(v / max * float64(levels)))
		}
		if idx > levels {
			idx = levels
		}
		b.WriteRune(styles.SparkBlocks[idx])
	}
	return styles.PrimaryStyle.Render(b.String())
}

// Meter renders a labelled progress bar for a percentage.
func Meter(label string, pct, warn, crit float64, w int) string {
	barW := w - 24
	if barW < 10 {
		barW = 10
	}
	color := string(styles.Success)
	switch {
	case crit > 0 && pct > crit:
		color = string(styles.Error)
	case warn > 0 && pct > warn:
		color = string(styles.Warning)
	}

	bar := progress.New(progress.WithSolidFill(color), progress.WithoutPercentage(), progress.WithWidth(barW))
	value := styles.Level(pct, warn, crit).Render(fmt.Sprintf("%6.1f%%", pct))
	return "  " + styles.SubtleStyle.Render(styles.Pad(label, 10)) + " " + bar.ViewAs(pct/100) + " " + value
}
