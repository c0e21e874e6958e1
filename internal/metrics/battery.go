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
	"fmt"
	"strings"

	"github.com/distatus/battery"

	"github.com/urustack/sysdiag/internal/models"
)

// BatteryReader reports the combined state of the machine's batteries. It
// returns ErrNoBattery when none are present.
type BatteryReader interface {
	Read() (*models.Battery, error)
}

type SystemBattery struct{}

func (SystemBattery) Read() (*models.Battery, error) {
	all, err := battery.GetAll()

	var current, full float64
	var state string
	count := 0
	for _, b := range all {
		if b == nil || b.Full <= 0 {
			continue
		}
		count++
		current += b.Current
		full += b.Full
		if state == "" || strings.EqualFold(b.State.String(), "Charging") {
			state = b.State.String()
		}
	}

	if count == 0 {
		if err != nil && len(all) > 0 {
			return nil, fmt.Errorf("read battery: %w", err)
		}
		return nil, ErrNoBattery
	}

	return &models.Battery{
		Percent:  clampPercent(current / full * 100),
		State:    state,
		Charging: strings.EqualFold(state, "Charging"),
		Count:    count,
	}, nil
}
