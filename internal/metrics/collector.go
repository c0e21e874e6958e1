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
	"math"
	"sync"
	"time"

	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/pkg/logger"
)

const (
	CategoryHost      = "host"
	CategoryCPU       = "cpu"
	CategoryMemory    = "memory"
	CategoryDisk      = "disk"
	CategoryNetwork   = "network"
	CategoryLoad      = "load"
	CategoryBattery   = "battery"
	CategoryProcesses = "processes"
)

const defaultProcessLimit = 15

var ErrNoBattery = errors.New("no battery present")

// CollectionError reports a metric category that could not be read on this
// machine.
type CollectionError struct {
	Category string
	Err      error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("collect %s: %v", e.Category, e.Err)
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}

type Options struct {
	DiskAllPartitions bool
	DiskPaths         []string
	Processes         bool
	ProcessLimit      int
	Battery           BatteryReader
}

type netCounters struct {
	sent uint64
	recv uint64
	at   time.Time
}

type Collector struct {
	opts    Options
	src     source
	battery BatteryReader
	now     func() time.Time
	log     *logger.Logger

	mu      sync.Mutex
	prevNet *netCounters
	procs   map[int32]proc
}

func NewCollector(opts Options) *Collector {
	if opts.ProcessLimit <= 0 {
		opts.ProcessLimit = defaultProcessLimit
	}
	battery := opts.Battery
	if battery == nil {
		battery = SystemBattery{}
	}
	return &Collector{
		opts:    opts,
		src:     systemSource(),
		battery: battery,
		now:     time.Now,
		log:     logger.With("collector"),
	}
}

type step struct {
	category string
	run      func(ctx context.Context, snap *models.Snapshot) error
}

func (c *Collector) steps() []step {
	steps := []step{
		{CategoryHost, c.collectHost},
		{CategoryCPU, c.collectCPU},
		{CategoryMemory, c.collectMemory},
		{CategoryDisk, c.collectDisks},
		{CategoryNetwork, c.collectNetwork},
		{CategoryLoad, c.collectLoad},
		{CategoryBattery, c.collectBattery},
	}
	if c.opts.Processes {
		steps = append(steps, step{CategoryProcesses, c.collectProcesses})
	}
	return steps
}

// Collect reads every category once. Unreadable categories are left empty and
// listed in Snapshot.Unavailable; an error is returned only if nothing at all
// could be read.
func (c *Collector) Collect(ctx context.Context) (*models.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := &models.Snapshot{CollectedAt: c.now().Round(0)}

	steps := c.steps()
	var errs []error
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.run(ctx, snap); err != nil {
			cerr := &CollectionError{Category: s.category, Err: err}
			c.log.Debug("%v", cerr)
			snap.MarkUnavailable(s.category, err.Error())
			errs = append(errs, cerr)
		}
	}

	if len(errs) == len(steps) {
		return nil, errors.Join(errs...)
	}
	return snap, nil
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
