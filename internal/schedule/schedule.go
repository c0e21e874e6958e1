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

package schedule

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Ticker computes poll times on a fixed cadence. Intervals are whole seconds
// with a one second minimum.
type Ticker struct {
	sched cron.ConstantDelaySchedule
}

func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{sched: cron.Every(interval)}
}

func (t *Ticker) Interval() time.Duration {
	return t.sched.Delay
}

func (t *Ticker) Next(from time.Time) time.Time {
	return t.sched.Next(from)
}

// Delay is the wait from `from` until the next tick.
func (t *Ticker) Delay(from time.Time) time.Duration {
	return t.Next(from).Sub(from)
}

// Runner runs jobs on their own goroutines. A job still running when its next
// tick fires is skipped.
type Runner struct {
	cron *cron.Cron
}

func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	l := cronLogger{log: log.Sugar()}
	return &Runner{
		cron: cron.New(
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
	}
}

func (r *Runner) Every(interval time.Duration, fn func()) {
	r.cron.Schedule(cron.Every(interval), cron.FuncJob(fn))
}

func (r *Runner) Start() {
	r.cron.Start()
}

// Stop halts scheduling and waits for running jobs to return.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
}

type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
