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

// Range selects persisted records. Zero From/To are unbounded, an empty
// Metric matches every metric and Limit 0 returns everything.
type Range struct {
	From   time.Time
	To     time.Time
	Metric string
	Limit  int
}

func All() Range {
	return Range{}
}

func Last(d time.Duration) Range {
	return Range{From: time.Now().Add(-d)}
}

func (r Range) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// GroupRecords folds consecutive records with the same timestamp back into
// samples. Input order is preserved.
func GroupRecords(records []LogRecord) []*Sample {
	var samples []*Sample
	var current *Sample
	for _, r := range records {
		if current == nil || !current.Timestamp.Equal(r.Timestamp) {
			current = NewSample(r.Timestamp)
			samples = append(samples, current)
		}
		current.Values[r.Metric] = r.Value
	}
	return samples
}

// Rate is a per-second change between two consecutive samples.
type Rate struct {
	Timestamp time.Time
	Value     float64
}

// CounterRates derives per-second rates for a monotonically increasing
// counter. Counter resets and zero intervals yield 0.
func CounterRates(samples []*Sample, metric string) []Rate {
	rates := make([]Rate, 0, len(samples))
	var prev *Sample
	var prevVal float64
	for _, s := range samples {
		v, ok := s.Float(metric)
		if !ok {
			continue
		}
		rate := 0.0
		if prev != nil {
			dt := s.Timestamp.Sub(prev.Timestamp).Seconds()
			if dt > 0 && v >= prevVal {
				rate = (v - prevVal) / dt
			}
		}
		rates = append(rates, Rate{Timestamp: s.Timestamp, Value: rate})
		prev, prevVal = s, v
	}
	return rates
}

// Series extracts the numeric values of one metric, skipping samples that
// lack it.
func Series(samples []*Sample, metric string) []float64 {
	out := make([]float64, 0, len(samples))
	for _, s := range samples {
		if v, ok := s.Float(metric); ok {
			out = append(out, v)
		}
	}
	return out
}
