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

package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/urustack/sysdiag/internal/models"
)

const namespace = "sysdiag"

type exporter struct {
	registry *prometheus.Registry
	values   *prometheus.GaugeVec
	polls    prometheus.Counter
	failures *prometheus.CounterVec
	lastPoll prometheus.Gauge
	missing  *prometheus.GaugeVec
}

func newExporter() *exporter {
	e := &exporter{
		registry: prometheus.NewRegistry(),
		values: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sample_value",
			Help:      "Latest numeric value of each collected metric.",
		}, []string{"metric"}),
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Collection passes that produced a sample.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Failed collections and store appends.",
		}, []string{"stage"}),
		lastPoll: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_sample_timestamp_seconds",
			Help:      "Capture time of the latest sample.",
		}),
		missing: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "category_unavailable",
			Help:      "1 when a metric category could not be read in the latest pass.",
		}, []string{"category"}),
	}
	e.registry.MustRegister(
		e.values, e.polls, e.failures, e.lastPoll, e.missing,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return e
}

func (e *exporter) observe(snap *models.Snapshot, sample *models.Sample) {
	e.polls.Inc()
	e.lastPoll.Set(float64(sample.Timestamp.UnixNano()) / 1e9)

	e.values.Reset()
	for _, name := range sample.Names() {
		if _, text := sample.Values[name].(string); text {
			continue
		}
		if v, ok := sample.Float(name); ok {
			e.values.WithLabelValues(name).Set(v)
		}
	}

	e.missing.Reset()
	for category := range snap.Unavailable {
		e.missing.WithLabelValues(category).Set(1)
	}
}

func (e *exporter) fail(stage string) {
	e.failures.WithLabelValues(stage).Inc()
}
