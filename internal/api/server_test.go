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
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/monitor"
	"github.com/urustack/sysdiag/internal/storage"
	"github.com/urustack/sysdiag/internal/storage/sqlite"
)

type fakeCollector struct{}

func (fakeCollector) Collect(context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{
		CollectedAt: time.Now(),
		Host:        &models.HostInfo{Hostname: "testbox"},
		CPU:         &models.CPUStats{Percent: 33},
		Memory:      &models.MemoryStats{UsedPercent: 50},
	}
	snap.MarkUnavailable("battery", "no battery")
	return snap, nil
}

func newTestServer(t *testing.T, store storage.Store) *Server {
	t.Helper()
	mon := monitor.New(fakeCollector{}, monitor.Options{
		Store:      store,
		Persist:    true,
		Thresholds: config.Default().Thresholds,
	})
	return NewServer(mon, "127.0.0.1:0")
}

func openStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := sqlite.New(t.TempDir(), sqlite.DefaultName)
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSnapshotEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	h := s.Handler()

	if rec := get(t, h, "/api/snapshot"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("before first poll status = %d, want 503", rec.Code)
	}

	s.Poll(context.Background())

	rec := get(t, h, "/api/snapshot")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var sample models.Sample
	if err := json.Unmarshal(rec.Body.Bytes(), &sample); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if v, ok := sample.Float(models.MetricCPUPercent); !ok || v != 33 {
		t.Errorf("cpu.percent = %v (%v), want 33", v, ok)
	}
	if _, ok := sample.Values[models.MetricBatteryPct]; ok {
		t.Error("battery.percent present for a machine without battery")
	}

	rec = get(t, h, "/api/snapshot?format=txt")
	if !strings.Contains(rec.Body.String(), "cpu.percent: 33") {
		t.Errorf("txt body = %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}

	if rec := get(t, h, "/api/snapshot?format=xml"); rec.Code != http.StatusBadRequest {
		t.Errorf("format=xml status = %d, want 400", rec.Code)
	}
}

func TestSnapshotDetail(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	s.Poll(context.Background())

	rec := get(t, s.Handler(), "/api/snapshot/detail")
	var body struct {
		Snapshot models.Snapshot `json:"snapshot"`
		Alerts   []models.Alert  `json:"alerts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if body.Snapshot.Host == nil || body.Snapshot.Host.Hostname != "testbox" {
		t.Errorf("snapshot host = %+v", body.Snapshot.Host)
	}
	if body.Alerts == nil {
		t.Error("alerts = null, want []")
	}
}

func TestHistoryEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, openStore(t))
	h := s.Handler()
	s.Poll(context.Background())
	s.Poll(context.Background())

	rec := get(t, h, "/api/history?metric=cpu.percent&format=csv")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 3 || lines[0] != "timestamp,metric,value" {
		t.Fatalf("csv = %q", rec.Body.String())
	}
	if !strings.HasSuffix(lines[1], ",cpu.percent,33") {
		t.Errorf("row = %q", lines[1])
	}

	rec = get(t, h, "/api/history?limit=1&metric=memory.used_percent")
	var records []models.LogRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(records) != 1 || records[0].Metric != models.MetricRAMPercent {
		t.Errorf("records = %+v", records)
	}

	if rec := get(t, h, "/api/history?since=yesterday"); rec.Code != http.StatusBadRequest {
		t.Errorf("since=yesterday status = %d, want 400", rec.Code)
	}
}

func TestHistoryWithoutStore(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	if rec := get(t, s.Handler(), "/api/history"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestStatusEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, openStore(t))
	s.Poll(context.Background())

	rec := get(t, s.Handler(), "/api/status")
	var body statusBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !body.Available || !body.Recording || body.Samples != 1 {
		t.Errorf("status = %+v", body)
	}
	if body.Unavailable["battery"] == "" {
		t.Errorf("unavailable = %v, want battery listed", body.Unavailable)
	}
}

type statusBody struct {
	Available   bool              `json:"history_available"`
	Recording   bool              `json:"recording"`
	Samples     int               `json:"samples"`
	Unavailable map[string]string `json:"unavailable"`
}

func TestPrometheusEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	s.Poll(context.Background())

	rec := get(t, s.Handler(), "/metrics")
	body := rec.Body.String()
	for _, want := range []string{
		`sysdiag_sample_value{metric="cpu.percent"} 33`,
		`sysdiag_polls_total 1`,
		`sysdiag_category_unavailable{category="battery"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("/metrics missing %q", want)
		}
	}
	if strings.Contains(body, `metric="host.hostname"`) {
		t.Error("text metric exported as a gauge")
	}
}

func TestStartAndShutdown(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := http.Get("http://" + s.Addr() + "/api/status")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
