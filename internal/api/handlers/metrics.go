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

package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/urustack/sysdiag/internal/export"
	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/monitor"
	"github.com/urustack/sysdiag/internal/storage"
	"github.com/urustack/sysdiag/internal/version"
	"github.com/urustack/sysdiag/pkg/helper"
	"github.com/urustack/sysdiag/pkg/logger"
)

// Source is what the handlers read from. The API server implements it on
// top of the monitor.
type Source interface {
	Latest() (*models.Snapshot, []models.Alert)
	History(ctx context.Context, r models.Range) ([]models.LogRecord, error)
	StoreStatus(ctx context.Context) monitor.StoreStatus
}

type MetricsHandler struct {
	src Source
	log *logger.Logger
}

func NewMetricsHandler(src Source) *MetricsHandler {
	return &MetricsHandler{src: src, log: logger.With("api")}
}

func contentType(f export.Format) string {
	switch f {
	case export.FormatJSON:
		return "application/json"
	case export.FormatCSV:
		return "text/csv; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

func requestFormat(q url.Values) (export.Format, error) {
	if q.Get("format") == "" {
		return export.FormatJSON, nil
	}
	return export.ParseFormat(q.Get("format"))
}

func write(w http.ResponseWriter, f export.Format, body *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType(f))
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}

func (h *MetricsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	format, err := requestFormat(r.URL.Query())
	if err != nil {
		helper.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, _ := h.src.Latest()
	if snap == nil {
		helper.WriteError(w, http.StatusServiceUnavailable, "no sample collected yet")
		return
	}

	var buf bytes.Buffer
	if err := export.EncodeSample(&buf, format, snap.Sample()); err != nil {
		h.log.Error("encode snapshot: %v", err)
		helper.WriteError(w, http.StatusInternalServerError, "encode failed")
		return
	}
	write(w, format, &buf)
}

// Detail returns the structured snapshot with its alerts.
func (h *MetricsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	snap, alerts := h.src.Latest()
	if snap == nil {
		helper.WriteError(w, http.StatusServiceUnavailable, "no sample collected yet")
		return
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}
	helper.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot": snap,
		"alerts":   alerts,
	})
}

func (h *MetricsHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := requestFormat(q)
	if err != nil {
		helper.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	rng, err := ParseRange(q, time.Now())
	if err != nil {
		helper.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.src.History(r.Context(), rng)
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			helper.WriteError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		h.log.Error("query history: %v", err)
		helper.WriteError(w, http.StatusInternalServerError, "history query failed")
		return
	}

	var buf bytes.Buffer
	if err := export.EncodeHistory(&buf, format, records); err != nil {
		h.log.Error("encode history: %v", err)
		helper.WriteError(w, http.StatusInternalServerError, "encode failed")
		return
	}
	write(w, format, &buf)
}

type statusResponse struct {
	Version     string            `json:"version"`
	Available   bool              `json:"history_available"`
	Recording   bool              `json:"recording"`
	Path        string            `json:"path,omitempty"`
	Records     int               `json:"records"`
	Samples     int               `json:"samples"`
	Error       string            `json:"error,omitempty"`
	CollectedAt *time.Time        `json:"collected_at,omitempty"`
	Unavailable map[string]string `json:"unavailable,omitempty"`
}

func (h *MetricsHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.src.StoreStatus(r.Context())
	resp := statusResponse{
		Version:   version.Version,
		Available: st.Available,
		Recording: st.Persist,
		Path:      st.Path,
		Records:   st.Records,
		Samples:   st.Samples,
	}
	if st.Err != nil {
		resp.Error = st.Err.Error()
	}
	if snap, _ := h.src.Latest(); snap != nil {
		at := snap.CollectedAt
		resp.CollectedAt = &at
		resp.Unavailable = snap.Unavailable
	}
	helper.WriteJSON(w, http.StatusOK, resp)
}

// ParseRange reads since, from, to, metric and limit. since is a Go
// duration counted back from now and wins over from.
func ParseRange(q url.Values, now time.Time) (models.Range, error) {
	var rng models.Range

	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return rng, fmt.Errorf("invalid from: %w", err)
		}
		rng.From = t
	}
	if v := q.Get("since"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return rng, fmt.Errorf("invalid since %q", v)
		}
		rng.From = now.Add(-d)
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return rng, fmt.Errorf("invalid to: %w", err)
		}
		rng.To = t
	}
	if !rng.From.IsZero() && !rng.To.IsZero() && rng.To.Before(rng.From) {
		return rng, errors.New("to is before from")
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return rng, fmt.Errorf("invalid limit %q", v)
		}
		rng.Limit = n
	}
	rng.Metric = q.Get("metric")
	return rng, nil
}
