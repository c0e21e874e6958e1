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
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/urustack/sysdiag/internal/api/handlers"
	"github.com/urustack/sysdiag/internal/api/middleware"
	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/monitor"
	"github.com/urustack/sysdiag/internal/storage"
	"github.com/urustack/sysdiag/pkg/logger"
)

// Server polls through the monitor and serves the latest sample, the
// metric log and prometheus metrics over HTTP.
type Server struct {
	mon        *monitor.Monitor
	addr       string
	exporter   *exporter
	httpServer *http.Server
	listener   net.Listener
	log        *logger.Logger

	mu     sync.RWMutex
	snap   *models.Snapshot
	alerts []models.Alert
}

func NewServer(mon *monitor.Monitor, addr string) *Server {
	return &Server{
		mon:      mon,
		addr:     addr,
		exporter: newExporter(),
		log:      logger.With("serve"),
	}
}

// Poll collects one sample, persists it and makes it the latest.
func (s *Server) Poll(ctx context.Context) {
	snap, err := s.mon.Collect(ctx)
	if err != nil {
		s.exporter.fail("collect")
		return
	}
	sample := snap.Sample()
	alerts := s.mon.Alerts(snap)

	s.mu.Lock()
	s.snap = snap
	s.alerts = alerts
	s.mu.Unlock()
	s.exporter.observe(snap, sample)

	if err := s.mon.Persist(ctx, sample); err != nil && !errors.Is(err, storage.ErrUnavailable) {
		s.exporter.fail("store")
	}
}

func (s *Server) Latest() (*models.Snapshot, []models.Alert) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.alerts
}

func (s *Server) History(ctx context.Context, r models.Range) ([]models.LogRecord, error) {
	return s.mon.History(ctx, r)
}

func (s *Server) StoreStatus(ctx context.Context) monitor.StoreStatus {
	return s.mon.StoreStatus(ctx)
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	h := handlers.NewMetricsHandler(s)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/snapshot", h.Snapshot).Methods(http.MethodGet)
	api.HandleFunc("/snapshot/detail", h.Detail).Methods(http.MethodGet)
	api.HandleFunc("/history", h.History).Methods(http.MethodGet)
	api.HandleFunc("/status", h.Status).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.exporter.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return middleware.Recovery(middleware.Logging(r))
}

// Start binds the listener and serves in the background. Bind errors are
// returned here.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("listening on %s", ln.Addr())

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("http server: %v", err)
		}
	}()
	return nil
}

// Addr is the bound address once started.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
