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

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/urustack/sysdiag/internal/storage"
)

const DefaultName = "system_metrics.db"

type Store struct {
	db   *sql.DB
	path string
}

var _ storage.Store = (*Store)(nil)

// New opens (creating if needed) the metric log at dataDir/dbName. Opening an
// existing file leaves its records untouched.
func New(dataDir, dbName string) (*Store, error) {
	if dbName == "" {
		dbName = DefaultName
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, storage.Wrap("open", fmt.Errorf("create data dir: %w", err))
	}

	dbPath := filepath.Join(dataDir, dbName)
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, storage.Wrap("open", fmt.Errorf("open database: %w", err))
	}

	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)

	store := &Store{db: conn, path: dbPath}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, storage.Wrap("open", fmt.Errorf("migrate: %w", err))
	}

	return store, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return storage.Wrap("close", s.db.Close())
}

func (s *Store) migrate() error {
	if err := s.db.Ping(); err != nil {
		return err
	}
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM metric_log`).Scan(&n); err != nil {
		return 0, storage.Wrap("count", err)
	}
	return n, nil
}

func (s *Store) Stats(ctx context.Context) (*storage.Stats, error) {
	stats := &storage.Stats{}

	var oldest, newest sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT timestamp), MIN(timestamp), MAX(timestamp)
		FROM metric_log
	`).Scan(&stats.Records, &stats.Samples, &oldest, &newest)
	if err != nil {
		return nil, storage.Wrap("stats", err)
	}

	if oldest.Valid {
		stats.Oldest = time.Unix(0, oldest.Int64)
	}
	if newest.Valid {
		stats.Newest = time.Unix(0, newest.Int64)
	}
	return stats, nil
}
