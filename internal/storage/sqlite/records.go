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
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/urustack/sysdiag/internal/models"
	"github.com/urustack/sysdiag/internal/storage"
)

// Append writes every value of the sample in one transaction. All records
// share the sample's timestamp.
func (s *Store) Append(ctx context.Context, sample *models.Sample) error {
	if sample == nil || sample.Len() == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storage.Wrap("append", fmt.Errorf("begin: %w", err))
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO metric_log (timestamp, metric_name, value)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return storage.Wrap("append", fmt.Errorf("prepare: %w", err))
	}
	defer stmt.Close()

	ts := sample.Timestamp.UnixNano()
	for _, name := range sample.Names() {
		if _, err := stmt.ExecContext(ctx, ts, name, storedValue(sample.Values[name])); err != nil {
			return storage.Wrap("append", fmt.Errorf("insert %s: %w", name, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return storage.Wrap("append", fmt.Errorf("commit: %w", err))
	}
	return nil
}

// Query returns records in insertion order. With a limit, the newest records
// are kept.
func (s *Store) Query(ctx context.Context, r models.Range) ([]models.LogRecord, error) {
	var where []string
	var args []interface{}

	if !r.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, r.From.UnixNano())
	}
	if !r.To.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, r.To.UnixNano())
	}
	if r.Metric != "" {
		where = append(where, "metric_name = ?")
		args = append(args, r.Metric)
	}

	query := `SELECT id, timestamp, metric_name, value FROM metric_log`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if r.Limit > 0 {
		query = `SELECT id, timestamp, metric_name, value FROM (` +
			query + ` ORDER BY id DESC LIMIT ?) ORDER BY id`
		args = append(args, r.Limit)
	} else {
		query += " ORDER BY id"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.Wrap("query", err)
	}
	defer rows.Close()

	var records []models.LogRecord
	for rows.Next() {
		var rec models.LogRecord
		var ts int64
		var raw interface{}
		if err := rows.Scan(&rec.ID, &ts, &rec.Metric, &raw); err != nil {
			return nil, storage.Wrap("query", fmt.Errorf("scan: %w", err))
		}
		rec.Timestamp = time.Unix(0, ts)
		rec.Value = loadedValue(raw)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Wrap("query", err)
	}
	return records, nil
}

func storedValue(v any) any {
	switch val := v.(type) {
	case float64, string:
		return val
	case []byte:
		return string(val)
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return f
	}
	return cast.ToString(v)
}

func loadedValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case float64, string:
		return val
	case []byte:
		return string(val)
	}
	return cast.ToFloat64(v)
}
