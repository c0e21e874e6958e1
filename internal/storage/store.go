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

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urustack/sysdiag/internal/models"
)

// ErrUnavailable is returned when history is requested but no store could be
// opened.
var ErrUnavailable = errors.New("history store unavailable")

// Store is the append-only metric log.
type Store interface {
	Append(ctx context.Context, sample *models.Sample) error
	Query(ctx context.Context, r models.Range) ([]models.LogRecord, error)
	Count(ctx context.Context) (int, error)
	Stats(ctx context.Context) (*Stats, error)
	Path() string
	Close() error
}

type Stats struct {
	Records int
	Samples int
	Oldest  time.Time
	Newest  time.Time
}

// StoreError wraps every failure coming out of a Store implementation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
