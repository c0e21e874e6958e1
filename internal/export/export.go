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

package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urustack/sysdiag/internal/models"
)

type Format string

const (
	FormatTXT  Format = "txt"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ExportError reports an export that could not be written to Path.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatTXT, FormatJSON, FormatCSV:
		return f, nil
	case "":
		return FormatTXT, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// DefaultName builds a file name such as sysdiag-snapshot-20250630-120000.json.
func DefaultName(kind string, format Format, t time.Time) string {
	return fmt.Sprintf("sysdiag-%s-%s.%s", kind, t.Format("20060102-150405"), format)
}

func WriteSample(path string, sample *models.Sample) error {
	return writeFile(path, func(f *os.File, format Format) error {
		return EncodeSample(f, format, sample)
	})
}

func WriteHistory(path string, records []models.LogRecord) error {
	return writeFile(path, func(f *os.File, format Format) error {
		return EncodeHistory(f, format, records)
	})
}

func writeFile(path string, encode func(*os.File, Format) error) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &ExportError{Path: path, Err: err}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}

	if err := encode(f, format); err != nil {
		f.Close()
		return &ExportError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	return nil
}
