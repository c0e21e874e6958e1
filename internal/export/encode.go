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
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cast"

	"github.com/urustack/sysdiag/internal/models"
)

func EncodeSample(w io.Writer, format Format, sample *models.Sample) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sample)
	case FormatTXT:
		bw := bufio.NewWriter(w)
		writeBlock(bw, sample)
		return bw.Flush()
	case FormatCSV:
		return encodeCSV(w, sampleRecords(sample))
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func EncodeHistory(w io.Writer, format Format, records []models.LogRecord) error {
	switch format {
	case FormatJSON:
		if records == nil {
			records = []models.LogRecord{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatTXT:
		bw := bufio.NewWriter(w)
		for i, s := range models.GroupRecords(records) {
			if i > 0 {
				bw.WriteString("\n")
			}
			writeBlock(bw, s)
		}
		return bw.Flush()
	case FormatCSV:
		return encodeCSV(w, records)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func writeBlock(w *bufio.Writer, s *models.Sample) {
	fmt.Fprintf(w, "timestamp: %s\n", s.Timestamp.Format(time.RFC3339))
	for _, name := range s.Names() {
		fmt.Fprintf(w, "%s: %s\n", name, formatValue(s.Values[name]))
	}
}

func encodeCSV(w io.Writer, records []models.LogRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "metric", "value"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.Timestamp.Format(time.RFC3339Nano), r.Metric, formatValue(r.Value)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func sampleRecords(s *models.Sample) []models.LogRecord {
	records := make([]models.LogRecord, 0, s.Len())
	for _, name := range s.Names() {
		records = append(records, models.LogRecord{Timestamp: s.Timestamp, Metric: name, Value: s.Values[name]})
	}
	return records
}

func formatValue(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return cast.ToString(v)
}
