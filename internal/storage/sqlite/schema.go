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

// Timestamps are unix nanoseconds. The value column has no declared type so
// REAL and TEXT values keep their storage class.
const schema = `
CREATE TABLE IF NOT EXISTS metric_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp INTEGER NOT NULL,
	metric_name TEXT NOT NULL,
	value
);

CREATE INDEX IF NOT EXISTS idx_metric_log_timestamp ON metric_log(timestamp);
CREATE INDEX IF NOT EXISTS idx_metric_log_metric ON metric_log(metric_name, timestamp);
`
