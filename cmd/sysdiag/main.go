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

package main

import (
	"fmt"
	"os"

	"github.com/urustack/sysdiag/internal/cli"
	"github.com/urustack/sysdiag/internal/tui/styles"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  %s %v\n", styles.ErrorStyle.Render(styles.IconError), err)
		os.Exit(1)
	}
}
