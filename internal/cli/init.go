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

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/urustack/sysdiag/internal/config"
	"github.com/urustack/sysdiag/internal/tui/styles"
	"github.com/urustack/sysdiag/internal/version"
	"github.com/urustack/sysdiag/pkg/helper"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolvePath(flags.configPath)
		if err := writeDefaultConfig(path, initForce); err != nil {
			return err
		}
		fmt.Printf("  %s Config saved to %s\n", styles.SuccessStyle.Render(styles.IconSuccess), path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sysdiag %s\n", version.Version)
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config")
}

func writeDefaultConfig(path string, force bool) error {
	if helper.Exists(path) && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}
	return config.Default().Save(path)
}
