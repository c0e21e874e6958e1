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

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/urustack/sysdiag/internal/tui/styles"
)

// Overlay centers a bordered box on the screen.
func Overlay(title, body, hint string, screenWidth, screenHeight int) string {
	dialogWidth := 64
	if dialogWidth > screenWidth-4 {
		dialogWidth = screenWidth - 4
	}

	var content strings.Builder
	content.WriteString(styles.TitleStyle.Render(title) + "\n\n")
	content.WriteString(body + "\n")
	if hint != "" {
		content.WriteString("\n" + styles.MutedStyle.Render(hint))
	}

	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(styles.Primary).
		Padding(1, 2).
		Width(dialogWidth)

	dialogBox := dialogStyle.Render(content.String())

	dialogLines := strings.Split(dialogBox, "\n")
	dialogHeight := len(dialogLines)

	topPad := (screenHeight - dialogHeight) / 2
	if topPad < 0 {
		topPad = 0
	}

	leftPad := (screenWidth - lipgloss.Width(dialogLines[0])) / 2
	if leftPad < 0 {
		leftPad = 0
	}

	var b strings.Builder
	for i := 0; i < topPad; i++ {
		b.WriteString("\n")
	}
	for _, line := range dialogLines {
		b.WriteString(strings.Repeat(" ", leftPad) + line + "\n")
	}

	return b.String()
}
