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

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/urustack/sysdiag/internal/version"
)

var (
	Primary   = lipgloss.Color("#2563EB")
	Muted     = lipgloss.Color("#888888")
	Subtle    = lipgloss.Color("#666666")
	Dim       = lipgloss.Color("#444444")
	DimBorder = lipgloss.Color("#333333")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#EF4444")
	Warning   = lipgloss.Color("#FBBF24")
)

var (
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	BrightStyle  = lipgloss.NewStyle()
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	SubtleStyle  = lipgloss.NewStyle().Foreground(Subtle)
	DimStyle     = lipgloss.NewStyle().Foreground(Dim)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	TitleStyle   = lipgloss.NewStyle().Bold(true)

	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimBorder).
		Padding(1, 2)

	// MessageBox frames one-line notices; callers pick the border color.
	MessageBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	InputBoxFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	KeyStyle  = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	DescStyle = lipgloss.NewStyle().Foreground(Subtle)

	TabActive   = lipgloss.NewStyle().Foreground(Primary).Bold(true).Underline(true)
	TabInactive = lipgloss.NewStyle().Foreground(Subtle)

	BadgeSuccess = lipgloss.NewStyle().Background(Success).Padding(0, 1)
	BadgeError   = lipgloss.NewStyle().Background(Error).Padding(0, 1)
	BadgeWarning = lipgloss.NewStyle().Background(Warning).Padding(0, 1)
	BadgePrimary = lipgloss.NewStyle().Background(Primary).Padding(0, 1)
	BadgeMuted   = lipgloss.NewStyle().Background(Subtle).Padding(0, 1)
)

const (
	IconSuccess  = "✓"
	IconError    = "✗"
	IconWarning  = "⚠"
	IconInfo     = "●"
	IconPointer  = "▸"
	IconDash     = "─"
	IconBreadSep = "›"
	IconPause    = "⏸"
	IconRecord   = "◉"
)

var SparkBlocks = []rune("▁▂▃▄▅▆▇█")

var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Level colors a percentage by the warning and critical thresholds.
func Level(pct, warn, crit float64) lipgloss.Style {
	switch {
	case crit > 0 && pct > crit:
		return ErrorStyle
	case warn > 0 && pct > warn:
		return WarningStyle
	}
	return SuccessStyle
}

func Pointer() string { return PrimaryStyle.Render(IconPointer) }

func Line(w int) string {
	if w < 0 {
		w = 0
	}
	return DimStyle.Render(strings.Repeat(IconDash, w))
}

func Logo() string {
	return PrimaryStyle.Bold(true).Render(`███████╗██╗   ██╗███████╗██████╗ ██╗ █████╗  ██████╗
██╔════╝╚██╗ ██╔╝██╔════╝██╔══██╗██║██╔══██╗██╔════╝
███████╗ ╚████╔╝ ███████╗██║  ██║██║███████║██║  ███╗
╚════██║  ╚██╔╝  ╚════██║██║  ██║██║██╔══██║██║   ██║
███████║   ██║   ███████║██████╔╝██║██║  ██║╚██████╔╝
╚══════╝   ╚═╝   ╚══════╝╚═════╝ ╚═╝╚═╝  ╚═╝ ╚═════╝`)
}

// LogoCompact replaces the block logo on terminals too narrow for it.
func LogoCompact() string {
	return PrimaryStyle.Bold(true).Render("◆ SYSDIAG")
}

func LogoInline() string {
	return PrimaryStyle.Bold(true).Render("SYSDIAG")
}

func BreadcrumbSep() string {
	return SubtleStyle.Render(" " + IconBreadSep + " ")
}

func Spinner(frame int) string {
	return PrimaryStyle.Render(SpinnerFrames[frame%len(SpinnerFrames)])
}

func Tagline() string {
	return SubtleStyle.Render("System Diagnostics") + "  " + MutedStyle.Render(version.Version)
}

func Pad(s string, w int) string {
	l := lipgloss.Width(s)
	if l >= w {
		return s
	}
	return s + strings.Repeat(" ", w-l)
}

func PadL(s string, w int) string {
	l := lipgloss.Width(s)
	if l >= w {
		return s
	}
	return strings.Repeat(" ", w-l) + s
}

// Center left-pads s to sit in the middle of w columns.
func Center(s string, w int) string {
	l := lipgloss.Width(s)
	if l >= w {
		return s
	}
	return strings.Repeat(" ", (w-l)/2) + s
}

func Trunc(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 2 {
		return string(r[:w])
	}
	return string(r[:w-2]) + ".."
}
