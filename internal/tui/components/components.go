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
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/urustack/sysdiag/internal/tui/styles"
	"github.com/urustack/sysdiag/pkg/helper"
)

func Wrap(content string, w int) string {
	return styles.Box.Width(w - 4).Render(content)
}

func Section(title string, w int) string {
	t := styles.MutedStyle.Bold(true).Render(strings.ToUpper(title))
	tw := lipgloss.Width(t)
	lw := w - tw - 6
	if lw < 0 {
		lw = 0
	}
	return "  " + t + " " + styles.Line(lw)
}

func Help(items [][]string) string {
	var p []string
	for _, i := range items {
		if len(i) >= 2 {
			p = append(p, styles.KeyStyle.Render(i[0])+" "+styles.DescStyle.Render(i[1]))
		}
	}
	return "  " + strings.Join(p, "   ")
}

func Badge(s string) string {
	switch s {
	case "ok":
		return styles.BadgeSuccess.Render("OK")
	case "polling":
		return styles.BadgeSuccess.Render("LIVE")
	case "idle":
		return styles.BadgeMuted.Render(styles.IconPause + " PAUSED")
	case "recording":
		return styles.BadgePrimary.Render(styles.IconRecord + " REC")
	case "charging":
		return styles.BadgeSuccess.Render("CHARGING")
	case "unavailable":
		return styles.BadgeMuted.Render("N/A")
	case "critical":
		return styles.BadgeError.Render("CRITICAL")
	case "warning":
		return styles.BadgeWarning.Render("WARNING")
	case "error":
		return styles.BadgeError.Render("ERROR")
	default:
		return styles.BadgeMuted.Render(strings.ToUpper(s))
	}
}

// CenteredLogo centers the block logo and tagline, or the compact logo when
// the terminal is narrower than the block art.
func CenteredLogo(w int) string {
	logo := styles.Logo()
	if lipgloss.Width(logo) > w {
		logo = styles.LogoCompact()
	}
	var b strings.Builder
	pad := (w - lipgloss.Width(logo)) / 2
	if pad < 0 {
		pad = 0
	}
	for _, l := range strings.Split(logo, "\n") {
		b.WriteString(strings.Repeat(" ", pad) + l + "\n")
	}
	b.WriteString(styles.Center(styles.Tagline(), w))
	return b.String()
}

// Notice renders a one-line boxed message. kind is success, error, warning
// or anything else for info.
func Notice(kind, msg string, w int) string {
	color, icon, text := styles.Primary, styles.PrimaryStyle.Render(styles.IconInfo), msg
	switch kind {
	case "success":
		color, icon, text = styles.Success, styles.SuccessStyle.Render(styles.IconSuccess), styles.SuccessStyle.Render(msg)
	case "error":
		color, icon, text = styles.Error, styles.ErrorStyle.Render(styles.IconError), styles.ErrorStyle.Render(msg)
	case "warning":
		color, icon, text = styles.Warning, styles.WarningStyle.Render(styles.IconWarning), styles.WarningStyle.Render(msg)
	}
	return styles.MessageBox.BorderForeground(color).Width(w - 4).Render(icon + "  " + text)
}

func MsgError(msg string, w int) string {
	return Notice("error", msg, w)
}

func Empty(title, sub string, w int) string {
	c := styles.MutedStyle.Render(title)
	if sub != "" {
		c += "\n" + styles.SubtleStyle.Render(sub)
	}
	return Wrap(c, w)
}

// Loading is a spinner with a caption. frame advances the spinner.
func Loading(frame int, message string) string {
	return "  " + styles.Spinner(frame) + "  " + styles.MutedStyle.Render(message)
}

// Unavailable is shown in place of a category the collector could not read.
func Unavailable(category, reason string, w int) string {
	return Empty(strings.ToUpper(category[:1])+category[1:]+" metrics are unavailable on this system", reason, w)
}

type CardLine struct {
	Label string
	Value string
}

func Card(title string, lines []CardLine, w int) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(styles.TitleStyle.Render(title) + "\n")
	}
	for i, l := range lines {
		if i > 0 || title != "" {
			b.WriteString("\n")
		}
		b.WriteString(styles.SubtleStyle.Render(styles.Pad(l.Label, 14)) + " " + l.Value)
	}
	return Wrap(b.String(), w)
}

func AlertRow(severity, category, msg string, w int) string {
	icon := styles.WarningStyle.Render(styles.IconWarning)
	if severity == "critical" {
		icon = styles.ErrorStyle.Render(styles.IconError)
	}
	return fmt.Sprintf("  %s  %s  %s",
		icon,
		styles.Pad(Badge(severity), 10),
		styles.Pad(styles.Trunc(category, 8), 8)+"  "+styles.MutedStyle.Render(styles.Trunc(msg, w-34)))
}

func DiskHeader(w int) string {
	return fmt.Sprintf("    %s  %s  %s  %s  %s  %s",
		styles.MutedStyle.Render(styles.Pad("MOUNT", 18)),
		styles.MutedStyle.Render(styles.Pad("DEVICE", 14)),
		styles.MutedStyle.Render(styles.Pad("FS", 6)),
		styles.MutedStyle.Render(styles.PadL("USED", 10)),
		styles.MutedStyle.Render(styles.PadL("TOTAL", 10)),
		styles.MutedStyle.Render(styles.PadL("USE%", 6)))
}

func DiskRow(mount, device, fstype string, used, total uint64, pct, warn, crit float64, w int) string {
	return fmt.Sprintf("    %s  %s  %s  %s  %s  %s",
		styles.Pad(styles.Trunc(mount, 18), 18),
		styles.MutedStyle.Render(styles.Pad(styles.Trunc(device, 14), 14)),
		styles.MutedStyle.Render(styles.Pad(styles.Trunc(fstype, 6), 6)),
		styles.PadL(helper.FormatBytes(used), 10),
		styles.PadL(helper.FormatBytes(total), 10),
		styles.Level(pct, warn, crit).Render(styles.PadL(fmt.Sprintf("%.1f", pct), 6)))
}

func ProcessHeader(w int) string {
	return fmt.Sprintf("   %s  %s  %s  %s  %s  %s  %s  %s",
		styles.MutedStyle.Render(styles.PadL("PID", 7)),
		styles.MutedStyle.Render(styles.Pad("NAME", 20)),
		styles.MutedStyle.Render(styles.PadL("CPU%", 6)),
		styles.MutedStyle.Render(styles.PadL("RSS", 10)),
		styles.MutedStyle.Render(styles.PadL("VMS", 10)),
		styles.MutedStyle.Render(styles.PadL("THR", 4)),
		styles.MutedStyle.Render(styles.Pad("USER", 10)),
		styles.MutedStyle.Render("STARTED"))
}

func ProcessRow(pid int32, name string, cpu float64, rss, vms uint64, threads int32, user, started string, selected bool, w int) string {
	ptr := " "
	nameStyle := styles.BrightStyle
	if selected {
		ptr = styles.Pointer()
		nameStyle = styles.PrimaryStyle
	}
	return fmt.Sprintf(" %s %s  %s  %s  %s  %s  %s  %s  %s",
		ptr,
		styles.PadL(fmt.Sprintf("%d", pid), 7),
		nameStyle.Render(styles.Pad(styles.Trunc(name, 20), 20)),
		styles.PadL(fmt.Sprintf("%.1f", cpu), 6),
		styles.PadL(helper.FormatBytes(rss), 10),
		styles.PadL(helper.FormatBytes(vms), 10),
		styles.PadL(fmt.Sprintf("%d", threads), 4),
		styles.MutedStyle.Render(styles.Pad(styles.Trunc(user, 10), 10)),
		styles.MutedStyle.Render(started))
}

func InterfaceRow(name, mac string, addrs []string, w int) string {
	addr := strings.Join(addrs, ", ")
	if addr == "" {
		addr = "-"
	}
	if mac == "" {
		mac = "-"
	}
	return fmt.Sprintf("    %s  %s  %s",
		styles.Pad(styles.Trunc(name, 14), 14),
		styles.MutedStyle.Render(styles.Pad(mac, 18)),
		styles.Trunc(addr, w-44))
}

func HistoryRow(ts string, cpu, mem, up, down string) string {
	return fmt.Sprintf("    %s  %s  %s  %s  %s",
		styles.SubtleStyle.Render(styles.Pad(ts, 19)),
		styles.PadL(cpu, 7),
		styles.PadL(mem, 7),
		styles.PadL(up, 12),
		styles.PadL(down, 12))
}
