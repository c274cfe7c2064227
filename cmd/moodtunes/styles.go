package main

import "github.com/charmbracelet/lipgloss"

var (
	colorMuted  = lipgloss.Color("#8b949e")
	colorAccent = lipgloss.Color("#58a6ff")
	colorGreen  = lipgloss.Color("#3fb950")
	colorAmber  = lipgloss.Color("#d29922")
	colorRed    = lipgloss.Color("#f85149")
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccent)

	labelStyle = lipgloss.NewStyle().
		Foreground(colorMuted)

	songStyle = lipgloss.NewStyle().
		Bold(true)

	artistStyle = lipgloss.NewStyle().
		Foreground(colorMuted)

	scoreStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	warnStyle = lipgloss.NewStyle().
		Foreground(colorAmber)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorRed).
		Bold(true)

	vibeStyle = lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(colorAccent).
		PaddingLeft(1)
)
