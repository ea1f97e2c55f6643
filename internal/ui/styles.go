package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF5555")
	ColorGreen   = lipgloss.Color("#50FA7B")
	ColorYellow  = lipgloss.Color("#F1FA8C")
	ColorCyan    = lipgloss.Color("#8BE9FD")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#F8F8F2")
	ColorMagenta = lipgloss.Color("#FF79C6")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	PanelTitleActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorCyan)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorMagenta).
				Bold(true)

	ProgressBarStyle = lipgloss.NewStyle().
				Foreground(ColorCyan)

	ProgressTrackStyle = lipgloss.NewStyle().
				Foreground(ColorDimGray)

	ExportingStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)
)

// Project lifecycle styles keyed by status.
var (
	StatusCreatedStyle   = lipgloss.NewStyle().Foreground(ColorGray)
	StatusUploadingStyle = lipgloss.NewStyle().Foreground(ColorYellow)
	StatusUploadedStyle  = lipgloss.NewStyle().Foreground(ColorYellow)
	StatusAnalyzingStyle = lipgloss.NewStyle().Foreground(ColorMagenta)
	StatusAnalyzedStyle  = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	StatusErrorStyle     = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
)

// Marker type styles.
var (
	MarkerNGStyle    = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	MarkerOKStyle    = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	MarkerStartStyle = lipgloss.NewStyle().Foreground(ColorCyan)
	MarkerEndStyle   = lipgloss.NewStyle().Foreground(ColorCyan)
)

// Segment row styles.
var (
	SegmentEnabledStyle  = lipgloss.NewStyle().Foreground(ColorWhite)
	SegmentDisabledStyle = lipgloss.NewStyle().Foreground(ColorDimGray).Strikethrough(true)
	SegmentAdjustedStyle = lipgloss.NewStyle().Foreground(ColorYellow)
)
