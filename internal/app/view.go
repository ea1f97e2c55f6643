package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clipflow/clipflow-tui/internal/api"
	"github.com/clipflow/clipflow-tui/internal/timecode"
	"github.com/clipflow/clipflow-tui/internal/ui"
)

// View renders the active screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.screen == ScreenEditor {
		return m.viewEditor()
	}
	return m.viewDirectory()
}

// --- Directory screen -----------------------------------------------------

func (m Model) viewDirectory() string {
	var sections []string

	title := ui.TitleStyle.Render("CLIPFLOW")
	sections = append(sections, title+ui.DimStyle.Render(" — "+m.cfg.APIURL))

	if m.userSettings != nil {
		sections = append(sections, ui.DimStyle.Render(fmt.Sprintf(
			"defaults: %s / %s / %s",
			m.userSettings.DefaultSettings.Mode,
			m.userSettings.DefaultLanguage,
			m.userSettings.DefaultModelSize,
		)))
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if len(m.projects) == 0 {
		if m.loadedOnce {
			sections = append(sections, ui.DimStyle.Render("  No projects yet. Press n to create one."))
		} else {
			sections = append(sections, ui.DimStyle.Render("  Loading projects..."))
		}
	}

	for i, p := range m.projects {
		sections = append(sections, m.renderProjectRow(i, p))
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.confirmDelete && m.selectedProject < len(m.projects) {
		name := m.projects[m.selectedProject].Name
		sections = append(sections,
			ui.ErrorStyle.Render("Delete "+name+"? ")+ui.DimStyle.Render("y to confirm, any other key to cancel"))
	}

	if prompt := m.renderInputPrompt(); prompt != "" {
		sections = append(sections, prompt)
	}
	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}
	if m.statusText != "" {
		sections = append(sections, ui.StatusStyle.Render(m.statusText))
	}

	sections = append(sections, m.renderDirectoryFooter())
	return strings.Join(sections, "\n")
}

func (m Model) renderProjectRow(i int, p api.Project) string {
	cursor := "  "
	nameStyle := lipgloss.NewStyle()
	if i == m.selectedProject {
		cursor = ui.SelectedStyle.Render("> ")
		nameStyle = ui.SelectedStyle
	}

	status := statusStyle(p.Status).Render(string(p.Status))

	var extra string
	switch {
	case p.Status == api.StatusAnalyzing || p.Status == api.StatusUploading:
		extra = " " + renderProgressBar(p.Progress, 16) +
			ui.DimStyle.Render(fmt.Sprintf(" %3.0f%%", p.Progress*100))
	case p.Status == api.StatusError && p.ErrorMessage != nil:
		extra = " " + ui.ErrorTextStyle.Render(truncateToWidth(*p.ErrorMessage, 40))
	case p.DurationSeconds != nil:
		extra = " " + ui.DimStyle.Render(timecode.Format(*p.DurationSeconds))
	}

	var file string
	if p.SourceFilename != nil {
		file = ui.DimStyle.Render("  " + *p.SourceFilename)
	}

	row := cursor + nameStyle.Render(padRight(p.Name, 24)) + " " + status + extra + file
	return truncateToWidth(row, m.width)
}

func renderProgressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return ui.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		ui.ProgressTrackStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) renderDirectoryFooter() string {
	keys := []struct{ key, desc string }{
		{"n", "New"},
		{"enter", "Open"},
		{"u", "Upload"},
		{"a", "Analyze"},
		{"d", "Delete"},
		{"r", "Refresh"},
		{"q", "Quit"},
	}
	var parts []string
	for _, k := range keys {
		parts = append(parts, ui.FooterKeyStyle.Render(k.key)+ui.FooterDescStyle.Render(" "+k.desc))
	}
	return strings.Join(parts, "  ")
}

// --- Editor screen --------------------------------------------------------

func (m Model) viewEditor() string {
	var sections []string

	sections = append(sections, m.renderEditorHeader())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderEditorContent())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if prompt := m.renderInputPrompt(); prompt != "" {
		sections = append(sections, prompt)
	}
	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}
	if m.statusText != "" {
		sections = append(sections, ui.StatusStyle.Render(m.statusText))
	}

	sections = append(sections, m.renderEditorFooter())
	return strings.Join(sections, "\n")
}

func (m Model) renderEditorHeader() string {
	name := "—"
	status := ""
	if m.project != nil {
		name = m.project.Name
		status = " " + statusStyle(m.project.Status).Render(string(m.project.Status))
	}

	summary := ui.DimStyle.Render(fmt.Sprintf(
		"  %d/%d enabled, %s total",
		m.EnabledCount(), len(m.segments),
		timecode.Format(m.EnabledDuration()),
	))

	var exporting string
	if m.exporting != "" {
		exporting = "  " + ui.ExportingStyle.Render("⟳ exporting "+m.exporting)
	}

	return ui.TitleStyle.Render(name) + status + summary + exporting
}

func (m Model) renderEditorContent() string {
	segW := m.segmentPanelWidth()
	transW := max(20, m.width-segW-3)
	contentH := m.contentHeight()

	segPanel := m.renderSegmentPanel(segW, contentH)
	transPanel := m.renderTranscriptPanel(transW, contentH)

	divider := ui.DividerStyle.Render("│")

	segLines := strings.Split(segPanel, "\n")
	transLines := strings.Split(transPanel, "\n")

	var rows []string
	for i := 0; i < contentH; i++ {
		var left, right string
		if i < len(segLines) {
			left = segLines[i]
		}
		if i < len(transLines) {
			right = transLines[i]
		}
		rows = append(rows, padRight(left, segW)+divider+right)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderSegmentPanel(width, height int) string {
	var header string
	title := fmt.Sprintf("SEGMENTS (%d)", len(m.segments))
	if m.focusedPanel == FocusSegments {
		header = ui.PanelTitleActiveStyle.Render(title)
	} else {
		header = ui.PanelTitleStyle.Render(title)
	}

	lines := []string{header}

	if !m.editorLoaded {
		lines = append(lines, ui.DimStyle.Render("  Loading..."))
	} else if len(m.segments) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No segments. Run analysis first."))
	} else {
		visible := height - 1
		start := clampScroll(m.selectedSegment, len(m.segments), visible)
		end := min(start+visible, len(m.segments))
		for i := start; i < end; i++ {
			lines = append(lines, truncateToWidth(m.renderSegmentRow(i), width))
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSegmentRow(i int) string {
	seg := m.segments[i]

	cursor := "  "
	if i == m.selectedSegment && m.focusedPanel == FocusSegments {
		cursor = ui.SelectedStyle.Render("> ")
	}

	check := "[ ]"
	if seg.Enabled {
		check = "[x]"
	}

	span := fmt.Sprintf("%s – %s", timecode.FormatPrecise(seg.Start), timecode.FormatPrecise(seg.End))

	var marker string
	if seg.TriggerMarker != nil {
		marker = " " + markerStyle(seg.TriggerMarker.Type).Render(string(seg.TriggerMarker.Type))
	}

	var adjusted string
	if seg.ManualAdjusted {
		adjusted = ui.SegmentAdjustedStyle.Render(" *")
	}

	rowStyle := ui.SegmentEnabledStyle
	if !seg.Enabled {
		rowStyle = ui.SegmentDisabledStyle
	}

	return cursor + rowStyle.Render(check+" "+span) + marker + adjusted
}

func (m Model) renderTranscriptPanel(width, height int) string {
	var header string
	if m.focusedPanel == FocusTranscript {
		header = ui.PanelTitleActiveStyle.Render("TRANSCRIPT")
	} else {
		header = ui.PanelTitleStyle.Render("TRANSCRIPT")
	}

	lines := []string{header}

	if !m.editorLoaded {
		lines = append(lines, ui.DimStyle.Render("  Loading..."))
	} else if len(m.transcript) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No transcript."))
	} else {
		textWidth := max(10, width-12)
		var displayLines []string
		for _, seg := range m.transcript {
			ts := ui.TimestampStyle.Render("[" + timecode.Format(seg.Start) + "]")
			wrapped := wrapText(seg.Text, textWidth)
			displayLines = append(displayLines, ts+" "+wrapped[0])
			for _, wl := range wrapped[1:] {
				displayLines = append(displayLines, strings.Repeat(" ", 8)+wl)
			}
		}

		visible := height - 1
		start := m.transcriptScroll
		if start > max(0, len(displayLines)-visible) {
			start = max(0, len(displayLines)-visible)
		}
		end := min(start+visible, len(displayLines))
		for i := start; i < end; i++ {
			lines = append(lines, "  "+displayLines[i])
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEditorFooter() string {
	keys := []struct{ key, desc string }{
		{"space", "Toggle"},
		{"i", "Edit start"},
		{"o", "Edit end"},
		{"e/X/s", "EDL/XML/SRT"},
		{"v", "Video"},
		{"tab", "Focus"},
		{"r", "Reload"},
		{"esc", "Back"},
		{"q", "Quit"},
	}
	var parts []string
	for _, k := range keys {
		parts = append(parts, ui.FooterKeyStyle.Render(k.key)+ui.FooterDescStyle.Render(" "+k.desc))
	}
	return strings.Join(parts, "  ")
}

// --- Shared rendering -----------------------------------------------------

func (m Model) renderInputPrompt() string {
	var label string
	switch m.inputMode {
	case InputProjectName:
		label = "New project name"
	case InputUploadPath:
		label = "Video file path"
	case InputSegmentStart:
		label = "Start (m:ss.cc)"
	case InputSegmentEnd:
		label = "End (m:ss.cc)"
	default:
		return ""
	}
	return ui.InputPromptStyle.Render(label+": ") + m.inputBuffer + "▌"
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: ") +
		ui.ErrorTextStyle.Render(m.errorMessage) +
		ui.DimStyle.Render("  (x to dismiss)")
}

func (m Model) contentHeight() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + dividers(2) + error/status(2) + footer(1)
	return max(5, m.height-6)
}

func (m Model) segmentPanelWidth() int {
	if m.width == 0 {
		return 40
	}
	return max(30, m.width*45/100)
}

func statusStyle(s api.ProjectStatus) lipgloss.Style {
	switch s {
	case api.StatusCreated:
		return ui.StatusCreatedStyle
	case api.StatusUploading:
		return ui.StatusUploadingStyle
	case api.StatusUploaded:
		return ui.StatusUploadedStyle
	case api.StatusAnalyzing:
		return ui.StatusAnalyzingStyle
	case api.StatusAnalyzed:
		return ui.StatusAnalyzedStyle
	case api.StatusError:
		return ui.StatusErrorStyle
	}
	return ui.DimStyle
}

func markerStyle(t api.MarkerType) lipgloss.Style {
	switch t {
	case api.MarkerNG:
		return ui.MarkerNGStyle
	case api.MarkerOK:
		return ui.MarkerOKStyle
	case api.MarkerStart:
		return ui.MarkerStartStyle
	case api.MarkerEnd:
		return ui.MarkerEndStyle
	}
	return ui.DimStyle
}

// clampScroll keeps the selected row inside the visible window.
func clampScroll(selected, total, visible int) int {
	if total <= visible || visible <= 0 {
		return 0
	}
	start := selected - visible/2
	if start < 0 {
		start = 0
	}
	if start > total-visible {
		start = total - visible
	}
	return start
}

// --- Helpers --------------------------------------------------------------

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:max(0, width-1)]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
