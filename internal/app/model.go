// Package app holds the bubbletea model for the ClipFlow TUI: the
// project directory screen, the segment editor screen, and the export
// coordination between them.
package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/clipflow/clipflow-tui/internal/api"
	"github.com/clipflow/clipflow-tui/internal/config"
	"github.com/clipflow/clipflow-tui/internal/timecode"

	tea "github.com/charmbracelet/bubbletea"
)

// Screen identifies which view is active.
type Screen int

const (
	ScreenDirectory Screen = iota
	ScreenEditor
)

// PanelFocus tracks which editor panel has keyboard focus.
type PanelFocus int

const (
	FocusSegments PanelFocus = iota
	FocusTranscript
)

// InputMode identifies an active text-entry prompt.
type InputMode int

const (
	InputNone InputMode = iota
	InputProjectName
	InputUploadPath
	InputSegmentStart
	InputSegmentEnd
)

// Model is the root bubbletea model for the ClipFlow TUI.
type Model struct {
	client *api.Client
	cfg    *config.Config
	logger *zap.Logger

	screen Screen

	// Directory state
	projects        []api.Project
	selectedProject int
	loadedOnce      bool
	confirmDelete   bool
	polling         bool
	userSettings    *api.UserSettings

	// Editor state for one active project id. Replaced only wholesale
	// by a fully successful three-way load.
	projectID       string
	project         *api.Project
	transcript      []api.TranscriptSegment
	segments        []api.Segment
	selectedSegment int
	editorLoaded    bool

	// Export single-flight: the format currently in flight, or empty.
	// While non-empty every export action is blocked, not just the one
	// in progress.
	exporting string

	// Input prompt state
	inputMode   InputMode
	inputBuffer string

	// UI state
	focusedPanel     PanelFocus
	width            int
	height           int
	transcriptScroll int
	errorMessage     string
	statusText       string
}

// New creates a new Model with default state.
func New(client *api.Client, cfg *config.Config, logger *zap.Logger) Model {
	return Model{
		client:     client,
		cfg:        cfg,
		logger:     logger,
		screen:     ScreenDirectory,
		statusText: "Loading projects...",
	}
}

// Init fetches the project list and the global preferences.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		listProjectsCmd(m.client),
		loadUserSettingsCmd(m.client),
	)
}

// --- Commands -------------------------------------------------------------

// Requests are issued with context.Background on purpose: nothing in the
// client cancels an in-flight request, so a superseded response can still
// arrive and win by completion order.

func listProjectsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		projects, err := client.ListProjects(context.Background())
		if err != nil {
			return ProjectsLoadErrorMsg{Err: err}
		}
		return ProjectsLoadedMsg{Projects: projects}
	}
}

func loadUserSettingsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		settings, err := client.GetUserSettings(context.Background())
		if err != nil {
			// Preferences are decorative on the directory screen; a
			// failed fetch is logged by the client and not surfaced.
			return nil
		}
		return UserSettingsLoadedMsg{Settings: *settings}
	}
}

func createProjectCmd(client *api.Client, name string) tea.Cmd {
	return func() tea.Msg {
		project, err := client.CreateProject(context.Background(), name, nil)
		if err != nil {
			return DirectoryOpErrorMsg{Label: "Create failed", Err: err}
		}
		return ProjectCreatedMsg{Project: *project}
	}
}

func deleteProjectCmd(client *api.Client, projectID string) tea.Cmd {
	return func() tea.Msg {
		if err := client.DeleteProject(context.Background(), projectID); err != nil {
			return DirectoryOpErrorMsg{Label: "Delete failed", Err: err}
		}
		return ProjectDeletedMsg{ProjectID: projectID}
	}
}

func uploadVideoCmd(client *api.Client, projectID, path string) tea.Cmd {
	return func() tea.Msg {
		if err := client.UploadVideo(context.Background(), projectID, path); err != nil {
			return DirectoryOpErrorMsg{Label: "Upload failed", Err: err}
		}
		return VideoUploadedMsg{ProjectID: projectID}
	}
}

func startAnalysisCmd(client *api.Client, projectID string) tea.Cmd {
	return func() tea.Msg {
		if err := client.StartAnalysis(context.Background(), projectID); err != nil {
			return DirectoryOpErrorMsg{Label: "Analysis failed", Err: err}
		}
		return AnalysisStartedMsg{ProjectID: projectID}
	}
}

func pollStatusCmd(client *api.Client, projectID string) tea.Cmd {
	return func() tea.Msg {
		status, err := client.AnalysisStatus(context.Background(), projectID)
		if err != nil {
			// A single missed poll is not worth a banner; the next tick
			// tries again.
			return nil
		}
		return StatusPolledMsg{ProjectID: projectID, Status: *status}
	}
}

func pollTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return PollTickMsg{}
	})
}

// loadEditorCmd issues the three editor reads concurrently and joins them
// all-or-nothing: any failure yields a single error message and no state
// replacement.
func loadEditorCmd(client *api.Client, projectID string) tea.Cmd {
	return func() tea.Msg {
		var (
			wg         sync.WaitGroup
			project    *api.Project
			transcript []api.TranscriptSegment
			segments   []api.Segment

			errProject, errTranscript, errSegments error
		)

		wg.Add(3)
		go func() {
			defer wg.Done()
			project, errProject = client.GetProject(context.Background(), projectID)
		}()
		go func() {
			defer wg.Done()
			transcript, errTranscript = client.Transcript(context.Background(), projectID)
		}()
		go func() {
			defer wg.Done()
			segments, errSegments = client.Segments(context.Background(), projectID)
		}()
		wg.Wait()

		if err := errors.Join(errProject, errTranscript, errSegments); err != nil {
			first := errProject
			if first == nil {
				first = errTranscript
			}
			if first == nil {
				first = errSegments
			}
			return EditorLoadErrorMsg{ProjectID: projectID, Err: first}
		}

		return EditorLoadedMsg{
			ProjectID:  projectID,
			Project:    *project,
			Transcript: transcript,
			Segments:   segments,
		}
	}
}

func toggleSegmentCmd(client *api.Client, projectID, segmentID string) tea.Cmd {
	return func() tea.Msg {
		segment, err := client.ToggleSegment(context.Background(), projectID, segmentID)
		if err != nil {
			return SegmentOpErrorMsg{Err: err}
		}
		return SegmentUpdatedMsg{Segment: *segment}
	}
}

func editTimeCmd(client *api.Client, projectID, segmentID string, update api.SegmentUpdate) tea.Cmd {
	return func() tea.Msg {
		segment, err := client.UpdateSegment(context.Background(), projectID, segmentID, update)
		if err != nil {
			return SegmentOpErrorMsg{Err: err}
		}
		return SegmentUpdatedMsg{Segment: *segment}
	}
}

func exportCmd(client *api.Client, downloadDir, projectName, projectID, format string) tea.Cmd {
	return func() tea.Msg {
		payload, err := client.Export(context.Background(), projectID, format)
		if err != nil {
			return ExportErrorMsg{Format: format, Err: err}
		}
		path, err := saveExport(downloadDir, projectName, format, payload)
		if err != nil {
			return ExportErrorMsg{Format: format, Err: err}
		}
		return ExportDoneMsg{Format: format, Path: path}
	}
}

func openVideoExportCmd(url string, logger *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		if err := openURL(url); err != nil {
			// The navigation is fire-and-forget; a spawn failure is only
			// logged. Server-side failures are invisible to this client.
			logger.Warn("open video export url", zap.Error(err))
		}
		return VideoExportOpenedMsg{}
	}
}

// --- Update ---------------------------------------------------------------

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ProjectsLoadedMsg:
		m.projects = msg.Projects
		m.loadedOnce = true
		m.statusText = ""
		if m.selectedProject >= len(m.projects) {
			m.selectedProject = max(0, len(m.projects)-1)
		}
		return m, m.armPolling()

	case ProjectsLoadErrorMsg:
		if !m.loadedOnce && !isBackendError(msg.Err) {
			m.errorMessage = "Cannot connect to ClipFlow backend at " + m.cfg.APIURL
		} else {
			m.errorMessage = "Load failed: " + errorDetail(msg.Err)
		}
		m.statusText = ""
		return m, nil

	case UserSettingsLoadedMsg:
		settings := msg.Settings
		m.userSettings = &settings
		return m, nil

	case ProjectCreatedMsg:
		m.statusText = "Created " + msg.Project.Name
		return m, listProjectsCmd(m.client)

	case ProjectDeletedMsg:
		m.statusText = "Project deleted"
		return m, listProjectsCmd(m.client)

	case VideoUploadedMsg:
		m.statusText = "Upload complete"
		return m, listProjectsCmd(m.client)

	case AnalysisStartedMsg:
		m.statusText = "Analysis started"
		return m, listProjectsCmd(m.client)

	case DirectoryOpErrorMsg:
		m.errorMessage = msg.Label + ": " + errorDetail(msg.Err)
		m.statusText = ""
		return m, nil

	case PollTickMsg:
		m.polling = false
		var cmds []tea.Cmd
		for _, p := range m.projects {
			if p.Status == api.StatusAnalyzing || p.Status == api.StatusUploading {
				cmds = append(cmds, pollStatusCmd(m.client, p.ID))
			}
		}
		if len(cmds) == 0 {
			return m, nil
		}
		cmds = append(cmds, m.armPolling())
		return m, tea.Batch(cmds...)

	case StatusPolledMsg:
		for i := range m.projects {
			if m.projects[i].ID != msg.ProjectID {
				continue
			}
			finished := m.projects[i].Status != msg.Status.Status &&
				(msg.Status.Status == api.StatusAnalyzed || msg.Status.Status == api.StatusError)
			m.projects[i].Status = msg.Status.Status
			m.projects[i].Progress = msg.Status.Progress
			m.projects[i].ErrorMessage = msg.Status.ErrorMessage
			if finished {
				// The run produced duration and segments; re-fetch the
				// whole list rather than patching further fields.
				return m, listProjectsCmd(m.client)
			}
			break
		}
		return m, nil

	case EditorLoadedMsg:
		// Whichever load response arrives last wins, even if a newer load
		// was issued first or the editor is no longer on screen.
		m.projectID = msg.ProjectID
		project := msg.Project
		m.project = &project
		m.transcript = msg.Transcript
		m.segments = msg.Segments
		m.editorLoaded = true
		if m.selectedSegment >= len(m.segments) {
			m.selectedSegment = max(0, len(m.segments)-1)
		}
		m.statusText = ""
		return m, nil

	case EditorLoadErrorMsg:
		m.errorMessage = "Load failed: " + errorDetail(msg.Err)
		m.statusText = ""
		return m, nil

	case SegmentUpdatedMsg:
		for i := range m.segments {
			if m.segments[i].ID == msg.Segment.ID {
				m.segments[i] = msg.Segment
				break
			}
		}
		return m, nil

	case SegmentOpErrorMsg:
		m.errorMessage = "Edit failed: " + errorDetail(msg.Err)
		return m, nil

	case ExportDoneMsg:
		m.exporting = ""
		m.statusText = "Saved " + msg.Path
		return m, nil

	case ExportErrorMsg:
		m.exporting = ""
		m.errorMessage = "Export failed: " + errorDetail(msg.Err)
		return m, nil

	case VideoExportOpenedMsg:
		m.exporting = ""
		m.statusText = "Video export opened in browser"
		return m, nil
	}

	return m, nil
}

// armPolling schedules a poll tick when any project is mid-analysis and
// no tick is already pending.
func (m *Model) armPolling() tea.Cmd {
	if m.polling {
		return nil
	}
	for _, p := range m.projects {
		if p.Status == api.StatusAnalyzing || p.Status == api.StatusUploading {
			m.polling = true
			return pollTickCmd(m.cfg.PollInterval)
		}
	}
	return nil
}

// --- Key handling ---------------------------------------------------------

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != InputNone {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		return m, tea.Quit
	case KeyDismiss:
		m.errorMessage = ""
		return m, nil
	}

	if m.screen == ScreenDirectory {
		return m.handleDirectoryKey(msg)
	}
	return m.handleEditorKey(msg)
}

func (m Model) handleDirectoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.confirmDelete {
		if key == KeyConfirm && m.selectedProject < len(m.projects) {
			m.confirmDelete = false
			return m, deleteProjectCmd(m.client, m.projects[m.selectedProject].ID)
		}
		m.confirmDelete = false
		return m, nil
	}

	switch key {
	case KeyJ, KeyDown:
		if m.selectedProject < len(m.projects)-1 {
			m.selectedProject++
		}
		return m, nil

	case KeyK, KeyUp:
		if m.selectedProject > 0 {
			m.selectedProject--
		}
		return m, nil

	case KeyNew:
		m.inputMode = InputProjectName
		m.inputBuffer = ""
		return m, nil

	case KeyDelete:
		if m.selectedProject < len(m.projects) {
			m.confirmDelete = true
		}
		return m, nil

	case KeyUpload:
		if m.selectedProject < len(m.projects) {
			m.inputMode = InputUploadPath
			m.inputBuffer = ""
		}
		return m, nil

	case KeyAnalyze:
		if m.selectedProject < len(m.projects) {
			m.statusText = "Requesting analysis..."
			return m, startAnalysisCmd(m.client, m.projects[m.selectedProject].ID)
		}
		return m, nil

	case KeyRefresh:
		return m, listProjectsCmd(m.client)

	case KeyEnter:
		if m.selectedProject < len(m.projects) {
			project := m.projects[m.selectedProject]
			m.screen = ScreenEditor
			m.focusedPanel = FocusSegments
			m.statusText = "Loading " + project.Name + "..."
			// Prior loads are not cancelled; the last response to arrive
			// will own the editor state.
			return m, loadEditorCmd(m.client, project.ID)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEscape:
		m.screen = ScreenDirectory
		return m, listProjectsCmd(m.client)

	case KeyTab:
		if m.focusedPanel == FocusSegments {
			m.focusedPanel = FocusTranscript
		} else {
			m.focusedPanel = FocusSegments
		}
		return m, nil

	case KeyJ, KeyDown:
		if m.focusedPanel == FocusSegments {
			if m.selectedSegment < len(m.segments)-1 {
				m.selectedSegment++
			}
		} else {
			m.transcriptScroll++
		}
		return m, nil

	case KeyK, KeyUp:
		if m.focusedPanel == FocusSegments {
			if m.selectedSegment > 0 {
				m.selectedSegment--
			}
		} else if m.transcriptScroll > 0 {
			m.transcriptScroll--
		}
		return m, nil

	case KeySpace:
		if seg, ok := m.currentSegment(); ok {
			// Never flipped optimistically; the checkbox changes when
			// the backend's record comes back.
			return m, toggleSegmentCmd(m.client, m.projectID, seg.ID)
		}
		return m, nil

	case KeyEditStart:
		if seg, ok := m.currentSegment(); ok {
			m.inputMode = InputSegmentStart
			m.inputBuffer = timecode.FormatPrecise(seg.Start)
		}
		return m, nil

	case KeyEditEnd:
		if seg, ok := m.currentSegment(); ok {
			m.inputMode = InputSegmentEnd
			m.inputBuffer = timecode.FormatPrecise(seg.End)
		}
		return m, nil

	case KeyRefresh:
		return m, loadEditorCmd(m.client, m.projectID)

	case KeyExportEDL:
		return m.startExport("edl")
	case KeyExportXML:
		return m.startExport("xml")
	case KeyExportSRT:
		return m.startExport("srt")
	case KeyExportMP4:
		return m.startExport("video")
	}

	return m, nil
}

// startExport begins an export unless one is already in flight. A single
// marker serializes the whole export surface, all four formats.
func (m Model) startExport(format string) (tea.Model, tea.Cmd) {
	if m.exporting != "" || !m.editorLoaded {
		return m, nil
	}
	m.exporting = format
	if format == "video" {
		return m, openVideoExportCmd(m.client.ExportVideoURL(m.projectID), m.logger)
	}
	name := ""
	if m.project != nil {
		name = m.project.Name
	}
	return m, exportCmd(m.client, m.cfg.DownloadDir, name, m.projectID, format)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEscape:
		m.inputMode = InputNone
		m.inputBuffer = ""
		return m, nil

	case KeyEnter:
		return m.commitInput()

	case KeyBackspace:
		if len(m.inputBuffer) > 0 {
			runes := []rune(m.inputBuffer)
			m.inputBuffer = string(runes[:len(runes)-1])
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.inputBuffer += string(msg.Runes)
	case tea.KeySpace:
		m.inputBuffer += " "
	}
	return m, nil
}

func (m Model) commitInput() (tea.Model, tea.Cmd) {
	mode := m.inputMode
	value := m.inputBuffer

	switch mode {
	case InputProjectName:
		name := strings.TrimSpace(value)
		if name == "" {
			// An empty name never reaches the backend; stay in the prompt.
			return m, nil
		}
		m.inputMode = InputNone
		m.inputBuffer = ""
		m.statusText = "Creating project..."
		return m, createProjectCmd(m.client, name)

	case InputUploadPath:
		path := strings.TrimSpace(value)
		if path == "" {
			return m, nil
		}
		m.inputMode = InputNone
		m.inputBuffer = ""
		if m.selectedProject >= len(m.projects) {
			return m, nil
		}
		m.statusText = "Uploading..."
		return m, uploadVideoCmd(m.client, m.projects[m.selectedProject].ID, path)

	case InputSegmentStart, InputSegmentEnd:
		m.inputMode = InputNone
		m.inputBuffer = ""
		seg, ok := m.currentSegment()
		if !ok {
			return m, nil
		}
		// The typed text is decoded without validation; the backend is
		// the sole enforcer of start <= end.
		seconds := timecode.Parse(value)
		var update api.SegmentUpdate
		if mode == InputSegmentStart {
			update.Start = &seconds
		} else {
			update.End = &seconds
		}
		return m, editTimeCmd(m.client, m.projectID, seg.ID, update)
	}

	m.inputMode = InputNone
	m.inputBuffer = ""
	return m, nil
}

func (m Model) currentSegment() (api.Segment, bool) {
	if !m.editorLoaded || m.selectedSegment >= len(m.segments) {
		return api.Segment{}, false
	}
	return m.segments[m.selectedSegment], true
}

// --- Derived values -------------------------------------------------------

// EnabledCount is the number of enabled segments, recomputed on every call.
func (m Model) EnabledCount() int {
	count := 0
	for _, s := range m.segments {
		if s.Enabled {
			count++
		}
	}
	return count
}

// EnabledDuration is the summed length of enabled segments in seconds,
// recomputed on every call.
func (m Model) EnabledDuration() float64 {
	total := 0.0
	for _, s := range m.segments {
		if s.Enabled {
			total += s.End - s.Start
		}
	}
	return total
}

// --- Helpers --------------------------------------------------------------

func isBackendError(err error) bool {
	var apiErr *api.APIError
	return errors.As(err, &apiErr)
}

// errorDetail prefers the backend's verbatim detail text over Go error
// chain formatting.
func errorDetail(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail()
	}
	return err.Error()
}
