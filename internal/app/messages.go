package app

import "github.com/clipflow/clipflow-tui/internal/api"

// ProjectsLoadedMsg carries a full project list refresh.
type ProjectsLoadedMsg struct {
	Projects []api.Project
}

// ProjectsLoadErrorMsg is sent when the project list fetch fails.
type ProjectsLoadErrorMsg struct {
	Err error
}

// ProjectCreatedMsg is sent after a successful project creation.
type ProjectCreatedMsg struct {
	Project api.Project
}

// ProjectDeletedMsg is sent after a successful project deletion.
type ProjectDeletedMsg struct {
	ProjectID string
}

// VideoUploadedMsg is sent after a successful source upload.
type VideoUploadedMsg struct {
	ProjectID string
}

// AnalysisStartedMsg is sent after analysis is accepted by the backend.
type AnalysisStartedMsg struct {
	ProjectID string
}

// DirectoryOpErrorMsg reports a failed create/delete/upload/analyze call.
type DirectoryOpErrorMsg struct {
	Label string
	Err   error
}

// StatusPolledMsg folds one analysis-status poll into the project list.
type StatusPolledMsg struct {
	ProjectID string
	Status    api.AnalysisStatus
}

// PollTickMsg triggers the next round of status polls.
type PollTickMsg struct{}

// EditorLoadedMsg carries the three-way project/transcript/segments load.
// It is only emitted when all three reads succeeded.
type EditorLoadedMsg struct {
	ProjectID  string
	Project    api.Project
	Transcript []api.TranscriptSegment
	Segments   []api.Segment
}

// EditorLoadErrorMsg is sent when any of the three editor reads failed.
// The previously displayed state stays untouched.
type EditorLoadErrorMsg struct {
	ProjectID string
	Err       error
}

// SegmentUpdatedMsg carries the authoritative segment record returned by a
// toggle or time edit; the local entry is spliced by id.
type SegmentUpdatedMsg struct {
	Segment api.Segment
}

// SegmentOpErrorMsg reports a failed toggle or time edit.
type SegmentOpErrorMsg struct {
	Err error
}

// ExportDoneMsg is sent after a blob export has been written to disk.
type ExportDoneMsg struct {
	Format string
	Path   string
}

// ExportErrorMsg is sent when a blob export fails. The in-flight marker is
// cleared either way.
type ExportErrorMsg struct {
	Format string
	Err    error
}

// VideoExportOpenedMsg is sent once the video export URL has been handed
// to the OS opener. The navigation has no failure channel.
type VideoExportOpenedMsg struct{}

// UserSettingsLoadedMsg carries the global default preferences.
type UserSettingsLoadedMsg struct {
	Settings api.UserSettings
}
