package api

// ProjectStatus is the backend lifecycle state of a project.
type ProjectStatus string

const (
	StatusCreated   ProjectStatus = "created"
	StatusUploading ProjectStatus = "uploading"
	StatusUploaded  ProjectStatus = "uploaded"
	StatusAnalyzing ProjectStatus = "analyzing"
	StatusAnalyzed  ProjectStatus = "analyzed"
	StatusError     ProjectStatus = "error"
)

// MarkerType classifies a detected voice marker.
type MarkerType string

const (
	MarkerNG    MarkerType = "NG"
	MarkerOK    MarkerType = "OK"
	MarkerStart MarkerType = "START"
	MarkerEnd   MarkerType = "END"
)

// SliceMode selects the segment derivation strategy used by analysis.
type SliceMode string

const (
	SliceBacktrack SliceMode = "backtrack"
	SliceInterval  SliceMode = "interval"
)

// ProjectSettings holds the per-project analysis configuration.
type ProjectSettings struct {
	Mode               SliceMode `json:"mode"`
	Language           string    `json:"language"`
	ModelSize          string    `json:"model_size"`
	NGKeywords         []string  `json:"ng_keywords"`
	OKKeywords         []string  `json:"ok_keywords"`
	StartKeywords      []string  `json:"start_keywords"`
	EndKeywords        []string  `json:"end_keywords"`
	PreBuffer          float64   `json:"pre_buffer"`
	PostBuffer         float64   `json:"post_buffer"`
	SilenceThresholdDB float64   `json:"silence_threshold_db"`
	SilenceMinDuration float64   `json:"silence_min_duration"`
}

// UserSettings holds the global default preferences.
type UserSettings struct {
	DefaultSettings  ProjectSettings `json:"default_settings"`
	DefaultLanguage  string          `json:"default_language"`
	DefaultModelSize string          `json:"default_model_size"`
}

// Project is the backend-owned project record. The client caches it
// read-mostly and replaces it wholesale on reload.
type Project struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	CreatedAt       string          `json:"created_at"`
	Status          ProjectStatus   `json:"status"`
	SourceFile      *string         `json:"source_file"`
	SourceFilename  *string         `json:"source_filename"`
	DurationSeconds *float64        `json:"duration_seconds"`
	Settings        ProjectSettings `json:"settings"`
	ErrorMessage    *string         `json:"error_message"`
	Progress        float64         `json:"progress"`
}

// TranscriptWord is a single timestamped word from speech recognition.
type TranscriptWord struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// TranscriptSegment is one recognized utterance with word timings.
type TranscriptSegment struct {
	Text  string           `json:"text"`
	Start float64          `json:"start"`
	End   float64          `json:"end"`
	Words []TranscriptWord `json:"words"`
}

// Marker is an analysis-detected cue point. Immutable once produced.
type Marker struct {
	Type       MarkerType `json:"type"`
	Word       string     `json:"word"`
	Start      float64    `json:"start"`
	End        float64    `json:"end"`
	Confidence float64    `json:"confidence"`
}

// Segment is the editable cut unit. The client may only toggle Enabled
// and adjust Start/End through the backend; it never creates, deletes,
// or reorders segments.
type Segment struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	TriggerMarker  *Marker `json:"trigger_marker"`
	Enabled        bool    `json:"enabled"`
	ManualAdjusted bool    `json:"manual_adjusted"`
}

// SegmentUpdate is a partial time-bounds edit; only set fields are sent.
type SegmentUpdate struct {
	Start *float64 `json:"start,omitempty"`
	End   *float64 `json:"end,omitempty"`
}

// AnalysisStatus is the polling response for an in-flight analysis.
type AnalysisStatus struct {
	Status       ProjectStatus `json:"status"`
	Progress     float64       `json:"progress"`
	ErrorMessage *string       `json:"error_message"`
}

// projectCreate is the create-project request body.
type projectCreate struct {
	Name     string           `json:"name"`
	Settings *ProjectSettings `json:"settings,omitempty"`
}
