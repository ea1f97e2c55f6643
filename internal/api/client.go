// Package api is the HTTP client for the ClipFlow backend. All project,
// transcript, segment, and export operations go through here; the backend
// owns every record and the client adopts whatever it returns.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// APIError carries a non-2xx backend response. The backend detail text is
// surfaced verbatim to the user.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned HTTP %d: %s", e.StatusCode, e.Detail())
}

// Detail extracts the FastAPI-style {"detail": ...} message when the body
// carries one, falling back to the raw body text.
func (e *APIError) Detail() string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return e.Body
}

// Client talks to a single ClipFlow backend origin.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a Client for the given base URL. No request timeout is
// configured; a hung request hangs its caller.
func New(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// do runs one JSON round trip. A non-nil in is marshaled as the request
// body, a non-nil out receives the decoded 2xx response body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Clipflow-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// ListProjects returns every project on the backend.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project. A nil settings accepts backend defaults.
func (c *Client) CreateProject(ctx context.Context, name string, settings *ProjectSettings) (*Project, error) {
	var project Project
	body := projectCreate{Name: name, Settings: settings}
	if err := c.do(ctx, http.MethodPost, "/api/projects", body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProject fetches one project by id.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+projectID, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project and all its server-side data.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+projectID, nil, nil)
}

// UploadVideo streams a source video to the project as a multipart form
// with field name "file". The backend validates the file extension.
func (c *Client) UploadVideo(ctx context.Context, projectID, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open video: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(filePath))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	url := fmt.Sprintf("%s/api/projects/%s/upload", c.baseURL, projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Clipflow-Request-Id", uuid.NewString())

	c.logger.Info("uploading video",
		zap.String("project_id", projectID),
		zap.String("file", filepath.Base(filePath)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload video: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}

// StartAnalysis triggers background analysis for an uploaded project.
func (c *Client) StartAnalysis(ctx context.Context, projectID string) error {
	return c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/analyze", nil, nil)
}

// AnalysisStatus polls the analysis progress of a project.
func (c *Client) AnalysisStatus(ctx context.Context, projectID string) (*AnalysisStatus, error) {
	var status AnalysisStatus
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+projectID+"/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Transcript fetches the full transcript for an analyzed project.
func (c *Client) Transcript(ctx context.Context, projectID string) ([]TranscriptSegment, error) {
	var transcript []TranscriptSegment
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+projectID+"/transcript", nil, &transcript); err != nil {
		return nil, err
	}
	return transcript, nil
}

// Segments fetches the cut segments in backend order.
func (c *Client) Segments(ctx context.Context, projectID string) ([]Segment, error) {
	var segments []Segment
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+projectID+"/segments", nil, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// UpdateSegment sends a partial time-bounds edit and returns the
// authoritative record. The backend is the sole validator of the bounds.
func (c *Client) UpdateSegment(ctx context.Context, projectID, segmentID string, update SegmentUpdate) (*Segment, error) {
	var segment Segment
	path := fmt.Sprintf("/api/projects/%s/segments/%s", projectID, segmentID)
	if err := c.do(ctx, http.MethodPatch, path, update, &segment); err != nil {
		return nil, err
	}
	return &segment, nil
}

// ToggleSegment flips a segment's enabled flag on the backend and returns
// the authoritative record.
func (c *Client) ToggleSegment(ctx context.Context, projectID, segmentID string) (*Segment, error) {
	var segment Segment
	path := fmt.Sprintf("/api/projects/%s/segments/%s/toggle", projectID, segmentID)
	if err := c.do(ctx, http.MethodPut, path, nil, &segment); err != nil {
		return nil, err
	}
	return &segment, nil
}

// Export requests an edl, xml, or srt export and returns the file payload.
func (c *Client) Export(ctx context.Context, projectID, format string) ([]byte, error) {
	url := fmt.Sprintf("%s/api/projects/%s/export/%s", c.baseURL, projectID, format)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Clipflow-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read export payload: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(payload)}
	}

	c.logger.Info("export downloaded",
		zap.String("project_id", projectID),
		zap.String("format", format),
		zap.Int("bytes", len(payload)),
	)
	return payload, nil
}

// ExportVideoURL returns the navigation target for the rendered-video
// export. The client never fetches it; the backend streams the file to
// whatever opens the URL.
func (c *Client) ExportVideoURL(projectID string) string {
	return fmt.Sprintf("%s/api/projects/%s/export/video", c.baseURL, projectID)
}

// GetUserSettings fetches the global default analysis preferences.
func (c *Client) GetUserSettings(ctx context.Context) (*UserSettings, error) {
	var settings UserSettings
	if err := c.do(ctx, http.MethodGet, "/api/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateUserSettings replaces the global default analysis preferences.
func (c *Client) UpdateUserSettings(ctx context.Context, settings UserSettings) (*UserSettings, error) {
	var updated UserSettings
	if err := c.do(ctx, http.MethodPut, "/api/settings", settings, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
