package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func testClient(url string) *Client {
	return New(url, zap.NewNop())
}

func TestListProjects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.Header.Get("X-Clipflow-Request-Id") == "" {
			t.Error("expected X-Clipflow-Request-Id header")
		}
		w.Write([]byte(`[{"id":"proj_1","name":"demo","status":"analyzed","progress":1.0}]`))
	}))
	defer server.Close()

	projects, err := testClient(server.URL).ListProjects(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("projects = %d, want 1", len(projects))
	}
	if projects[0].ID != "proj_1" || projects[0].Status != StatusAnalyzed {
		t.Errorf("unexpected project: %+v", projects[0])
	}
}

func TestCreateProject_OmitsNilSettings(t *testing.T) {
	var received map[string]json.RawMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
		w.Write([]byte(`{"id":"proj_2","name":"new cut","status":"created"}`))
	}))
	defer server.Close()

	project, err := testClient(server.URL).CreateProject(context.Background(), "new cut", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project.ID != "proj_2" {
		t.Errorf("id = %q, want proj_2", project.ID)
	}
	if _, ok := received["settings"]; ok {
		t.Error("nil settings must be omitted from the request body")
	}
	var name string
	json.Unmarshal(received["name"], &name)
	if name != "new cut" {
		t.Errorf("name = %q, want %q", name, "new cut")
	}
}

func TestUpdateSegment_SendsOnlyChangedField(t *testing.T) {
	var received map[string]json.RawMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/api/projects/proj_1/segments/seg_a" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
		w.Write([]byte(`{"id":"seg_a","type":"keep","start":3.5,"end":9.0,"enabled":true,"manual_adjusted":true}`))
	}))
	defer server.Close()

	start := 3.5
	segment, err := testClient(server.URL).UpdateSegment(context.Background(), "proj_1", "seg_a", SegmentUpdate{Start: &start})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := received["end"]; ok {
		t.Error("unset end must not be sent in a partial update")
	}
	if _, ok := received["start"]; !ok {
		t.Error("start must be present in the partial update")
	}
	if !segment.ManualAdjusted {
		t.Error("expected the backend's manual_adjusted flag to be adopted")
	}
}

func TestToggleSegment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/api/projects/proj_1/segments/seg_a/toggle" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"seg_a","type":"keep","start":0,"end":5,"enabled":false,"manual_adjusted":false}`))
	}))
	defer server.Close()

	segment, err := testClient(server.URL).ToggleSegment(context.Background(), "proj_1", "seg_a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if segment.Enabled {
		t.Error("expected enabled=false from the backend record")
	}
}

func TestAPIError_SurfacesBackendDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"project not found"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetProject(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Detail() != "project not found" {
		t.Errorf("detail = %q, want backend detail text", apiErr.Detail())
	}
}

func TestAPIError_RawBodyFallback(t *testing.T) {
	e := &APIError{StatusCode: 502, Body: "upstream exploded"}
	if e.Detail() != "upstream exploded" {
		t.Errorf("detail = %q, want raw body", e.Detail())
	}
}

func TestUploadVideo_MultipartFileField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "take01.mp4")
	if err := os.WriteFile(path, []byte("not really a video"), 0o644); err != nil {
		t.Fatal(err)
	}

	var gotFilename, gotContent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/proj_1/upload" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form field file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		data, _ := io.ReadAll(file)
		gotContent = string(data)
		w.Write([]byte(`{"message":"ok","filename":"take01.mp4"}`))
	}))
	defer server.Close()

	if err := testClient(server.URL).UploadVideo(context.Background(), "proj_1", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotFilename != "take01.mp4" {
		t.Errorf("filename = %q, want take01.mp4", gotFilename)
	}
	if gotContent != "not really a video" {
		t.Errorf("content = %q", gotContent)
	}
}

func TestUploadVideo_RejectedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"unsupported file format: .txt"}`))
	}))
	defer server.Close()

	err := testClient(server.URL).UploadVideo(context.Background(), "proj_1", path)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if !strings.Contains(apiErr.Detail(), "unsupported file format") {
		t.Errorf("detail = %q", apiErr.Detail())
	}
}

func TestExport_ReturnsPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/proj_1/export/edl" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		w.Write([]byte("TITLE: demo_clipflow\n"))
	}))
	defer server.Close()

	payload, err := testClient(server.URL).Export(context.Background(), "proj_1", "edl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(payload), "TITLE:") {
		t.Errorf("payload = %q", payload)
	}
}

func TestExportVideoURL(t *testing.T) {
	c := testClient("http://localhost:8000")
	want := "http://localhost:8000/api/projects/proj_9/export/video"
	if got := c.ExportVideoURL("proj_9"); got != want {
		t.Errorf("url = %q, want %q", got, want)
	}
}

func TestAnalysisStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/proj_1/status" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":"analyzing","progress":0.45,"error_message":null}`))
	}))
	defer server.Close()

	status, err := testClient(server.URL).AnalysisStatus(context.Background(), "proj_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Status != StatusAnalyzing || status.Progress != 0.45 {
		t.Errorf("status = %+v", status)
	}
}

func TestGetUserSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/settings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"default_language":"zh","default_model_size":"base","default_settings":{"mode":"backtrack","language":"zh","model_size":"base","ng_keywords":["NG"],"ok_keywords":["OK"],"start_keywords":[],"end_keywords":[],"pre_buffer":0.5,"post_buffer":0.3,"silence_threshold_db":-40,"silence_min_duration":1.5}}`))
	}))
	defer server.Close()

	settings, err := testClient(server.URL).GetUserSettings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.DefaultSettings.Mode != SliceBacktrack {
		t.Errorf("mode = %q", settings.DefaultSettings.Mode)
	}
}
