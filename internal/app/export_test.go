package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExportFilename(t *testing.T) {
	if got := exportFilename("demo", "edl"); got != "demo.edl" {
		t.Errorf("filename = %q, want demo.edl", got)
	}
	if got := exportFilename("", "srt"); got != "export.srt" {
		t.Errorf("filename = %q, want the export fallback", got)
	}
}

func TestSaveExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")

	path, err := saveExport(dir, "demo", "edl", []byte("TITLE: demo_clipflow\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "demo.edl" {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "TITLE: demo_clipflow\n" {
		t.Errorf("content = %q", data)
	}
}
