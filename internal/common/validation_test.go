package common

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"resumeforge/internal/errors"
)

func TestValidateOutputFormat(t *testing.T) {
	supported := []string{"json", "text", "markdown"}

	tests := []struct {
		name    string
		format  string
		formats []string
		wantErr bool
	}{
		{"supported json", "json", supported, false},
		{"supported markdown", "markdown", supported, false},
		{"unsupported yaml", "yaml", supported, true},
		{"empty format", "", supported, true},
		{"no restrictions", "anything", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFileProcessorRoundTrip(t *testing.T) {
	fp := NewFileProcessor(errors.NewLogger(slog.LevelError))
	path := filepath.Join(t.TempDir(), "out", "result.json")

	if err := fp.WriteFile(path, "{\"ok\": true}"); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := fp.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got != "{\"ok\": true}" {
		t.Errorf("content = %q", got)
	}
}

func TestFileProcessorReadMissing(t *testing.T) {
	fp := NewFileProcessor(errors.NewLogger(slog.LevelError))

	_, err := fp.ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeFileNotFound {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestValidateAndReadDocuments(t *testing.T) {
	fp := NewFileProcessor(errors.NewLogger(slog.LevelError))
	dir := t.TempDir()

	resume := filepath.Join(dir, "resume.txt")
	job := filepath.Join(dir, "job.md")
	if err := os.WriteFile(resume, []byte("resume text"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(job, []byte("job text"), 0o600); err != nil {
		t.Fatal(err)
	}

	contents, err := fp.ValidateAndReadDocuments(resume, job)
	if err != nil {
		t.Fatalf("ValidateAndReadDocuments() error = %v", err)
	}
	if len(contents) != 2 || contents[0] != "resume text" || contents[1] != "job text" {
		t.Errorf("contents = %v", contents)
	}
}

func TestValidateAndReadDocumentsInvalid(t *testing.T) {
	fp := NewFileProcessor(errors.NewLogger(slog.LevelError))

	if _, err := fp.ValidateAndReadDocuments(""); err == nil {
		t.Error("expected error for empty filename")
	}
	if _, err := fp.ValidateAndReadDocuments(t.TempDir()); err == nil {
		t.Error("expected error for directory path")
	}
}
