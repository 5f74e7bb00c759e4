package extract

import (
	"errors"
	"testing"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantKey string
		wantVal any
	}{
		{
			name:    "labeled fence",
			input:   "Here is the result:\n```json\n{\"name\": \"Ada\"}\n```",
			wantKey: "name",
			wantVal: "Ada",
		},
		{
			name:    "bare fence",
			input:   "```\n{\"name\": \"Ada\"}\n```",
			wantKey: "name",
			wantVal: "Ada",
		},
		{
			name:    "no fence",
			input:   "  {\"name\": \"Ada\"}  ",
			wantKey: "name",
			wantVal: "Ada",
		},
		{
			name:    "trailing prose after closing fence",
			input:   "```json\n{\"name\": \"Ada\"}\n```\nLet me know if you need anything else!",
			wantKey: "name",
			wantVal: "Ada",
		},
		{
			name:    "braces inside string values",
			input:   "```json\n{\"summary\": \"worked on {json} tooling\"}\n```",
			wantKey: "summary",
			wantVal: "worked on {json} tooling",
		},
		{
			name:    "labeled fence wins over earlier bare fence content",
			input:   "```json\n{\"name\": \"Ada\"}\n```",
			wantKey: "name",
			wantVal: "Ada",
		},
		{
			name:    "unterminated fence",
			input:   "```json\n{\"name\": \"Ada\"}",
			wantKey: "name",
			wantVal: "Ada",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractObject(tt.input)
			if err != nil {
				t.Fatalf("ExtractObject() error = %v", err)
			}
			if got[tt.wantKey] != tt.wantVal {
				t.Errorf("got[%q] = %v, want %v", tt.wantKey, got[tt.wantKey], tt.wantVal)
			}
		})
	}
}

func TestExtractObjectMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"prose only", "I could not parse that resume, sorry."},
		{"truncated object", "```json\n{\"name\": \"Ada\"\n```"},
		{"fence with no body", "```json\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractObject(tt.input)
			if err == nil {
				t.Fatal("ExtractObject() expected error, got nil")
			}
			var extErr *ExtractionError
			if !errors.As(err, &extErr) {
				t.Fatalf("error type = %T, want *ExtractionError", err)
			}
			if extErr.Raw != tt.input {
				t.Errorf("Raw = %q, want original input preserved", extErr.Raw)
			}
		})
	}
}

func TestStripFencesPrefersLabeledFence(t *testing.T) {
	input := "```json\n{\"a\": 1}\n``` and also ```\n{\"b\": 2}\n```"
	got, err := ExtractObject(input)
	if err != nil {
		t.Fatalf("ExtractObject() error = %v", err)
	}
	if _, ok := got["a"]; !ok {
		t.Errorf("expected payload from the ```json fence, got %v", got)
	}
}
