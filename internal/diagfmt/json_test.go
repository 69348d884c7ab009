package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/waleedyaseen/RuneScript-sub000/internal/diag"
	"github.com/waleedyaseen/RuneScript-sub000/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("[proc,a]\n\tmes(\"unterminated\n")
	fileID := fs.AddVirtual("test.cs2", content)

	bag := diag.NewBag(10)
	d := diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 14, End: 27},
		"Unterminated string literal",
	).WithNote(source.Span{File: fileID, Start: 0, End: 8}, "in this script")
	bag.Add(d)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || output.Errors != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("unexpected output: %+v", output)
	}

	got := output.Diagnostics[0]
	if got.Severity != "ERROR" || got.Code != "LEX1002" {
		t.Errorf("severity/code = %s/%s", got.Severity, got.Code)
	}
	loc := got.Location
	if loc.File != "test.cs2" || loc.StartLine != 2 || loc.StartCol != 6 || loc.EndLine != 2 {
		t.Errorf("unexpected location: %+v", loc)
	}
	if len(got.Notes) != 1 || got.Notes[0].Message != "in this script" || got.Notes[0].Location.StartLine != 1 {
		t.Errorf("unexpected notes: %+v", got.Notes)
	}
}

// TestJSONWithoutPositions проверяет JSON без позиций строк/колонок
func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs2", []byte("[proc,a] ~b;"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevInfo, diag.LexUnknownChar,
		source.Span{File: fileID, Start: 4, End: 5}, "Info message").
		WithNote(source.Span{File: fileID}, "hidden"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}

	d := output.Diagnostics[0]
	if d.Location.StartLine != 0 {
		t.Errorf("Expected start_line to be omitted (0), got %d", d.Location.StartLine)
	}
	if d.Location.StartByte != 4 {
		t.Errorf("Expected start_byte=4, got %d", d.Location.StartByte)
	}
	if d.Notes != nil {
		t.Errorf("notes included without IncludeNotes: %+v", d.Notes)
	}
	if output.Errors != 0 {
		t.Errorf("errors = %d", output.Errors)
	}
}

// TestJSONMaxLimit проверяет ограничение количества диагностик
func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs2", []byte("test content"))

	bag := diag.NewBag(10)
	for i := range uint32(5) {
		bag.Add(diag.New(diag.SevError, diag.LexUnknownChar,
			source.Span{File: fileID, Start: i, End: i + 1}, "Error message"))
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename, Max: 3}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if output.Count != 3 || len(output.Diagnostics) != 3 {
		t.Errorf("Expected 3 diagnostics (limited), got %d", output.Count)
	}
	if output.Errors != 5 {
		t.Errorf("errors = %d, want all 5", output.Errors)
	}
}

// TestJSONPathModes проверяет различные режимы путей
func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/main.cs2", []byte("test"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar,
		source.Span{File: fileID, Start: 0, End: 1}, "Error"))

	tests := []struct {
		name     string
		pathMode PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/src/main.cs2"},
		{"Relative", PathModeRelative, "src/main.cs2"},
		{"Basename", PathModeBasename, "main.cs2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: tt.pathMode})
			if out.Diagnostics[0].Location.File != tt.expected {
				t.Errorf("Expected file=%s, got %s", tt.expected, out.Diagnostics[0].Location.File)
			}
		})
	}
}

func TestJSONEmptyBag(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, diag.NewBag(0), source.NewFileSet(), JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "{\n  \"diagnostics\": [],\n  \"count\": 0,\n  \"errors\": 0\n}\n" {
		t.Fatalf("empty output = %q", got)
	}
}
