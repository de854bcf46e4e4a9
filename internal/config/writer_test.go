package config

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"

	"github.com/josephgoksu/gantry/types"
)

func TestQuoteYAMLValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple string no quoting needed",
			input: "simple",
			want:  "simple",
		},
		{
			name:  "string with colon",
			input: "has:colon",
			want:  `"has:colon"`,
		},
		{
			name:  "string with hash",
			input: "has#hash",
			want:  `"has#hash"`,
		},
		{
			name:  "string with space",
			input: "has space",
			want:  `"has space"`,
		},
		{
			name:  "string with double quote",
			input: `has"quote`,
			want:  `"has\"quote"`,
		},
		{
			name:  "string with newline",
			input: "has\nnewline",
			want:  `"has\nnewline"`,
		},
		{
			name:  "backslash alone doesn't need quoting",
			input: `has\backslash`,
			want:  `has\backslash`,
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "just alphanumeric",
			input: "abc123XYZ",
			want:  "abc123XYZ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quoteYAMLValue(tt.input)
			if got != tt.want {
				t.Errorf("quoteYAMLValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func starterAppConfig() types.AppConfig {
	return types.AppConfig{
		Workspace: types.WorkspaceConfig{
			ItemsFile: "items.txt",
			LogsFile:  "logs.jsonl",
		},
		Backup: types.BackupConfig{Retention: 3},
		Flow:   types.FlowConfig{Author: "kitchen laptop"},
	}
}

func TestWriteStarterConfig_NewFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	written, err := WriteStarterConfig(fs, "/ws/.gantry.yml", starterAppConfig())
	if err != nil {
		t.Fatalf("WriteStarterConfig failed: %v", err)
	}
	if !written {
		t.Fatal("expected a fresh file to be written")
	}

	content, err := afero.ReadFile(fs, "/ws/.gantry.yml")
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	contentStr := string(content)

	if !strings.Contains(contentStr, "itemsFile: items.txt") {
		t.Errorf("Config missing 'itemsFile: items.txt', got:\n%s", contentStr)
	}
	if !strings.Contains(contentStr, "retention: 3") {
		t.Errorf("Config missing 'retention: 3', got:\n%s", contentStr)
	}
	// Author contains a space, so it must come out quoted
	if !strings.Contains(contentStr, `author: "kitchen laptop"`) {
		t.Errorf("Config should have quoted author, got:\n%s", contentStr)
	}

	// The starter file has to round-trip as valid YAML
	var parsed struct {
		Workspace struct {
			ItemsFile string `yaml:"itemsFile"`
			LogsFile  string `yaml:"logsFile"`
		} `yaml:"workspace"`
		Backup struct {
			Retention int `yaml:"retention"`
		} `yaml:"backup"`
		Flow struct {
			Author string `yaml:"author"`
		} `yaml:"flow"`
	}
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		t.Fatalf("Starter config is not valid YAML: %v", err)
	}
	if parsed.Workspace.ItemsFile != "items.txt" {
		t.Errorf("parsed itemsFile = %q, want %q", parsed.Workspace.ItemsFile, "items.txt")
	}
	if parsed.Backup.Retention != 3 {
		t.Errorf("parsed retention = %d, want 3", parsed.Backup.Retention)
	}
	if parsed.Flow.Author != "kitchen laptop" {
		t.Errorf("parsed author = %q, want %q", parsed.Flow.Author, "kitchen laptop")
	}
}

func TestWriteStarterConfig_ExistingFileUntouched(t *testing.T) {
	fs := afero.NewMemMapFs()
	original := "# hand-edited\nbackup:\n  retention: 9\n"
	if err := afero.WriteFile(fs, "/ws/.gantry.yml", []byte(original), 0o644); err != nil {
		t.Fatalf("Failed to seed config: %v", err)
	}

	written, err := WriteStarterConfig(fs, "/ws/.gantry.yml", starterAppConfig())
	if err != nil {
		t.Fatalf("WriteStarterConfig failed: %v", err)
	}
	if written {
		t.Fatal("existing file must not be rewritten")
	}

	content, err := afero.ReadFile(fs, "/ws/.gantry.yml")
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if string(content) != original {
		t.Errorf("existing config changed:\n%s", string(content))
	}
}
