package types

import (
	"testing"
)

func TestAppConfig_Structure(t *testing.T) {
	config := AppConfig{
		Workspace: WorkspaceConfig{
			Directory: "/home/user/.gantry",
			ItemsFile: "items.txt",
			LogsFile:  "logs.txt",
		},
		Backup: BackupConfig{
			Retention: 3,
		},
		Flow: FlowConfig{
			Directory: "",
			Author:    "laptop",
		},
	}

	// Test basic structure
	if config.Workspace.Directory != "/home/user/.gantry" {
		t.Errorf("Workspace.Directory mismatch: got %q, want %q", config.Workspace.Directory, "/home/user/.gantry")
	}
	if config.Workspace.ItemsFile != "items.txt" {
		t.Errorf("Workspace.ItemsFile mismatch: got %q, want %q", config.Workspace.ItemsFile, "items.txt")
	}
	if config.Backup.Retention != 3 {
		t.Errorf("Backup.Retention mismatch: got %d, want %d", config.Backup.Retention, 3)
	}
	if config.Flow.Author != "laptop" {
		t.Errorf("Flow.Author mismatch: got %q, want %q", config.Flow.Author, "laptop")
	}
}

func TestWorkspaceConfig_Structure(t *testing.T) {
	config := WorkspaceConfig{
		Directory: "/test/path",
		ItemsFile: "work.txt",
		LogsFile:  "journal.txt",
	}

	if config.Directory != "/test/path" {
		t.Errorf("Directory mismatch: got %q, want %q", config.Directory, "/test/path")
	}
	if config.ItemsFile != "work.txt" {
		t.Errorf("ItemsFile mismatch: got %q, want %q", config.ItemsFile, "work.txt")
	}
	if config.LogsFile != "journal.txt" {
		t.Errorf("LogsFile mismatch: got %q, want %q", config.LogsFile, "journal.txt")
	}
}

func TestOutputConfig_Defaults(t *testing.T) {
	var config OutputConfig

	if config.Quiet {
		t.Error("Quiet should default to false")
	}
	if config.JSON {
		t.Error("JSON should default to false")
	}
}
