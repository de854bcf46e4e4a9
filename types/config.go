/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	Config    string          `mapstructure:"config"`
	Workspace WorkspaceConfig `mapstructure:"workspace" validate:"required"`
	Backup    BackupConfig    `mapstructure:"backup" validate:"required"`
	Flow      FlowConfig      `mapstructure:"flow" validate:"omitempty"`
	Output    OutputConfig    `mapstructure:"output"`
}

// WorkspaceConfig holds workspace location settings
type WorkspaceConfig struct {
	// Directory overrides workspace discovery when set; empty means
	// search ./.gantry then $HOME/.gantry.
	Directory string `mapstructure:"directory" validate:"omitempty"`
	ItemsFile string `mapstructure:"itemsFile" validate:"required"`
	LogsFile  string `mapstructure:"logsFile" validate:"required"`
}

// BackupConfig holds backup retention settings
type BackupConfig struct {
	Retention int `mapstructure:"retention" validate:"min=1,max=100"`
}

// FlowConfig holds operation-stream settings for cross-device sync
type FlowConfig struct {
	// Directory holds the operation stream; empty keeps it under the
	// workspace root.
	Directory string `mapstructure:"directory" validate:"omitempty"`
	// Author identifies this device in operation records; empty falls
	// back to the hostname.
	Author string `mapstructure:"author" validate:"omitempty,min=1"`
}

// OutputConfig holds presentation settings
type OutputConfig struct {
	Quiet bool `mapstructure:"quiet"`
	JSON  bool `mapstructure:"json"`
}
