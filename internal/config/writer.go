package config

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/josephgoksu/gantry/types"
)

// quoteYAMLValue quotes a string value for safe YAML serialization.
// Handles special characters: :, #, ", ', newlines, etc.
func quoteYAMLValue(value string) string {
	// If value contains any YAML special characters, wrap in double quotes
	// and escape internal double quotes
	needsQuoting := strings.ContainsAny(value, ":{}[]&*#?|-<>=!%@`\"'\n\r\t ")
	if !needsQuoting {
		return value
	}
	// Escape backslashes first, then double quotes
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}

// WriteStarterConfig writes a commented starter config for a fresh workspace.
// An existing file is left untouched so re-running init never clobbers user
// edits. Returns true when a file was written.
func WriteStarterConfig(fs afero.Fs, path string, cfg types.AppConfig) (bool, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	content := fmt.Sprintf(`# gantry workspace configuration
# Values here can be overridden with GANTRY_* environment variables,
# e.g. GANTRY_BACKUP_RETENTION=5.

workspace:
  itemsFile: %s
  logsFile: %s

backup:
  # How many numbered backups to keep per file.
  retention: %d

flow:
  # Device name recorded on synced operations.
  author: %s
`,
		quoteYAMLValue(cfg.Workspace.ItemsFile),
		quoteYAMLValue(cfg.Workspace.LogsFile),
		cfg.Backup.Retention,
		quoteYAMLValue(cfg.Flow.Author),
	)

	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write config %s: %w", path, err)
	}
	return true, nil
}
