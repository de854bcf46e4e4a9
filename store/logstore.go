package store

import (
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"github.com/josephgoksu/gantry/models"
)

// LogStore persists the log collection across an active file and an
// occluded file, one JSON line per entry.
type LogStore struct {
	fs          afero.Fs
	writer      *AtomicWriter
	logsPath    string
	occludePath string
}

// NewLogStore returns a store over the two log files. retention governs
// how many numbered backups each save keeps per file.
func NewLogStore(fs afero.Fs, logsPath, occludePath string, retention int) *LogStore {
	return &LogStore{
		fs:          fs,
		writer:      NewAtomicWriter(fs, NewBackupManager(fs, retention)),
		logsPath:    logsPath,
		occludePath: occludePath,
	}
}

// NewOsLogStore returns a log store on the real filesystem.
func NewOsLogStore(logsPath, occludePath string, retention int) *LogStore {
	return NewLogStore(afero.NewOsFs(), logsPath, occludePath, retention)
}

// LogsPath returns the active logs file path.
func (s *LogStore) LogsPath() string { return s.logsPath }

// OccludePath returns the occluded logs file path.
func (s *LogStore) OccludePath() string { return s.occludePath }

// Load reads both log files into one time-ordered collection. Entries from
// the occluded file carry the occlude flag. Lines that are not valid
// entries are skipped with a warning.
func (s *LogStore) Load() (*models.LogCollection, error) {
	var entries []models.LogEntry
	sources := []struct {
		path     string
		occluded bool
	}{
		{s.logsPath, false},
		{s.occludePath, true},
	}
	for _, src := range sources {
		content, err := afero.ReadFile(s.fs, src.path)
		if err != nil {
			return nil, storageErr("load", src.path, ErrNotFound)
		}
		for i, line := range strings.Split(string(content), "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			entry, err := models.ParseLogEntry(trimmed, src.occluded)
			if err != nil {
				slog.Warn("skipping invalid log line", "path", src.path, "line", i+1, "error", err)
				continue
			}
			entries = append(entries, entry)
		}
	}
	return models.NewLogCollection(entries...), nil
}

// Save writes the collection back, partitioned by the occlude flag, as one
// atomic transaction.
func (s *LogStore) Save(c *models.LogCollection) error {
	var active, occluded strings.Builder
	for _, entry := range c.Entries() {
		if entry.Occlude {
			occluded.WriteString(entry.Line() + "\n")
		} else {
			active.WriteString(entry.Line() + "\n")
		}
	}
	return s.writer.WriteFiles([]FileWrite{
		{Path: s.logsPath, Content: []byte(active.String())},
		{Path: s.occludePath, Content: []byte(occluded.String())},
	})
}
