package store

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultDirName is the workspace directory searched for in the working
// directory and then the home directory.
const DefaultDirName = ".gantry"

const (
	itemsFileName  = "items.txt"
	logsFileName   = "logs.txt"
	occludeDirName = "occlude"
	lockFileName   = "gantry.lock"
)

// Workspace is the on-disk layout of one data directory: an items file and
// a logs file at the root, their occluded counterparts under occlude/.
type Workspace struct {
	fs   afero.Fs
	Root string
	// ItemsFile and LogsFile are base names, shared between the active
	// file and its occluded counterpart.
	ItemsFile string
	LogsFile  string
}

// NewWorkspace wraps a data directory without checking that it exists.
func NewWorkspace(fs afero.Fs, root string) Workspace {
	return Workspace{fs: fs, Root: root, ItemsFile: itemsFileName, LogsFile: logsFileName}
}

// Resolve locates the workspace directory. An explicit override wins
// unconditionally; otherwise the first existing candidate of
// <cwd>/.gantry and <home>/.gantry is used.
func Resolve(fs afero.Fs, override, cwd, home string) (Workspace, error) {
	if override != "" {
		return NewWorkspace(fs, override), nil
	}
	for _, root := range []string{filepath.Join(cwd, DefaultDirName), filepath.Join(home, DefaultDirName)} {
		if ok, _ := afero.DirExists(fs, root); ok {
			return NewWorkspace(fs, root), nil
		}
	}
	return Workspace{}, storageErr("resolve", DefaultDirName, ErrNotFound)
}

// ItemsPath returns the active items file path.
func (w Workspace) ItemsPath() string { return filepath.Join(w.Root, w.ItemsFile) }

// OccludedItemsPath returns the occluded items file path.
func (w Workspace) OccludedItemsPath() string {
	return filepath.Join(w.Root, occludeDirName, w.ItemsFile)
}

// LogsPath returns the active logs file path.
func (w Workspace) LogsPath() string { return filepath.Join(w.Root, w.LogsFile) }

// OccludedLogsPath returns the occluded logs file path.
func (w Workspace) OccludedLogsPath() string {
	return filepath.Join(w.Root, occludeDirName, w.LogsFile)
}

// LockPath returns the advisory lock file guarding the workspace.
func (w Workspace) LockPath() string { return filepath.Join(w.Root, lockFileName) }

// Initialized reports whether all four workspace files exist.
func (w Workspace) Initialized() bool {
	for _, path := range []string{w.ItemsPath(), w.OccludedItemsPath(), w.LogsPath(), w.OccludedLogsPath()} {
		if ok, err := afero.Exists(w.fs, path); err != nil || !ok {
			return false
		}
	}
	return true
}

// Repository returns the item repository for this workspace.
func (w Workspace) Repository(retention int) *Repository {
	return NewRepository(w.fs, w.ItemsPath(), w.OccludedItemsPath(), retention)
}

// LogStore returns the log store for this workspace.
func (w Workspace) LogStore(retention int) *LogStore {
	return NewLogStore(w.fs, w.LogsPath(), w.OccludedLogsPath(), retention)
}

// Init creates the workspace directories and seed files, leaving anything
// that already exists alone. It reports whether any file was created, so
// running it on an initialized workspace is a detectable no-op.
func (w Workspace) Init() (bool, error) {
	for _, dir := range []string{w.Root, filepath.Join(w.Root, occludeDirName)} {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return false, storageErr("init", dir, err)
		}
	}

	seeds := []FileWrite{
		{Path: w.ItemsPath(), Content: []byte(itemsBanner)},
		{Path: w.OccludedItemsPath(), Content: []byte(occludedItemsBanner)},
		{Path: w.LogsPath(), Content: nil},
		{Path: w.OccludedLogsPath(), Content: nil},
	}
	created := false
	for _, seed := range seeds {
		exists, err := afero.Exists(w.fs, seed.Path)
		if err != nil {
			return created, storageErr("init", seed.Path, err)
		}
		if exists {
			continue
		}
		if err := afero.WriteFile(w.fs, seed.Path, seed.Content, 0o644); err != nil {
			return created, storageErr("init", seed.Path, err)
		}
		created = true
	}
	return created, nil
}
