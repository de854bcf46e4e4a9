package store

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// DefaultRetention is how many numbered backups of each file are kept.
const DefaultRetention = 3

const backupSuffix = ".backup"

// Backup is one numbered backup of a file. Numbers order backups oldest to
// newest; pruning renumbers survivors so the numbering stays contiguous
// from one.
type Backup struct {
	Path string
	Num  int
}

// BackupManager creates and prunes backups of the form <path>.<n>.backup
// next to the file they shadow. Pruning and duplicate detection are best
// effort: backups are a safety net, and a failure to tidy them never fails
// the write they protect.
type BackupManager struct {
	fs        afero.Fs
	retention int
}

// NewBackupManager returns a manager keeping at most retention backups per
// file. A retention of zero or less falls back to DefaultRetention.
func NewBackupManager(fs afero.Fs, retention int) *BackupManager {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &BackupManager{fs: fs, retention: retention}
}

// Retention reports the configured backup count.
func (m *BackupManager) Retention() int { return m.retention }

func backupPath(path string, num int) string {
	return fmt.Sprintf("%s.%d%s", path, num, backupSuffix)
}

// NextPath returns the lowest-numbered unused backup path for path.
func (m *BackupManager) NextPath(path string) string {
	for n := 1; ; n++ {
		candidate := backupPath(path, n)
		if exists, _ := afero.Exists(m.fs, candidate); !exists {
			return candidate
		}
	}
}

// List returns the backups of path ordered oldest to newest. A directory
// that cannot be read yields an empty list.
func (m *BackupManager) List(path string) []Backup {
	dir := filepath.Dir(path)
	infos, err := afero.ReadDir(m.fs, dir)
	if err != nil {
		return nil
	}
	prefix := filepath.Base(path) + "."
	var backups []Backup
	for _, info := range infos {
		name := info.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		numStr := strings.TrimSuffix(strings.TrimPrefix(name, prefix), backupSuffix)
		num, err := strconv.Atoi(numStr)
		if err != nil || num < 1 {
			continue
		}
		backups = append(backups, Backup{Path: filepath.Join(dir, name), Num: num})
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].Num < backups[j].Num })
	return backups
}

// MostRecent returns the highest-numbered backup of path.
func (m *BackupManager) MostRecent(path string) (Backup, bool) {
	backups := m.List(path)
	if len(backups) == 0 {
		return Backup{}, false
	}
	return backups[len(backups)-1], true
}

// Create copies the current content of path into the next free backup slot
// and prunes backups beyond the retention limit. It returns the path the
// new backup ends up at after pruning renumbers.
func (m *BackupManager) Create(path string) (string, error) {
	content, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return "", storageErr("backup", path, err)
	}
	target := m.NextPath(path)
	if err := afero.WriteFile(m.fs, target, content, 0o644); err != nil {
		return "", storageErr("backup", target, err)
	}
	if _, err := m.Renumber(path, m.retention); err != nil {
		// The backup itself exists; a failed tidy-up is not fatal.
		return target, nil
	}
	recent, _ := m.MostRecent(path)
	return recent.Path, nil
}

// Renumber keeps only the keep newest backups of path and renumbers the
// survivors contiguously from one, oldest first. It returns the removed
// paths. Renumbering goes through temporary names so a survivor is never
// renamed onto a slot another survivor still occupies.
func (m *BackupManager) Renumber(path string, keep int) ([]string, error) {
	if keep < 0 {
		keep = 0
	}
	backups := m.List(path)
	cut := len(backups) - keep
	if cut < 0 {
		cut = 0
	}

	var removed []string
	for _, b := range backups[:cut] {
		if err := m.fs.Remove(b.Path); err != nil {
			return removed, storageErr("prune", b.Path, err)
		}
		removed = append(removed, b.Path)
	}

	survivors := backups[cut:]
	temps := make([]string, len(survivors))
	for i, b := range survivors {
		temps[i] = fmt.Sprintf("%s%s%d", b.Path, tempSuffix, i)
		if err := m.fs.Rename(b.Path, temps[i]); err != nil {
			return removed, storageErr("prune", b.Path, err)
		}
	}
	for i, temp := range temps {
		if err := m.fs.Rename(temp, backupPath(path, i+1)); err != nil {
			return removed, storageErr("prune", temp, err)
		}
	}
	return removed, nil
}

// PruneIfIdentical deletes the most recent backup of path when its content
// matches the file itself, so saving unchanged content accumulates nothing.
func (m *BackupManager) PruneIfIdentical(path string) {
	recent, ok := m.MostRecent(path)
	if !ok {
		return
	}
	current, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return
	}
	previous, err := afero.ReadFile(m.fs, recent.Path)
	if err != nil {
		return
	}
	if bytes.Equal(current, previous) {
		_ = m.fs.Remove(recent.Path)
	}
}

// Restore copies a backup's content back over path.
func (m *BackupManager) Restore(path, backup string) error {
	content, err := afero.ReadFile(m.fs, backup)
	if err != nil {
		return storageErr("restore", backup, err)
	}
	if err := afero.WriteFile(m.fs, path, content, 0o644); err != nil {
		return storageErr("restore", path, err)
	}
	return nil
}
