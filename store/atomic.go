package store

import (
	"fmt"

	"github.com/spf13/afero"
)

const tempSuffix = ".temp"

// FileWrite is one target of an atomic write set.
type FileWrite struct {
	Path    string
	Content []byte
}

// AtomicWriter commits a set of files together. Every target that already
// exists is backed up first, new content goes to sibling .temp files, and
// only once every temp write has succeeded are the temps renamed into
// place. A failure at any step removes the temps and restores the targets
// from their backups, so callers observe either the old file set or the
// new one, never a mix.
//
// The backup-then-write-then-rename sequence is not safe against a second
// concurrent writer to the same paths; callers serialize access per
// workspace.
type AtomicWriter struct {
	fs      afero.Fs
	backups *BackupManager
}

// NewAtomicWriter returns a writer recording backups through backups.
func NewAtomicWriter(fs afero.Fs, backups *BackupManager) *AtomicWriter {
	return &AtomicWriter{fs: fs, backups: backups}
}

// Backups exposes the manager used for pre-write backups.
func (w *AtomicWriter) Backups() *BackupManager { return w.backups }

// WriteFile atomically replaces a single file.
func (w *AtomicWriter) WriteFile(path string, content []byte) error {
	return w.WriteFiles([]FileWrite{{Path: path, Content: content}})
}

// WriteFiles atomically replaces every listed file, or none of them.
func (w *AtomicWriter) WriteFiles(writes []FileWrite) error {
	backedUp := make(map[string]string, len(writes))
	for _, fw := range writes {
		exists, err := afero.Exists(w.fs, fw.Path)
		if err != nil {
			return storageErr("write", fw.Path, err)
		}
		if !exists {
			continue
		}
		backup, err := w.backups.Create(fw.Path)
		if err != nil {
			return err
		}
		backedUp[fw.Path] = backup
	}

	var temps []string
	fail := func(path string, cause error) error {
		for _, temp := range temps {
			_ = w.fs.Remove(temp)
		}
		for target, backup := range backedUp {
			_ = w.backups.Restore(target, backup)
		}
		return storageErr("write", path, fmt.Errorf("%w: %v", ErrWriteFailed, cause))
	}

	for _, fw := range writes {
		temp := fw.Path + tempSuffix
		if err := afero.WriteFile(w.fs, temp, fw.Content, 0o644); err != nil {
			return fail(fw.Path, err)
		}
		temps = append(temps, temp)
	}
	for i, fw := range writes {
		if err := w.fs.Rename(temps[i], fw.Path); err != nil {
			return fail(fw.Path, err)
		}
	}

	for _, fw := range writes {
		w.backups.PruneIfIdentical(fw.Path)
	}
	return nil
}
