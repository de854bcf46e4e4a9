package store

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
)

// failFs wraps a filesystem and fails writes or renames touching one path,
// to exercise mid-transaction failures.
type failFs struct {
	afero.Fs
	failOpen   string
	failRename string
}

func (f *failFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if name == f.failOpen && flag&os.O_WRONLY != 0 {
		return nil, os.ErrPermission
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *failFs) Rename(oldname, newname string) error {
	if newname == f.failRename {
		return os.ErrPermission
	}
	return f.Fs.Rename(oldname, newname)
}

func newWriter(fs afero.Fs) *AtomicWriter {
	return NewAtomicWriter(fs, NewBackupManager(fs, 3))
}

func TestWriteFilesReplacesAllTargets(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/ws/a.txt", "old a")
	w := newWriter(fs)

	err := w.WriteFiles([]FileWrite{
		{Path: "/ws/a.txt", Content: []byte("new a")},
		{Path: "/ws/b.txt", Content: []byte("new b")},
	})
	if err != nil {
		t.Fatalf("WriteFiles: %v", err)
	}

	if got := readFile(t, fs, "/ws/a.txt"); got != "new a" {
		t.Errorf("a.txt = %q, want %q", got, "new a")
	}
	if got := readFile(t, fs, "/ws/b.txt"); got != "new b" {
		t.Errorf("b.txt = %q, want %q", got, "new b")
	}

	// The pre-existing target was backed up, the new one was not.
	if got := readFile(t, fs, "/ws/a.txt.1.backup"); got != "old a" {
		t.Errorf("a.txt backup = %q, want %q", got, "old a")
	}
	if exists, _ := afero.Exists(fs, "/ws/b.txt.1.backup"); exists {
		t.Error("backup exists for a target that did not")
	}

	// No stray temp files remain.
	for _, temp := range []string{"/ws/a.txt.temp", "/ws/b.txt.temp"} {
		if exists, _ := afero.Exists(fs, temp); exists {
			t.Errorf("temp file %s left behind", temp)
		}
	}
}

func TestWriteFilesRollsBackOnTempFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, "/ws/a.txt", "old a")
	writeFile(t, base, "/ws/b.txt", "old b")
	fs := &failFs{Fs: base, failOpen: "/ws/b.txt.temp"}
	w := NewAtomicWriter(fs, NewBackupManager(fs, 3))

	err := w.WriteFiles([]FileWrite{
		{Path: "/ws/a.txt", Content: []byte("new a")},
		{Path: "/ws/b.txt", Content: []byte("new b")},
	})
	if !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("WriteFiles returned %v, want ErrWriteFailed", err)
	}

	if got := readFile(t, base, "/ws/a.txt"); got != "old a" {
		t.Errorf("a.txt = %q after failed write, want old content", got)
	}
	if got := readFile(t, base, "/ws/b.txt"); got != "old b" {
		t.Errorf("b.txt = %q after failed write, want old content", got)
	}
	if exists, _ := afero.Exists(base, "/ws/a.txt.temp"); exists {
		t.Error("temp file left behind after rollback")
	}
}

func TestWriteFilesRollsBackOnRenameFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, "/ws/a.txt", "old a")
	writeFile(t, base, "/ws/b.txt", "old b")
	fs := &failFs{Fs: base, failRename: "/ws/b.txt"}
	w := NewAtomicWriter(fs, NewBackupManager(fs, 3))

	err := w.WriteFiles([]FileWrite{
		{Path: "/ws/a.txt", Content: []byte("new a")},
		{Path: "/ws/b.txt", Content: []byte("new b")},
	})
	if !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("WriteFiles returned %v, want ErrWriteFailed", err)
	}

	// a.txt was already renamed when b.txt failed; both must show the
	// pre-call content afterwards.
	if got := readFile(t, base, "/ws/a.txt"); got != "old a" {
		t.Errorf("a.txt = %q after rollback, want old content", got)
	}
	if got := readFile(t, base, "/ws/b.txt"); got != "old b" {
		t.Errorf("b.txt = %q after rollback, want old content", got)
	}
}

func TestWriteFileSkipsBackupChurnOnNoopSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/ws/a.txt", "same")
	w := newWriter(fs)

	for i := 0; i < 3; i++ {
		if err := w.WriteFile("/ws/a.txt", []byte("same")); err != nil {
			t.Fatalf("WriteFile #%d: %v", i+1, err)
		}
	}

	if nums := backupNums(t, w.Backups(), "/ws/a.txt"); len(nums) != 0 {
		t.Errorf("no-op saves accumulated backups: %v", nums)
	}
}

func TestWriteFileKeepsBackupWhenContentChanges(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/ws/a.txt", "v1")
	w := newWriter(fs)

	if err := w.WriteFile("/ws/a.txt", []byte("v2")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if got := readFile(t, fs, "/ws/a.txt.1.backup"); got != "v1" {
		t.Errorf("backup = %q, want previous content", got)
	}
}
