package store

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/josephgoksu/gantry/graph"
	"github.com/josephgoksu/gantry/models"
)

const includePrefix = "#include "

// Repository persists the item graph split across an active items file and
// an occluded items file. Loading resolves #include directives recursively
// and merges everything into one graph; saving sorts topologically,
// partitions by the occlude flag and writes both files as one atomic
// transaction.
type Repository struct {
	fs          afero.Fs
	writer      *AtomicWriter
	itemsPath   string
	occludePath string
}

// NewRepository returns a repository over the two item files. retention
// governs how many numbered backups each save keeps per file.
func NewRepository(fs afero.Fs, itemsPath, occludePath string, retention int) *Repository {
	return &Repository{
		fs:          fs,
		writer:      NewAtomicWriter(fs, NewBackupManager(fs, retention)),
		itemsPath:   itemsPath,
		occludePath: occludePath,
	}
}

// NewOsRepository returns a repository on the real filesystem.
func NewOsRepository(itemsPath, occludePath string, retention int) *Repository {
	return NewRepository(afero.NewOsFs(), itemsPath, occludePath, retention)
}

// ItemsPath returns the active items file path.
func (r *Repository) ItemsPath() string { return r.itemsPath }

// OccludePath returns the occluded items file path.
func (r *Repository) OccludePath() string { return r.occludePath }

// Backups exposes the backup manager for the repository's files.
func (r *Repository) Backups() *BackupManager { return r.writer.Backups() }

// Load reads both item files, resolves their include directives and merges
// the results into a single graph, later loads overwriting earlier ones
// with the same id. Items read from the occluded file (and anything it
// includes) carry the occlude flag. Lines that fail to parse are skipped
// with a warning so one bad line does not take the whole file down.
func (r *Repository) Load() (*graph.Graph, error) {
	g := graph.New()
	visited := make(map[string]bool)
	sources := []struct {
		path     string
		occluded bool
	}{
		{r.itemsPath, false},
		{r.occludePath, true},
	}
	for _, src := range sources {
		exists, err := afero.Exists(r.fs, src.path)
		if err != nil {
			return nil, storageErr("load", src.path, err)
		}
		if !exists {
			return nil, storageErr("load", src.path, ErrNotFound)
		}
		sub, err := r.loadFile(src.path, src.occluded, visited, make(map[string]bool))
		if err != nil {
			return nil, err
		}
		g.Merge(sub)
	}
	return g, nil
}

// loadFile parses one items file and, depth first, everything it includes.
// visited tracks fully loaded paths so diamonds load once; stack tracks the
// active resolution chain so a recurring path is reported as a circular
// include instead of recursing forever. A missing included file is skipped
// with a warning; the top-level files are checked by Load before it gets
// here.
func (r *Repository) loadFile(path string, occluded bool, visited, stack map[string]bool) (*graph.Graph, error) {
	key := filepath.Clean(path)
	if stack[key] {
		return nil, storageErr("load", path, ErrCircularInclude)
	}
	if visited[key] {
		slog.Debug("include already loaded, skipping", "path", path)
		return graph.New(), nil
	}
	stack[key] = true
	defer delete(stack, key)

	content, err := afero.ReadFile(r.fs, path)
	if err != nil {
		slog.Warn("skipping unreadable include", "path", path, "error", err)
		return graph.New(), nil
	}

	g := graph.New()
	dir := filepath.Dir(path)
	for _, include := range parseIncludeDirectives(string(content)) {
		if !filepath.IsAbs(include) {
			include = filepath.Join(dir, include)
		}
		sub, err := r.loadFile(include, occluded, visited, stack)
		if err != nil {
			return nil, err
		}
		g.Merge(sub)
	}

	for i, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		item, err := models.ParseItem(trimmed, occluded)
		if err != nil {
			slog.Warn("skipping unparseable item line", "path", path, "line", i+1, "error", err)
			continue
		}
		g.Add(item)
	}

	visited[key] = true
	return g, nil
}

// Save writes the graph back to both item files. The topological sort runs
// first so a cycle fails the save before anything touches disk; the two
// buffers then go through the atomic writer as one transaction.
func (r *Repository) Save(g *graph.Graph) error {
	sorted, err := g.TopologicalSort()
	if err != nil {
		return err
	}

	var active, occluded strings.Builder
	active.WriteString(itemsBanner + "\n")
	occluded.WriteString(occludedItemsBanner + "\n")
	for _, item := range sorted {
		if item.Occlude {
			occluded.WriteString(item.String() + "\n")
		} else {
			active.WriteString(item.String() + "\n")
		}
	}

	return r.writer.WriteFiles([]FileWrite{
		{Path: r.itemsPath, Content: []byte(active.String())},
		{Path: r.occludePath, Content: []byte(occluded.String())},
	})
}

// ListIncludes returns the include directives at the top of the active
// items file, in order, unresolved.
func (r *Repository) ListIncludes() ([]string, error) {
	content, err := afero.ReadFile(r.fs, r.itemsPath)
	if err != nil {
		return nil, storageErr("load", r.itemsPath, ErrNotFound)
	}
	return parseIncludeDirectives(string(content)), nil
}

// IncludesOf lists the include directives of one file, resolved against
// that file's directory. It does not recurse; callers walking a chain call
// it per file and keep their own visited set.
func (r *Repository) IncludesOf(path string) ([]string, error) {
	content, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, storageErr("read", path, ErrNotFound)
	}
	var resolved []string
	for _, include := range parseIncludeDirectives(string(content)) {
		if !filepath.IsAbs(include) {
			include = filepath.Join(filepath.Dir(path), include)
		}
		resolved = append(resolved, include)
	}
	return resolved, nil
}

// AddInclude inserts an include directive into the active items file,
// after any directives already present. It reports false when the
// directive is already there.
func (r *Repository) AddInclude(include string) (bool, error) {
	content, err := afero.ReadFile(r.fs, r.itemsPath)
	if err != nil {
		return false, storageErr("load", r.itemsPath, ErrNotFound)
	}

	directive := includePrefix + include
	lines := strings.Split(string(content), "\n")
	insert := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, includePrefix) {
			if strings.TrimSpace(trimmed[len(includePrefix):]) == include {
				return false, nil
			}
			insert = i + 1
			continue
		}
		if trimmed == "" || !strings.HasPrefix(trimmed, "#") {
			break
		}
	}

	updated := make([]string, 0, len(lines)+1)
	updated = append(updated, lines[:insert]...)
	updated = append(updated, directive)
	updated = append(updated, lines[insert:]...)
	if err := r.writer.WriteFile(r.itemsPath, []byte(strings.Join(updated, "\n"))); err != nil {
		return false, err
	}
	return true, nil
}

// parseIncludeDirectives scans the leading comment block of a file for
// #include lines. Comment lines continue the block; the first blank or
// item line ends it, so directives past the file header are ignored.
func parseIncludeDirectives(content string) []string {
	var includes []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, includePrefix) {
			if path := strings.TrimSpace(trimmed[len(includePrefix):]); path != "" {
				includes = append(includes, path)
			}
			continue
		}
		if !strings.HasPrefix(trimmed, "#") {
			break
		}
	}
	return includes
}
