package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/josephgoksu/gantry/graph"
	"github.com/josephgoksu/gantry/models"
)

func testRepo(t *testing.T) (*Repository, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	repo := NewRepository(fs, "/ws/items.txt", "/ws/occlude/items.txt", 3)
	writeFile(t, fs, "/ws/items.txt", itemsBanner)
	writeFile(t, fs, "/ws/occlude/items.txt", occludedItemsBanner)
	return repo, fs
}

func repoItem(t *testing.T, id, title string) models.Item {
	t.Helper()
	item, err := models.NewItem(id, title)
	if err != nil {
		t.Fatalf("NewItem(%q): %v", id, err)
	}
	return item
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo, fs := testRepo(t)

	a := repoItem(t, "write_draft", "Write the draft").
		WithStatus(models.StatusInProgress).
		WithPriority(models.PriorityHigh).
		AddTag("writing")
	b := repoItem(t, "publish", "Publish it").
		WithRelation(models.RelRequires, []string{"write_draft"})
	done := repoItem(t, "outline", "Outline the idea").
		WithStatus(models.StatusCompleted).
		WithOcclude(true)

	g := graph.New()
	for _, item := range []models.Item{a, b, done} {
		g.Add(item)
	}
	if err := repo.Save(g); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// The active file carries the banner and only non-occluded items.
	active := readFile(t, fs, "/ws/items.txt")
	if !strings.HasPrefix(active, itemsBanner) {
		t.Error("active file is missing its banner")
	}
	if strings.Contains(active, "outline") {
		t.Error("occluded item written to the active file")
	}
	occluded := readFile(t, fs, "/ws/occlude/items.txt")
	if !strings.Contains(occluded, "outline") {
		t.Error("occluded item missing from the occluded file")
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 3 {
		t.Fatalf("loaded %d items, want 3", loaded.Len())
	}
	got, ok := loaded.Get("outline")
	if !ok || !got.Occlude {
		t.Errorf("outline loaded with occlude=%v, want true", got.Occlude)
	}
	got, ok = loaded.Get("publish")
	if !ok || !got.HasRelationTarget(models.RelRequires, "write_draft") {
		t.Error("publish lost its REQUIRES relation in the round trip")
	}
}

func TestSaveWritesDependenciesBeforeDependents(t *testing.T) {
	repo, fs := testRepo(t)

	g := graph.New()
	g.Add(repoItem(t, "late", "Late").WithRelation(models.RelRequires, []string{"early"}))
	g.Add(repoItem(t, "early", "Early"))
	if err := repo.Save(g); err != nil {
		t.Fatalf("Save: %v", err)
	}

	active := readFile(t, fs, "/ws/items.txt")
	if strings.Index(active, " early") > strings.Index(active, " late") {
		t.Error("dependency written after its dependent")
	}
}

func TestSaveFailsOnCycleWithoutTouchingFiles(t *testing.T) {
	repo, fs := testRepo(t)

	g := graph.New()
	g.Add(repoItem(t, "solo", "Solo"))
	if err := repo.Save(g); err != nil {
		t.Fatalf("initial Save: %v", err)
	}
	before := readFile(t, fs, "/ws/items.txt")

	bad := graph.New()
	bad.Add(repoItem(t, "a", "A").WithRelation(models.RelRequires, []string{"b"}))
	bad.Add(repoItem(t, "b", "B").WithRelation(models.RelRequires, []string{"a"}))

	err := repo.Save(bad)
	var cycleErr *graph.CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("Save returned %v, want CycleError", err)
	}
	if got := readFile(t, fs, "/ws/items.txt"); got != before {
		t.Error("failed save modified the items file")
	}
}

func TestLoadResolvesIncludes(t *testing.T) {
	repo, fs := testRepo(t)
	writeFile(t, fs, "/ws/items.txt",
		"#include extra/more.txt\n"+itemsBanner+"\n"+
			"○ local 1d \"Local item\" {}\n")
	writeFile(t, fs, "/ws/extra/more.txt",
		"○ included 2h \"Included item\" {}\n")

	g, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := g.Get("local"); !ok {
		t.Error("item from the top file missing")
	}
	item, ok := g.Get("included")
	if !ok {
		t.Fatal("item from the included file missing")
	}
	if item.Occlude {
		t.Error("item included from the active file marked occluded")
	}
}

func TestLoadLaterFilesOverrideEarlier(t *testing.T) {
	repo, fs := testRepo(t)
	writeFile(t, fs, "/ws/items.txt",
		"#include shared.txt\n"+
			"○ task 1d \"From the top file\" {}\n")
	writeFile(t, fs, "/ws/shared.txt",
		"○ task 1d \"From the include\" {}\n")

	g, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	item, ok := g.Get("task")
	if !ok {
		t.Fatal("task missing")
	}
	if item.Title != "From the top file" {
		t.Errorf("Title = %q, want the including file to win", item.Title)
	}
}

func TestLoadReportsCircularInclude(t *testing.T) {
	repo, fs := testRepo(t)
	writeFile(t, fs, "/ws/items.txt", "#include a.txt\n")
	writeFile(t, fs, "/ws/a.txt", "#include b.txt\n")
	writeFile(t, fs, "/ws/b.txt", "#include a.txt\n")

	_, err := repo.Load()
	if !errors.Is(err, ErrCircularInclude) {
		t.Fatalf("Load returned %v, want ErrCircularInclude", err)
	}
	var storeErr *StorageError
	if !errors.As(err, &storeErr) {
		t.Fatal("circular include not wrapped in a StorageError")
	}
}

func TestLoadDiamondIncludeLoadsOnce(t *testing.T) {
	repo, fs := testRepo(t)
	writeFile(t, fs, "/ws/items.txt", "#include left.txt\n#include right.txt\n")
	writeFile(t, fs, "/ws/left.txt", "#include deep.txt\n")
	writeFile(t, fs, "/ws/right.txt", "#include deep.txt\n")
	writeFile(t, fs, "/ws/deep.txt", "○ shared 1d \"Deep item\" {}\n")

	g, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := g.Get("shared"); !ok {
		t.Error("diamond-included item missing")
	}
}

func TestLoadSkipsUnparseableLines(t *testing.T) {
	repo, fs := testRepo(t)
	writeFile(t, fs, "/ws/items.txt",
		"○ good 1d \"Fine\" {}\n"+
			"○ broken 1d \"No closing quote {}\n"+
			"○ also_good 30min \"Also fine\" {}\n")

	g, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Len() != 2 {
		t.Errorf("loaded %d items, want the 2 parseable ones", g.Len())
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo := NewRepository(fs, "/ws/items.txt", "/ws/occlude/items.txt", 3)

	_, err := repo.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load returned %v, want ErrNotFound", err)
	}
}

func TestAddInclude(t *testing.T) {
	repo, fs := testRepo(t)
	writeFile(t, fs, "/ws/items.txt",
		"#include first.txt\n"+itemsBanner+"\n○ task 1d \"Task\" {}\n")

	added, err := repo.AddInclude("second.txt")
	if err != nil {
		t.Fatalf("AddInclude: %v", err)
	}
	if !added {
		t.Fatal("AddInclude reported nothing added")
	}

	includes, err := repo.ListIncludes()
	if err != nil {
		t.Fatalf("ListIncludes: %v", err)
	}
	if len(includes) != 2 || includes[0] != "first.txt" || includes[1] != "second.txt" {
		t.Errorf("includes = %v, want [first.txt second.txt]", includes)
	}

	// Re-adding the same path is a no-op.
	added, err = repo.AddInclude("second.txt")
	if err != nil {
		t.Fatalf("AddInclude repeat: %v", err)
	}
	if added {
		t.Error("duplicate include reported as added")
	}
}

func TestIncludeDirectivesEndAtFirstItem(t *testing.T) {
	content := "#include top.txt\n" +
		"# a comment keeps the block open\n" +
		"#include after_comment.txt\n" +
		"○ task 1d \"Task\" {}\n" +
		"#include too_late.txt\n"

	includes := parseIncludeDirectives(content)
	if len(includes) != 2 || includes[0] != "top.txt" || includes[1] != "after_comment.txt" {
		t.Errorf("includes = %v, want directives before the first item only", includes)
	}
}

func TestIncludeDirectivesEndAtBlankLine(t *testing.T) {
	content := "#include top.txt\n\n#include too_late.txt\n"
	includes := parseIncludeDirectives(content)
	if len(includes) != 1 || includes[0] != "top.txt" {
		t.Errorf("includes = %v, want scanning to stop at the blank line", includes)
	}
}

func TestIncludesOfResolvesRelativePaths(t *testing.T) {
	repo, fs := testRepo(t)
	writeFile(t, fs, "/ws/items.txt",
		"#include extra/more.txt\n#include /abs/items.txt\n"+itemsBanner)

	includes, err := repo.IncludesOf("/ws/items.txt")
	if err != nil {
		t.Fatalf("IncludesOf: %v", err)
	}
	want := []string{"/ws/extra/more.txt", "/abs/items.txt"}
	if len(includes) != len(want) {
		t.Fatalf("got %d includes, want %d: %v", len(includes), len(want), includes)
	}
	for i, path := range want {
		if includes[i] != path {
			t.Errorf("includes[%d] = %q, want %q", i, includes[i], path)
		}
	}

	if _, err := repo.IncludesOf("/ws/missing.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("IncludesOf on missing file returned %v, want ErrNotFound", err)
	}
}
