package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tandemlist/tandem/internal/model"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "todos.json"))
}

func item(id, group, text string, p model.Priority, done bool) model.Item {
	return model.Item{ID: id, Priority: p, Group: group, Text: text, Done: done}
}

func findItem(t *testing.T, items []model.Item, id string) model.Item {
	t.Helper()
	for _, it := range items {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("item %s not found in %v", id, items)
	return model.Item{}
}

func hasItem(items []model.Item, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func TestLoadMissingFile(t *testing.T) {
	s := tempStore(t)
	items, err := s.Load()
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty collection, got %d items", len(items))
	}
}

func TestLoadMalformedFile(t *testing.T) {
	s := tempStore(t)
	if err := os.WriteFile(s.Path(), []byte("not json{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); err == nil {
		t.Fatal("expected error for malformed file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := tempStore(t)
	in := []model.Item{
		item("a", "Work", "review PR", model.PriorityHigh, false),
		item("b", "", "Buy milk", model.PriorityNone, true),
		item("c", "home", "water plants", model.PriorityLow, false),
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d items, got %d", len(in), len(out))
	}
	for _, want := range in {
		got := findItem(t, out, want.ID)
		if got.Priority != want.Priority || got.Group != want.Group ||
			got.Text != want.Text || got.Done != want.Done {
			t.Errorf("item %s drifted through save/load: got %+v want %+v",
				want.ID, got, want)
		}
	}
}

func TestSortDeterminism(t *testing.T) {
	// Apple sorts immediately before Zebra within the group, and the
	// ungrouped item sorts after all grouped items, regardless of
	// insertion order.
	orders := [][]model.Item{
		{
			item("z", "Work", "Zebra", model.PriorityNone, false),
			item("a", "Work", "Apple", model.PriorityNone, false),
			item("s", "", "Solo", model.PriorityNone, false),
		},
		{
			item("s", "", "Solo", model.PriorityNone, false),
			item("a", "Work", "Apple", model.PriorityNone, false),
			item("z", "Work", "Zebra", model.PriorityNone, false),
		},
	}
	for i, in := range orders {
		s := tempStore(t)
		if err := s.Save(in); err != nil {
			t.Fatalf("save: %v", err)
		}
		out, err := s.Load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		ids := make([]string, len(out))
		for j, it := range out {
			ids[j] = it.ID
		}
		if ids[0] != "a" || ids[1] != "z" || ids[2] != "s" {
			t.Errorf("order %d: got %v, want [a z s]", i, ids)
		}
	}
}

func TestSortPriorityMarkerIgnored(t *testing.T) {
	s := tempStore(t)
	in := []model.Item{
		item("b", "", "banana", model.PriorityHigh, false),
		item("a", "", "apple", model.PriorityNone, false),
	}
	if err := s.Save(in); err != nil {
		t.Fatal(err)
	}
	out, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if out[0].ID != "a" {
		t.Errorf("priority marker must not affect sort order: got %v first", out[0])
	}
}

// Merge safety: session A derives a copy, session B adds item X and
// saves, then A saves its edited stale copy. X must survive A's save.
func TestSaveMergesConcurrentAdditions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	a := Open(path)
	b := Open(path)

	if err := a.Save([]model.Item{item("1", "", "original", model.PriorityNone, false)}); err != nil {
		t.Fatal(err)
	}

	// A derives its working copy
	copyA, err := a.Load()
	if err != nil {
		t.Fatal(err)
	}

	// B adds X and saves
	copyB, err := b.Load()
	if err != nil {
		t.Fatal(err)
	}
	copyB = append(copyB, item("x", "", "added by B", model.PriorityNone, false))
	if err := b.Save(copyB); err != nil {
		t.Fatal(err)
	}

	// A edits its stale copy (no X) and saves
	copyA[0].Text = "edited by A"
	if err := a.Save(copyA); err != nil {
		t.Fatal(err)
	}

	final, err := Open(path).Load()
	if err != nil {
		t.Fatal(err)
	}
	if !hasItem(final, "x") {
		t.Error("B's concurrent addition was lost by A's save")
	}
	if got := findItem(t, final, "1"); got.Text != "edited by A" {
		t.Errorf("A's edit was lost: %+v", got)
	}
}

// Deleting through the merge path would resurrect the item from disk;
// the authoritative delete path must not.
func TestDeleteBypassesMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	s := Open(path)

	seed := []model.Item{
		item("i", "", "doomed", model.PriorityNone, false),
		item("j", "", "survivor", model.PriorityNone, false),
	}
	if err := s.Save(seed); err != nil {
		t.Fatal(err)
	}

	// A save whose candidate merely omits the id does NOT delete it:
	// the merge re-reads the file and appends it right back. This is
	// the documented non-guarantee that motivates Delete.
	if err := s.Save([]model.Item{seed[1]}); err != nil {
		t.Fatal(err)
	}
	afterSave, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !hasItem(afterSave, "i") {
		t.Fatal("merge-on-save unexpectedly deleted an item; delete must be a separate path")
	}

	// The authoritative path actually removes it.
	if err := s.Delete("i"); err != nil {
		t.Fatal(err)
	}
	afterDelete, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if hasItem(afterDelete, "i") {
		t.Error("authoritative delete failed to remove the item")
	}
	if !hasItem(afterDelete, "j") {
		t.Error("authoritative delete removed the wrong item")
	}
}

func TestChangedDetectsExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	a := Open(path)
	b := Open(path)

	if err := a.Save([]model.Item{item("1", "", "one", model.PriorityNone, false)}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Load(); err != nil {
		t.Fatal(err)
	}

	// No writes since B's load
	changed, err := b.Changed()
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("Changed() = true with no external write")
	}

	// A writes; B must see it
	if err := a.Save([]model.Item{
		item("1", "", "one", model.PriorityNone, false),
		item("2", "", "two", model.PriorityNone, false),
	}); err != nil {
		t.Fatal(err)
	}
	changed, err = b.Changed()
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("Changed() = false after external write")
	}
}

// A session's own write must not read back as an external change.
func TestChangedSuppressesOwnWrite(t *testing.T) {
	s := tempStore(t)
	if err := s.Save([]model.Item{item("1", "", "one", model.PriorityNone, false)}); err != nil {
		t.Fatal(err)
	}
	changed, err := s.Changed()
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("own Save reported as external change")
	}

	if err := s.Delete("1"); err != nil {
		t.Fatal(err)
	}
	changed, err = s.Changed()
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("own Delete reported as external change")
	}
}

// Records without ids get fresh ids on load, in memory only: the file
// is not rewritten, so a second load backfills different ids.
func TestLoadBackfillsMissingIDsWithoutSaving(t *testing.T) {
	s := tempStore(t)
	legacy := []byte(`[{"task":"old record","done":false}]`)
	if err := os.WriteFile(s.Path(), legacy, 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 || first[0].ID == "" {
		t.Fatalf("expected one item with a backfilled id, got %+v", first)
	}

	onDisk, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(onDisk) != string(legacy) {
		t.Error("Load must not write the file")
	}

	second, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if second[0].ID == first[0].ID {
		t.Error("backfilled ids are expected to differ between loads until a save persists them")
	}
}

func TestExtraFieldsSurviveToggle(t *testing.T) {
	s := tempStore(t)
	raw := []byte(`[{"id":"a1","task":"keep me","done":false,"origin":"other-tool"}]`)
	if err := os.WriteFile(s.Path(), raw, 0o644); err != nil {
		t.Fatal(err)
	}

	items, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	items[0].Done = true
	if err := s.Save(items); err != nil {
		t.Fatal(err)
	}

	onDisk, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(onDisk), `"origin": "other-tool"`) {
		t.Errorf("unknown field dropped on save: %s", onDisk)
	}
}
