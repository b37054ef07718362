package registry

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func openTemp(t *testing.T) (*Registry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.txt")
	r, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return r, path
}

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	r, _ := openTemp(t)
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
}

func TestAdd_NormalizesAndDeduplicates(t *testing.T) {
	r, _ := openTemp(t)

	added, err := r.Add("example.com")
	if err != nil || !added {
		t.Fatalf("first add = (%v, %v), want (true, nil)", added, err)
	}

	// same URL after normalization
	added, err = r.Add("https://example.com")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if added {
		t.Fatal("duplicate add reported true")
	}

	got := r.List()
	if len(got) != 1 || got[0] != "https://example.com" {
		t.Fatalf("list = %v", got)
	}
}

func TestAdd_EmptyRejected(t *testing.T) {
	r, _ := openTemp(t)
	if _, err := r.Add("   "); err == nil {
		t.Fatal("expected error for blank url")
	}
}

func TestRemove_AbsentIsFalse(t *testing.T) {
	r, _ := openTemp(t)
	removed, err := r.Remove("https://nope.example")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed {
		t.Fatal("remove of absent url reported true")
	}
}

func TestRemove_NormalizesLikeAdd(t *testing.T) {
	r, _ := openTemp(t)
	if _, err := r.Add("example.com"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	removed, err := r.Remove("example.com") // no scheme, same normalization
	if err != nil || !removed {
		t.Fatalf("Remove = (%v, %v), want (true, nil)", removed, err)
	}
	if r.Len() != 0 {
		t.Fatalf("registry not empty after remove: %v", r.List())
	}
}

func TestPersistence_SurvivesReopen(t *testing.T) {
	r, path := openTemp(t)
	for _, u := range []string{"https://a.example", "https://b.example", "https://c.example"} {
		if _, err := r.Add(u); err != nil {
			t.Fatalf("Add(%s): %v", u, err)
		}
	}
	if _, err := r.Remove("https://b.example"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	again, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := again.List()
	want := []string{"https://a.example", "https://c.example"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("after reopen: got %v, want %v", got, want)
	}
}

func TestOpen_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	body := "https://a.example\n\n   \n\thttps://b.example\t\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got := r.List()
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("list = %v", got)
	}
}

func TestAdd_WriteFailureLeavesMemoryUnchanged(t *testing.T) {
	// point the registry at a path whose parent does not exist
	path := filepath.Join(t.TempDir(), "missing-dir", "urls.txt")
	r, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := r.Add("https://a.example"); err == nil {
		t.Fatal("expected write error")
	}
	if r.Len() != 0 {
		t.Fatalf("failed add mutated memory: %v", r.List())
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	r, _ := openTemp(t)
	if _, err := r.Add("https://a.example"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got := r.List()
	got[0] = "https://tampered.example"
	if r.List()[0] != "https://a.example" {
		t.Fatal("List exposed internal slice")
	}
}
