package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestStoreSaveReplacesAtomically(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewStore(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, found, err := s.Load(ctx, "sales_tracker_articles"); err != nil || found {
		t.Fatalf("Load before Save = found %v, err %v", found, err)
	}

	for _, v := range []string{`[]`, `[{"id":"1"}]`} {
		if err := s.Save(ctx, "sales_tracker_articles", []byte(v)); err != nil {
			t.Fatalf("Save(%s): %v", v, err)
		}
	}

	got, found, err := s.Load(ctx, "sales_tracker_articles")
	if err != nil || !found {
		t.Fatalf("Load = found %v, err %v", found, err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Errorf("Load = %s, want last saved value", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "sales_tracker_articles.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want only the record file", names)
	}
}

func TestStoreRemove(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(ctx, "missing"); err != nil {
		t.Errorf("Remove of absent key = %v, want nil", err)
	}
	if err := s.Save(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "k.json")); !os.IsNotExist(err) {
		t.Errorf("file still present after Remove: %v", err)
	}
}

func TestStoreRejectsPathKeys(t *testing.T) {
	s, err := NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), "../escape", []byte("x")); err == nil {
		t.Error("Save with a path separator in the key should fail")
	}
}
