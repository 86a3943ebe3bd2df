package file

import (
	"context"
	"path/filepath"
	"testing"
)

func TestKVPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	kv := NewKV(path)
	if err := kv.Set(ctx, "playerName", "alice"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "lastScore", "300"); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A new instance reading the same file sees the state, like a page reload.
	reopened := NewKV(path)
	value, ok, err := reopened.Get(ctx, "playerName")
	if err != nil || !ok || value != "alice" {
		t.Fatalf("get after reopen = %q/%v/%v", value, ok, err)
	}
}

func TestKVDeleteAndMiss(t *testing.T) {
	ctx := context.Background()
	kv := NewKV(filepath.Join(t.TempDir(), "state.json"))

	if _, ok, err := kv.Get(ctx, "nope"); err != nil || ok {
		t.Fatalf("missing key should be a clean miss (%v)", err)
	}
	if err := kv.Delete(ctx, "nope"); err != nil {
		t.Fatalf("deleting a missing key must be a no-op: %v", err)
	}

	if err := kv.Set(ctx, "answers", "[1,2]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Delete(ctx, "answers"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "answers"); ok {
		t.Fatalf("expected key gone after delete")
	}
}
