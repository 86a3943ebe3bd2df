package memory

import (
	"context"
	"testing"
)

func TestKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewKV()

	if _, ok, _ := kv.Get(ctx, "quiz_admin_token"); ok {
		t.Fatalf("fresh store should be empty")
	}
	if err := kv.Set(ctx, "quiz_admin_token", "tok"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, _ := kv.Get(ctx, "quiz_admin_token")
	if !ok || value != "tok" {
		t.Fatalf("get = %q/%v", value, ok)
	}
	if err := kv.Delete(ctx, "quiz_admin_token"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "quiz_admin_token"); ok {
		t.Fatalf("expected key gone after delete")
	}
}
