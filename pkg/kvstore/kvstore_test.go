package kvstore_test

import (
	"testing"

	"github.com/epicurean/epicurean/pkg/kvstore"
)

func roundTrip(t *testing.T, s kvstore.Store) {
	t.Helper()

	if _, found, err := s.Get("cart:1"); err != nil || found {
		t.Fatalf("expected clean miss, got found=%v err=%v", found, err)
	}

	if err := s.Set("cart:1", `[{"itemId":"m1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, found, err := s.Get("cart:1")
	if err != nil || !found {
		t.Fatalf("expected hit, got found=%v err=%v", found, err)
	}
	if v != `[{"itemId":"m1"}]` {
		t.Errorf("value mangled: %q", v)
	}

	if err := s.Set("cart:1", "[]"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := s.Get("cart:1"); v != "[]" {
		t.Errorf("overwrite not visible: %q", v)
	}

	if err := s.Delete("cart:1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := s.Get("cart:1"); found {
		t.Error("expected miss after delete")
	}
	if err := s.Delete("cart:1"); err != nil {
		t.Errorf("deleting an absent key should be a no-op, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	roundTrip(t, kvstore.NewMemoryStore())
}

func TestDiskStore(t *testing.T) {
	roundTrip(t, kvstore.NewDiskStore(t.TempDir()))
}

func TestDiskStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s := kvstore.NewDiskStore(dir)
	if err := s.Set("cart:guest:abc", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened := kvstore.NewDiskStore(dir)
	v, found, err := reopened.Get("cart:guest:abc")
	if err != nil || !found {
		t.Fatalf("expected persisted value, got found=%v err=%v", found, err)
	}
	if v != "[]" {
		t.Errorf("value mangled: %q", v)
	}
}
