package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	data := []byte(`{"algorithm":"tree"}`)
	if err := c.Set(ctx, "key1", data, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, found, err := c.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected hit")
	}
	if !bytes.Equal(got, data) {
		t.Errorf("data = %s, want %s", got, data)
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	_, found, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("expected miss for absent key")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	_, found, err := c.Get(ctx, "short")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := c.Get(ctx, "k"); found {
		t.Error("deleted key should be a miss")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete of absent key: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found, err := c.Get(ctx, "k"); found || err != nil {
		t.Errorf("Get = found %v err %v, want miss", found, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestLayoutKeyDeterministic(t *testing.T) {
	k := NewDefaultKeyer()
	opts := LayoutKeyOpts{Algorithm: "tree", Width: 800, Height: 600, Overlap: true, Center: true}

	if k.LayoutKey("hash1", opts) != k.LayoutKey("hash1", opts) {
		t.Error("same inputs should produce the same key")
	}
}

func TestLayoutKeySensitivity(t *testing.T) {
	k := NewDefaultKeyer()
	base := LayoutKeyOpts{Algorithm: "tree", Width: 800, Height: 600}
	baseKey := k.LayoutKey("hash1", base)

	variants := []LayoutKeyOpts{
		{Algorithm: "force", Width: 800, Height: 600},
		{Algorithm: "tree", Width: 1024, Height: 600},
		{Algorithm: "tree", Width: 800, Height: 600, Seed: 1},
		{Algorithm: "tree", Width: 800, Height: 600, Ticks: 100},
		{Algorithm: "tree", Width: 800, Height: 600, Overlap: true},
	}
	for i, v := range variants {
		if k.LayoutKey("hash1", v) == baseKey {
			t.Errorf("variant %d should change the key", i)
		}
	}

	if k.LayoutKey("hash2", base) == baseKey {
		t.Error("different graph hash should change the key")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant-a:")
	opts := LayoutKeyOpts{Algorithm: "tree"}

	key := scoped.LayoutKey("h", opts)
	if key == inner.LayoutKey("h", opts) {
		t.Error("scoped key should differ from the unscoped key")
	}
	if key[:9] != "tenant-a:" {
		t.Errorf("key = %q, want tenant-a: prefix", key)
	}
}
