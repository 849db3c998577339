package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/canopy/pkg/layout"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Layout != layout.DefaultParams() {
		t.Errorf("layout params = %+v, want defaults", cfg.Layout)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("cache backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Viewer.Algorithm != layout.AlgorithmTree {
		t.Errorf("viewer algorithm = %q, want %q", cfg.Viewer.Algorithm, layout.AlgorithmTree)
	}
	if cfg.Viewer.TickIntervalMS <= 0 {
		t.Error("tick interval must be positive")
	}
	if !cfg.Viewer.ResolveOverlap {
		t.Error("overlap pass should default to enabled")
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("config = %+v, want defaults", cfg)
	}
}

func TestLoadDecodesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[layout]
level_gap = 240
rest_length = 200

[cache]
backend = "redis"
redis_addr = "localhost:6379"

[viewer]
algorithm = "force"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Layout.LevelGap != 240 || cfg.Layout.RestLength != 200 {
		t.Errorf("overridden params = %v/%v, want 240/200", cfg.Layout.LevelGap, cfg.Layout.RestLength)
	}
	// Omitted keys keep their built-in values.
	if cfg.Layout.SiblingGap != layout.DefaultParams().SiblingGap {
		t.Errorf("sibling gap = %v, want default", cfg.Layout.SiblingGap)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v, want redis backend", cfg.Cache)
	}
	if cfg.Cache.TTLHours != Default().Cache.TTLHours {
		t.Errorf("TTL = %v, want default", cfg.Cache.TTLHours)
	}
	if cfg.Viewer.Algorithm != "force" {
		t.Errorf("viewer algorithm = %q, want force", cfg.Viewer.Algorithm)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[[["), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	// A broken file still yields usable defaults.
	if cfg != Default() {
		t.Errorf("config after error = %+v, want defaults", cfg)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	want := filepath.Join("/tmp/xdg-config", "canopy", "config.toml")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestCacheDir(t *testing.T) {
	t.Run("Override", func(t *testing.T) {
		c := CacheConfig{Dir: "/custom/cache"}
		dir, err := c.CacheDir()
		if err != nil {
			t.Fatalf("CacheDir: %v", err)
		}
		if dir != "/custom/cache" {
			t.Errorf("dir = %q, want /custom/cache", dir)
		}
	})

	t.Run("XDG", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
		dir, err := CacheConfig{}.CacheDir()
		if err != nil {
			t.Fatalf("CacheDir: %v", err)
		}
		if !strings.HasSuffix(dir, filepath.Join("xdg-cache", "canopy")) {
			t.Errorf("dir = %q, want under XDG cache home", dir)
		}
	})
}
