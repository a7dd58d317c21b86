package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slatedeck.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q", cfg.Server.ListenAddr)
	}
	if cfg.Store.Backend != "memory" || cfg.Cache.Backend != "none" {
		t.Errorf("backends = %q/%q", cfg.Store.Backend, cfg.Cache.Backend)
	}
	if cfg.Grid.MaxRows != 5 || cfg.Grid.MaxColumns != 5 {
		t.Errorf("grid limits = %dx%d", cfg.Grid.MaxRows, cfg.Grid.MaxColumns)
	}
	if cfg.Cache.TTL != DefaultCacheTTL {
		t.Errorf("TTL = %v", cfg.Cache.TTL)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
[server]
listen_addr = ":9000"

[store]
backend = "mongo"
uri = "mongodb://localhost:27017"
database = "classroom"

[cache]
backend = "redis"
addr = "localhost:6379"
db = 2
ttl = 3600000000000

[grid]
max_rows = 8
max_columns = 6
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q", cfg.Server.ListenAddr)
	}
	if cfg.Store.Backend != "mongo" || cfg.Store.Database != "classroom" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.DB != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("TTL = %v", cfg.Cache.TTL)
	}
	if cfg.Grid.MaxRows != 8 || cfg.Grid.MaxColumns != 6 {
		t.Errorf("grid limits = %dx%d", cfg.Grid.MaxRows, cfg.Grid.MaxColumns)
	}
}

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
[store]
backend = "file"
dir = "/tmp/decks"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Backend != "file" || cfg.Store.Dir != "/tmp/decks" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Server.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q", cfg.Server.ListenAddr)
	}
	if cfg.Grid.MaxRows != DefaultMaxRows {
		t.Errorf("MaxRows = %d", cfg.Grid.MaxRows)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "unknown store backend",
			content: "[store]\nbackend = \"sqlite\"\n",
			want:    "unknown store backend",
		},
		{
			name:    "file store without dir",
			content: "[store]\nbackend = \"file\"\n",
			want:    "requires dir",
		},
		{
			name:    "mongo store without uri",
			content: "[store]\nbackend = \"mongo\"\n",
			want:    "requires uri",
		},
		{
			name:    "redis cache without addr",
			content: "[cache]\nbackend = \"redis\"\n",
			want:    "requires addr",
		},
		{
			name:    "unknown cache backend",
			content: "[cache]\nbackend = \"memcached\"\n",
			want:    "unknown cache backend",
		},
		{
			name:    "negative grid limit",
			content: "[grid]\nmax_rows = -1\n",
			want:    "grid limits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("Load succeeded, want error")
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	if _, err := Load(writeConfig(t, "[server\n")); err == nil {
		t.Fatal("Load succeeded, want error")
	}
}
