package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/layout/radial"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
[radial]
algorithm = "tree"
min_level_step = 240

[force]
link_distance = 200
center = { x = 100, y = 50 }

[server]
addr = ":9000"
read_timeout = "5s"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Radial.Algorithm != radial.AlgorithmTree || cfg.Radial.MinLevelStep != 240 {
		t.Errorf("radial = %+v", cfg.Radial)
	}
	if cfg.Radial.NodeWidth != 150 {
		t.Errorf("unset radial field lost its default: %v", cfg.Radial.NodeWidth)
	}
	if cfg.Force.LinkDistance != 200 || cfg.Force.Center.X != 100 || cfg.Force.Center.Y != 50 {
		t.Errorf("force = %+v", cfg.Force)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("explicit missing file: err = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Syntax", "[radial\n"},
		{"Algorithm", "[radial]\nalgorithm = \"spiral\"\n"},
		{"AlphaDecay", "[force]\nalpha_decay = 0\n"},
		{"Backend", "[store]\nbackend = \"cassandra\"\n"},
		{"Mongo", "[store]\nbackend = \"mongo\"\n"},
		{"MaxTicks", "[server]\nmax_ticks = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.content)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MINDTOWER_ADDR", ":7070")
	t.Setenv("MINDTOWER_STORE", "redis")
	t.Setenv("MINDTOWER_REDIS_ADDR", "cache:6379")
	t.Setenv("MINDTOWER_SESSION_TTL", "1h")

	cfg, err := Load(writeFile(t, "[server]\naddr = \":9000\"\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Addr = %q, want env to win", cfg.Server.Addr)
	}
	if cfg.Store.Backend != BackendRedis || cfg.Store.RedisAddr != "cache:6379" || cfg.Store.SessionTTL != time.Hour {
		t.Errorf("store = %+v", cfg.Store)
	}
}

func TestEnvInvalid(t *testing.T) {
	t.Setenv("MINDTOWER_REDIS_DB", "zero")
	cfg := Default()
	if err := ApplyEnv(&cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	if err := os.WriteFile(file, []byte("MINDTOWER_DATA_DIR=/srv/mindtower\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("MINDTOWER_DATA_DIR") })
	if err := loadDotEnv(file); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}
	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Dir != "/srv/mindtower" {
		t.Errorf("Dir = %q", cfg.Store.Dir)
	}
	if err := loadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing .env: %v", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Radial.Algorithm = radial.AlgorithmTree
	cfg.Force.Seed = 7
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := Write(cfg, path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Radial.Algorithm != radial.AlgorithmTree || got.Force.Seed != 7 {
		t.Errorf("round trip lost values: %+v %+v", got.Radial, got.Force)
	}
	if got.Store.SessionTTL != cfg.Store.SessionTTL {
		t.Errorf("SessionTTL = %v, want %v", got.Store.SessionTTL, cfg.Store.SessionTTL)
	}
}
