// Package config loads mindtower settings.
//
// Settings come from three layers, later ones winning:
//
//  1. Built-in defaults ([Default]), taken from the engines' DefaultConfig.
//  2. A TOML file, by default ~/.config/mindtower/config.toml.
//  3. Environment variables (MINDTOWER_*), optionally read from a .env file
//     in the working directory. Only the server and store sections are
//     environment-configurable; layout tuning belongs in the file.
//
// Example file:
//
//	[radial]
//	algorithm = "tree"
//	min_level_step = 240
//
//	[force]
//	link_distance = 200
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/geometry"
	"github.com/matzehuels/mindtower/pkg/layout/force"
	"github.com/matzehuels/mindtower/pkg/layout/radial"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config is the complete application configuration.
type Config struct {
	Radial radial.Config `toml:"radial"`
	Force  force.Config  `toml:"force"`
	Render RenderConfig  `toml:"render"`
	Server ServerConfig  `toml:"server"`
	Store  StoreConfig   `toml:"store"`
}

// RenderConfig controls SVG and Graphviz output.
type RenderConfig struct {
	Curvature  float64 `toml:"curvature"`
	Padding    float64 `toml:"padding"`
	Background string  `toml:"background"`
	FontFamily string  `toml:"font_family"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr         string        `toml:"addr" env:"MINDTOWER_ADDR"`
	UserHeader   string        `toml:"user_header" env:"MINDTOWER_USER_HEADER"`
	ReadTimeout  time.Duration `toml:"read_timeout" env:"MINDTOWER_READ_TIMEOUT"`
	WriteTimeout time.Duration `toml:"write_timeout" env:"MINDTOWER_WRITE_TIMEOUT"`

	// MaxTicks caps the force ticks a request may ask for.
	MaxTicks int `toml:"max_ticks" env:"MINDTOWER_MAX_TICKS"`
}

// StoreConfig selects and configures the mind map and game session stores.
type StoreConfig struct {
	Backend       string        `toml:"backend" env:"MINDTOWER_STORE"`
	Dir           string        `toml:"dir" env:"MINDTOWER_DATA_DIR"`
	RedisAddr     string        `toml:"redis_addr" env:"MINDTOWER_REDIS_ADDR"`
	RedisPassword string        `toml:"redis_password" env:"MINDTOWER_REDIS_PASSWORD"`
	RedisDB       int           `toml:"redis_db" env:"MINDTOWER_REDIS_DB"`
	MongoURI      string        `toml:"mongo_uri" env:"MINDTOWER_MONGO_URI"`
	MongoDatabase string        `toml:"mongo_database" env:"MINDTOWER_MONGO_DB"`
	SessionTTL    time.Duration `toml:"session_ttl" env:"MINDTOWER_SESSION_TTL"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Radial: radial.DefaultConfig(),
		Force:  force.DefaultConfig(),
		Render: RenderConfig{
			Curvature:  geometry.DefaultCurvature,
			Padding:    40,
			Background: "#FFFFFF",
			FontFamily: "Inter, Helvetica, Arial, sans-serif",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			UserHeader:   "X-User-ID",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxTicks:     2000,
		},
		Store: StoreConfig{
			Backend:       BackendMemory,
			Dir:           defaultDataDir(),
			RedisAddr:     "localhost:6379",
			MongoDatabase: "mindtower",
			SessionTTL:    30 * 24 * time.Hour,
		},
	}
}

// DefaultPath returns ~/.config/mindtower/config.toml (or the platform
// equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mindtower", "config.toml")
}

func defaultDataDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "mindtower")
	}
	return filepath.Join(dir, "mindtower")
}

// Load builds the configuration from defaults, the TOML file at path and
// the environment. An empty path means DefaultPath, which may be absent;
// an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !stderrors.Is(err, fs.ErrNotExist) {
				return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
			}
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotEnv exports the variables of a .env file, without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(file string) error {
	if _, err := os.Stat(file); stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(file); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", file)
	}
	return nil
}

// ApplyEnv overrides the server and store sections from MINDTOWER_*
// environment variables.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(&cfg.Server); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse server environment")
	}
	if err := env.Parse(&cfg.Store); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse store environment")
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Radial.Validate(); err != nil {
		return err
	}
	if err := c.Force.Validate(); err != nil {
		return err
	}
	if c.Render.Curvature < 0 || c.Render.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render: curvature and padding must be >= 0")
	}
	if c.Server.MaxTicks < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server: max_ticks must be >= 0, got %d", c.Server.MaxTicks)
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "store: unknown backend %q (want memory, file, redis or mongo)", c.Store.Backend)
	}
	if c.Store.Backend == BackendFile && c.Store.Dir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "store: file backend needs a dir")
	}
	if c.Store.Backend == BackendMongo && c.Store.MongoURI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "store: mongo backend needs mongo_uri")
	}
	return nil
}

// Write encodes cfg as TOML to path, creating parent directories.
func Write(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
