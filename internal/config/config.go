// Package config loads runtime settings for the quicknotes CLI.
//
// Sources, later ones override earlier ones:
//
//  1. Built-in defaults (see Default).
//  2. Optional JSON file selected with -config or QUICKNOTES_CONFIG.
//  3. Environment variables QUICKNOTES_DB, QUICKNOTES_BACKEND,
//     QUICKNOTES_LOG_LEVEL and QUICKNOTES_HASH_PROFILE.
//  4. Command-line flags.
//
// JSON schema:
//
//	{
//	  "db_path": "quicknotes.db",
//	  "backend": "bolt",
//	  "log_level": "warn",
//	  "hash_profile": "default"
//	}
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/iudanet/quicknotes/internal/crypto"
)

// Хранилища
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Профили хеширования паролей
const (
	HashProfileDefault = "default"
	HashProfileFast    = "fast"
)

// Переменные окружения
const (
	EnvConfig      = "QUICKNOTES_CONFIG"
	EnvDB          = "QUICKNOTES_DB"
	EnvBackend     = "QUICKNOTES_BACKEND"
	EnvLogLevel    = "QUICKNOTES_LOG_LEVEL"
	EnvHashProfile = "QUICKNOTES_HASH_PROFILE"
)

// ErrInvalidConfig is returned when a setting has an unsupported value.
var ErrInvalidConfig = errors.New("invalid config")

// Backends lists the supported storage backends.
var Backends = []string{BackendBolt, BackendSQLite, BackendMemory}

// Config holds runtime settings.
type Config struct {
	DBPath       string   // путь к файлу базы данных
	Backend      string   // bolt, sqlite или memory
	LogLevel     string   // debug, info, warn, error
	HashProfile  string   // default или fast
	Password     string   // пароль из -password
	PasswordFile string   // файл с паролем из -password-file
	Args         []string // команда и ее аргументы
	ShowVersion  bool
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DBPath:      "quicknotes.db",
		Backend:     BackendBolt,
		LogLevel:    "warn",
		HashProfile: HashProfileDefault,
	}
}

// Validate checks that every setting has a supported value.
func (c *Config) Validate() error {
	if c.DBPath == "" && c.Backend != BackendMemory {
		return fmt.Errorf("%w: db path cannot be empty", ErrInvalidConfig)
	}
	if !slices.Contains(Backends, c.Backend) {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if _, err := c.HashParams(); err != nil {
		return err
	}
	return nil
}

// SlogLevel converts LogLevel into a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// HashParams returns the Argon2id parameters of the selected profile.
func (c *Config) HashParams() (crypto.Params, error) {
	switch c.HashProfile {
	case HashProfileDefault, "":
		return crypto.DefaultParams, nil
	case HashProfileFast:
		return crypto.FastParams, nil
	}
	return crypto.Params{}, fmt.Errorf("%w: unknown hash profile %q", ErrInvalidConfig, c.HashProfile)
}

// Load builds a Config from defaults, the JSON file, the environment and the
// command-line args (without the program name). getenv is usually os.Getenv.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	fl, err := parseFlags(args, cfg)
	if err != nil {
		return nil, err
	}

	path := fl.configPath
	if path == "" {
		path = getenv(EnvConfig)
	}
	if path != "" {
		if err := parseJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	parseEnv(getenv, cfg)
	fl.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseEnv(getenv func(string) string, cfg *Config) {
	if v := getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := getenv(EnvBackend); v != "" {
		cfg.Backend = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(EnvHashProfile); v != "" {
		cfg.HashProfile = v
	}
}
